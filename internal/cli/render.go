// Package cli renders assessments for the interactive checker.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/5w1tchy/pwstrength/internal/strength"
)

const Prompt = "Enter your password: "

// ReadPassword reads one line from r without the trailing line break.
// Empty input is a valid password.
func ReadPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Render writes the human-readable report.
func Render(w io.Writer, a strength.Assessment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPassword Strength: %s\n", a.Strength)
	if len(a.Suggestions) > 0 {
		b.WriteString("Suggestions for improvement:\n")
		for _, s := range a.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	} else {
		b.WriteString("Good job!\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes the assessment, plus the hash when non-empty, as one JSON document.
func RenderJSON(w io.Writer, a strength.Assessment, hash string) error {
	out := struct {
		strength.Assessment
		Hash string `json:"hash,omitempty"`
	}{a, hash}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
