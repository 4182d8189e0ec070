package strength

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Features is the fixed feature record extracted from one password.
type Features struct {
	Length          int  `json:"length"`
	HasUpper        bool `json:"has_upper"`
	HasLower        bool `json:"has_lower"`
	HasDigit        bool `json:"has_digit"`
	HasSymbol       bool `json:"has_symbol"`
	IsCommon        bool `json:"is_common"`
	HasKeyboardWalk bool `json:"has_keyboard_walk"`
	HasDatePattern  bool `json:"has_date_pattern"`
	HasRepeatedChar bool `json:"has_repeated_char"`
}

var (
	commonPasswords = map[string]struct{}{
		"password": {},
		"123456":   {},
		"qwerty":   {},
	}
	keyboardWalks = []string{"qwerty", "asdfgh", "zxcvbn"}

	// month abbreviation followed by a 2-4 digit year/day fragment, as a whole word.
	// RE2 \b and \d are ASCII-only, so "éjan12" still matches.
	dateRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\d{2,4}\b`)
)

const minRun = 3

// ExtractFeatures computes the feature record for pwd. It never fails.
func ExtractFeatures(pwd string) Features {
	f := Features{Length: utf8.RuneCountInString(pwd)}
	for _, r := range pwd {
		switch {
		case unicode.In(r, unicode.Upper, unicode.Other_Uppercase):
			f.HasUpper = true
		case unicode.In(r, unicode.Lower, unicode.Other_Lowercase):
			f.HasLower = true
		}
		if unicode.IsDigit(r) {
			f.HasDigit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			f.HasSymbol = true
		}
	}

	lower := lowercase(pwd)
	_, f.IsCommon = commonPasswords[lower]
	for _, w := range keyboardWalks {
		if strings.Contains(lower, w) {
			f.HasKeyboardWalk = true
			break
		}
	}
	f.HasDatePattern = dateRe.MatchString(pwd)
	f.HasRepeatedChar = hasRun(pwd, minRun)
	return f
}

// cases.Caser is stateful, so each call gets its own.
func lowercase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// hasRun reports whether some rune repeats n or more times in a row.
// Newlines never form a run.
func hasRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == '\n' {
			run = 0
			continue
		}
		if run > 0 && r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= n {
			return true
		}
	}
	return false
}
