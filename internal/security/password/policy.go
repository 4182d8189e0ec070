package password

import (
	"errors"
	"fmt"

	"github.com/5w1tchy/pwstrength/internal/strength"
)

var ErrTooWeak = errors.New("weak_password.strength")

// Policy gates hashing on the strength assessment: Weak passwords are refused.
type Policy struct {
	Hasher *Hasher
}

func NewPolicy(h *Hasher) *Policy {
	return &Policy{Hasher: h}
}

// Validate assesses pwd and returns ErrTooWeak when it rates Weak.
// The assessment is returned either way so callers can show suggestions.
func (p *Policy) Validate(pwd string) (strength.Assessment, error) {
	a := strength.Check(pwd)
	if a.Strength == strength.Weak {
		return a, ErrTooWeak
	}
	return a, nil
}

// HashIfAccepted validates pwd and, when accepted, returns its PHC hash.
func (p *Policy) HashIfAccepted(pwd string) (string, strength.Assessment, error) {
	a, err := p.Validate(pwd)
	if err != nil {
		return "", a, err
	}
	phc, err := p.Hasher.Hash(pwd)
	if err != nil {
		return "", a, fmt.Errorf("hash password: %w", err)
	}
	return phc, a, nil
}
