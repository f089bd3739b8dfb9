// Package validate rejects degenerate input before any extraction or
// reasoning-service cost is spent on it.
package validate

import "strings"

// greetings are filler tokens users paste while trying the tool out.
var greetings = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
	"ok":    {},
	"test":  {},
}

const minTokens = 5

// Validator decides whether a text sample is worth analyzing.
type Validator struct{}

// NewValidator creates a new input validator.
func NewValidator() *Validator {
	return &Validator{}
}

// IsValid reports whether text looks like actual news content. It fails
// samples with fewer than 5 whitespace-separated tokens and samples that
// are exactly a greeting. Pure function of the string.
func (v *Validator) IsValid(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	if len(strings.Fields(trimmed)) < minTokens {
		return false
	}

	if _, ok := greetings[trimmed]; ok {
		return false
	}

	return true
}
