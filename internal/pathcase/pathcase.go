// Package pathcase describes how path text is compared: case-sensitively or not.
//
// The policy is always passed explicitly into analysis entry points; nothing in
// this module reads it from global state. Platform reports the conventional
// default for the host operating system.
package pathcase

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Sensitivity selects case-sensitive or case-insensitive path comparison.
type Sensitivity uint8

const (
	// Sensitive compares path text byte for byte.
	Sensitive Sensitivity = iota
	// Insensitive compares path text after case folding.
	Insensitive
)

// String returns the string representation of Sensitivity.
func (s Sensitivity) String() string {
	switch s {
	case Sensitive:
		return "sensitive"
	case Insensitive:
		return "insensitive"
	default:
		return "unknown"
	}
}

// IsInsensitive reports whether comparisons ignore case.
func (s Sensitivity) IsInsensitive() bool { return s == Insensitive }

// Platform returns the conventional policy for the host filesystem.
func Platform() Sensitivity {
	return ForGOOS(runtime.GOOS)
}

// ForGOOS returns the conventional policy for the named operating system.
func ForGOOS(goos string) Sensitivity {
	switch goos {
	case "windows", "darwin", "ios":
		return Insensitive
	default:
		return Sensitive
	}
}

// Parse converts a configuration value into a Sensitivity.
// "platform" (or an empty value) resolves to Platform().
func Parse(s string) (Sensitivity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "platform":
		return Platform(), nil
	case "sensitive":
		return Sensitive, nil
	case "insensitive":
		return Insensitive, nil
	default:
		return Sensitive, fmt.Errorf("invalid case sensitivity: %q (expected: sensitive|insensitive|platform)", s)
	}
}

// HasCasing reports whether text contains at least one rune that has distinct
// upper and lower case forms.
func HasCasing(text string) bool {
	for _, r := range text {
		if RuneHasCasing(r) {
			return true
		}
	}
	return false
}

// RuneHasCasing reports whether r has distinct case forms.
func RuneHasCasing(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// Fold returns the comparison key for nominal path text under s.
// Insensitive folding also normalizes to NFC so that canonically equivalent
// spellings compare equal.
func (s Sensitivity) Fold(text string) string {
	if s != Insensitive {
		return text
	}
	return cases.Fold().String(norm.NFC.String(text))
}

// Equal reports whether two nominal texts are equal under s.
func (s Sensitivity) Equal(a, b string) bool {
	if s != Insensitive {
		return a == b
	}
	return s.Fold(a) == s.Fold(b)
}
