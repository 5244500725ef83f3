package token

import (
	"strings"

	"glean/internal/pathcase"
	"glean/internal/variance"
)

// InvariantTextPrefix returns the fixed text that every match of tokens
// begins with, as a path. It is made of a leading root separator, if the
// first token roots the pattern, followed by the text of each leading
// invariant component joined by the separator. It stops at the first variant
// component and never splits a component.
func InvariantTextPrefix[A any](tokens []Token[A], cs pathcase.Sensitivity) string {
	separator := SeparatorText()
	var b strings.Builder
	if len(tokens) > 0 && !tokens[0].HasSubTokens() && tokens[0].HasRoot() {
		b.WriteString(separator)
	}
	first := true
	for component := range Components(tokens) {
		text, ok := component.TextVariance(cs).Invariance()
		if !ok {
			break
		}
		if !first {
			b.WriteString(separator)
		}
		b.WriteString(text.String())
		first = false
	}
	return b.String()
}

// InvariantTextPrefixUpperBound returns how many leading tokens are consumed by
// InvariantTextPrefix. Consumption stops before a tree wildcard and, at the
// first token that makes its component variant, falls back to just after the
// last separator seen.
func InvariantTextPrefixUpperBound[A any](tokens []Token[A], cs pathcase.Sensitivity) int {
	separator := -1
	var component variance.Variance[variance.InvariantText]
	for i := range tokens {
		switch {
		case tokens[i].IsSeparator():
			separator = i
			component = variance.Variance[variance.InvariantText]{}
		case tokens[i].IsTree():
			return i
		default:
			// A component of invariant tokens can still exceed the text bound.
			component = component.Then(tokens[i].TextVariance(cs))
			if component.IsVariant() {
				return separator + 1
			}
		}
	}
	return len(tokens)
}
