package token_test

import (
	"strings"
	"testing"

	"glean/internal/token"
	"glean/internal/variance"
)

type tok = token.Token[struct{}]

func lit(s string) tok { return token.From(token.NewLiteral(s, false)) }
func ilit(s string) tok { return token.From(token.NewLiteral(s, true)) }
func sep() tok { return token.From(token.NewSeparator()) }
func one() tok { return token.From(token.NewOne()) }
func star() tok { return token.From(token.NewZeroOrMore(token.Eager)) }
func lazy() tok { return token.From(token.NewZeroOrMore(token.Lazy)) }
func tree(root bool) tok { return token.From(token.NewTree(root)) }
func alt(branches ...[]tok) tok { return token.From(token.NewAlternative(branches...)) }
func seq(tokens ...tok) []tok { return tokens }

func class(negated bool, archetypes ...token.Archetype) tok {
	return token.From(token.NewClass(negated, archetypes...))
}

func rep(t *testing.T, lower, upper int, body ...tok) tok {
	t.Helper()
	r, err := token.NewRepetition(body, lower, upper)
	if err != nil {
		t.Fatalf("NewRepetition(%d, %d): %v", lower, upper, err)
	}
	return token.From(r)
}

// native rewrites '/' into the platform separator.
func native(s string) string {
	return strings.ReplaceAll(s, "/", token.SeparatorText())
}

func invariantText(t *testing.T, v variance.Variance[variance.InvariantText]) string {
	t.Helper()
	value, ok := v.Invariance()
	if !ok {
		t.Fatalf("expected invariant text, got %v", v)
	}
	return value.String()
}
