package token_test

import (
	"testing"

	"glean/internal/pathcase"
	"glean/internal/token"
	"glean/internal/variance"
)

func TestTextVarianceInvariantSequence(t *testing.T) {
	tokens := seq(lit("a"), sep(), lit("b"))
	got := invariantText(t, token.TextVariance(tokens, pathcase.Sensitive))
	if want := native("a/b"); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestLiteralCasing(t *testing.T) {
	tests := []struct {
		name    string
		token   tok
		cs      pathcase.Sensitivity
		variant bool
	}{
		{"sensitive literal under sensitive", lit("Foo"), pathcase.Sensitive, false},
		{"sensitive literal under insensitive", lit("Foo"), pathcase.Insensitive, true},
		{"uncased literal under insensitive", lit("123"), pathcase.Insensitive, false},
		{"flagged literal under sensitive", ilit("foo"), pathcase.Sensitive, true},
		{"flagged literal under insensitive", ilit("foo"), pathcase.Insensitive, false},
		{"flagged uncased literal under sensitive", ilit("_-"), pathcase.Sensitive, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.token.TextVariance(tt.cs)
			if v.IsVariant() != tt.variant {
				t.Fatalf("variant = %v, want %v (%v)", v.IsVariant(), tt.variant, v)
			}
			if v.IsOpen() {
				t.Fatalf("literal must never be open")
			}
		})
	}
}

func TestClassVariance(t *testing.T) {
	tests := []struct {
		name  string
		token tok
		cs    pathcase.Sensitivity
		want  string
		ok    bool
	}{
		{"single character", class(false, token.Character('a')), pathcase.Sensitive, "a", true},
		{"cased character under insensitive", class(false, token.Character('a')), pathcase.Insensitive, "", false},
		{"uncased character under insensitive", class(false, token.Character('1')), pathcase.Insensitive, "1", true},
		{"repeated character", class(false, token.Character('a'), token.Character('a')), pathcase.Sensitive, "a", true},
		{"distinct characters", class(false, token.Character('a'), token.Character('b')), pathcase.Sensitive, "", false},
		{"range", class(false, token.Range('a', 'z')), pathcase.Sensitive, "", false},
		{"degenerate range", class(false, token.Range('x', 'x')), pathcase.Sensitive, "x", true},
		{"negated", class(true, token.Character('a')), pathcase.Sensitive, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.token.TextVariance(tt.cs)
			value, ok := v.Invariance()
			if ok != tt.ok {
				t.Fatalf("invariant = %v, want %v (%v)", ok, tt.ok, v)
			}
			if ok && value.String() != tt.want {
				t.Fatalf("text = %q, want %q", value.String(), tt.want)
			}
			if v.IsOpen() {
				t.Fatalf("class must never be open")
			}
		})
	}
}

func TestWildcardVariance(t *testing.T) {
	tests := []struct {
		name  string
		token tok
		want  variance.Boundedness
	}{
		{"one", one(), variance.Closed},
		{"zero or more", star(), variance.Closed},
		{"lazy zero or more", lazy(), variance.Closed},
		{"tree", tree(false), variance.Open},
		{"rooted tree", tree(true), variance.Open},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.token.TextVariance(pathcase.Sensitive)
			if !v.IsVariant() {
				t.Fatalf("wildcard must be variant")
			}
			if v.Boundedness() != tt.want {
				t.Fatalf("boundedness = %v, want %v", v.Boundedness(), tt.want)
			}
		})
	}
}

func TestAlternativeVariance(t *testing.T) {
	t.Run("equal branches", func(t *testing.T) {
		v := alt(seq(lit("a")), seq(lit("a"))).TextVariance(pathcase.Sensitive)
		if got := invariantText(t, v); got != "a" {
			t.Fatalf("text = %q, want a", got)
		}
	})
	t.Run("distinct branches", func(t *testing.T) {
		v := alt(seq(lit("a")), seq(lit("b"))).TextVariance(pathcase.Sensitive)
		if !v.IsVariant() || v.IsOpen() {
			t.Fatalf("got %v, want variant(closed)", v)
		}
	})
	t.Run("open branch", func(t *testing.T) {
		v := alt(seq(lit("a")), seq(tree(false))).TextVariance(pathcase.Sensitive)
		if !v.IsOpen() {
			t.Fatalf("got %v, want variant(open)", v)
		}
	})
	t.Run("branches equal after folding", func(t *testing.T) {
		tokens := alt(seq(ilit("a")), seq(ilit("A")))
		if got := invariantText(t, tokens.TextVariance(pathcase.Insensitive)); got != "a" {
			t.Fatalf("text = %q, want a", got)
		}
	})
	t.Run("no branches", func(t *testing.T) {
		v := alt().TextVariance(pathcase.Sensitive)
		if got := invariantText(t, v); got != "" {
			t.Fatalf("text = %q, want empty", got)
		}
	})
}

func TestRepetitionVariance(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		v := rep(t, 3, 3, lit("a")).TextVariance(pathcase.Sensitive)
		if got := invariantText(t, v); got != "aaa" {
			t.Fatalf("text = %q, want aaa", got)
		}
	})
	t.Run("exact variant body", func(t *testing.T) {
		v := rep(t, 2, 2, star()).TextVariance(pathcase.Sensitive)
		if !v.IsVariant() || v.IsOpen() {
			t.Fatalf("got %v, want variant(closed)", v)
		}
	})
	t.Run("exact count past text bound", func(t *testing.T) {
		r := rep(t, 1<<45, 1<<45, lit("a"))
		if v := r.TextVariance(pathcase.Sensitive); !v.IsVariant() || v.IsOpen() {
			t.Fatalf("text = %v, want variant(closed)", v)
		}
		if v := r.SizeVariance(pathcase.Sensitive); !v.IsVariant() || v.IsOpen() {
			t.Fatalf("size = %v, want variant(closed)", v)
		}
	})
	t.Run("nested exact counts past size bound", func(t *testing.T) {
		inner := rep(t, 1<<31, 1<<31, lit("aaaa"))
		outer := rep(t, 4, 4, rep(t, 1<<31, 1<<31, inner))
		if v := token.SizeVariance(seq(outer), pathcase.Sensitive); !v.IsVariant() || v.IsOpen() {
			t.Fatalf("size = %v, want variant(closed)", v)
		}
	})
	t.Run("ranged", func(t *testing.T) {
		v := rep(t, 1, 2, lit("a")).TextVariance(pathcase.Sensitive)
		if !v.IsOpen() {
			t.Fatalf("got %v, want variant(open)", v)
		}
	})
	t.Run("unbounded", func(t *testing.T) {
		v := rep(t, 0, token.Unbounded, lit("a")).TextVariance(pathcase.Sensitive)
		if !v.IsOpen() {
			t.Fatalf("got %v, want variant(open)", v)
		}
	})
}

func TestSizeVariance(t *testing.T) {
	tests := []struct {
		name   string
		tokens []tok
		want   variance.InvariantSize
	}{
		{"literals and separator", seq(lit("ab"), sep(), lit("c")), 4},
		{"class archetype", seq(class(false, token.Character('a'))), 4},
		{"agreeing class", seq(class(false, token.Character('a'), token.Character('b'))), 4},
		{"exact repetition", seq(rep(t, 3, 3, lit("xy"))), 6},
		{"equal size branches", seq(alt(seq(lit("ab")), seq(lit("cd")))), 2},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := token.SizeVariance(tt.tokens, pathcase.Sensitive).Invariance()
			if !ok {
				t.Fatalf("expected invariant size")
			}
			if got != tt.want {
				t.Fatalf("size = %d, want %d", got, tt.want)
			}
		})
	}
	if v := token.SizeVariance(seq(lit("a"), star()), pathcase.Sensitive); !v.IsVariant() {
		t.Fatalf("size with wildcard = %v, want variant", v)
	}
}

func TestConjunctionOfSequence(t *testing.T) {
	tests := []struct {
		name   string
		tokens []tok
		open   bool
	}{
		{"closed variant", seq(lit("a"), star(), lit("b")), false},
		{"tree makes open", seq(lit("a"), tree(false), lit("b")), true},
		{"open alternative", seq(alt(seq(lit("a")), seq(tree(false)))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := token.TextVariance(tt.tokens, pathcase.Sensitive)
			if !v.IsVariant() {
				t.Fatalf("expected variant, got %v", v)
			}
			if v.IsOpen() != tt.open {
				t.Fatalf("open = %v, want %v", v.IsOpen(), tt.open)
			}
		})
	}
}
