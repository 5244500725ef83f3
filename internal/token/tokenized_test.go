package token_test

import (
	"reflect"
	"testing"

	"glean/internal/pathcase"
	"glean/internal/token"
	"glean/internal/variance"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []tok
		cs         pathcase.Sensitivity
		wantPrefix string
		wantRest   string
	}{
		{
			name:       "variant suffix",
			tokens:     seq(lit("literal"), sep(), lit("foo"), sep(), star(), lit("bar")),
			wantPrefix: "literal/foo",
			wantRest:   "*bar",
		},
		{
			name:       "rooted tree",
			tokens:     seq(tree(true), lit("foo")),
			wantPrefix: "/",
			wantRest:   "**/foo",
		},
		{
			name:       "variant first component",
			tokens:     seq(lit("foo"), star(), lit("bar")),
			wantPrefix: "",
			wantRest:   "foo*bar",
		},
		{
			name:       "fully invariant",
			tokens:     seq(lit("a"), sep(), lit("b")),
			wantPrefix: "a/b",
			wantRest:   "",
		},
		{
			name:       "rooted path",
			tokens:     seq(sep(), lit("a"), sep(), lit("b"), sep(), one()),
			wantPrefix: "/a/b",
			wantRest:   "?",
		},
		{
			name:       "tree after prefix",
			tokens:     seq(lit("src"), tree(false), lit("x")),
			wantPrefix: "src",
			wantRest:   "**/x",
		},
		{
			name:       "cased prefix under insensitive",
			tokens:     seq(lit("Foo"), sep(), lit("1"), sep(), star()),
			cs:         pathcase.Insensitive,
			wantPrefix: "",
			wantRest:   "Foo/1/*",
		},
		{
			name:       "uncased prefix under insensitive",
			tokens:     seq(lit("1"), sep(), lit("2"), sep(), star()),
			cs:         pathcase.Insensitive,
			wantPrefix: "1/2",
			wantRest:   "*",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := token.NewTokenized("expr", tt.tokens)
			prefix, rest := pattern.Partition(tt.cs)
			if want := native(tt.wantPrefix); prefix != want {
				t.Fatalf("prefix = %q, want %q", prefix, want)
			}
			if want := native(tt.wantRest); rest.String() != want {
				t.Fatalf("rest = %q, want %q", rest.String(), want)
			}
			if rest.Expression() != "expr" {
				t.Fatalf("expression = %q", rest.Expression())
			}
		})
	}
}

func TestPartitionLeavesInputIntact(t *testing.T) {
	pattern := token.NewTokenized("/**/foo", seq(tree(true), lit("foo")))
	_, rest := pattern.Partition(pathcase.Sensitive)
	if rest.HasRoot() {
		t.Fatalf("rest still rooted")
	}
	if !pattern.HasRoot() {
		t.Fatalf("Partition modified its receiver")
	}
}

func TestPartitionPrefixMatchesUpperBound(t *testing.T) {
	tokens := seq(lit("a"), sep(), lit("b"), sep(), lit("c"), one())
	prefix := token.InvariantTextPrefix(tokens, pathcase.Sensitive)
	n := token.InvariantTextPrefixUpperBound(tokens, pathcase.Sensitive)
	if prefix != native("a/b") || n != 4 {
		t.Fatalf("prefix = %q, bound = %d", prefix, n)
	}
}

func TestPartitionStopsAtOversizedComponent(t *testing.T) {
	full := rep(t, variance.MaxInvariantBytes, variance.MaxInvariantBytes, lit("a"))
	tests := []struct {
		name   string
		tokens []tok
		rest   int
	}{
		{"oversized token", seq(lit("x"), sep(), rep(t, 1<<45, 1<<45, lit("a")), sep(), lit("c")), 3},
		{"oversized component", seq(lit("x"), sep(), full, lit("b"), sep(), lit("c")), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, rest := token.NewTokenized("", tt.tokens).Partition(pathcase.Sensitive)
			if prefix != "x" {
				t.Fatalf("prefix = %q, want x", prefix)
			}
			if len(rest.Tokens()) != tt.rest {
				t.Fatalf("rest has %d tokens, want %d", len(rest.Tokens()), tt.rest)
			}
		})
	}
}

func TestTokenizedAnalysis(t *testing.T) {
	pattern := token.NewTokenized("a/**/*.go", seq(lit("a"), tree(false), star(), lit(".go")))
	if pattern.HasRoot() {
		t.Fatalf("pattern is not rooted")
	}
	if !pattern.HasComponentBoundary() {
		t.Fatalf("pattern spans components")
	}
	if !pattern.Depth().IsOpen() || !pattern.Breadth().IsOpen() {
		t.Fatalf("depth = %v, breadth = %v", pattern.Depth(), pattern.Breadth())
	}
	if !pattern.TextVariance(pathcase.Sensitive).IsOpen() {
		t.Fatalf("text variance must be open")
	}
	if pattern.SizeVariance(pathcase.Sensitive).IsInvariant() {
		t.Fatalf("size variance must be variant")
	}

	bare := pattern.Detach().Unannotate()
	if bare.Expression() != pattern.Expression() || len(bare.Tokens()) != 4 {
		t.Fatalf("unannotated copy differs")
	}
}

func TestFormat(t *testing.T) {
	tokens := seq(
		tree(true), lit("a"), sep(), lit("b*"),
		alt(seq(lit("x")), seq(lit("y"))),
		class(true, token.Range('a', 'z')),
		one(), lazy(),
		rep(t, 1, token.Unbounded, lit("c")),
		rep(t, 2, 3, lit("d")),
	)
	want := native("/**/a/") + `b\*{x,y}[!a-z]?$<c:1,><d:2,3>`
	if got := token.Format(tokens); got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

type snapshot struct {
	text       string
	size       string
	depth      variance.Boundedness
	breadth    variance.Boundedness
	components []string
	literals   []string
	prefix     string
	rest       string
}

func takeSnapshot(p token.Tokenized[struct{}], cs pathcase.Sensitivity) snapshot {
	s := snapshot{
		text:    p.TextVariance(cs).String(),
		size:    p.SizeVariance(cs).String(),
		depth:   p.Depth(),
		breadth: p.Breadth(),
	}
	for c := range p.Components() {
		s.components = append(s.components, token.Format(c.Tokens()))
	}
	for _, l := range p.Literals() {
		s.literals = append(s.literals, l.Text())
	}
	prefix, rest := p.Partition(cs)
	s.prefix, s.rest = prefix, rest.String()
	return s
}

func TestQueriesArePure(t *testing.T) {
	tests := []struct {
		name   string
		tokens []tok
	}{
		{"rooted tree", seq(tree(true), lit("src"), sep(), star(), lit(".go"))},
		{"repetition", seq(lit("a"), sep(), rep(t, 2, 2, lit("b"), sep()), rep(t, 0, token.Unbounded, one()))},
		{"alternative", seq(ilit("Doc"), sep(), alt(seq(lit("x")), seq(lit("y"), tree(false))))},
	}
	for _, cs := range []pathcase.Sensitivity{pathcase.Sensitive, pathcase.Insensitive} {
		for _, tt := range tests {
			t.Run(cs.String()+"/"+tt.name, func(t *testing.T) {
				pattern := token.NewTokenized(tt.name, tt.tokens)
				rendered, rooted := pattern.String(), pattern.HasRoot()

				first := takeSnapshot(pattern, cs)
				second := takeSnapshot(pattern, cs)
				if !reflect.DeepEqual(first, second) {
					t.Fatalf("repeated queries differ:\n%+v\n%+v", first, second)
				}
				if pattern.String() != rendered || pattern.HasRoot() != rooted || len(pattern.Tokens()) != len(tt.tokens) {
					t.Fatalf("queries modified the pattern: %q -> %q", rendered, pattern.String())
				}
			})
		}
	}
}
