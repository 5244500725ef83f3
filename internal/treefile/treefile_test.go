package treefile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glean/internal/pathcase"
	"glean/internal/source"
	"glean/internal/testkit"
	"glean/internal/token"
	"glean/internal/treefile"
)

const sample = `
case = "insensitive"

[[pattern]]
name = "sources"
expression = "src/**/*.go"

[[pattern.token]]
kind = "literal"
text = "src"
span = [0, 3]

[[pattern.token]]
kind = "tree"
span = [3, 7]

[[pattern.token]]
kind = "zero_or_more"
span = [7, 8]

[[pattern.token]]
kind = "literal"
text = ".go"
span = [8, 11]

[[pattern]]
name = "choice"
expression = "{a,b}<c/:1,>"

[[pattern.token]]
kind = "alternative"
span = [0, 5]

[[pattern.token.branches]]
[[pattern.token.branches.tokens]]
kind = "literal"
text = "a"
span = [1, 2]

[[pattern.token.branches]]
[[pattern.token.branches.tokens]]
kind = "literal"
text = "b"
span = [3, 4]

[[pattern.token]]
kind = "repetition"
span = [5, 12]
lower = 1
tokens = [
  { kind = "literal", text = "c", span = [6, 7] },
  { kind = "separator", span = [7, 8] },
]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	file, err := treefile.Load(writeFile(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !file.HasCase || file.Case != pathcase.Insensitive {
		t.Fatalf("case = %v (set %v), want insensitive", file.Case, file.HasCase)
	}
	if len(file.Patterns) != 2 {
		t.Fatalf("patterns = %d, want 2", len(file.Patterns))
	}
	for _, p := range file.Patterns {
		if err := testkit.CheckTreeInvariants(p.Pattern); err != nil {
			t.Fatalf("%s: %v", p.Name, err)
		}
	}

	sources := file.Patterns[0].Pattern
	if sources.Expression() != "src/**/*.go" || len(sources.Tokens()) != 4 {
		t.Fatalf("sources = %q with %d tokens", sources.Expression(), len(sources.Tokens()))
	}
	if !sources.Depth().IsOpen() {
		t.Fatalf("tree wildcard must make depth open")
	}

	choice := file.Patterns[1].Pattern
	alt, ok := choice.Tokens()[0].Kind().(token.Alternative[source.Span])
	if !ok || len(alt.Branches()) != 2 {
		t.Fatalf("first token is not a two-branch alternative")
	}
	r, ok := choice.Tokens()[1].Kind().(token.Repetition[source.Span])
	if !ok {
		t.Fatalf("second token is not a repetition")
	}
	if lower, _, bounded := r.Bounds(); lower != 1 || bounded {
		t.Fatalf("bounds = %d, bounded %v", lower, bounded)
	}
	if !r.HasComponentBoundary() || !choice.Depth().IsOpen() {
		t.Fatalf("unbounded repetition over a separator must be depth-open")
	}
}

func TestDecodeClass(t *testing.T) {
	const doc = `
[[pattern]]
expression = "[a-c1]"
token = [
  { kind = "class", negated = true, archetypes = [{ from = "a", to = "c" }, { char = "1" }] },
]
`
	file, err := treefile.Decode(strings.NewReader(doc), "class.toml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if file.HasCase {
		t.Fatalf("case must be unset")
	}
	p := file.Patterns[0]
	if p.Name != "pattern 1" {
		t.Fatalf("name = %q", p.Name)
	}
	c, ok := p.Pattern.Tokens()[0].Kind().(token.Class)
	if !ok || !c.IsNegated() || len(c.Archetypes()) != 2 {
		t.Fatalf("class = %+v", c)
	}
	if lo, hi := c.Archetypes()[0].Bounds(); lo != 'a' || hi != 'c' {
		t.Fatalf("range = %q-%q", lo, hi)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		target  error
		message string
	}{
		{
			name:   "unknown kind",
			doc:    "[[pattern]]\ntoken = [{ kind = \"glob\" }]\n",
			target: treefile.ErrUnknownKind,
		},
		{
			name:   "invalid repetition",
			doc:    "[[pattern]]\ntoken = [{ kind = \"repetition\", lower = 3, upper = 2, tokens = [{ kind = \"one\" }] }]\n",
			target: token.ErrInvalidBounds,
		},
		{
			name:   "late rooted tree",
			doc:    "[[pattern]]\ntoken = [{ kind = \"literal\", text = \"a\" }, { kind = \"tree\", root = true }]\n",
			target: token.ErrMisplacedRoot,
		},
		{
			name:    "missing patterns",
			doc:     "case = \"sensitive\"\n",
			message: "missing [[pattern]]",
		},
		{
			name:    "reversed span",
			doc:     "[[pattern]]\ntoken = [{ kind = \"one\", span = [4, 2] }]\n",
			message: "precedes start",
		},
		{
			name:    "unknown key",
			doc:     "[[pattern]]\ncolour = 1\n",
			message: "unknown key",
		},
		{
			name:    "bad case",
			doc:     "case = \"upper\"\n[[pattern]]\n",
			message: "upper",
		},
		{
			name:    "multi-character archetype",
			doc:     "[[pattern]]\ntoken = [{ kind = \"class\", archetypes = [{ char = \"ab\" }] }]\n",
			message: "expected one character",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := treefile.Decode(strings.NewReader(tt.doc), "bad.toml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("err = %v, want %v", err, tt.target)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("err = %v, want mention of %q", err, tt.message)
			}
		})
	}
}
