// Package treefile reads token trees described in TOML.
//
// A tree file holds one or more patterns, each with the expression it was
// parsed from and its root-level tokens:
//
//	case = "insensitive"   # optional, overrides the configured policy
//
//	[[pattern]]
//	name = "go sources"
//	expression = "src/**/*.go"
//
//	[[pattern.token]]
//	kind = "literal"
//	text = "src"
//	span = [0, 3]
//
//	[[pattern.token]]
//	kind = "tree"
//	span = [3, 7]
//
// Alternatives list their branches as [[...branches]] tables holding a token
// array; repetitions hold their body in tokens and take lower and an optional
// upper bound.
package treefile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"glean/internal/pathcase"
	"glean/internal/source"
	"glean/internal/token"
)

// ErrUnknownKind is returned for a token whose kind is not recognized.
var ErrUnknownKind = errors.New("unknown token kind")

// File is a decoded tree file.
type File struct {
	Path string
	// Case is the policy requested by the file; valid only when HasCase is set.
	Case     pathcase.Sensitivity
	HasCase  bool
	Patterns []Pattern
}

// Pattern is one named token tree.
type Pattern struct {
	Name    string
	Pattern token.Tokenized[source.Span]
}

type document struct {
	Case     string       `toml:"case"`
	Patterns []patternDoc `toml:"pattern"`
}

type patternDoc struct {
	Name       string    `toml:"name"`
	Expression string    `toml:"expression"`
	Tokens     []nodeDoc `toml:"token"`
}

type nodeDoc struct {
	Kind            string         `toml:"kind"`
	Span            []int64        `toml:"span"`
	Text            string         `toml:"text"`
	CaseInsensitive bool           `toml:"case_insensitive"`
	Negated         bool           `toml:"negated"`
	Archetypes      []archetypeDoc `toml:"archetypes"`
	Lazy            bool           `toml:"lazy"`
	Root            bool           `toml:"root"`
	Branches        []branchDoc    `toml:"branches"`
	Tokens          []nodeDoc      `toml:"tokens"`
	Lower           int64          `toml:"lower"`
	Upper           *int64         `toml:"upper"`
}

type branchDoc struct {
	Tokens []nodeDoc `toml:"tokens"`
}

type archetypeDoc struct {
	Char string `toml:"char"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Load reads and decodes the tree file at path.
func Load(path string) (*File, error) {
	var doc document
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return build(path, doc, meta)
}

// Decode reads a tree file from r. name is used in error messages.
func Decode(r io.Reader, name string) (*File, error) {
	var doc document
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	return build(name, doc, meta)
}

func build(path string, doc document, meta toml.MetaData) (*File, error) {
	if !meta.IsDefined("pattern") {
		return nil, fmt.Errorf("%s: missing [[pattern]]", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	file := &File{Path: path}
	if meta.IsDefined("case") {
		cs, err := pathcase.Parse(doc.Case)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		file.Case, file.HasCase = cs, true
	}
	file.Patterns = make([]Pattern, 0, len(doc.Patterns))
	for i, p := range doc.Patterns {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf("pattern %d", i+1)
		}
		tokens, err := buildTokens(p.Tokens)
		if err == nil {
			err = token.CheckRoot(tokens)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, name, err)
		}
		file.Patterns = append(file.Patterns, Pattern{
			Name:    name,
			Pattern: token.NewTokenized(p.Expression, tokens),
		})
	}
	return file, nil
}

func buildTokens(nodes []nodeDoc) ([]token.Spanned, error) {
	tokens := make([]token.Spanned, 0, len(nodes))
	for i, n := range nodes {
		t, err := buildToken(n)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i+1, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func buildToken(n nodeDoc) (token.Spanned, error) {
	span, err := buildSpan(n.Span)
	if err != nil {
		return token.Spanned{}, err
	}
	kind, err := buildKind(n)
	if err != nil {
		return token.Spanned{}, err
	}
	return token.New(kind, span), nil
}

func buildKind(n nodeDoc) (token.Kind[source.Span], error) {
	switch strings.ToLower(strings.TrimSpace(n.Kind)) {
	case "literal":
		return token.NewLiteral(n.Text, n.CaseInsensitive), nil
	case "separator":
		return token.NewSeparator(), nil
	case "class":
		archetypes, err := buildArchetypes(n.Archetypes)
		if err != nil {
			return nil, err
		}
		return token.NewClass(n.Negated, archetypes...), nil
	case "one":
		return token.NewOne(), nil
	case "zero_or_more":
		if n.Lazy {
			return token.NewZeroOrMore(token.Lazy), nil
		}
		return token.NewZeroOrMore(token.Eager), nil
	case "tree":
		return token.NewTree(n.Root), nil
	case "alternative":
		branches := make([][]token.Spanned, 0, len(n.Branches))
		for i, b := range n.Branches {
			tokens, err := buildTokens(b.Tokens)
			if err != nil {
				return nil, fmt.Errorf("branch %d: %w", i+1, err)
			}
			branches = append(branches, tokens)
		}
		return token.NewAlternative(branches...), nil
	case "repetition":
		return buildRepetition(n)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}
}
