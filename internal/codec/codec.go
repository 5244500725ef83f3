// Package codec is the msgpack wire format for token trees.
package codec

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"glean/internal/pathcase"
	"glean/internal/source"
	"glean/internal/token"
	"glean/internal/treefile"
)

// SchemaVersion is bumped whenever the payload layout changes.
const SchemaVersion uint16 = 1

// ErrSchema is returned for payloads written with a different schema version.
var ErrSchema = errors.New("unsupported payload schema")

// Payload is the encoded form of a tree file.
type Payload struct {
	Schema   uint16           `msgpack:"schema"`
	Case     int8             `msgpack:"case"` // -1 when the file sets no policy
	Patterns []PatternPayload `msgpack:"patterns"`
}

// PatternPayload is one named tree.
type PatternPayload struct {
	Name       string `msgpack:"name"`
	Expression string `msgpack:"expr"`
	Tokens     []Node `msgpack:"tokens"`
}

// Node is one encoded token. Fields not used by Tag are omitted.
type Node struct {
	Tag             uint8       `msgpack:"tag"`
	Start           uint32      `msgpack:"s,omitempty"`
	End             uint32      `msgpack:"e,omitempty"`
	Text            string      `msgpack:"text,omitempty"`
	CaseInsensitive bool        `msgpack:"ci,omitempty"`
	Negated         bool        `msgpack:"neg,omitempty"`
	Archetypes      []Archetype `msgpack:"arch,omitempty"`
	Wildcard        uint8       `msgpack:"wc,omitempty"`
	Lazy            bool        `msgpack:"lazy,omitempty"`
	Root            bool        `msgpack:"root,omitempty"`
	Branches        [][]Node    `msgpack:"br,omitempty"`
	Tokens          []Node      `msgpack:"body,omitempty"`
	Lower           uint32      `msgpack:"lo,omitempty"`
	Upper           int64       `msgpack:"hi,omitempty"` // -1 when unbounded
}

// Archetype is an encoded class atom.
type Archetype struct {
	Lo    rune `msgpack:"lo"`
	Hi    rune `msgpack:"hi"`
	Range bool `msgpack:"r,omitempty"`
}

// Encode writes f to w.
func Encode(w io.Writer, f *treefile.File) error {
	payload, err := FromFile(f)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(payload)
}

// Decode reads a tree file from r. name becomes the path of the result.
func Decode(r io.Reader, name string) (*treefile.File, error) {
	var payload Payload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: failed to decode msgpack: %w", name, err)
	}
	f, err := ToFile(&payload, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// FromFile converts a decoded tree file into its payload.
func FromFile(f *treefile.File) (*Payload, error) {
	payload := &Payload{Schema: SchemaVersion, Case: -1}
	if f.HasCase {
		payload.Case = int8(f.Case)
	}
	payload.Patterns = make([]PatternPayload, len(f.Patterns))
	for i, p := range f.Patterns {
		nodes, err := encodeTokens(p.Pattern.Tokens())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		payload.Patterns[i] = PatternPayload{
			Name:       p.Name,
			Expression: p.Pattern.Expression(),
			Tokens:     nodes,
		}
	}
	return payload, nil
}

// ToFile rebuilds a tree file from its payload.
func ToFile(payload *Payload, path string) (*treefile.File, error) {
	if payload.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, payload.Schema, SchemaVersion)
	}
	f := &treefile.File{Path: path}
	if payload.Case >= 0 {
		f.Case, f.HasCase = pathcase.Sensitivity(payload.Case), true
	}
	f.Patterns = make([]treefile.Pattern, len(payload.Patterns))
	for i, p := range payload.Patterns {
		tokens, err := decodeTokens(p.Tokens)
		if err == nil {
			err = token.CheckRoot(tokens)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		f.Patterns[i] = treefile.Pattern{
			Name:    p.Name,
			Pattern: token.NewTokenized(p.Expression, tokens),
		}
	}
	return f, nil
}

func encodeTokens(tokens []token.Spanned) ([]Node, error) {
	nodes := make([]Node, len(tokens))
	for i, t := range tokens {
		n, err := encodeToken(t)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func encodeToken(t token.Spanned) (Node, error) {
	span := t.Annotation()
	n := Node{Tag: uint8(t.Tag()), Start: span.Start, End: span.End}
	switch k := t.Kind().(type) {
	case token.Literal:
		n.Text = k.Text()
		n.CaseInsensitive = k.IsCaseInsensitive()
	case token.Class:
		n.Negated = k.IsNegated()
		for _, a := range k.Archetypes() {
			lo, hi := a.Bounds()
			n.Archetypes = append(n.Archetypes, Archetype{Lo: lo, Hi: hi, Range: a.IsRange()})
		}
	case token.Separator:
	case token.Wildcard:
		n.Wildcard = uint8(k.Kind())
		n.Lazy = k.Evaluation() == token.Lazy
		n.Root = k.HasRoot()
	case token.Alternative[source.Span]:
		n.Branches = make([][]Node, len(k.Branches()))
		for i, branch := range k.Branches() {
			nodes, err := encodeTokens(branch)
			if err != nil {
				return Node{}, err
			}
			n.Branches[i] = nodes
		}
	case token.Repetition[source.Span]:
		body, err := encodeTokens(k.Tokens())
		if err != nil {
			return Node{}, err
		}
		lower, upper, bounded := k.Bounds()
		n.Tokens = body
		if n.Lower, err = safecast.Conv[uint32](lower); err != nil {
			return Node{}, fmt.Errorf("repetition lower bound: %w", err)
		}
		n.Upper = -1
		if bounded {
			n.Upper = int64(upper)
		}
	default:
		return Node{}, fmt.Errorf("cannot encode token tag %d", n.Tag)
	}
	return n, nil
}

func decodeTokens(nodes []Node) ([]token.Spanned, error) {
	tokens := make([]token.Spanned, len(nodes))
	for i, n := range nodes {
		t, err := decodeToken(n)
		if err != nil {
			return nil, err
		}
		tokens[i] = t
	}
	return tokens, nil
}

func decodeToken(n Node) (token.Spanned, error) {
	if n.End < n.Start {
		return token.Spanned{}, fmt.Errorf("span %d-%d is reversed", n.Start, n.End)
	}
	span := source.Span{Start: n.Start, End: n.End}
	var kind token.Kind[source.Span]
	switch token.Tag(n.Tag) {
	case token.TagLiteral:
		kind = token.NewLiteral(n.Text, n.CaseInsensitive)
	case token.TagClass:
		archetypes := make([]token.Archetype, len(n.Archetypes))
		for i, a := range n.Archetypes {
			if a.Range {
				archetypes[i] = token.Range(a.Lo, a.Hi)
			} else {
				archetypes[i] = token.Character(a.Lo)
			}
		}
		kind = token.NewClass(n.Negated, archetypes...)
	case token.TagSeparator:
		kind = token.NewSeparator()
	case token.TagWildcard:
		switch token.WildcardKind(n.Wildcard) {
		case token.One:
			kind = token.NewOne()
		case token.ZeroOrMore:
			eval := token.Eager
			if n.Lazy {
				eval = token.Lazy
			}
			kind = token.NewZeroOrMore(eval)
		case token.Tree:
			kind = token.NewTree(n.Root)
		default:
			return token.Spanned{}, fmt.Errorf("unknown wildcard %d", n.Wildcard)
		}
	case token.TagAlternative:
		branches := make([][]token.Spanned, len(n.Branches))
		for i, b := range n.Branches {
			tokens, err := decodeTokens(b)
			if err != nil {
				return token.Spanned{}, err
			}
			branches[i] = tokens
		}
		kind = token.NewAlternative(branches...)
	case token.TagRepetition:
		body, err := decodeTokens(n.Tokens)
		if err != nil {
			return token.Spanned{}, err
		}
		lower, err := safecast.Conv[int](n.Lower)
		if err != nil {
			return token.Spanned{}, err
		}
		upper := token.Unbounded
		if n.Upper >= 0 {
			if upper, err = safecast.Conv[int](n.Upper); err != nil {
				return token.Spanned{}, err
			}
		}
		r, err := token.NewRepetition(body, lower, upper)
		if err != nil {
			return token.Spanned{}, err
		}
		kind = r
	default:
		return token.Spanned{}, fmt.Errorf("unknown token tag %d", n.Tag)
	}
	return token.New(kind, span), nil
}
