package token

import (
	"iter"
	"strings"

	"glean/internal/pathcase"
	"glean/internal/variance"
)

// Component is a borrowed run of tokens between separators, or a lone tree
// wildcard. It never contains a separator.
type Component[A any] struct {
	tokens []Token[A]
}

// Tokens returns the tokens of the component. Callers must not modify them.
func (c Component[A]) Tokens() []Token[A] { return c.tokens }

// Literal returns the component as a literal sequence when every token in it
// is a literal. Empty components are not literal.
func (c Component[A]) Literal() (LiteralSequence[A], bool) {
	if len(c.tokens) == 0 {
		return LiteralSequence[A]{}, false
	}
	for i := range c.tokens {
		if c.tokens[i].Tag() != TagLiteral {
			return LiteralSequence[A]{}, false
		}
	}
	return LiteralSequence[A]{tokens: c.tokens}, true
}

// TextVariance returns the textual variance of the component.
func (c Component[A]) TextVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantText] {
	return TextVariance(c.tokens, cs)
}

// SizeVariance returns the byte-size variance of the component.
func (c Component[A]) SizeVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantSize] {
	return SizeVariance(c.tokens, cs)
}

// Depth returns the depth boundedness of the component.
func (c Component[A]) Depth() variance.Boundedness { return Depth(c.tokens) }

// Breadth returns the breadth boundedness of the component.
func (c Component[A]) Breadth() variance.Boundedness { return Breadth(c.tokens) }

// LiteralSequence is a view over a component made only of literals.
type LiteralSequence[A any] struct {
	tokens []Token[A]
}

// Literals returns the literals of the sequence in order.
func (s LiteralSequence[A]) Literals() []Literal {
	out := make([]Literal, 0, len(s.tokens))
	for i := range s.tokens {
		if l, ok := s.tokens[i].Literal(); ok {
			out = append(out, l)
		}
	}
	return out
}

// Text returns the concatenated text of the literals.
func (s LiteralSequence[A]) Text() string {
	if len(s.tokens) == 1 {
		l, _ := s.tokens[0].Literal()
		return l.text
	}
	var b strings.Builder
	for i := range s.tokens {
		l, _ := s.tokens[i].Literal()
		b.WriteString(l.text)
	}
	return b.String()
}

// IsSemanticLiteral reports whether the text names the current or parent
// directory.
func (s LiteralSequence[A]) IsSemanticLiteral() bool {
	switch s.Text() {
	case ".", "..":
		return true
	default:
		return false
	}
}

// Components yields the components of tokens. Leading separators are absorbed
// and a tree wildcard is always its own component. The sequence is lazy and
// can be ranged over any number of times.
func Components[A any](tokens []Token[A]) iter.Seq[Component[A]] {
	return func(yield func(Component[A]) bool) {
		i := 0
		for i < len(tokens) {
			for i < len(tokens) && tokens[i].IsSeparator() {
				i++
			}
			if i == len(tokens) {
				return
			}
			start := i
			i++
			if !tokens[start].IsTree() {
				for i < len(tokens) && !tokens[i].IsComponentBoundary() {
					i++
				}
			}
			if !yield(Component[A]{tokens: tokens[start:i:i]}) {
				return
			}
		}
	}
}

// Literals yields literal runs worth pre-filtering on. A component made only
// of literals is yielded whole; otherwise the branches of its alternatives and
// the bodies of its repetitions are searched recursively.
func Literals[A any](tokens []Token[A]) iter.Seq2[Component[A], LiteralSequence[A]] {
	return func(yield func(Component[A], LiteralSequence[A]) bool) {
		walkLiterals(tokens, yield)
	}
}

func walkLiterals[A any](tokens []Token[A], yield func(Component[A], LiteralSequence[A]) bool) bool {
	for component := range Components(tokens) {
		if literal, ok := component.Literal(); ok {
			if !yield(component, literal) {
				return false
			}
			continue
		}
		for _, t := range component.tokens {
			switch k := t.kind.(type) {
			case Alternative[A]:
				for _, branch := range k.branches {
					if !walkLiterals(branch, yield) {
						return false
					}
				}
			case Repetition[A]:
				if !walkLiterals(k.tokens, yield) {
					return false
				}
			}
		}
	}
	return true
}
