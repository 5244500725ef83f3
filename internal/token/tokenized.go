package token

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"glean/internal/pathcase"
	"glean/internal/variance"
)

// Tokenized is a parsed pattern: the original expression and its root-level
// token sequence. At most the first token may be a rooted tree wildcard.
type Tokenized[A any] struct {
	expression string
	tokens     []Token[A]
}

// NewTokenized pairs an expression with the tokens parsed from it.
func NewTokenized[A any](expression string, tokens []Token[A]) Tokenized[A] {
	return Tokenized[A]{expression: expression, tokens: tokens}
}

// ErrMisplacedRoot is returned when a rooted tree wildcard follows the first
// root-level token.
var ErrMisplacedRoot = errors.New("rooted tree wildcard after the first token")

// CheckRoot rejects tokens where a root-level token other than the first is a
// rooted tree wildcard.
func CheckRoot[A any](tokens []Token[A]) error {
	for i := 1; i < len(tokens); i++ {
		if w, ok := tokens[i].kind.(Wildcard); ok && w.HasRoot() {
			return fmt.Errorf("%w: token %d", ErrMisplacedRoot, i+1)
		}
	}
	return nil
}

// Expression returns the text the pattern was parsed from.
func (t Tokenized[A]) Expression() string { return t.expression }

// Tokens returns the root-level tokens. Callers must not modify them.
func (t Tokenized[A]) Tokens() []Token[A] { return t.tokens }

// TextVariance returns the textual variance of the whole pattern.
func (t Tokenized[A]) TextVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantText] {
	return TextVariance(t.tokens, cs)
}

// SizeVariance returns the byte-size variance of the whole pattern.
func (t Tokenized[A]) SizeVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantSize] {
	return SizeVariance(t.tokens, cs)
}

// Depth returns the depth boundedness of the pattern.
func (t Tokenized[A]) Depth() variance.Boundedness { return Depth(t.tokens) }

// Breadth returns the breadth boundedness of the pattern.
func (t Tokenized[A]) Breadth() variance.Boundedness { return Breadth(t.tokens) }

// HasRoot reports whether the pattern is anchored at the filesystem root.
func (t Tokenized[A]) HasRoot() bool {
	return len(t.tokens) > 0 && t.tokens[0].HasRoot()
}

// HasComponentBoundary reports whether the pattern can span more than one
// path component.
func (t Tokenized[A]) HasComponentBoundary() bool {
	return slices.ContainsFunc(t.tokens, Token[A].HasComponentBoundary)
}

// Components yields the components of the root-level sequence.
func (t Tokenized[A]) Components() iter.Seq[Component[A]] { return Components(t.tokens) }

// Literals yields the literal runs of the pattern.
func (t Tokenized[A]) Literals() iter.Seq2[Component[A], LiteralSequence[A]] {
	return Literals(t.tokens)
}

// Partition splits the pattern into its invariant path prefix and the rest.
//
// The tokens consumed by the prefix are removed and, if the rest begins with
// a tree wildcard, that wildcard is unrooted: the prefix already carries any
// root. The pair is equivalent to the original pattern. t itself is not
// modified; call Partition once, before the result is shared.
func (t Tokenized[A]) Partition(cs pathcase.Sensitivity) (string, Tokenized[A]) {
	prefix := InvariantTextPrefix(t.tokens, cs)
	n := InvariantTextPrefixUpperBound(t.tokens, cs)
	rest := slices.Clone(t.tokens[n:])
	if len(rest) > 0 {
		rest[0].Unroot()
	}
	return prefix, Tokenized[A]{expression: t.expression, tokens: rest}
}

// Detach returns a deep copy that shares no text with the original expression.
func (t Tokenized[A]) Detach() Tokenized[A] {
	return Tokenized[A]{
		expression: strings.Clone(t.expression),
		tokens:     detachAll(t.tokens),
	}
}

// Unannotate rebuilds the pattern with the zero-size annotation.
func (t Tokenized[A]) Unannotate() Tokenized[struct{}] {
	return Tokenized[struct{}]{
		expression: t.expression,
		tokens:     reannotateAll(t.tokens, func(A) struct{} { return struct{}{} }),
	}
}

// String renders the tokens back into glob syntax.
func (t Tokenized[A]) String() string { return Format(t.tokens) }
