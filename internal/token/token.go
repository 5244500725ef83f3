package token

import (
	"slices"
	"strings"

	"glean/internal/source"
	"glean/internal/variance"
)

// Token is one node of a pattern tree: a Kind and an annotation.
type Token[A any] struct {
	kind       Kind[A]
	annotation A
}

// New returns a token of kind annotated with annotation.
func New[A any](kind Kind[A], annotation A) Token[A] {
	return Token[A]{kind: kind, annotation: annotation}
}

// From returns an unannotated token of kind.
func From(kind Kind[struct{}]) Token[struct{}] {
	return Token[struct{}]{kind: kind}
}

// Spanned is the token type produced for parsed expressions.
type Spanned = Token[source.Span]

// Kind returns the token payload.
func (t Token[A]) Kind() Kind[A] { return t.kind }

// Tag returns the variant of the token payload.
func (t Token[A]) Tag() Tag {
	if t.kind == nil {
		return 0
	}
	return t.kind.Tag()
}

// Annotation returns the caller metadata attached to the token.
func (t Token[A]) Annotation() A { return t.annotation }

// Literal returns the payload when the token is a literal.
func (t Token[A]) Literal() (Literal, bool) {
	l, ok := t.kind.(Literal)
	return l, ok
}

// Wildcard returns the payload when the token is a wildcard.
func (t Token[A]) Wildcard() (Wildcard, bool) {
	w, ok := t.kind.(Wildcard)
	return w, ok
}

// IsSeparator reports whether the token is a path separator.
func (t Token[A]) IsSeparator() bool {
	_, ok := t.kind.(Separator)
	return ok
}

// IsTree reports whether the token is a tree wildcard.
func (t Token[A]) IsTree() bool {
	w, ok := t.kind.(Wildcard)
	return ok && w.kind == Tree
}

// IsComponentBoundary reports whether the token is a separator or tree wildcard.
func (t Token[A]) IsComponentBoundary() bool {
	return t.IsSeparator() || t.IsTree()
}

// HasSubTokens reports whether the token is an alternative or repetition.
// Empty branches and bodies still count.
func (t Token[A]) HasSubTokens() bool {
	switch t.kind.(type) {
	case Alternative[A], Repetition[A]:
		return true
	default:
		return false
	}
}

// IsCapturing reports whether a match of the token is reported as a capture.
func (t Token[A]) IsCapturing() bool {
	switch t.kind.(type) {
	case Alternative[A], Class, Repetition[A], Wildcard:
		return true
	default:
		return false
	}
}

// HasTokenWith reports whether f holds for any reachable leaf. Alternatives and
// repetitions are descended into; every other kind is a leaf.
func (t Token[A]) HasTokenWith(f func(Token[A]) bool) bool {
	switch k := t.kind.(type) {
	case Alternative[A]:
		return k.HasTokenWith(f)
	case Repetition[A]:
		return k.HasTokenWith(f)
	default:
		return f(t)
	}
}

// HasPrecedingTokenWith is HasTokenWith restricted to leaves in first position.
func (t Token[A]) HasPrecedingTokenWith(f func(Token[A]) bool) bool {
	switch k := t.kind.(type) {
	case Alternative[A]:
		return k.HasPrecedingTokenWith(f)
	case Repetition[A]:
		return k.HasPrecedingTokenWith(f)
	default:
		return f(t)
	}
}

// HasTerminatingTokenWith is HasTokenWith restricted to leaves in last position.
func (t Token[A]) HasTerminatingTokenWith(f func(Token[A]) bool) bool {
	switch k := t.kind.(type) {
	case Alternative[A]:
		return k.HasTerminatingTokenWith(f)
	case Repetition[A]:
		return k.HasTerminatingTokenWith(f)
	default:
		return f(t)
	}
}

// HasRoot reports whether some first-position leaf is a separator or a rooted
// tree wildcard.
func (t Token[A]) HasRoot() bool {
	return t.HasPrecedingTokenWith(func(leaf Token[A]) bool {
		if leaf.IsSeparator() {
			return true
		}
		w, ok := leaf.kind.(Wildcard)
		return ok && w.HasRoot()
	})
}

// HasComponentBoundary reports whether any reachable leaf is a separator or
// tree wildcard.
func (t Token[A]) HasComponentBoundary() bool {
	return t.HasTokenWith(Token[A].IsComponentBoundary)
}

// Depth reports whether the token can expand across path components without
// bound.
func (t Token[A]) Depth() variance.Boundedness {
	switch k := t.kind.(type) {
	case Wildcard:
		if k.kind == Tree {
			return variance.Open
		}
		return variance.Closed
	case Alternative[A]:
		for _, branch := range k.branches {
			if Depth(branch).IsOpen() {
				return variance.Open
			}
		}
		return variance.Closed
	case Repetition[A]:
		if Depth(k.tokens).IsOpen() {
			return variance.Open
		}
		if !k.bounded && k.HasComponentBoundary() {
			return variance.Open
		}
		return variance.Closed
	default:
		return variance.Closed
	}
}

// Breadth reports whether the token can expand without bound within a single
// path component.
func (t Token[A]) Breadth() variance.Boundedness {
	switch k := t.kind.(type) {
	case Wildcard:
		if k.kind == One {
			return variance.Closed
		}
		return variance.Open
	case Alternative[A]:
		for _, branch := range k.branches {
			if Breadth(branch).IsOpen() {
				return variance.Open
			}
		}
		return variance.Closed
	case Repetition[A]:
		return Breadth(k.tokens)
	default:
		return variance.Closed
	}
}

// Depth returns Open if any token in the sequence is depth-open.
func Depth[A any](tokens []Token[A]) variance.Boundedness {
	for i := range tokens {
		if tokens[i].Depth().IsOpen() {
			return variance.Open
		}
	}
	return variance.Closed
}

// Breadth returns Open if any token in the sequence is breadth-open.
func Breadth[A any](tokens []Token[A]) variance.Boundedness {
	for i := range tokens {
		if tokens[i].Breadth().IsOpen() {
			return variance.Open
		}
	}
	return variance.Closed
}

// Unroot clears the root flag of a rooted tree wildcard and reports whether it
// was set. It is a no-op for every other token.
func (t *Token[A]) Unroot() bool {
	w, ok := t.kind.(Wildcard)
	if !ok || !w.HasRoot() {
		return false
	}
	w.hasRoot = false
	t.kind = w
	return true
}

// Detach returns a deep copy of the token whose text no longer aliases the
// buffer it was parsed from.
func (t Token[A]) Detach() Token[A] {
	switch k := t.kind.(type) {
	case Literal:
		k.text = strings.Clone(k.text)
		return Token[A]{kind: k, annotation: t.annotation}
	case Class:
		k.archetypes = slices.Clone(k.archetypes)
		return Token[A]{kind: k, annotation: t.annotation}
	case Alternative[A]:
		branches := make([][]Token[A], len(k.branches))
		for i, branch := range k.branches {
			branches[i] = detachAll(branch)
		}
		return Token[A]{kind: Alternative[A]{branches: branches}, annotation: t.annotation}
	case Repetition[A]:
		k.tokens = detachAll(k.tokens)
		return Token[A]{kind: k, annotation: t.annotation}
	default:
		return t
	}
}

func detachAll[A any](tokens []Token[A]) []Token[A] {
	if tokens == nil {
		return nil
	}
	out := make([]Token[A], len(tokens))
	for i := range tokens {
		out[i] = tokens[i].Detach()
	}
	return out
}

// Unannotate rebuilds the token with the zero-size annotation.
func (t Token[A]) Unannotate() Token[struct{}] {
	return Reannotate(t, func(A) struct{} { return struct{}{} })
}

// Reannotate rebuilds the tree under t, replacing every annotation with f of
// the original. The tree shape is unchanged.
func Reannotate[A, B any](t Token[A], f func(A) B) Token[B] {
	var kind Kind[B]
	switch k := t.kind.(type) {
	case Literal:
		kind = k
	case Class:
		kind = k
	case Separator:
		kind = k
	case Wildcard:
		kind = k
	case Alternative[A]:
		branches := make([][]Token[B], len(k.branches))
		for i, branch := range k.branches {
			branches[i] = reannotateAll(branch, f)
		}
		kind = Alternative[B]{branches: branches}
	case Repetition[A]:
		kind = Repetition[B]{
			tokens:  reannotateAll(k.tokens, f),
			lower:   k.lower,
			step:    k.step,
			bounded: k.bounded,
		}
	}
	return Token[B]{kind: kind, annotation: f(t.annotation)}
}

func reannotateAll[A, B any](tokens []Token[A], f func(A) B) []Token[B] {
	if tokens == nil {
		return nil
	}
	out := make([]Token[B], len(tokens))
	for i := range tokens {
		out[i] = Reannotate(tokens[i], f)
	}
	return out
}

// Any returns an unannotated alternative over the given token sequences. It is
// used to combine several patterns into one.
func Any[A any](branches ...[]Token[A]) Token[struct{}] {
	out := make([][]Token[struct{}], len(branches))
	for i, branch := range branches {
		out[i] = reannotateAll(branch, func(A) struct{} { return struct{}{} })
		if out[i] == nil {
			out[i] = []Token[struct{}]{}
		}
	}
	return Token[struct{}]{kind: Alternative[struct{}]{branches: out}}
}
