package token

import (
	"iter"

	"glean/internal/pathcase"
	"glean/internal/variance"
)

// archetypeSize is the size charged for an invariant class archetype. It is
// the worst case UTF-8 encoding of one code point.
const archetypeSize = 4

// Domain projects invariant units into a value space T.
type Domain[T variance.Invariance[T]] interface {
	// Nominal projects literal or class text.
	Nominal(text string) T
	// Structural projects separator text.
	Structural(text string) T
	// Archetype projects a single class character.
	Archetype(c rune) T
}

// TextDomain computes invariant text.
type TextDomain struct{}

func (TextDomain) Nominal(text string) variance.InvariantText {
	return variance.NominalText(text)
}

func (TextDomain) Structural(text string) variance.InvariantText {
	return variance.StructuralText(text)
}

func (TextDomain) Archetype(c rune) variance.InvariantText {
	return variance.NominalText(string(c))
}

// SizeDomain computes invariant byte size.
type SizeDomain struct{}

func (SizeDomain) Nominal(text string) variance.InvariantSize {
	return variance.InvariantSize(len(text))
}

func (SizeDomain) Structural(text string) variance.InvariantSize {
	return variance.InvariantSize(len(text))
}

func (SizeDomain) Archetype(rune) variance.InvariantSize {
	return archetypeSize
}

// HasVariantCasing reports whether the literal can match more than one
// spelling under cs: its case flag disagrees with the policy and its text
// contains cased characters.
func (l Literal) HasVariantCasing(cs pathcase.Sensitivity) bool {
	return cs.IsInsensitive() != l.caseInsensitive && pathcase.HasCasing(l.text)
}

// Invariant returns the single character the archetype matches under cs.
func (a Archetype) Invariant(cs pathcase.Sensitivity) (rune, bool) {
	if a.lo != a.hi {
		return 0, false
	}
	if cs.IsInsensitive() && pathcase.RuneHasCasing(a.lo) {
		return 0, false
	}
	return a.lo, true
}

// UnitVariance returns the variance of a single token in domain d.
func UnitVariance[T variance.Invariance[T], A any](d Domain[T], t Token[A], cs pathcase.Sensitivity) variance.Variance[T] {
	switch k := t.kind.(type) {
	case Literal:
		if k.HasVariantCasing(cs) {
			return variance.Variant[T](variance.Closed)
		}
		return variance.Invariant(d.Nominal(k.text))
	case Separator:
		return variance.Invariant(d.Structural(SeparatorText()))
	case Class:
		if k.negated {
			// The complement of a class cannot be enumerated.
			return variance.Variant[T](variance.Closed)
		}
		return variance.Disjunction(cs, func(yield func(variance.Variance[T]) bool) {
			for _, a := range k.archetypes {
				v := variance.Variant[T](variance.Closed)
				if c, ok := a.Invariant(cs); ok {
					v = variance.Invariant(d.Archetype(c))
				}
				if !yield(v) {
					return
				}
			}
		})
	case Wildcard:
		if k.kind == Tree {
			return variance.Variant[T](variance.Open)
		}
		return variance.Variant[T](variance.Closed)
	case Alternative[A]:
		return variance.Disjunction(cs, func(yield func(variance.Variance[T]) bool) {
			for _, branch := range k.branches {
				if !yield(Conjunctive(d, branch, cs)) {
					return
				}
			}
		})
	case Repetition[A]:
		v := Conjunctive(d, coalesce(k.tokens), cs)
		if k.IsExact() {
			return v.Times(k.lower)
		}
		return v.Then(variance.Variant[T](variance.Open))
	default:
		return variance.Variant[T](variance.Closed)
	}
}

// Conjunctive folds the unit variance of tokens in order.
func Conjunctive[T variance.Invariance[T], A any](d Domain[T], tokens []Token[A], cs pathcase.Sensitivity) variance.Variance[T] {
	return variance.Conjunction(units(d, tokens, cs))
}

func units[T variance.Invariance[T], A any](d Domain[T], tokens []Token[A], cs pathcase.Sensitivity) iter.Seq[variance.Variance[T]] {
	return func(yield func(variance.Variance[T]) bool) {
		for i := range tokens {
			if !yield(UnitVariance(d, tokens[i], cs)) {
				return
			}
		}
	}
}

// TextVariance returns the textual variance of the token.
func (t Token[A]) TextVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantText] {
	return UnitVariance[variance.InvariantText, A](TextDomain{}, t, cs)
}

// SizeVariance returns the byte-size variance of the token.
func (t Token[A]) SizeVariance(cs pathcase.Sensitivity) variance.Variance[variance.InvariantSize] {
	return UnitVariance[variance.InvariantSize, A](SizeDomain{}, t, cs)
}

// TextVariance returns the textual variance of a token sequence.
func TextVariance[A any](tokens []Token[A], cs pathcase.Sensitivity) variance.Variance[variance.InvariantText] {
	return Conjunctive[variance.InvariantText, A](TextDomain{}, tokens, cs)
}

// SizeVariance returns the byte-size variance of a token sequence.
func SizeVariance[A any](tokens []Token[A], cs pathcase.Sensitivity) variance.Variance[variance.InvariantSize] {
	return Conjunctive[variance.InvariantSize, A](SizeDomain{}, tokens, cs)
}

// coalesce merges a separator with an adjacent breadth-open unit before a
// repetition body is folded. Merging is pairwise from the left and chains, so
// a run of separators following an open unit collapses into that unit.
func coalesce[A any](tokens []Token[A]) []Token[A] {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]Token[A], 0, len(tokens))
	left := tokens[0]
	for _, right := range tokens[1:] {
		switch {
		case left.IsSeparator() && right.Breadth().IsOpen():
			left = right
		case left.Breadth().IsOpen() && right.IsSeparator():
		default:
			out = append(out, left)
			left = right
		}
	}
	return append(out, left)
}
