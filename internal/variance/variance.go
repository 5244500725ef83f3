package variance

import (
	"fmt"
	"iter"

	"glean/internal/pathcase"
)

// Invariance is implemented by the value domains an invariant unit can carry.
// The zero value of T must be the identity of Concat. Concat and Repeat report
// false when the result falls outside the domain's representable range.
type Invariance[T any] interface {
	Concat(other T) (T, bool)
	Repeat(n int) (T, bool)
	Equal(other T, cs pathcase.Sensitivity) bool
}

// Variance is either Invariant with a value of T or Variant with a Boundedness.
// The zero Variance is Invariant with the zero value of T.
type Variance[T Invariance[T]] struct {
	value   T
	bounds  Boundedness
	variant bool
}

// Invariant returns an invariant Variance holding value.
func Invariant[T Invariance[T]](value T) Variance[T] {
	return Variance[T]{value: value}
}

// Variant returns a variant Variance with the given extent.
func Variant[T Invariance[T]](bounds Boundedness) Variance[T] {
	return Variance[T]{bounds: bounds, variant: true}
}

// Invariance returns the invariant value and true, or the zero value and false
// when v is variant.
func (v Variance[T]) Invariance() (T, bool) {
	if v.variant {
		var zero T
		return zero, false
	}
	return v.value, true
}

// Boundedness returns the extent of a variant v. Invariant values are Closed.
func (v Variance[T]) Boundedness() Boundedness {
	if !v.variant {
		return Closed
	}
	return v.bounds
}

// IsInvariant reports whether v holds exactly one value.
func (v Variance[T]) IsInvariant() bool { return !v.variant }

// IsVariant reports whether v describes a family of values.
func (v Variance[T]) IsVariant() bool { return v.variant }

// IsOpen reports whether v is Variant(Open).
func (v Variance[T]) IsOpen() bool { return v.variant && v.bounds == Open }

// IsClosed reports whether v is invariant or Variant(Closed).
func (v Variance[T]) IsClosed() bool { return !v.IsOpen() }

// Then sequences v followed by next.
//
// Two invariants concatenate. When exactly one side is variant the result is
// that side. When both are variant the result is Closed only if both are Closed.
// Invariants whose concatenation is out of range yield Variant(Closed).
func (v Variance[T]) Then(next Variance[T]) Variance[T] {
	switch {
	case !v.variant && !next.variant:
		value, ok := v.value.Concat(next.value)
		if !ok {
			return Variant[T](Closed)
		}
		return Invariant(value)
	case v.variant && next.variant:
		return Variant[T](v.bounds.Join(next.bounds))
	case v.variant:
		return v
	default:
		return next
	}
}

// Times repeats an invariant value n times. Variants are unaffected. A
// repetition that is out of range yields Variant(Closed).
func (v Variance[T]) Times(n int) Variance[T] {
	if v.variant {
		return v
	}
	value, ok := v.value.Repeat(n)
	if !ok {
		return Variant[T](Closed)
	}
	return Invariant(value)
}

// Equal reports whether v and other are the same variance under cs.
func (v Variance[T]) Equal(other Variance[T], cs pathcase.Sensitivity) bool {
	if v.variant || other.variant {
		return v.variant == other.variant && v.bounds == other.bounds
	}
	return v.value.Equal(other.value, cs)
}

// String returns a short description such as "invariant(foo)" or "variant(open)".
func (v Variance[T]) String() string {
	if v.variant {
		return "variant(" + v.bounds.String() + ")"
	}
	return fmt.Sprintf("invariant(%v)", v.value)
}

// Map converts the invariant value of v with f, preserving variants.
func Map[T Invariance[T], U Invariance[U]](v Variance[T], f func(T) U) Variance[U] {
	if v.variant {
		return Variant[U](v.bounds)
	}
	return Invariant(f(v.value))
}

// Conjunction folds Then across units, seeded with Invariant of the zero value.
func Conjunction[T Invariance[T]](units iter.Seq[Variance[T]]) Variance[T] {
	var acc Variance[T]
	for unit := range units {
		acc = acc.Then(unit)
	}
	return acc
}

// Disjunction combines alternative branches.
//
// The result is invariant only when every branch is invariant with an equal
// value under cs. Otherwise it is variant and Closed only if every branch is
// closed. No branches yields Invariant of the zero value.
func Disjunction[T Invariance[T]](cs pathcase.Sensitivity, branches iter.Seq[Variance[T]]) Variance[T] {
	var (
		first      Variance[T]
		seen       bool
		agree      = true
		anyOpen    bool
		anyVariant bool
	)
	for branch := range branches {
		if branch.IsOpen() {
			anyOpen = true
		}
		if branch.variant {
			anyVariant = true
		}
		if !seen {
			first, seen = branch, true
			continue
		}
		if agree && !first.Equal(branch, cs) {
			agree = false
		}
	}
	switch {
	case !seen:
		return first
	case agree && !anyVariant:
		return first
	case anyOpen:
		return Variant[T](Open)
	default:
		return Variant[T](Closed)
	}
}
