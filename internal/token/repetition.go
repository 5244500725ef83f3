package token

import (
	"errors"
	"fmt"
)

// Unbounded is passed as the upper bound of a repetition without one.
const Unbounded = -1

// ErrInvalidBounds is returned when a repetition range cannot match anything.
var ErrInvalidBounds = errors.New("invalid repetition bounds")

// Repetition matches its tokens repeated between lower and lower+step times.
type Repetition[A any] struct {
	tokens  []Token[A]
	lower   int
	step    int
	bounded bool
}

// NewRepetition returns a repetition of tokens with inclusive bounds.
// upper is Unbounded for an open range. The range is rejected when lower is
// negative, upper is zero, or upper is less than lower.
func NewRepetition[A any](tokens []Token[A], lower, upper int) (Repetition[A], error) {
	if lower < 0 {
		return Repetition[A]{}, fmt.Errorf("%w: negative lower bound %d", ErrInvalidBounds, lower)
	}
	if upper == Unbounded {
		return Repetition[A]{tokens: tokens, lower: lower}, nil
	}
	if upper <= 0 || upper < lower {
		return Repetition[A]{}, fmt.Errorf("%w: %d..%d", ErrInvalidBounds, lower, upper)
	}
	return Repetition[A]{tokens: tokens, lower: lower, step: upper - lower, bounded: true}, nil
}

func (Repetition[A]) Tag() Tag { return TagRepetition }
func (Repetition[A]) sealed()  {}

// Tokens returns the repeated body. Callers must not modify it.
func (r Repetition[A]) Tokens() []Token[A] { return r.tokens }

// Bounds returns the lower bound and, when bounded is true, the upper bound.
func (r Repetition[A]) Bounds() (lower, upper int, bounded bool) {
	if !r.bounded {
		return r.lower, 0, false
	}
	return r.lower, r.lower + r.step, true
}

// Step returns upper minus lower, or false when the repetition is unbounded.
func (r Repetition[A]) Step() (int, bool) { return r.step, r.bounded }

// IsExact reports whether the repetition has a single fixed count.
func (r Repetition[A]) IsExact() bool { return r.bounded && r.step == 0 }

// HasComponentBoundary reports whether the body contains a separator or tree wildcard.
func (r Repetition[A]) HasComponentBoundary() bool {
	return r.HasTokenWith(Token[A].IsComponentBoundary)
}

// HasTokenWith reports whether f holds for any leaf reachable from the body.
func (r Repetition[A]) HasTokenWith(f func(Token[A]) bool) bool {
	for i := range r.tokens {
		if r.tokens[i].HasTokenWith(f) {
			return true
		}
	}
	return false
}

// HasPrecedingTokenWith reports whether f holds for a leaf that can begin the body.
func (r Repetition[A]) HasPrecedingTokenWith(f func(Token[A]) bool) bool {
	return len(r.tokens) > 0 && r.tokens[0].HasPrecedingTokenWith(f)
}

// HasTerminatingTokenWith reports whether f holds for a leaf that can end the body.
func (r Repetition[A]) HasTerminatingTokenWith(f func(Token[A]) bool) bool {
	return len(r.tokens) > 0 && r.tokens[len(r.tokens)-1].HasTerminatingTokenWith(f)
}
