// Package source holds the location annotation attached to pattern tokens.
package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a byte range within a pattern expression.
type Span struct {
	Start uint32 // inclusive, in bytes
	End   uint32 // exclusive, in bytes
}

// NewSpan converts int offsets into a Span, rejecting negative, reversed, or
// overflowing ranges.
func NewSpan(start, end int) (Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start %d: %w", start, err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end %d: %w", end, err)
	}
	if e < s {
		return Span{}, fmt.Errorf("span end %d precedes start %d", end, start)
	}
	return Span{Start: s, End: e}, nil
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftLeft moves the span n bytes towards the start of the expression.
// Spans that would underflow are returned unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		Start: s.Start - n,
		End:   s.End - n,
	}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// Text returns the slice of expr covered by s, clamped to expr.
func (s Span) Text(expr string) string {
	n := uint32(len(expr)) //nolint:gosec // pattern expressions are far below 4GiB
	start, end := min(s.Start, n), min(s.End, n)
	return expr[start:end]
}
