package variance

import (
	"strconv"

	"glean/internal/pathcase"
)

// MaxInvariantBytes bounds the invariant text and size that Concat and Repeat
// will produce. Results past the bound are reported as out of range and the
// enclosing Variance degrades to Variant(Closed).
const MaxInvariantBytes = 1 << 20

// InvariantSize is the byte-size domain of a Variance. The zero value is empty.
type InvariantSize int

// Concat adds two sizes. It reports false when the sum exceeds MaxInvariantBytes.
func (s InvariantSize) Concat(other InvariantSize) (InvariantSize, bool) {
	if s > MaxInvariantBytes-other {
		return 0, false
	}
	return s + other, true
}

// Repeat multiplies s by n. n <= 0 yields zero. It reports false when the
// product exceeds MaxInvariantBytes.
func (s InvariantSize) Repeat(n int) (InvariantSize, bool) {
	if n <= 0 || s == 0 {
		return 0, true
	}
	if int(s) > MaxInvariantBytes/n {
		return 0, false
	}
	return s * InvariantSize(n), true
}

// Equal reports whether two sizes are the same. Sizes ignore the case policy.
func (s InvariantSize) Equal(other InvariantSize, _ pathcase.Sensitivity) bool {
	return s == other
}

// String returns the decimal size.
func (s InvariantSize) String() string { return strconv.Itoa(int(s)) }
