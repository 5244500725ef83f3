package variance

import (
	"strings"

	"glean/internal/pathcase"
)

// fragment is a run of invariant text. Nominal text comes from literals and
// classes and is subject to case folding. Structural text comes from
// separators and always compares exactly.
type fragment struct {
	text       string
	structural bool
}

// InvariantText is the textual domain of a Variance. The zero value is empty.
type InvariantText struct {
	fragments []fragment
	size      int
}

// NominalText returns invariant text that compares according to the case policy.
func NominalText(text string) InvariantText {
	if text == "" {
		return InvariantText{}
	}
	return InvariantText{fragments: []fragment{{text: text}}, size: len(text)}
}

// StructuralText returns invariant text that always compares exactly.
func StructuralText(text string) InvariantText {
	if text == "" {
		return InvariantText{}
	}
	return InvariantText{fragments: []fragment{{text: text, structural: true}}, size: len(text)}
}

// Concat returns t followed by other. Neither operand is modified. It reports
// false when the combined text exceeds MaxInvariantBytes.
func (t InvariantText) Concat(other InvariantText) (InvariantText, bool) {
	if t.size > MaxInvariantBytes-other.size {
		return InvariantText{}, false
	}
	if len(other.fragments) == 0 {
		return t, true
	}
	if len(t.fragments) == 0 {
		return other, true
	}
	out := make([]fragment, 0, len(t.fragments)+len(other.fragments))
	out = append(out, t.fragments...)
	out = append(out, other.fragments...)
	return InvariantText{fragments: out, size: t.size + other.size}, true
}

// Repeat returns t repeated n times. n <= 0 yields empty text. It reports
// false when the repeated text exceeds MaxInvariantBytes.
func (t InvariantText) Repeat(n int) (InvariantText, bool) {
	if n <= 0 || len(t.fragments) == 0 {
		return InvariantText{}, true
	}
	if t.size > MaxInvariantBytes/n {
		return InvariantText{}, false
	}
	if len(t.fragments) == 1 {
		f := t.fragments[0]
		f.text = strings.Repeat(f.text, n)
		return InvariantText{fragments: []fragment{f}, size: len(f.text)}, true
	}
	out := make([]fragment, 0, len(t.fragments)*n)
	for range n {
		out = append(out, t.fragments...)
	}
	return InvariantText{fragments: out, size: t.size * n}, true
}

// Equal reports whether t and other denote the same text under cs.
func (t InvariantText) Equal(other InvariantText, cs pathcase.Sensitivity) bool {
	return t.key(cs) == other.key(cs)
}

func (t InvariantText) key(cs pathcase.Sensitivity) string {
	var b strings.Builder
	for _, f := range t.fragments {
		if f.structural {
			b.WriteString(f.text)
		} else {
			b.WriteString(cs.Fold(f.text))
		}
	}
	return b.String()
}

// IsEmpty reports whether t contains no text.
func (t InvariantText) IsEmpty() bool {
	for _, f := range t.fragments {
		if f.text != "" {
			return false
		}
	}
	return true
}

// String returns the concatenated text.
func (t InvariantText) String() string {
	switch len(t.fragments) {
	case 0:
		return ""
	case 1:
		return t.fragments[0].text
	}
	var b strings.Builder
	for _, f := range t.fragments {
		b.WriteString(f.text)
	}
	return b.String()
}
