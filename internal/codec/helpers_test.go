package codec_test

import (
	"glean/internal/source"
	"glean/internal/token"
)

type spanType = source.Span

func slicesEqualSpans(a, b []token.Spanned) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Annotation() != b[i].Annotation() || a[i].Tag() != b[i].Tag() {
			return false
		}
	}
	return true
}
