package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"glean/internal/source"
	"glean/internal/token"
)

// CheckTreeInvariants runs a minimal set of structural checks on a spanned tree:
// 1) every span is non-empty and ends within the expression
// 2) every child span is contained in its parent span
// 3) sibling spans are ordered and do not overlap
// 4) only the first root-level token may be a rooted tree wildcard
func CheckTreeInvariants(t token.Tokenized[source.Span]) error {
	exprLen, err := safecast.Conv[uint32](len(t.Expression()))
	if err != nil {
		return fmt.Errorf("expression length overflow: %w", err)
	}
	bounds := source.Span{End: exprLen}
	if err := checkSequence(t.Tokens(), bounds); err != nil {
		return err
	}
	return token.CheckRoot(t.Tokens())
}

func checkSequence(tokens []token.Spanned, parent source.Span) error {
	var prev source.Span
	for i, tk := range tokens {
		sp := tk.Annotation()
		if sp.Empty() {
			return fmt.Errorf("empty %s span at position %d", tk.Tag(), i)
		}
		if !parent.Contains(sp) {
			return fmt.Errorf("%s span %v is outside parent span %v", tk.Tag(), sp, parent)
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("%s span %v overlaps previous span %v", tk.Tag(), sp, prev)
		}
		prev = sp
		if err := checkChildren(tk); err != nil {
			return err
		}
	}
	return nil
}

func checkChildren(tk token.Spanned) error {
	switch k := tk.Kind().(type) {
	case token.Alternative[source.Span]:
		for _, branch := range k.Branches() {
			if err := checkSequence(branch, tk.Annotation()); err != nil {
				return err
			}
		}
	case token.Repetition[source.Span]:
		if len(k.Tokens()) == 0 {
			return errors.New("repetition with empty body")
		}
		return checkSequence(k.Tokens(), tk.Annotation())
	}
	return nil
}
