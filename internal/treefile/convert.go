package treefile

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"glean/internal/source"
	"glean/internal/token"
)

func buildSpan(bounds []int64) (source.Span, error) {
	if bounds == nil {
		return source.Span{}, nil
	}
	if len(bounds) != 2 {
		return source.Span{}, fmt.Errorf("span must be [start, end], got %d values", len(bounds))
	}
	start, err := safecast.Conv[int](bounds[0])
	if err != nil {
		return source.Span{}, fmt.Errorf("span start: %w", err)
	}
	end, err := safecast.Conv[int](bounds[1])
	if err != nil {
		return source.Span{}, fmt.Errorf("span end: %w", err)
	}
	return source.NewSpan(start, end)
}

func buildRepetition(n nodeDoc) (token.Kind[source.Span], error) {
	body, err := buildTokens(n.Tokens)
	if err != nil {
		return nil, fmt.Errorf("repetition: %w", err)
	}
	lower, err := safecast.Conv[int](n.Lower)
	if err != nil {
		return nil, fmt.Errorf("repetition lower bound: %w", err)
	}
	upper := token.Unbounded
	if n.Upper != nil {
		upper, err = safecast.Conv[int](*n.Upper)
		if err != nil {
			return nil, fmt.Errorf("repetition upper bound: %w", err)
		}
	}
	r, err := token.NewRepetition(body, lower, upper)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func buildArchetypes(docs []archetypeDoc) ([]token.Archetype, error) {
	out := make([]token.Archetype, 0, len(docs))
	for i, d := range docs {
		if d.Char != "" {
			c, err := singleRune(d.Char)
			if err != nil {
				return nil, fmt.Errorf("archetype %d: %w", i+1, err)
			}
			out = append(out, token.Character(c))
			continue
		}
		from, err := singleRune(d.From)
		if err != nil {
			return nil, fmt.Errorf("archetype %d from: %w", i+1, err)
		}
		to, err := singleRune(d.To)
		if err != nil {
			return nil, fmt.Errorf("archetype %d to: %w", i+1, err)
		}
		if to < from {
			return nil, fmt.Errorf("archetype %d: range %q-%q is reversed", i+1, from, to)
		}
		out = append(out, token.Range(from, to))
	}
	return out, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
