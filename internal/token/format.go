package token

import (
	"strconv"
	"strings"
)

const metacharacters = `\*?$[]{}<>,:()`

// Format renders tokens in glob syntax. The output is meant for display; it
// round-trips structure, not the exact spelling of the source expression.
func Format[A any](tokens []Token[A]) string {
	var b strings.Builder
	writeTokens(&b, tokens)
	return b.String()
}

func writeTokens[A any](b *strings.Builder, tokens []Token[A]) {
	for i, t := range tokens {
		switch k := t.kind.(type) {
		case Literal:
			b.WriteString(escapeLiteral(k.text))
		case Separator:
			b.WriteString(SeparatorText())
		case Class:
			writeClass(b, k)
		case Wildcard:
			switch k.kind {
			case One:
				b.WriteByte('?')
			case ZeroOrMore:
				if k.evaluation == Lazy {
					b.WriteByte('$')
				} else {
					b.WriteByte('*')
				}
			case Tree:
				if k.hasRoot || (i > 0 && !tokens[i-1].IsSeparator()) {
					b.WriteString(SeparatorText())
				}
				b.WriteString("**")
				if i+1 < len(tokens) && !tokens[i+1].IsSeparator() {
					b.WriteString(SeparatorText())
				}
			}
		case Alternative[A]:
			b.WriteByte('{')
			for j, branch := range k.branches {
				if j > 0 {
					b.WriteByte(',')
				}
				writeTokens(b, branch)
			}
			b.WriteByte('}')
		case Repetition[A]:
			b.WriteByte('<')
			writeTokens(b, k.tokens)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(k.lower))
			b.WriteByte(',')
			if k.bounded {
				b.WriteString(strconv.Itoa(k.lower + k.step))
			}
			b.WriteByte('>')
		}
	}
}

func writeClass(b *strings.Builder, c Class) {
	b.WriteByte('[')
	if c.negated {
		b.WriteByte('!')
	}
	for _, a := range c.archetypes {
		if a.isRange {
			b.WriteRune(a.lo)
			b.WriteByte('-')
			b.WriteRune(a.hi)
			continue
		}
		b.WriteRune(a.lo)
	}
	b.WriteByte(']')
}

func escapeLiteral(text string) string {
	if !strings.ContainsAny(text, metacharacters) {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(metacharacters, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
