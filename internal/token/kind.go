package token

import (
	"path/filepath"
)

// Tag identifies the variant of a Kind.
type Tag uint8

const (
	// TagLiteral marks a Literal.
	TagLiteral Tag = iota + 1
	// TagClass marks a character Class.
	TagClass
	// TagSeparator marks a path Separator.
	TagSeparator
	// TagWildcard marks a Wildcard.
	TagWildcard
	// TagAlternative marks an Alternative.
	TagAlternative
	// TagRepetition marks a Repetition.
	TagRepetition
)

// String returns the string representation of Tag.
func (t Tag) String() string {
	switch t {
	case TagLiteral:
		return "literal"
	case TagClass:
		return "class"
	case TagSeparator:
		return "separator"
	case TagWildcard:
		return "wildcard"
	case TagAlternative:
		return "alternative"
	case TagRepetition:
		return "repetition"
	default:
		return "unknown"
	}
}

// Kind is the payload of a Token. It is implemented by Literal, Class,
// Separator, Wildcard, Alternative[A], and Repetition[A] only.
type Kind[A any] interface {
	Tag() Tag
	sealed()
}

// Literal is fixed text within one path component.
type Literal struct {
	text            string
	caseInsensitive bool
}

// NewLiteral returns a literal. caseInsensitive records the case flag in
// effect where the literal appeared in the pattern.
func NewLiteral(text string, caseInsensitive bool) Literal {
	return Literal{text: text, caseInsensitive: caseInsensitive}
}

func (Literal) Tag() Tag { return TagLiteral }
func (Literal) sealed()  {}

// Text returns the literal text.
func (l Literal) Text() string { return l.text }

// IsCaseInsensitive reports whether the literal matches without regard to case.
func (l Literal) IsCaseInsensitive() bool { return l.caseInsensitive }

// Archetype is one atom of a character class: a single character or an
// inclusive range.
type Archetype struct {
	lo, hi  rune
	isRange bool
}

// Character returns an archetype matching exactly c.
func Character(c rune) Archetype { return Archetype{lo: c, hi: c} }

// Range returns an archetype matching a through b inclusive.
func Range(a, b rune) Archetype { return Archetype{lo: a, hi: b, isRange: true} }

// IsRange reports whether the archetype was written as a range.
func (a Archetype) IsRange() bool { return a.isRange }

// Bounds returns the first and last character of the archetype.
func (a Archetype) Bounds() (rune, rune) { return a.lo, a.hi }

// Class is a bracketed character class such as [a-z] or [!0-9].
type Class struct {
	negated    bool
	archetypes []Archetype
}

// NewClass returns a character class over archetypes.
func NewClass(negated bool, archetypes ...Archetype) Class {
	return Class{negated: negated, archetypes: archetypes}
}

func (Class) Tag() Tag { return TagClass }
func (Class) sealed()  {}

// IsNegated reports whether the class matches characters outside its archetypes.
func (c Class) IsNegated() bool { return c.negated }

// Archetypes returns the atoms of the class. Callers must not modify the slice.
func (c Class) Archetypes() []Archetype { return c.archetypes }

// Separator marks a path component boundary.
type Separator struct{}

// NewSeparator returns a separator.
func NewSeparator() Separator { return Separator{} }

func (Separator) Tag() Tag { return TagSeparator }
func (Separator) sealed()  {}

// SeparatorText returns the platform path separator as text.
func SeparatorText() string { return string(filepath.Separator) }

// WildcardKind distinguishes the three wildcard forms.
type WildcardKind uint8

const (
	// One matches exactly one character (?).
	One WildcardKind = iota
	// ZeroOrMore matches any run of characters within a component (*).
	ZeroOrMore
	// Tree matches zero or more whole components (**).
	Tree
)

// String returns the string representation of WildcardKind.
func (k WildcardKind) String() string {
	switch k {
	case One:
		return "one"
	case ZeroOrMore:
		return "zero-or-more"
	case Tree:
		return "tree"
	default:
		return "unknown"
	}
}

// Evaluation selects eager or lazy matching for ZeroOrMore wildcards.
type Evaluation uint8

const (
	// Eager matches as much as possible.
	Eager Evaluation = iota
	// Lazy matches as little as possible.
	Lazy
)

// String returns the string representation of Evaluation.
func (e Evaluation) String() string {
	if e == Lazy {
		return "lazy"
	}
	return "eager"
}

// Wildcard is one of ?, *, or **.
type Wildcard struct {
	kind       WildcardKind
	evaluation Evaluation
	hasRoot    bool
}

// NewOne returns the single-character wildcard.
func NewOne() Wildcard { return Wildcard{kind: One} }

// NewZeroOrMore returns the in-component wildcard.
func NewZeroOrMore(evaluation Evaluation) Wildcard {
	return Wildcard{kind: ZeroOrMore, evaluation: evaluation}
}

// NewTree returns the tree wildcard. hasRoot anchors it at the filesystem root.
func NewTree(hasRoot bool) Wildcard { return Wildcard{kind: Tree, hasRoot: hasRoot} }

func (Wildcard) Tag() Tag { return TagWildcard }
func (Wildcard) sealed()  {}

// Kind returns the wildcard form.
func (w Wildcard) Kind() WildcardKind { return w.kind }

// Evaluation returns the evaluation strategy of a ZeroOrMore wildcard.
func (w Wildcard) Evaluation() Evaluation { return w.evaluation }

// HasRoot reports whether a Tree wildcard is anchored at the root.
func (w Wildcard) HasRoot() bool { return w.kind == Tree && w.hasRoot }

// Alternative matches any one of its branches.
type Alternative[A any] struct {
	branches [][]Token[A]
}

// NewAlternative returns an alternative over branches.
func NewAlternative[A any](branches ...[]Token[A]) Alternative[A] {
	return Alternative[A]{branches: branches}
}

func (Alternative[A]) Tag() Tag { return TagAlternative }
func (Alternative[A]) sealed()  {}

// Branches returns the branch sequences. Callers must not modify them.
func (a Alternative[A]) Branches() [][]Token[A] { return a.branches }

// HasTokenWith reports whether f holds for any leaf reachable from any branch.
func (a Alternative[A]) HasTokenWith(f func(Token[A]) bool) bool {
	for _, branch := range a.branches {
		for i := range branch {
			if branch[i].HasTokenWith(f) {
				return true
			}
		}
	}
	return false
}

// HasPrecedingTokenWith reports whether f holds for a leaf that can begin any branch.
func (a Alternative[A]) HasPrecedingTokenWith(f func(Token[A]) bool) bool {
	for _, branch := range a.branches {
		if len(branch) > 0 && branch[0].HasPrecedingTokenWith(f) {
			return true
		}
	}
	return false
}

// HasTerminatingTokenWith reports whether f holds for a leaf that can end any branch.
func (a Alternative[A]) HasTerminatingTokenWith(f func(Token[A]) bool) bool {
	for _, branch := range a.branches {
		if len(branch) > 0 && branch[len(branch)-1].HasTerminatingTokenWith(f) {
			return true
		}
	}
	return false
}
