package variance_test

import (
	"slices"
	"testing"

	"glean/internal/pathcase"
	"glean/internal/variance"
)

type text = variance.InvariantText

func inv(s string) variance.Variance[text] {
	return variance.Invariant(variance.NominalText(s))
}

func vari(b variance.Boundedness) variance.Variance[text] {
	return variance.Variant[text](b)
}

func invariantString(t *testing.T, v variance.Variance[text]) string {
	t.Helper()
	value, ok := v.Invariance()
	if !ok {
		t.Fatalf("expected invariant, got %v", v)
	}
	return value.String()
}

func concat(t *testing.T, parts ...text) text {
	t.Helper()
	var out text
	for _, p := range parts {
		var ok bool
		if out, ok = out.Concat(p); !ok {
			t.Fatalf("concat of %q out of range", p.String())
		}
	}
	return out
}

func TestZeroValueIsEmptyInvariant(t *testing.T) {
	var v variance.Variance[text]
	if got := invariantString(t, v); got != "" {
		t.Fatalf("zero variance = %q, want empty", got)
	}
	if !v.IsClosed() || v.IsOpen() {
		t.Fatalf("zero variance must be closed")
	}
}

func TestThen(t *testing.T) {
	cases := []struct {
		name string
		a, b variance.Variance[text]
		want variance.Variance[text]
	}{
		{"inv+inv", inv("foo"), inv("bar"), inv("foobar")},
		{"inv+closed", inv("foo"), vari(variance.Closed), vari(variance.Closed)},
		{"open+inv", vari(variance.Open), inv("foo"), vari(variance.Open)},
		{"closed+closed", vari(variance.Closed), vari(variance.Closed), vari(variance.Closed)},
		{"closed+open", vari(variance.Closed), vari(variance.Open), vari(variance.Open)},
		{"open+closed", vari(variance.Open), vari(variance.Closed), vari(variance.Open)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Then(tc.b)
			if !got.Equal(tc.want, pathcase.Sensitive) {
				t.Fatalf("%v then %v = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestTimes(t *testing.T) {
	if got := invariantString(t, inv("ab").Times(3)); got != "ababab" {
		t.Fatalf("times = %q", got)
	}
	if got := invariantString(t, inv("ab").Times(0)); got != "" {
		t.Fatalf("times zero = %q", got)
	}
	if got := vari(variance.Open).Times(3); !got.IsOpen() {
		t.Fatalf("variant must be unaffected by multiplication, got %v", got)
	}
	size := variance.Invariant(variance.InvariantSize(4)).Times(3)
	if n, _ := size.Invariance(); n != 12 {
		t.Fatalf("size times = %d, want 12", n)
	}
}

func TestConjunction(t *testing.T) {
	empty := variance.Conjunction(slices.Values([]variance.Variance[text]{}))
	if got := invariantString(t, empty); got != "" {
		t.Fatalf("empty conjunction = %q", got)
	}

	all := variance.Conjunction(slices.Values([]variance.Variance[text]{inv("a"), inv("b"), inv("c")}))
	if got := invariantString(t, all); got != "abc" {
		t.Fatalf("conjunction = %q, want abc", got)
	}

	tainted := variance.Conjunction(slices.Values([]variance.Variance[text]{
		inv("a"), vari(variance.Closed), vari(variance.Open), inv("c"),
	}))
	if !tainted.IsOpen() {
		t.Fatalf("open unit must taint the sequence, got %v", tainted)
	}

	sizes := variance.Conjunction(slices.Values([]variance.Variance[variance.InvariantSize]{
		variance.Invariant(variance.InvariantSize(3)),
		variance.Invariant(variance.InvariantSize(1)),
	}))
	if n, ok := sizes.Invariance(); !ok || n != 4 {
		t.Fatalf("size conjunction = %v", sizes)
	}
}

func TestDisjunction(t *testing.T) {
	cases := []struct {
		name     string
		cs       pathcase.Sensitivity
		branches []variance.Variance[text]
		want     variance.Variance[text]
	}{
		{"agree", pathcase.Sensitive, []variance.Variance[text]{inv("foo"), inv("foo")}, inv("foo")},
		{"disagree", pathcase.Sensitive, []variance.Variance[text]{inv("foo"), inv("bar")}, vari(variance.Closed)},
		{"case differs sensitive", pathcase.Sensitive, []variance.Variance[text]{inv("foo"), inv("FOO")}, vari(variance.Closed)},
		{"case differs insensitive", pathcase.Insensitive, []variance.Variance[text]{inv("foo"), inv("FOO")}, inv("foo")},
		{"one variant", pathcase.Sensitive, []variance.Variance[text]{inv("foo"), vari(variance.Closed)}, vari(variance.Closed)},
		{"one open", pathcase.Sensitive, []variance.Variance[text]{inv("foo"), vari(variance.Open)}, vari(variance.Open)},
		{"equal variants", pathcase.Sensitive, []variance.Variance[text]{vari(variance.Closed), vari(variance.Closed)}, vari(variance.Closed)},
		{"single", pathcase.Sensitive, []variance.Variance[text]{inv("x")}, inv("x")},
		{"none", pathcase.Sensitive, nil, inv("")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := variance.Disjunction(tc.cs, slices.Values(tc.branches))
			if !got.Equal(tc.want, tc.cs) {
				t.Fatalf("disjunction = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStructuralTextIgnoresCasePolicy(t *testing.T) {
	a := variance.StructuralText("X")
	b := variance.StructuralText("x")
	if a.Equal(b, pathcase.Insensitive) {
		t.Fatalf("structural text must compare exactly")
	}
	n := concat(t, variance.NominalText("a"), variance.StructuralText("/"), variance.NominalText("B"))
	m := concat(t, variance.NominalText("A"), variance.StructuralText("/"), variance.NominalText("b"))
	if !n.Equal(m, pathcase.Insensitive) {
		t.Fatalf("nominal fragments must fold under insensitive policy")
	}
	if n.String() != "a/B" {
		t.Fatalf("String() = %q", n.String())
	}
}

func TestMap(t *testing.T) {
	size := variance.Map(inv("héllo"), func(t text) variance.InvariantSize {
		return variance.InvariantSize(len(t.String()))
	})
	if n, ok := size.Invariance(); !ok || n != 6 {
		t.Fatalf("mapped size = %v", size)
	}
	if got := variance.Map(vari(variance.Open), func(text) variance.InvariantSize { return 1 }); !got.IsOpen() {
		t.Fatalf("map must preserve variants")
	}
}

func TestBoundednessJoin(t *testing.T) {
	if variance.Closed.Join(variance.Closed) != variance.Closed {
		t.Fatalf("closed join closed")
	}
	if variance.Closed.Join(variance.Open) != variance.Open || variance.Open.Join(variance.Closed) != variance.Open {
		t.Fatalf("join with open")
	}
}

func TestTimesOutOfRangeDegrades(t *testing.T) {
	cases := []struct {
		name string
		v    variance.Variance[text]
		n    int
	}{
		{"huge count", inv("a"), 1 << 45},
		{"just past bound", inv("ab"), variance.MaxInvariantBytes/2 + 1},
		{"max int", inv("abc"), int(^uint(0) >> 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Times(tc.n)
			if !got.IsVariant() || !got.IsClosed() {
				t.Fatalf("Times(%d) = %v, want variant(closed)", tc.n, got)
			}
		})
	}
	if got := invariantString(t, inv("ab").Times(variance.MaxInvariantBytes/2)); len(got) != variance.MaxInvariantBytes {
		t.Fatalf("Times at bound produced %d bytes", len(got))
	}
}

func TestSizeArithmeticIsChecked(t *testing.T) {
	size := variance.Invariant(variance.InvariantSize(4))
	nested := size.Times(1 << 31).Times(1 << 31).Times(4)
	if !nested.IsVariant() || !nested.IsClosed() {
		t.Fatalf("nested repetition = %v, want variant(closed)", nested)
	}
	big := variance.Invariant(variance.InvariantSize(variance.MaxInvariantBytes))
	if got := big.Then(variance.Invariant(variance.InvariantSize(1))); !got.IsVariant() || !got.IsClosed() {
		t.Fatalf("sum past bound = %v, want variant(closed)", got)
	}
	if got, ok := big.Then(variance.Invariant(variance.InvariantSize(0))).Invariance(); !ok || got != variance.MaxInvariantBytes {
		t.Fatalf("sum at bound = %v, %v", got, ok)
	}
	if got, ok := variance.InvariantSize(3).Repeat(0); !ok || got != 0 {
		t.Fatalf("Repeat(0) = %v, %v", got, ok)
	}
}

func TestTextConcatOutOfRangeDegrades(t *testing.T) {
	half := inv("ab").Times(variance.MaxInvariantBytes / 2)
	if got := half.Then(inv("x")); !got.IsVariant() || !got.IsClosed() {
		t.Fatalf("concat past bound = %v, want variant(closed)", got)
	}
	if got := half.Then(inv("")); !got.IsInvariant() {
		t.Fatalf("concat with empty text must stay invariant")
	}
}
