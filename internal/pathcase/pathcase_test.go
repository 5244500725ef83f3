package pathcase

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]Sensitivity{
		"sensitive":     Sensitive,
		"Insensitive":   Insensitive,
		" insensitive ": Insensitive,
		"platform":      Platform(),
		"":              Platform(),
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := Parse("loud"); err == nil {
		t.Fatalf("Parse(loud) expected error")
	}
}

func TestForGOOS(t *testing.T) {
	if ForGOOS("linux") != Sensitive {
		t.Fatalf("linux should be case sensitive")
	}
	if ForGOOS("windows") != Insensitive || ForGOOS("darwin") != Insensitive {
		t.Fatalf("windows and darwin should be case insensitive")
	}
}

func TestHasCasing(t *testing.T) {
	if !HasCasing("foo") || !HasCasing("123B") || !HasCasing("ß") {
		t.Fatalf("expected casing")
	}
	if HasCasing("") || HasCasing("123_-.") || HasCasing("日本") {
		t.Fatalf("unexpected casing")
	}
}

func TestEqual(t *testing.T) {
	if Sensitive.Equal("Foo", "foo") {
		t.Fatalf("sensitive comparison must not fold case")
	}
	if !Insensitive.Equal("Foo", "fOO") {
		t.Fatalf("insensitive comparison must fold case")
	}
	// "é" precomposed vs "e" + combining acute accent.
	if !Insensitive.Equal("caf\u00e9", "cafe\u0301") {
		t.Fatalf("insensitive comparison must normalize")
	}
	if Insensitive.Equal("foo", "bar") {
		t.Fatalf("distinct text compared equal")
	}
}
