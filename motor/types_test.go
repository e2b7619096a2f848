package motor

import "testing"

func TestParseType(t *testing.T) {
	for _, s := range []string{"a1", "b1", "go-m8010-6"} {
		typ, err := ParseType(s)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", s, err)
		}
		if typ.String() != s {
			t.Fatalf("ParseType(%q).String() = %q", s, typ.String())
		}
	}

	if _, err := ParseType("gim4310"); err == nil {
		t.Fatal("unknown type accepted")
	}
}

func TestGearRatios(t *testing.T) {
	cases := map[Type]float64{
		TypeA1:      9.73,
		TypeB1:      6.0,
		TypeGoM8010: 6.0,
	}
	for typ, want := range cases {
		if got := typ.GearRatio(); got != want {
			t.Fatalf("%v gear ratio = %v, want %v", typ, got, want)
		}
	}
}
