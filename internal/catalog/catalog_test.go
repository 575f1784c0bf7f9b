package catalog

import (
	"math"
	"testing"
)

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"sin", "SIN", "Sin", "sIn"} {
		entry, ok := Lookup(name, false)
		if !ok {
			t.Fatalf("Lookup(%q): not found", name)
		}
		if entry.Name != "SIN" {
			t.Fatalf("Lookup(%q).Name = %q, want SIN", name, entry.Name)
		}
	}
}

func TestLookupCaseSensitive(t *testing.T) {
	if _, ok := Lookup("sin", true); ok {
		t.Fatalf("Lookup(sin, caseSensitive) unexpectedly found; canonical names are uppercase")
	}
	if _, ok := Lookup("SIN", true); !ok {
		t.Fatalf("Lookup(SIN, caseSensitive): not found")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NOPE", false); ok {
		t.Fatalf("Lookup(NOPE) unexpectedly found")
	}
}

func TestArity(t *testing.T) {
	cases := map[string]int{
		"SIN": 1, "SQRT": 1, "ABS": 1, "UMINUS": 1,
		"+": 2, "MOD": 2, "MIN": 2, "MAX": 2, "^": 2,
		"=": 2, "<=": 2, ">=": 2, "<>": 2,
	}
	for name, wantArity := range cases {
		entry, ok := Lookup(name, false)
		if !ok {
			t.Fatalf("Lookup(%q): not found", name)
		}
		if entry.Arity != wantArity {
			t.Errorf("%s arity = %d, want %d", name, entry.Arity, wantArity)
		}
	}
}

func TestSqrtDomainError(t *testing.T) {
	entry, _ := Lookup("SQRT", false)
	if _, err := entry.Eval([]float64{-1}, 0); err == nil {
		t.Fatalf("SQRT(-1) expected a domain error")
	}
}

func TestLnDomainError(t *testing.T) {
	entry, _ := Lookup("LN", false)
	for _, x := range []float64{0, -1} {
		if _, err := entry.Eval([]float64{x}, 0); err == nil {
			t.Errorf("LN(%v) expected a domain error", x)
		}
	}
}

func TestAsinAcosDomain(t *testing.T) {
	asin, _ := Lookup("ASIN", false)
	if _, err := asin.Eval([]float64{1.5}, 0); err == nil {
		t.Errorf("ASIN(1.5) expected a domain error")
	}
	if v, err := asin.Eval([]float64{1}, 0); err != nil || math.Abs(v-math.Pi/2) > 1e-12 {
		t.Errorf("ASIN(1) = %v, %v; want pi/2, nil", v, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	div, _ := Lookup("/", false)
	if _, err := div.Eval([]float64{1, 0}, 0); err == nil {
		t.Fatalf("1/0 expected a domain error")
	}
}

func TestModByZero(t *testing.T) {
	mod, _ := Lookup("MOD", false)
	if _, err := mod.Eval([]float64{1, 0}, 0); err == nil {
		t.Fatalf("MOD(1,0) expected a domain error")
	}
}

func TestPowerZeroToZero(t *testing.T) {
	pow, _ := Lookup("^", false)
	v, err := pow.Eval([]float64{0, 0}, 0)
	if err != nil || v != 1 {
		t.Fatalf("0^0 = %v, %v; want 1, nil", v, err)
	}
}

func TestPowerZeroToNegative(t *testing.T) {
	pow, _ := Lookup("^", false)
	if _, err := pow.Eval([]float64{0, -1}, 0); err == nil {
		t.Fatalf("0^-1 expected a domain error")
	}
}

func TestComparisonTolerance(t *testing.T) {
	eq, _ := Lookup("=", false)
	v, _ := eq.Eval([]float64{1.0, 1.0005}, 0.001)
	if v != 1.0 {
		t.Errorf("1.0 = 1.0005 within tol 0.001: got %v, want 1.0", v)
	}
	v, _ = eq.Eval([]float64{1.0, 1.0005}, 0)
	if v != 0.0 {
		t.Errorf("1.0 = 1.0005 with tol 0: got %v, want 0.0", v)
	}
}

func TestNamesNonEmpty(t *testing.T) {
	names := Names()
	if len(names) < 30 {
		t.Fatalf("Names() returned %d entries, want at least 30", len(names))
	}
}
