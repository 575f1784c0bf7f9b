package funceval

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/parser"
)

func TestEvaluateTrigIdentityAtZero(t *testing.T) {
	normalized, err := normalize.Normalize("sin(x) + cos(x)^2", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Evaluate(node, []float64{0}, nil, Policy{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("sin(0)+cos(0)^2 = %v, want 1.0", got)
	}
}

func TestEvaluateSqrtOfSumOfSquares(t *testing.T) {
	normalized, err := normalize.Normalize("sqrt(a^2 + b^2)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{ParameterNames: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Evaluate(node, nil, []float64{3, 4}, Policy{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 5.0 {
		t.Fatalf("sqrt(3^2+4^2) = %v, want 5.0", got)
	}

	folded := Fold(node, []float64{3, 4}, Policy{})
	v, err := Evaluate(folded, nil, nil, Policy{})
	if err != nil {
		t.Fatalf("Evaluate(folded): %v", err)
	}
	if v != 5.0 {
		t.Fatalf("folded tree evaluates to %v, want 5.0", v)
	}
}

func TestEvaluateConditionalScaledAbsoluteValue(t *testing.T) {
	normalized, err := normalize.Normalize("IF(x<0, -k*x, k*x)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}, ParameterNames: []string{"k"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := []struct {
		x    float64
		want float64
	}{
		{-3, 6}, {3, 6}, {0, 0},
	}
	for _, c := range cases {
		got, err := Evaluate(node, []float64{c.x}, []float64{2}, Policy{})
		if err != nil {
			t.Fatalf("Evaluate(x=%v): %v", c.x, err)
		}
		if got != c.want {
			t.Errorf("IF(x<0,-k*x,k*x) at x=%v = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestEvaluateLogicalNumericOperands(t *testing.T) {
	normalized, err := normalize.Normalize("x AND y", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x", "y"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	policy := Policy{LogicalNumericAllowed: true}

	got, err := Evaluate(node, []float64{1, 0}, nil, policy)
	if err != nil || got != 0 {
		t.Errorf("[1,0] = %v, %v; want 0, nil", got, err)
	}
	got, err = Evaluate(node, []float64{1, 1}, nil, policy)
	if err != nil || got != 1 {
		t.Errorf("[1,1] = %v, %v; want 1, nil", got, err)
	}
	_, err = Evaluate(node, []float64{0.5, 1}, nil, policy)
	var fe *funcerr.Error
	if !errors.As(err, &fe) || fe.Kind != funcerr.KindDomain {
		t.Errorf("[0.5,1] err = %v, want KindDomain", err)
	}
}

func TestEvaluateLnOfNegativeIsDomainError(t *testing.T) {
	normalized, err := normalize.Normalize("LN(-1)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Evaluate(node, nil, nil, Policy{})
	var fe *funcerr.Error
	if !errors.As(err, &fe) || fe.Kind != funcerr.KindDomain {
		t.Fatalf("LN(-1) err = %v, want KindDomain", err)
	}
}

func TestEvaluateExponentIsRightAssociative(t *testing.T) {
	normalized, err := normalize.Normalize("2^3^2", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Evaluate(node, nil, nil, Policy{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 512.0 {
		t.Fatalf("2^3^2 = %v, want 512.0", got)
	}
}

func TestEvaluateStripsRedundantOuterParens(t *testing.T) {
	normalized, err := normalize.Normalize("((x+1))", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Evaluate(node, []float64{4}, nil, Policy{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 5.0 {
		t.Fatalf("((x+1)) at x=4 = %v, want 5.0", got)
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1+2*3", 7},
		{"-2^2", -4},
		{"2^-1", 0.5},
	}
	for _, c := range cases {
		normalized, err := normalize.Normalize(c.expr, false)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", c.expr, err)
		}
		node, err := parser.Parse(normalized, parser.Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.expr, err)
		}
		got, err := Evaluate(node, nil, nil, Policy{})
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.expr, got, c.want)
		}
	}
}

// TestLiteralRoundTrip checks that formatting a double with strconv's
// shortest 'g' form and parsing it back yields the identical value, for
// representatives of every literal shape (integer, decimal, scientific,
// negative via unary minus).
func TestLiteralRoundTrip(t *testing.T) {
	values := []float64{
		0, 1, 0.5, 7, 123456.789,
		3.141592653589793, 2.718281828459045,
		1e-9, 6.02e23, 2.5e-3,
		-1, -0.25, -5e-7,
	}
	for _, want := range values {
		s := strconv.FormatFloat(want, 'g', -1, 64)
		normalized, err := normalize.Normalize(s, false)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", s, err)
		}
		node, err := parser.Parse(normalized, parser.Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		got, err := Evaluate(node, nil, nil, Policy{})
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("round trip of %v via %q = %v", want, s, got)
		}
	}
}

func TestEvaluateConditionalShortCircuits(t *testing.T) {
	// The untaken branch divides by zero; if it were evaluated this would
	// surface a DomainError instead of returning cleanly.
	normalized, err := normalize.Normalize("IF(x=1, 1, 1/0)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Evaluate(node, []float64{1}, nil, Policy{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestEvaluateContractViolationNilNode(t *testing.T) {
	_, err := Evaluate(nil, nil, nil, Policy{})
	var fe *funcerr.Error
	if !errors.As(err, &fe) || fe.Kind != funcerr.KindContractViolation {
		t.Fatalf("err = %v, want KindContractViolation", err)
	}
}

func TestEvaluateVariableIndexOutOfRange(t *testing.T) {
	normalized, err := normalize.Normalize("x", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Evaluate(node, nil, nil, Policy{})
	var fe *funcerr.Error
	if !errors.As(err, &fe) || fe.Kind != funcerr.KindContractViolation {
		t.Fatalf("err = %v, want KindContractViolation", err)
	}
}
