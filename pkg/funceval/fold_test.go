package funceval

import (
	"testing"

	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/parser"
)

func TestFoldLeavesVariableSubtreesUnfolded(t *testing.T) {
	normalized, err := normalize.Normalize("a*x", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}, ParameterNames: []string{"a"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	folded := Fold(node, []float64{2}, Policy{})
	if folded.Kind != ast.Call {
		t.Fatalf("folded kind = %v, want Call (a*x cannot collapse past the Variable)", folded.Kind)
	}
	if folded.Children[0].Kind != ast.Constant || folded.Children[0].Value != 2 {
		t.Fatalf("folded left child = %+v, want Constant(2)", folded.Children[0])
	}
	if folded.Children[1].Kind != ast.Variable {
		t.Fatalf("folded right child = %+v, want Variable", folded.Children[1])
	}
}

func TestFoldDoesNotMutateOriginal(t *testing.T) {
	normalized, err := normalize.Normalize("sqrt(a)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{ParameterNames: []string{"a"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_ = Fold(node, []float64{4}, Policy{})
	if node.Kind != ast.Call {
		t.Fatalf("original tree was mutated by Fold: kind = %v", node.Kind)
	}
	if node.Children[0].Kind != ast.Parameter {
		t.Fatalf("original tree's Parameter node was replaced: %+v", node.Children[0])
	}
}

func TestFoldLeavesDomainErroringSubtreeUnfolded(t *testing.T) {
	normalized, err := normalize.Normalize("sqrt(a)+x", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{VariableNames: []string{"x"}, ParameterNames: []string{"a"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// a = -1 makes SQRT(a) raise a DomainError at fold time; folding must
	// leave that subtree unfolded rather than propagate the error out of
	// Fold.
	folded := Fold(node, []float64{-1}, Policy{})
	if folded.Children[0].Kind != ast.Call {
		t.Fatalf("SQRT(-1) subtree should remain unfolded, got kind %v", folded.Children[0].Kind)
	}

	_, err = Evaluate(folded, []float64{1}, []float64{-1}, Policy{})
	if err == nil {
		t.Fatalf("evaluating the unfolded SQRT(-1) subtree should still raise a DomainError")
	}
}

func TestFoldParameterOnlyExpressionCollapsesEntirely(t *testing.T) {
	normalized, err := normalize.Normalize("sqrt(a^2+b^2)", false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	node, err := parser.Parse(normalized, parser.Options{ParameterNames: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	folded := Fold(node, []float64{3, 4}, Policy{})
	if folded.Kind != ast.Constant || folded.Value != 5 {
		t.Fatalf("folded = %+v, want Constant(5)", folded)
	}
}
