package funcparser

import (
	"fmt"
	"strings"

	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funceval"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/parser"
)

// ParsedFunction is the top-level aggregate: an ordered variable-name
// list, an ordered parameter-name list with a parallel values vector, the
// expression string, both retained trees, and the policy flags that shape
// how the trees are built and evaluated.
type ParsedFunction struct {
	variableNames   []string
	parameterNames  []string
	parameterValues []float64
	expression      string

	caseSensitive         bool
	simplifyAllowed       bool
	logicalNumericAllowed bool
	comparisonTolerance   float64
	maxDepth              int

	original   *ast.Node
	simplified *ast.Node
	parsed     bool
}

// New returns an empty ParsedFunction, ready for its setters to be called
// in any order before Parse.
func New() *ParsedFunction {
	return &ParsedFunction{}
}

// SetVariableNames replaces the positional variable-name list. It may be
// called at any point before Parse; calling it after Parse has no effect
// on the retained trees until the next Parse.
func (pf *ParsedFunction) SetVariableNames(names []string) {
	pf.variableNames = append([]string(nil), names...)
}

// SetParameterNames replaces the parameter-name list. To preserve the
// invariant len(parameterValues) == len(parameterNames), the values vector
// is resized (zero-filled) whenever its length no longer matches; callers
// that need specific values should call SetParameterValues afterward.
func (pf *ParsedFunction) SetParameterNames(names []string) {
	pf.parameterNames = append([]string(nil), names...)
	if len(pf.parameterValues) != len(pf.parameterNames) {
		pf.parameterValues = make([]float64, len(pf.parameterNames))
	}
}

// SetParameterValues replaces the parameter-values vector. Its length must
// equal the current parameter-name list's length.
func (pf *ParsedFunction) SetParameterValues(values []float64) error {
	if len(values) != len(pf.parameterNames) {
		return funcerr.ParameterMismatchf("expected %d parameter value(s), got %d", len(pf.parameterNames), len(values))
	}
	pf.parameterValues = append([]float64(nil), values...)

	return nil
}

// SetCaseSensitive toggles whether identifier and function-name matching
// is case-sensitive. Takes effect on the next Parse.
func (pf *ParsedFunction) SetCaseSensitive(v bool) { pf.caseSensitive = v }

// SetSimplifyAllowed toggles whether Parse also builds the folded tree.
func (pf *ParsedFunction) SetSimplifyAllowed(v bool) { pf.simplifyAllowed = v }

// SetLogicalNumericAllowed toggles whether AND/OR/NOT/IF accept operands
// that lie within the comparison tolerance of 0 or 1 instead of requiring
// exactly 0 or 1, and switches AND/OR to short-circuit evaluation. Operands
// farther from both 0 and 1 are a DomainError either way.
func (pf *ParsedFunction) SetLogicalNumericAllowed(v bool) { pf.logicalNumericAllowed = v }

// SetComparisonTolerance sets the tolerance comparison operators use when
// deciding equality; it is captured into each comparison node at Parse
// time, so changing it does not retroactively affect the comparisons of an
// already-parsed tree. The logical-operand coercion used when numeric
// logicals are allowed reads the current value at every Evaluate.
func (pf *ParsedFunction) SetComparisonTolerance(tol float64) { pf.comparisonTolerance = tol }

// SetMaxDepth overrides the parser's recursion-depth guard (default 256
// when unset or non-positive).
func (pf *ParsedFunction) SetMaxDepth(depth int) { pf.maxDepth = depth }

// VariableNames returns the current variable-name list.
func (pf *ParsedFunction) VariableNames() []string { return append([]string(nil), pf.variableNames...) }

// ParameterNames returns the current parameter-name list.
func (pf *ParsedFunction) ParameterNames() []string {
	return append([]string(nil), pf.parameterNames...)
}

// ParameterValues returns the current parameter-values vector.
func (pf *ParsedFunction) ParameterValues() []float64 {
	return append([]float64(nil), pf.parameterValues...)
}

// Expression returns the string last passed to a successful Parse, or "" if
// none has succeeded yet.
func (pf *ParsedFunction) Expression() string { return pf.expression }

// IsParsed reports whether a tree is currently retained.
func (pf *ParsedFunction) IsParsed() bool { return pf.parsed }

// Validate checks the structural invariants that do not require a parse:
// variable/parameter name uniqueness, an empty intersection between the
// two lists, and the parameter name/value length match. Parse calls this
// internally; callers may call it independently as a pre-flight check.
func (pf *ParsedFunction) Validate() error {
	fold := func(s string) string {
		if pf.caseSensitive {
			return s
		}

		return strings.ToUpper(s)
	}

	seen := make(map[string]bool, len(pf.variableNames))
	for _, n := range pf.variableNames {
		k := fold(n)
		if seen[k] {
			return funcerr.ContractViolationf("duplicate variable name %q", n)
		}
		seen[k] = true
	}

	paramSeen := make(map[string]bool, len(pf.parameterNames))
	for _, n := range pf.parameterNames {
		k := fold(n)
		if paramSeen[k] {
			return funcerr.ContractViolationf("duplicate parameter name %q", n)
		}
		if seen[k] {
			return funcerr.ContractViolationf("name %q used as both a variable and a parameter", n)
		}
		paramSeen[k] = true
	}

	if len(pf.parameterValues) != len(pf.parameterNames) {
		return funcerr.ParameterMismatchf("parameter values length %d does not match parameter names length %d", len(pf.parameterValues), len(pf.parameterNames))
	}

	return nil
}

// Parse normalizes and parses expression, replacing both retained trees.
// Parse is idempotent: a failed call leaves the ParsedFunction unparsed,
// and a successful call always discards whatever trees were retained from
// a prior Parse.
func (pf *ParsedFunction) Parse(expression string) error {
	pf.original = nil
	pf.simplified = nil
	pf.parsed = false

	if err := pf.Validate(); err != nil {
		return err
	}

	normalized, err := normalize.Normalize(expression, pf.caseSensitive)
	if err != nil {
		return err
	}

	node, err := parser.Parse(normalized, parser.Options{
		VariableNames:  pf.variableNames,
		ParameterNames: pf.parameterNames,
		CaseSensitive:  pf.caseSensitive,
		ComparisonTol:  pf.comparisonTolerance,
		MaxDepth:       pf.maxDepth,
	})
	if err != nil {
		return err
	}

	pf.expression = expression
	pf.original = node
	pf.parsed = true

	if pf.simplifyAllowed {
		pf.simplified = funceval.Fold(node, pf.parameterValues, pf.policy())
	}

	return nil
}

// RefreshSimplified rebuilds the simplified tree from the current
// parameter values without re-parsing the expression. Parameter mutation
// after Parse does not implicitly refresh the simplified tree; this is the
// explicit alternative to a full re-parse.
func (pf *ParsedFunction) RefreshSimplified() error {
	if !pf.parsed {
		return funcerr.ContractViolationf("RefreshSimplified called before a successful Parse")
	}
	if !pf.simplifyAllowed {
		pf.simplified = nil

		return nil
	}
	pf.simplified = funceval.Fold(pf.original, pf.parameterValues, pf.policy())

	return nil
}

// Evaluate computes the function's value at args, an ordered vector
// parallel to the variable-name list. It consults the simplified tree when
// one is retained, falling back to the original tree otherwise.
func (pf *ParsedFunction) Evaluate(args []float64) (float64, error) {
	if !pf.parsed {
		return 0, funcerr.ContractViolationf("Evaluate called before a successful Parse")
	}
	if len(args) != len(pf.variableNames) {
		return 0, funcerr.ContractViolationf("expected %d argument(s), got %d", len(pf.variableNames), len(args))
	}

	tree := pf.original
	if pf.simplifyAllowed && pf.simplified != nil {
		tree = pf.simplified
	}

	return funceval.Evaluate(tree, args, pf.parameterValues, pf.policy())
}

// EvaluateOriginal evaluates the unsimplified tree regardless of
// SimplifyAllowed, for callers that want to bypass folding explicitly.
func (pf *ParsedFunction) EvaluateOriginal(args []float64) (float64, error) {
	if !pf.parsed {
		return 0, funcerr.ContractViolationf("EvaluateOriginal called before a successful Parse")
	}
	if len(args) != len(pf.variableNames) {
		return 0, funcerr.ContractViolationf("expected %d argument(s), got %d", len(pf.variableNames), len(args))
	}

	return funceval.Evaluate(pf.original, args, pf.parameterValues, pf.policy())
}

// Dump renders a textual diagnostic of the expression and both retained
// trees, for the CLI and for tests that assert on tree shape.
func (pf *ParsedFunction) Dump() string {
	if !pf.parsed {
		return "<unparsed>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "expression: %s\n", pf.expression)
	fmt.Fprintf(&b, "original:   %s\n", pf.original.Dump())
	if pf.simplified != nil {
		fmt.Fprintf(&b, "simplified: %s\n", pf.simplified.Dump())
	}

	return b.String()
}

func (pf *ParsedFunction) policy() funceval.Policy {
	return funceval.Policy{
		LogicalNumericAllowed: pf.logicalNumericAllowed,
		Tolerance:             pf.comparisonTolerance,
	}
}
