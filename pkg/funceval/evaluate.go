package funceval

import (
	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
)

// Evaluate walks node in post-order and returns its numeric value for the
// given variable arguments and parameter values. Children are always
// evaluated before their parent except where the language itself demands
// short-circuiting (IF always; AND/OR only when policy.LogicalNumericAllowed).
func Evaluate(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	if node == nil {
		return 0, funcerr.ContractViolationf("cannot evaluate a nil expression node")
	}

	switch node.Kind {
	case ast.Constant:
		return node.Value, nil

	case ast.Variable:
		if node.Index < 0 || node.Index >= len(args) {
			return 0, funcerr.ContractViolationf("variable index %d out of range for %d argument(s)", node.Index, len(args))
		}

		return args[node.Index], nil

	case ast.Parameter:
		if node.Index < 0 || node.Index >= len(paramValues) {
			return 0, funcerr.ContractViolationf("parameter index %d out of range for %d value(s)", node.Index, len(paramValues))
		}

		return paramValues[node.Index], nil

	case ast.Call:
		return evalCall(node, args, paramValues, policy)

	case ast.LogicalAnd:
		return evalAnd(node, args, paramValues, policy)

	case ast.LogicalOr:
		return evalOr(node, args, paramValues, policy)

	case ast.LogicalNot:
		return evalNot(node, args, paramValues, policy)

	case ast.Conditional:
		return evalConditional(node, args, paramValues, policy)

	default:
		return 0, funcerr.ContractViolationf("unrecognized node kind %d", int(node.Kind))
	}
}

func evalCall(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	childVals := make([]float64, len(node.Children))
	for i, c := range node.Children {
		v, err := Evaluate(c, args, paramValues, policy)
		if err != nil {
			return 0, err
		}
		childVals[i] = v
	}

	return node.Entry.Eval(childVals, node.Tolerance)
}

// evalAnd implements AND, eager and strict-boolean by default; when the
// policy allows numeric logicals it short-circuits instead, so a false
// left side skips the right side entirely.
func evalAnd(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	if !policy.LogicalNumericAllowed {
		return evalEagerLogical(node, args, paramValues, policy, func(l, r bool) bool { return l && r })
	}

	lv, err := Evaluate(node.Children[0], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	lb, err := policy.boolValue(lv)
	if err != nil {
		return 0, err
	}
	if !lb {
		return 0, nil
	}

	rv, err := Evaluate(node.Children[1], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	rb, err := policy.boolValue(rv)
	if err != nil {
		return 0, err
	}

	return boolToFloat(rb), nil
}

func evalOr(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	if !policy.LogicalNumericAllowed {
		return evalEagerLogical(node, args, paramValues, policy, func(l, r bool) bool { return l || r })
	}

	lv, err := Evaluate(node.Children[0], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	lb, err := policy.boolValue(lv)
	if err != nil {
		return 0, err
	}
	if lb {
		return 1, nil
	}

	rv, err := Evaluate(node.Children[1], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	rb, err := policy.boolValue(rv)
	if err != nil {
		return 0, err
	}

	return boolToFloat(rb), nil
}

// evalEagerLogical evaluates both operands unconditionally (no
// short-circuit), preserving domain-error surfacing from either side
// before combining them with combine.
func evalEagerLogical(node *ast.Node, args, paramValues []float64, policy Policy, combine func(l, r bool) bool) (float64, error) {
	lv, err := Evaluate(node.Children[0], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	rv, err := Evaluate(node.Children[1], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	lb, err := policy.boolValue(lv)
	if err != nil {
		return 0, err
	}
	rb, err := policy.boolValue(rv)
	if err != nil {
		return 0, err
	}

	return boolToFloat(combine(lb, rb)), nil
}

func evalNot(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	v, err := Evaluate(node.Children[0], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	b, err := policy.boolValue(v)
	if err != nil {
		return 0, err
	}

	return boolToFloat(!b), nil
}

// evalConditional evaluates only the taken branch; the untaken branch is
// never visited, so a domain error hiding there cannot surface.
func evalConditional(node *ast.Node, args, paramValues []float64, policy Policy) (float64, error) {
	cv, err := Evaluate(node.Children[0], args, paramValues, policy)
	if err != nil {
		return 0, err
	}
	cb, err := policy.boolValue(cv)
	if err != nil {
		return 0, err
	}
	if cb {
		return Evaluate(node.Children[1], args, paramValues, policy)
	}

	return Evaluate(node.Children[2], args, paramValues, policy)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

func domainBoolErr(v float64) error {
	return funcerr.Domainf("logical operand %v is not boolean (0 or 1, within tolerance)", v)
}
