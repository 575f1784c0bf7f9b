package funceval

import "github.com/Yuri05/OSPSuite.FuncParser/internal/ast"

// Fold produces the simplified tree: a clone of node with every
// parameter-only subtree collapsed into a Constant. The clone is folded in
// place and returned; the caller's original node is never mutated.
func Fold(node *ast.Node, paramValues []float64, policy Policy) *ast.Node {
	return foldNode(node.Clone(), paramValues, policy)
}

func foldNode(n *ast.Node, paramValues []float64, policy Policy) *ast.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case ast.Constant, ast.Variable:
		return n
	case ast.Parameter:
		return ast.NewConstant(paramValues[n.Index])
	}

	allConstant := true
	for i, c := range n.Children {
		folded := foldNode(c, paramValues, policy)
		n.Children[i] = folded
		if folded.Kind != ast.Constant {
			allConstant = false
		}
	}
	if !allConstant {
		return n
	}

	// All children collapsed to constants: attempt to fold this node too.
	// A DomainError here (e.g. SQRT of a now-constant negative) leaves the
	// subtree unfolded; it will surface at evaluation time only if actually
	// reached.
	v, err := Evaluate(n, nil, paramValues, policy)
	if err != nil {
		return n
	}

	return ast.NewConstant(v)
}
