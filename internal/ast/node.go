package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yuri05/OSPSuite.FuncParser/internal/catalog"
)

// Kind tags which payload fields of Node are meaningful.
type Kind int

const (
	// Constant holds a literal double in Value.
	Constant Kind = iota
	// Variable holds an index into the caller's argument vector in Index.
	Variable
	// Parameter holds an index into the parameter-values vector in Index.
	Parameter
	// Call is a catalogue-backed operator or function; Entry names which
	// one, and Children holds its 1-3 already-parsed operands.
	Call
	// LogicalAnd is the AND operator: short-circuits only when the owning
	// ParsedFunction allows numeric logicals, otherwise evaluates both
	// sides eagerly.
	LogicalAnd
	// LogicalOr is the OR operator, same policy-sensitivity as LogicalAnd.
	LogicalOr
	// LogicalNot is the unary logical negation.
	LogicalNot
	// Conditional is IF(cond, then, else); Children[2] (else) is never
	// evaluated when Children[1] (then) is taken, and vice versa.
	Conditional
)

// Node is the single tagged-variant expression tree node type. One struct
// shape covers constants, variables, parameters, catalogue-backed calls,
// the logical operators, and the conditional form.
type Node struct {
	Kind Kind

	// Constant
	Value float64

	// Variable / Parameter
	Index int
	Name  string // retained for Dump/diagnostics only

	// Call
	Entry *catalog.Entry

	// Operator/FunctionCall/Conditional children, in order. Unary
	// operators use Children[0] only; comparisons use a 2-element
	// Children plus Tolerance; IF uses all three.
	Children []*Node

	// Tolerance is consulted only by comparison Call nodes when deciding
	// equality.
	Tolerance float64
}

// NewConstant builds a Constant node.
func NewConstant(v float64) *Node { return &Node{Kind: Constant, Value: v} }

// NewVariable builds a Variable node referencing args[index].
func NewVariable(index int, name string) *Node {
	return &Node{Kind: Variable, Index: index, Name: name}
}

// NewParameter builds a Parameter node referencing paramValues[index].
func NewParameter(index int, name string) *Node {
	return &Node{Kind: Parameter, Index: index, Name: name}
}

// NewCall builds a catalogue-backed operator/function node.
func NewCall(entry *catalog.Entry, children ...*Node) *Node {
	return &Node{Kind: Call, Entry: entry, Children: children}
}

// NewComparison builds a catalogue-backed comparison node with tolerance.
func NewComparison(entry *catalog.Entry, tol float64, left, right *Node) *Node {
	return &Node{Kind: Call, Entry: entry, Children: []*Node{left, right}, Tolerance: tol}
}

// NewConditional builds an IF(cond, then, else) node.
func NewConditional(cond, then, els *Node) *Node {
	return &Node{Kind: Conditional, Children: []*Node{cond, then, els}}
}

// NewLogical builds an AND/OR/NOT node. kind must be LogicalAnd, LogicalOr,
// or LogicalNot.
func NewLogical(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Clone makes a structural deep copy: the copy owns its own child nodes,
// sharing only the immutable *catalog.Entry reference. No node is ever
// shared between two trees.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Kind:      n.Kind,
		Value:     n.Value,
		Index:     n.Index,
		Name:      n.Name,
		Entry:     n.Entry,
		Tolerance: n.Tolerance,
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}

	return clone
}

// IsConstantOverVariables reports whether the subtree rooted at n contains
// no Variable node, i.e. it evaluates to the same value for every argument
// vector given the current parameter values. The simplifier in
// pkg/funceval does not call it; it decides folding from whether every
// child has already folded to a Constant.
func (n *Node) IsConstantOverVariables() bool {
	if n == nil {
		return true
	}
	if n.Kind == Variable {
		return false
	}
	for _, c := range n.Children {
		if !c.IsConstantOverVariables() {
			return false
		}
	}

	return true
}

// Dump renders a fully parenthesized infix form of the tree for debugging.
// It is consulted only by the CLI's parse subcommand and by tests that
// assert on tree shape.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b)

	return b.String()
}

func (n *Node) dump(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")

		return
	}
	switch n.Kind {
	case Constant:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case Variable:
		fmt.Fprintf(b, "Var(%s)", n.Name)
	case Parameter:
		fmt.Fprintf(b, "Param(%s)", n.Name)
	case Call:
		name := "?"
		if n.Entry != nil {
			name = n.Entry.Name
		}
		b.WriteString(name)
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			c.dump(b)
		}
		b.WriteByte(')')
	case LogicalAnd:
		n.dumpInfix(b, "AND")
	case LogicalOr:
		n.dumpInfix(b, "OR")
	case LogicalNot:
		b.WriteString("NOT(")
		n.Children[0].dump(b)
		b.WriteByte(')')
	case Conditional:
		b.WriteString("IF(")
		n.Children[0].dump(b)
		b.WriteString(", ")
		n.Children[1].dump(b)
		b.WriteString(", ")
		n.Children[2].dump(b)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "Kind(%d)", int(n.Kind))
	}
}

func (n *Node) dumpInfix(b *strings.Builder, op string) {
	b.WriteByte('(')
	n.Children[0].dump(b)
	fmt.Fprintf(b, " %s ", op)
	n.Children[1].dump(b)
	b.WriteByte(')')
}
