package parser

import (
	"strings"

	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
)

// Options configures one Parse call. VariableNames and ParameterNames are
// consulted in that order when a bare identifier is resolved (variables
// shadow parameters); an identifier present in neither and not a reserved
// constant is an UnknownIdentifier.
type Options struct {
	VariableNames  []string
	ParameterNames []string
	CaseSensitive  bool
	ComparisonTol  float64
	MaxDepth       int
}

type parser struct {
	src           []rune
	variables     map[string]int
	parameters    map[string]int
	varNames      []string
	paramNames    []string
	tol           float64
	maxDepth      int
	caseSensitive bool
}

// Parse builds an expression tree from a string already produced by
// normalize.Normalize. It does not re-normalize; callers own that step.
func Parse(normalized string, opts Options) (*ast.Node, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	p := &parser{
		src:           []rune(normalized),
		variables:     indexNames(opts.VariableNames, opts.CaseSensitive),
		parameters:    indexNames(opts.ParameterNames, opts.CaseSensitive),
		varNames:      opts.VariableNames,
		paramNames:    opts.ParameterNames,
		tol:           opts.ComparisonTol,
		maxDepth:      maxDepth,
		caseSensitive: opts.CaseSensitive,
	}

	if len(p.src) == 0 {
		return nil, funcerr.Syntaxf(0, "empty expression")
	}

	return p.parseSpan(0, len(p.src), 0)
}

func indexNames(names []string, caseSensitive bool) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		key := n
		if !caseSensitive {
			key = strings.ToUpper(n)
		}
		m[key] = i
	}

	return m
}

// parseSpan is the single entry point every recursive descent step must
// call when it wants to parse an independent subexpression: it strips a
// matched pair of outermost parentheses (repeatedly, since "((x))" sheds
// two pairs) and then restarts scanning from the top of the precedence
// ladder.
func (p *parser) parseSpan(lo, hi, depth int) (*ast.Node, error) {
	if depth > p.maxDepth {
		return nil, funcerr.Syntaxf(lo, "expression exceeds maximum nesting depth (%d)", p.maxDepth)
	}

	for {
		nlo, nhi, stripped := p.stripOuterParens(lo, hi)
		if !stripped {
			break
		}
		lo, hi = nlo, nhi
	}

	if lo >= hi {
		return nil, funcerr.Syntaxf(lo, "empty subexpression")
	}

	return p.parseFromLevel(lo, hi, levelOr, depth)
}

// stripOuterParens reports whether [lo,hi) is wrapped in a single matched
// pair of parentheses — opening at lo, whose match is at hi-1 — and if so
// returns the interior range. Detection requires the paren depth never
// return to zero before the final character, so "(a)+(b)" is correctly
// rejected (its leading '(' closes well before hi).
func (p *parser) stripOuterParens(lo, hi int) (int, int, bool) {
	if hi-lo < 2 || p.src[lo] != '(' || p.src[hi-1] != ')' {
		return lo, hi, false
	}

	depth := 0
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != hi-1 {
				return lo, hi, false
			}
		}
	}

	return lo + 1, hi - 1, true
}

// parseFromLevel scans [lo,hi) for a split point at the given precedence
// level. If one is found, both sides are parsed via parseSpan (a fresh
// entry point: they are independent subexpressions). If none is found, the
// same span descends to the next level without re-stripping parens, since
// it is not a new subexpression boundary.
func (p *parser) parseFromLevel(lo, hi, level, depth int) (*ast.Node, error) {
	switch level {
	case levelOr:
		if i, ok := p.splitLeftAssoc(lo, hi, isRune(normalize.Or)); ok {
			return p.combineLogical(ast.LogicalOr, lo, hi, i, 1, depth)
		}
	case levelAnd:
		if i, ok := p.splitLeftAssoc(lo, hi, isRune(normalize.And)); ok {
			return p.combineLogical(ast.LogicalAnd, lo, hi, i, 1, depth)
		}
	case levelNot:
		if p.src[lo] == normalize.Not {
			child, err := p.parseSpan(lo+1, hi, depth+1)
			if err != nil {
				return nil, err
			}

			return ast.NewLogical(ast.LogicalNot, child), nil
		}
	case levelCompare:
		if i, width, name, ok := p.splitComparison(lo, hi); ok {
			return p.combineComparison(lo, hi, i, width, name, depth)
		}
	case levelAdditive:
		if i, ok := p.splitAdditive(lo, hi); ok {
			return p.combineArithmetic(lo, hi, i, 1, depth)
		}
	case levelMultiplicative:
		if i, ok := p.splitLeftAssoc(lo, hi, isAnyRune('*', '/')); ok {
			return p.combineArithmetic(lo, hi, i, 1, depth)
		}
	case levelUnary:
		if p.src[lo] == '+' || p.src[lo] == '-' {
			name := "UPLUS"
			if p.src[lo] == '-' {
				name = "UMINUS"
			}
			child, err := p.parseSpan(lo+1, hi, depth+1)
			if err != nil {
				return nil, err
			}

			return p.newCall(lo, name, child)
		}
	case levelExponent:
		if i, ok := p.splitRightAssoc(lo, hi, isRune('^')); ok {
			return p.combineArithmetic(lo, hi, i, 1, depth)
		}
	case levelPrimary:
		return p.parsePrimary(lo, hi, depth)
	}

	return p.parseFromLevel(lo, hi, level+1, depth)
}

func (p *parser) combineLogical(kind ast.Kind, lo, hi, splitAt, width, depth int) (*ast.Node, error) {
	left, err := p.parseSpan(lo, splitAt, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := p.parseSpan(splitAt+width, hi, depth+1)
	if err != nil {
		return nil, err
	}

	return ast.NewLogical(kind, left, right), nil
}

func (p *parser) combineArithmetic(lo, hi, splitAt, width, depth int) (*ast.Node, error) {
	left, err := p.parseSpan(lo, splitAt, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := p.parseSpan(splitAt+width, hi, depth+1)
	if err != nil {
		return nil, err
	}

	return p.newCall(lo, string(p.src[splitAt:splitAt+width]), left, right)
}

func (p *parser) combineComparison(lo, hi, splitAt, width int, name string, depth int) (*ast.Node, error) {
	left, err := p.parseSpan(lo, splitAt, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := p.parseSpan(splitAt+width, hi, depth+1)
	if err != nil {
		return nil, err
	}

	entry, err := p.lookupFunc(lo, name)
	if err != nil {
		return nil, err
	}

	return ast.NewComparison(entry, p.tol, left, right), nil
}

// isRune returns a predicate matching exactly r.
func isRune(r rune) func(rune) bool { return func(x rune) bool { return x == r } }

// isAnyRune returns a predicate matching any of rs.
func isAnyRune(rs ...rune) func(rune) bool {
	return func(x rune) bool {
		for _, r := range rs {
			if x == r {
				return true
			}
		}

		return false
	}
}
