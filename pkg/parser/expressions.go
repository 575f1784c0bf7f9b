package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/internal/catalog"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
)

// parsePrimary parses the tightest-binding production: a numeric literal,
// the reserved constants PI/E, a variable/parameter name, a catalogue
// function call, or the conditional form IF(cond, then, else).
func (p *parser) parsePrimary(lo, hi, depth int) (*ast.Node, error) {
	if lo >= hi {
		return nil, funcerr.Syntaxf(lo, "empty subexpression")
	}

	r := p.src[lo]

	switch {
	case unicode.IsDigit(r):
		return p.parseNumber(lo, hi)
	case r == normalize.If:
		return p.parseConditional(lo, hi, depth)
	case r == normalize.Mod, r == normalize.Min, r == normalize.Max:
		return p.parseSurrogateCall(lo, hi, depth)
	case isIdentStart(r):
		return p.parseIdentifier(lo, hi, depth)
	default:
		return nil, funcerr.Syntaxf(lo, "unexpected token %q", string(r))
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

func toUpperASCIIName(name string) string { return strings.ToUpper(name) }

// parseNumber parses `[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`; the full span
// [lo,hi) must be consumed, any trailing character is a syntax error.
func (p *parser) parseNumber(lo, hi int) (*ast.Node, error) {
	i := lo
	for i < hi && unicode.IsDigit(p.src[i]) {
		i++
	}
	if i < hi && p.src[i] == '.' && i+1 < hi && unicode.IsDigit(p.src[i+1]) {
		i++
		for i < hi && unicode.IsDigit(p.src[i]) {
			i++
		}
	}
	if i < hi && (p.src[i] == 'e' || p.src[i] == 'E') {
		j := i + 1
		if j < hi && (p.src[j] == '+' || p.src[j] == '-') {
			j++
		}
		if j < hi && unicode.IsDigit(p.src[j]) {
			i = j
			for i < hi && unicode.IsDigit(p.src[i]) {
				i++
			}
		}
	}
	if i != hi {
		return nil, funcerr.Syntaxf(i, "unexpected character %q in numeric literal", string(p.src[i]))
	}

	v, err := strconv.ParseFloat(string(p.src[lo:hi]), 64)
	if err != nil {
		return nil, funcerr.Syntaxf(lo, "invalid numeric literal %q", string(p.src[lo:hi]))
	}

	return ast.NewConstant(v), nil
}

// parseIdentifier resolves a name: reserved constants first, then a call
// form if immediately followed by '(', then variable, then parameter.
func (p *parser) parseIdentifier(lo, hi, depth int) (*ast.Node, error) {
	end := lo + 1
	for end < hi && isIdentPart(p.src[end]) {
		end++
	}
	name := string(p.src[lo:end])

	// lookupKey is the string looked up against p.variables/p.parameters,
	// which indexNames built with the same case-sensitivity rule: folded
	// to uppercase when matching is case-insensitive, verbatim otherwise.
	// Using the uppercased form unconditionally here (regardless of
	// p.caseSensitive) would make SetCaseSensitive(true) fail to find any
	// non-all-caps name even though it was registered exactly as spelled.
	lookupKey := name
	if !p.caseSensitive {
		lookupKey = toUpperASCIIName(name)
	}

	if end == hi {
		switch lookupKey {
		case "PI":
			return ast.NewConstant(piValue), nil
		case "E":
			return ast.NewConstant(eValue), nil
		}
	}

	if end < hi && p.src[end] == '(' {
		// The normalizer's boundary rule leaves an "IF(" that directly
		// follows another operator (as in "2*IF(x,1,0)") unreplaced, so the
		// keyword can still reach the identifier path here in word form.
		if lookupKey == "IF" {
			return p.parseConditionalCall(lo, end, hi, depth)
		}

		return p.parseCall(lo, end, hi, name, depth)
	}
	if end != hi {
		return nil, funcerr.Syntaxf(lo, "unexpected trailing characters after identifier %q", name)
	}

	if idx, ok := p.variables[lookupKey]; ok {
		return ast.NewVariable(idx, p.varNames[idx]), nil
	}
	if idx, ok := p.parameters[lookupKey]; ok {
		return ast.NewParameter(idx, p.paramNames[idx]), nil
	}

	return nil, funcerr.UnknownIdentifierf(lo, "unknown identifier %q", name)
}

// parseSurrogateCall handles MOD/MIN/MAX, which the normalizer collapses
// to single reserved runes; they are always call-form (MOD(a,b) etc, never
// infix), so a '(' must immediately follow.
func (p *parser) parseSurrogateCall(lo, hi, depth int) (*ast.Node, error) {
	name := normalize.CatalogNames[p.src[lo]]
	if lo+1 >= hi || p.src[lo+1] != '(' {
		return nil, funcerr.Syntaxf(lo, "%s must be used as a function call", name)
	}

	return p.parseCall(lo, lo+1, hi, name, depth)
}

// parseCall parses the call-form "name(arg, arg, ...)", where parenOpen is
// the index of the opening '(' and hi is one past its matching ')'.
func (p *parser) parseCall(lo, parenOpen, hi int, name string, depth int) (*ast.Node, error) {
	if p.src[hi-1] != ')' || !p.parenMatches(parenOpen, hi-1) {
		return nil, funcerr.Syntaxf(parenOpen, "unterminated call to %q", name)
	}

	entry, err := p.lookupFunc(lo, name)
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs(parenOpen+1, hi-1, depth)
	if err != nil {
		return nil, err
	}
	if len(args) != entry.Arity {
		return nil, funcerr.Arityf(lo, "%s expects %d argument(s), got %d", entry.Name, entry.Arity, len(args))
	}

	return ast.NewCall(entry, args...), nil
}

// parenMatches reports whether the '(' at openIdx is matched by the ')' at
// closeIdx specifically (depth never returns to zero before closeIdx).
func (p *parser) parenMatches(openIdx, closeIdx int) bool {
	depth := 0
	for i := openIdx; i <= closeIdx; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == closeIdx
			}
		}
	}

	return false
}

// parseArgs splits [lo,hi) at depth-0 commas and parses each piece as an
// independent subexpression. An empty argument list (lo==hi) yields zero
// arguments; a dangling comma such as "(1,)" surfaces as a SyntaxError from
// the empty trailing subexpression.
func (p *parser) parseArgs(lo, hi, depth int) ([]*ast.Node, error) {
	if lo == hi {
		return nil, nil
	}

	var bounds []int
	depthCount := 0
	start := lo
	var args []*ast.Node
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case '(':
			depthCount++
		case ')':
			depthCount--
		case ',':
			if depthCount == 0 {
				bounds = append(bounds, start, i)
				start = i + 1
			}
		}
	}
	bounds = append(bounds, start, hi)

	for i := 0; i < len(bounds); i += 2 {
		node, err := p.parseSpan(bounds[i], bounds[i+1], depth+1)
		if err != nil {
			return nil, err
		}
		args = append(args, node)
	}

	return args, nil
}

func (p *parser) lookupFunc(pos int, name string) (*catalog.Entry, error) {
	entry, ok := catalog.Lookup(name, p.caseSensitive)
	if !ok {
		return nil, funcerr.UnknownFunctionf(pos, "unknown function %q", name)
	}

	return entry, nil
}

func (p *parser) newCall(pos int, name string, children ...*ast.Node) (*ast.Node, error) {
	entry, err := p.lookupFunc(pos, name)
	if err != nil {
		return nil, err
	}
	if len(children) != entry.Arity {
		return nil, funcerr.Arityf(pos, "%s expects %d argument(s), got %d", entry.Name, entry.Arity, len(children))
	}

	return ast.NewCall(entry, children...), nil
}
