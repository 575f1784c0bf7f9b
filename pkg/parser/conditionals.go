package parser

import (
	"github.com/Yuri05/OSPSuite.FuncParser/internal/ast"
	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
)

// parseConditional parses IF(cond, then, else). Unlike a catalogue call,
// the conditional is not looked up by name and carries no Entry; it gets
// its own ast.Conditional kind because its evaluation is short-circuiting
// (only the taken branch runs), a behavior the uniform catalogue EvalFunc
// signature cannot express.
func (p *parser) parseConditional(lo, hi, depth int) (*ast.Node, error) {
	if lo+1 >= hi || p.src[lo+1] != '(' {
		return nil, funcerr.Syntaxf(lo, "IF must be used as IF(cond, then, else)")
	}

	return p.parseConditionalCall(lo, lo+1, hi, depth)
}

// parseConditionalCall parses the "(cond, then, else)" part shared by the
// surrogate form and the word form "IF(" reached via the identifier path.
// parenOpen is the index of the opening '('; hi is one past the span's end.
func (p *parser) parseConditionalCall(lo, parenOpen, hi, depth int) (*ast.Node, error) {
	if p.src[hi-1] != ')' || !p.parenMatches(parenOpen, hi-1) {
		return nil, funcerr.Syntaxf(lo, "unterminated IF(...)")
	}

	args, err := p.parseArgs(parenOpen+1, hi-1, depth)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 {
		return nil, funcerr.Arityf(lo, "IF expects 3 arguments, got %d", len(args))
	}

	return ast.NewConditional(args[0], args[1], args[2]), nil
}
