package parser

import (
	"unicode"

	"github.com/Yuri05/OSPSuite.FuncParser/pkg/normalize"
)

// splitLeftAssoc scans [lo,hi) for depth-0 runes matching pred and returns
// the rightmost one, implementing left-associative splitting: the
// rightmost occurrence becomes the top of the (sub)tree, so "a-b-c" parses
// as (a-b)-c rather than a-(b-c).
func (p *parser) splitLeftAssoc(lo, hi int, pred func(rune) bool) (int, bool) {
	depth := 0
	found := -1
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth == 0 && pred(p.src[i]) {
				found = i
			}
		}
	}

	return found, found >= 0
}

// splitRightAssoc scans [lo,hi) for depth-0 runes matching pred and returns
// the leftmost one, implementing right-associative splitting used by `^`:
// "2^3^2" parses as 2^(3^2). Unary NOT is handled separately, by checking
// the span's leading rune in parseFromLevel.
func (p *parser) splitRightAssoc(lo, hi int, pred func(rune) bool) (int, bool) {
	depth := 0
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth == 0 && pred(p.src[i]) {
				return i, true
			}
		}
	}

	return -1, false
}

// operatorPrefix reports whether r ends an operator or opening token such
// that a following '+'/'-' must be a unary sign rather than a binary
// operator. "1+-2" must split only at the first '+': the second run ('-')
// sits directly after '+' and is therefore a sign, not an addend operator.
func operatorPrefix(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '^', ',', '(',
		normalize.And, normalize.Or, normalize.Not,
		'=', '<', '>', normalize.LessEq, normalize.GreaterEq, normalize.NotEqual:
		return true
	default:
		return false
	}
}

// isExponentSign reports whether the '+'/'-' at i is the signed part of a
// numeric literal's exponent suffix ("1E-5", "2.3e+8") rather than an
// additive operator: it must sit directly after 'e'/'E', which itself sits
// directly after a digit or '.', and must itself be followed by a digit.
// The digit run before the 'e'/'E' must not itself continue an identifier,
// so names like "xe-1" or "a1e-2" are never misclassified.
func isExponentSign(runes []rune, i int) bool {
	if i == 0 {
		return false
	}
	prev := runes[i-1]
	if prev != 'e' && prev != 'E' {
		return false
	}
	if i < 2 {
		return false
	}
	beforeE := runes[i-2]
	if !unicode.IsDigit(beforeE) && beforeE != '.' {
		return false
	}
	j := i - 2
	for j >= 0 && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
		j--
	}
	if j >= 0 && isIdentPart(runes[j]) {
		return false
	}

	return i+1 < len(runes) && unicode.IsDigit(runes[i+1])
}

// splitAdditive is splitLeftAssoc specialized for '+'/'-', excluding
// positions that are actually a unary sign (the span's own first
// character, or any position immediately preceded by another operator
// character) or the signed exponent of a numeric literal.
func (p *parser) splitAdditive(lo, hi int) (int, bool) {
	depth := 0
	found := -1
	for i := lo; i < hi; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth == 0 && i > lo && !operatorPrefix(p.src[i-1]) && !isExponentSign(p.src, i) {
				found = i
			}
		}
	}

	return found, found >= 0
}

// comparisonNames maps each single-rune comparison token (surrogate or
// literal) to the catalogue entry name it invokes.
var comparisonNames = map[rune]string{
	'=':                 "=",
	normalize.NotEqual:  "<>",
	'<':                 "<",
	normalize.LessEq:    "<=",
	'>':                 ">",
	normalize.GreaterEq: ">=",
}

// splitComparison scans [lo,hi) for a depth-0 comparison token and returns
// its position, width (always 1 rune; digraphs were already collapsed to
// single surrogates by the normalizer), and catalogue name.
func (p *parser) splitComparison(lo, hi int) (int, int, string, bool) {
	pos, ok := p.splitLeftAssoc(lo, hi, func(r rune) bool {
		_, known := comparisonNames[r]

		return known
	})
	if !ok {
		return 0, 0, "", false
	}

	return pos, 1, comparisonNames[p.src[pos]], true
}
