package normalize

import (
	"strings"
	"unicode"

	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
)

// Surrogate runes replace multi-character word-operators and comparison
// digraphs with single characters drawn from the Unicode private-use area,
// so that every later pass (precedence splitting, primary parsing) can
// compare a single rune instead of re-scanning for keyword boundaries.
const (
	And        rune = '' // AND
	Or         rune = '' // OR
	Not        rune = '' // NOT
	If         rune = '' // IF
	Mod        rune = '' // MOD
	Min        rune = '' // MIN
	Max        rune = '' // MAX
	LessEq     rune = '' // <=
	GreaterEq  rune = '' // >=
	NotEqual   rune = '' // <>
)

// CatalogNames maps each surrogate rune back to the catalogue entry name it
// stands for. AND, OR, NOT and IF are not catalogue entries (they're parsed
// into dedicated node kinds) and are intentionally absent here.
var CatalogNames = map[rune]string{
	Mod:       "MOD",
	Min:       "MIN",
	Max:       "MAX",
	LessEq:    "<=",
	GreaterEq: ">=",
	NotEqual:  "<>",
}

// word is one entry of the keyword table: the literal text to match and the
// surrogate rune it collapses to.
type word struct {
	text string
	rep  rune
}

// words is checked longest-match-first is unnecessary here since every
// entry has a fixed, non-overlapping spelling; order only affects which
// keyword wins when two share a prefix, and none do.
var words = []word{
	{"AND", And},
	{"OR", Or},
	{"NOT", Not},
	{"IF", If},
	{"MOD", Mod},
	{"MIN", Min},
	{"MAX", Max},
}

// digraphs is checked before single-character comparison operators so that
// "<=" normalizes before a bare "<" would otherwise be recognized.
var digraphs = []word{
	{"<=", LessEq},
	{">=", GreaterEq},
	{"<>", NotEqual},
}

// Normalize rewrites raw into the canonical form the parser expects:
// whitespace-trimmed, paren-validated, word-operators and comparison
// digraphs collapsed to single surrogate runes, and internal whitespace
// collapsed to nothing (the parser is whitespace-insensitive, so there is
// no need to preserve a single space as a separator).
//
// When caseSensitive is false, every identifier character is folded to
// uppercase in the returned string; the caller's original spelling is not
// recoverable from the result; diagnostics that must quote the original
// text should hold onto raw themselves.
//
// The rewrite is a single left-to-right walk over raw, preceded by one
// balance-checking scan: O(n) time, O(n) additional space.
func Normalize(raw string, caseSensitive bool) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if err := checkBalance(trimmed); err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(trimmed))

	runes := []rune(trimmed)
	n := len(runes)

	for i := 0; i < n; {
		if unicode.IsSpace(runes[i]) {
			i++

			continue
		}

		if rep, width, ok := matchDigraph(runes, i); ok {
			out.WriteRune(rep)
			i += width

			continue
		}

		if rep, width, ok := matchWord(runes, i); ok {
			out.WriteRune(rep)
			i += width

			continue
		}

		ch := runes[i]
		if !caseSensitive {
			ch = unicode.ToUpper(ch)
		}
		out.WriteRune(ch)
		i++
	}

	return out.String(), nil
}

// matchDigraph reports whether a comparison digraph starts at i. Digraphs
// have no word-boundary restriction (unlike AND/OR/NOT/IF/MOD/MIN/MAX):
// "<=" cannot be confused with an identifier since "<" never appears inside
// one.
func matchDigraph(runes []rune, i int) (rune, int, bool) {
	for _, d := range digraphs {
		w := []rune(d.text)
		if hasPrefixAt(runes, i, w) {
			return d.rep, len(w), true
		}
	}

	return 0, 0, false
}

// matchWord reports whether a word-operator starts at i, honoring the
// boundary rule from spec: the match is only accepted when preceded by
// start-of-string, whitespace, or '(' and followed by whitespace or '(' (or
// end-of-string), so that "ORANGE" and "MODE" are never mistaken for the
// keywords "OR" and "MOD".
func matchWord(runes []rune, i int) (rune, int, bool) {
	for _, w := range words {
		lit := []rune(w.text)
		if !hasPrefixFold(runes, i, lit) {
			continue
		}
		if !precededByBoundary(runes, i) {
			continue
		}
		end := i + len(lit)
		if !followedByBoundary(runes, end) {
			continue
		}

		return w.rep, len(lit), true
	}

	return 0, 0, false
}

func hasPrefixAt(runes []rune, i int, prefix []rune) bool {
	if i+len(prefix) > len(runes) {
		return false
	}
	for j, r := range prefix {
		if runes[i+j] != r {
			return false
		}
	}

	return true
}

func hasPrefixFold(runes []rune, i int, prefix []rune) bool {
	if i+len(prefix) > len(runes) {
		return false
	}
	for j, r := range prefix {
		if unicode.ToUpper(runes[i+j]) != r {
			return false
		}
	}

	return true
}

func precededByBoundary(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := runes[i-1]

	return unicode.IsSpace(prev) || prev == '('
}

func followedByBoundary(runes []rune, end int) bool {
	if end >= len(runes) {
		return true
	}
	next := runes[end]

	return unicode.IsSpace(next) || next == '('
}

// checkBalance validates that parentheses pair up and never go negative,
// failing fast so the parser never has to recover from a malformed bracket
// structure. A stray ')' is reported at its byte offset; unclosed '(' are
// reported at len(s), the end of the input.
func checkBalance(s string) error {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return funcerr.Syntaxf(i, "unbalanced parenthesis: unexpected ')'")
			}
		}
	}
	if depth != 0 {
		return funcerr.Syntaxf(len(s), "unbalanced parenthesis: %d unclosed '('", depth)
	}

	return nil
}
