// Package parser implements the recursive-descent, operator-precedence
// parser that turns a normalized expression string into an expression tree.
//
// Precedence levels live as a small const ladder in precedence.go, the
// recursive descent itself in parser.go, primary-form parsing (literals,
// identifiers, calls) in expressions.go, and the conditional form in
// conditionals.go. Rather than tokenizing first and climbing precedence
// over a token stream, the parser receives an already-normalized string
// and repeatedly splits index ranges at depth-tracked operator
// occurrences: at each precedence level it scans the current span for a
// candidate operator at paren depth 0, and if one exists, recurses on the
// two sides; if none exists, it descends to the next (higher-precedence)
// level. This index-splitting approach avoids a token slice entirely,
// keeping the whole parse to borrowed slices of one rune buffer.
package parser
