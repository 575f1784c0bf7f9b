// Package ast defines the expression tree node type shared by the parser,
// evaluator, and simplifier.
//
// There is exactly one node type, Node, whose Kind field selects which
// payload fields are meaningful. A single tagged variant instead of an
// interface with one concrete type per node shape keeps allocations down,
// avoids virtual dispatch during evaluation, and makes deep-cloning a
// plain recursive copy.
package ast
