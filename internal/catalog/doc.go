// Package catalog provides the fixed, process-wide registry of elementary
// functions and operators available to parsed expressions.
//
// The table is built exactly once and never mutates afterward, so it is
// shared by every ParsedFunction instance in the process and is safe for
// concurrent reads without coordination.
//
// Entries cover:
//   - unary numeric functions (SIN, COS, SQRT, ABS, ...)
//   - binary numeric operators (+, -, *, /, ^, MIN, MAX, MOD)
//   - comparison operators (=, <>, <, <=, >, >=), tolerance-aware
//
// Logical AND/OR/NOT and the ternary IF conditional are not catalogue
// entries: their short-circuit and policy-dependent (logicalNumericAllowed)
// semantics don't fit the uniform "evaluate all children, then call"
// EvalFunc shape, so internal/ast and pkg/funceval give them dedicated node
// kinds instead (see ast.LogicalAnd/LogicalOr/LogicalNot/Conditional).
//
// Canonical entry names are uppercase; Lookup folds the requested name to
// uppercase unless the caller asks for case-sensitive matching.
package catalog
