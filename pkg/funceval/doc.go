// Package funceval implements the tree-walking evaluator and the
// constant-folding simplifier over internal/ast trees.
//
// Evaluation is a recursive switch on node kind, with logical operators
// and the conditional form special-cased ahead of the generic catalogue
// dispatch. Semantics are parameterized by a Policy rather than fixed at
// compile time, since the expression language's AND/OR/IF boolean coercion
// rules are a per-ParsedFunction configuration choice
// (logicalNumericAllowed), not a language constant.
package funceval
