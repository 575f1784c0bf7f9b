// Package funcparser exposes ParsedFunction, the front-facing aggregate
// that callers actually construct: it owns the variable/parameter name
// lists, the parameter values, the policy flags, and the two retained
// trees (original and, when allowed, simplified), and drives them through
// pkg/normalize, pkg/parser, and pkg/funceval in sequence.
//
// A ParsedFunction is configured once (names, values, policy flags),
// parsed once, and then evaluated many times at different argument
// vectors, which is why this is a stateful type with a lifecycle rather
// than a single free parse-and-evaluate function.
package funcparser
