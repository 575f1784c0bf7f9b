// Package normalize implements the single-pass lexical normalizer that sits
// between a caller's raw expression string and the parser.
//
// It is a cursor-driven scanner that rewrites the input in one walk (after
// one parenthesis-balance scan), but it does not tokenize. The parser operates on the normalized string directly,
// splitting at operator characters rather than consuming a token stream, so
// this package's job stops at rewriting the text into a canonical
// single-character alphabet: word-operators and comparison digraphs become
// private-use-area surrogate runes, outer whitespace is trimmed, and
// internal whitespace is collapsed. Paren balance is validated here too,
// since an unbalanced expression should fail before the parser ever sees it.
package normalize
