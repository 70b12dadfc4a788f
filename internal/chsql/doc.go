// Package chsql renders the normalized query IR into final ClickHouse SQL
// text.
//
// This is the dialect layer: every formatting and safety decision
// concentrates here. The renderer owns
//
//   - identifier quoting (backticks, with the wildcard, numeric-literal,
//     and select-list function-text exceptions)
//   - value literal formatting (string escaping, date formatting, array
//     and map syntax) - values are inlined directly, never bound
//   - operator-to-syntax mapping, including the lambda-style array
//     membership idioms (arrayExists / arrayAll)
//   - boolean-tree parenthesization (OR always grouped, top-level AND
//     bare, NOT without doubled parens around group children)
//   - statement shapes: SELECT clause ordering, INSERT ... VALUES, and
//     the ALTER TABLE ... UPDATE / DELETE mutation forms of the target
//     engine
//
// Rendering is pure and synchronous: a Renderer holds no mutable state
// across calls and may be shared by concurrent callers.
package chsql
