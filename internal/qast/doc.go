// Package qast defines the abstract syntax tree produced by the fluent
// query builders.
//
// The AST is the mutable, builder-facing representation of a query. Fluent
// builder calls append to and overwrite fields on a single statement node
// (SelectNode, InsertNode, UpdateNode, DeleteNode); the normalizer then
// lowers the finished tree into the self-contained IR consumed by the
// renderer:
//
//	[builders] → [qast] → [qir] → [chsql]
//
// SEALED INTERFACES:
//
// Expr, PredicateNode, and Node are sealed interfaces using the marker
// method pattern. Only types in this package implement them.
//
// This enables:
//   - Exhaustive type switches in the normalizer and validator
//   - Compile-time safety against external extensions
//   - A closed grammar: every construct the renderer must reproduce is
//     enumerated here
//
// VALIDATION:
//
// Validate walks a statement node and returns a ValidationResult. It is a
// pure function and never panics: all failure paths accumulate into the
// result's error list so the same walk serves both advisory validation and
// the mandatory gate inside ToSQL. See validate.go.
package qast
