// Package chquery is a type-safe SQL query builder for ClickHouse.
//
// Queries are described through fluent builder calls that mutate an
// abstract syntax tree; ToSQL compiles the tree through a three-stage
// pipeline - normalization into a self-contained intermediate
// representation, validation, and dialect rendering - into executable SQL
// text with values inlined directly (no parameter binding):
//
//	q, err := chquery.Select("id", "name").
//		From("users").
//		Where(chquery.Where{"age": chquery.Gt(18)}).
//		OrderBy("id", chquery.Asc).
//		ToSQL()
//	// q.SQL == "SELECT `id`, `name` FROM `users` WHERE `age` > 18 ORDER BY `id` ASC"
//
// Predicates compose through operators (Eq, Gt, In, Between, Like, ...)
// and boolean combinators (And, Or, Not); CASE expressions build through
// Case().When(...).Else(...). Updates and deletes render in the target
// engine's mutation form, ALTER TABLE ... UPDATE / DELETE.
//
// Compilation is synchronous and free of shared state: builders are plain
// per-call objects, every ToSQL call allocates its own IR, and concurrent
// callers may compile in parallel. A builder instance itself follows
// single-owner fluent discipline and is not safe for concurrent mutation.
//
// The compiler never touches a socket. Execution is delegated to the
// Runner interface, which consumes the compiled SQL string; the Params
// slice on CompiledQuery is always empty and retained only for interface
// stability.
//
// Failed compilation returns a *ValidationError before any network
// attempt, carrying the full joined list of validator errors plus
// structured fields (Code, Field, Value, QueryID) for programmatic
// handling. Raw-SQL usage produces warnings, not errors; strict callers
// inspect Validate() themselves.
package chquery
