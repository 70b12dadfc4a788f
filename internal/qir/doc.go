// Package qir defines the normalized intermediate representation (IR) of
// a query and the lowering from the builder-facing AST.
//
// The IR is the abstraction boundary between the fluent builders and the
// dialect renderer:
//
//	[qast] → Normalize → [qir] → [chsql renderer]
//
// Once normalized, no IR node references the original AST objects: the IR
// is fully self-contained, so a renderer can be handed a *Query without
// any builder state in scope. IR graphs are produced transiently per
// ToSQL call and discarded after rendering; nothing is cached across
// calls.
//
// SHAPE PRESERVATION:
//
// Column references are resolved into pre-joined "table.column" strings,
// but function calls and CASE expressions keep their recursive structure
// (arguments and branches are normalized ExprIR, never pre-rendered
// strings). This lets the renderer apply per-node dialect formatting,
// such as rewriting a cast call into CAST(x AS T), without re-parsing
// text.
//
// The right-hand side of every comparison is extracted into a plain data
// union (RHS) - scalar, array, tuple, column reference, or nested query -
// so the renderer's predicate logic operates on plain values rather than
// expression wrappers.
//
// ERROR CHANNEL:
//
// Normalize runs the AST validator first and funnels its own lowering
// failures (unsupported node kinds) into the same ValidationResult, so
// callers see one unified error channel for both validation and
// normalization.
package qir
