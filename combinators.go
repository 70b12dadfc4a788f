package chquery

// Where is a column-keyed predicate record: each key names a column and
// each value is an Operator, a nested Combinator scoped to that column,
// or a plain value (shorthand for Eq).
//
// A record with exactly one entry lowers to a single comparison; with
// multiple entries the comparisons implicitly AND-combine. The implicit
// group is NOT marked as combinator-built, so a top-level multi-key WHERE
// never picks up spurious parentheses.
type Where map[string]any

// combKind discriminates the three combinator shapes.
type combKind string

const (
	combAnd combKind = "and"
	combOr  combKind = "or"
	combNot combKind = "not"
)

// Combinator is an explicit boolean grouping of predicate inputs. Items
// may be Operators (either bare EXISTS-family operators, or any operator
// when the combinator is scoped to a column), Where records, or nested
// Combinators. Nothing is evaluated until lowering.
type Combinator struct {
	kind  combKind
	items []any
}

// And groups the inputs into an explicit conjunction.
//
// Unlike the implicit AND produced by a multi-key Where record or by
// repeated Where calls, an explicit And group is marked combinator-built,
// which is what entitles it to parentheses when it nests inside other
// boolean structure.
func And(items ...any) Combinator {
	return Combinator{kind: combAnd, items: items}
}

// Or groups the inputs into a disjunction. OR groups always render
// parenthesized.
func Or(items ...any) Combinator {
	return Combinator{kind: combOr, items: items}
}

// Not negates a single predicate input.
func Not(item any) Combinator {
	return Combinator{kind: combNot, items: []any{item}}
}
