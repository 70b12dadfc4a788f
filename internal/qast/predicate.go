package qast

// Operator tokens used on Compare nodes. These are internal tokens, not
// SQL text: the renderer owns the mapping from token to dialect syntax.
const (
	OpEq        = "="
	OpNe        = "!="
	OpGt        = ">"
	OpGte       = ">="
	OpLt        = "<"
	OpLte       = "<="
	OpIn        = "IN"
	OpNotIn     = "NOT IN"
	OpBetween   = "BETWEEN"
	OpLike      = "LIKE"
	OpILike     = "ILIKE"
	OpIsNull    = "IS NULL"
	OpIsNotNull = "IS NOT NULL"
	OpHasAny    = "hasAny"
	OpHasAll    = "hasAll"
	OpInTuple   = "inTuple"
	OpExists    = "EXISTS"
	OpNotExists = "NOT EXISTS"
)

// PredicateNode represents a node in the boolean-logic tree attached to
// WHERE, PREWHERE, HAVING, and JOIN ON positions.
//
// This is a sealed interface - only types in this package implement it.
//
// PredicateNode types:
//   - Compare: left-operator-right comparison
//   - AndGroup: ordered conjunction
//   - OrGroup: ordered disjunction
//   - NotGroup: negation of a single child
//   - RawPredicate: opaque SQL passthrough
type PredicateNode interface {
	predicateNode() // Marker method - seals interface to this package
}

// Compare is a single comparison: left operator right.
//
// Left is nil for EXISTS/NOT EXISTS, which have no left operand. Right is
// nil for IS NULL/IS NOT NULL.
type Compare struct {
	Left  Expr
	Op    string
	Right Expr
}

func (Compare) predicateNode() {}

// AndGroup is an ordered conjunction of child predicates.
//
// FromCombinator distinguishes a group built from an explicit And(...)
// combinator from a group produced by merging independent WHERE
// conditions. It is the sole signal the renderer uses when deciding
// whether a top-level AND needs parentheses, and it is not recoverable
// from structure alone, so it must survive normalization unchanged.
type AndGroup struct {
	Children       []PredicateNode
	FromCombinator bool
}

func (AndGroup) predicateNode() {}

// OrGroup is an ordered disjunction of child predicates.
type OrGroup struct {
	Children []PredicateNode
}

func (OrGroup) predicateNode() {}

// NotGroup negates a single child predicate.
type NotGroup struct {
	Child PredicateNode
}

func (NotGroup) predicateNode() {}

// RawPredicate is opaque SQL text used in predicate position. Like Raw
// expressions it bypasses escaping and is surfaced as a validator warning.
type RawPredicate struct {
	SQL string
}

func (RawPredicate) predicateNode() {}
