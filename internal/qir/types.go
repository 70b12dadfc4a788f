package qir

// Kind identifies the statement shape a Query renders to.
type Kind string

const (
	KindSelect Kind = "SELECT"
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

// Query is the normalized form of one statement. A single flat struct
// covers all four statement kinds; the renderer switches on Kind and reads
// only the fields that kind uses.
type Query struct {
	Kind Kind

	// Target table. Exactly one of Table and TableSub is set for SELECT;
	// mutations always target a named table.
	Table      string
	TableSub   *Query
	TableAlias string

	// SELECT fields.
	Columns  []Expr
	Joins    []Join
	Prewhere Predicate
	Where    Predicate
	Having   Predicate
	GroupBy  []Expr
	OrderBy  []Order
	Limit    *int
	Offset   *int
	Distinct bool
	Final    bool
	CTEs     []CTE
	SetOps   []SetOp

	// INSERT fields.
	InsertColumns []string
	Rows          [][]Expr

	// UPDATE fields. Map order is unspecified; renderers sort keys for
	// deterministic output.
	Set map[string]Expr

	// Shared trailer clauses.
	Settings map[string]any
	Format   string
}

// Join is one normalized JOIN clause.
type Join struct {
	Type  string // SQL join keyword, e.g. "INNER JOIN"
	Table string
	Sub   *Query
	Alias string
	On    Predicate
}

// Order is one normalized ORDER BY term.
type Order struct {
	Expr Expr
	Desc bool
}

// CTE is one normalized WITH entry.
type CTE struct {
	Name  string
	Query *Query
}

// SetOp is one normalized UNION / UNION ALL operand.
type SetOp struct {
	All   bool
	Query *Query
}

// Expr is a normalized expression node.
//
// Sealed interface - only types in this package implement it. Function
// and CASE nodes keep their recursive structure; everything else is flat
// plain data.
type Expr interface {
	exprIR() // Marker method - seals interface to this package
}

// ColumnRef is a resolved column reference. Ref is the pre-joined
// "table.column" (or bare "column") string.
type ColumnRef struct {
	Ref   string
	Alias string
}

func (ColumnRef) exprIR() {}

// Literal is a plain literal value.
type Literal struct {
	V     any
	Alias string
}

func (Literal) exprIR() {}

// ArrayExpr is an ordered list of normalized expressions.
type ArrayExpr struct {
	Items []Expr
}

func (ArrayExpr) exprIR() {}

// TupleExpr is a parenthesized group of normalized expressions.
type TupleExpr struct {
	Items []Expr
}

func (TupleExpr) exprIR() {}

// SubqueryExpr is a nested query in expression position.
type SubqueryExpr struct {
	Query *Query
	Alias string
}

func (SubqueryExpr) exprIR() {}

// RawExpr is verbatim SQL text carried through normalization untouched.
type RawExpr struct {
	SQL   string
	Alias string
}

func (RawExpr) exprIR() {}

// FuncExpr is a function call with recursively normalized arguments.
type FuncExpr struct {
	Name  string
	Args  []Expr
	Alias string
}

func (FuncExpr) exprIR() {}

// CaseWhen is one normalized (condition, then) branch.
type CaseWhen struct {
	Cond Predicate
	Then Expr
}

// CaseExpr is a normalized CASE expression. Branches keep structure so the
// renderer can format conditions and results per node type.
type CaseExpr struct {
	Whens []CaseWhen
	Else  Expr
	Alias string
}

func (CaseExpr) exprIR() {}

// Predicate is a normalized boolean-logic node.
//
// Sealed interface - only types in this package implement it. Every
// predicate node carries IsPrewhere: PREWHERE and WHERE trees are lowered
// by the identical function and differ only in rendering position, so the
// tag is the sole record of which clause a tree belongs to.
type Predicate interface {
	predicateIR() // Marker method - seals interface to this package
}

// CompareNode is a normalized comparison. Left is nil for EXISTS-family
// operators. Right is the extracted plain-data right-hand side.
type CompareNode struct {
	Left       Expr
	Op         string
	Right      RHS
	IsPrewhere bool
}

func (CompareNode) predicateIR() {}

// AndNode is a normalized conjunction. FromCombinator is preserved
// end-to-end from the builder: it marks groups built from an explicit
// And(...) combinator, as opposed to groups merged from repeated WHERE
// calls, and drives the renderer's parenthesization tie-break.
type AndNode struct {
	Children       []Predicate
	FromCombinator bool
	IsPrewhere     bool
}

func (AndNode) predicateIR() {}

// OrNode is a normalized disjunction.
type OrNode struct {
	Children   []Predicate
	IsPrewhere bool
}

func (OrNode) predicateIR() {}

// NotNode is a normalized negation.
type NotNode struct {
	Child      Predicate
	IsPrewhere bool
}

func (NotNode) predicateIR() {}

// RawPredicateNode is verbatim predicate SQL.
type RawPredicateNode struct {
	SQL        string
	IsPrewhere bool
}

func (RawPredicateNode) predicateIR() {}

// RHS is the plain-data union for a comparison right-hand side.
//
// Sealed interface - only types in this package implement it. Extracting
// values out of expression wrappers here keeps the renderer's predicate
// logic operating on plain data.
type RHS interface {
	rhsNode() // Marker method - seals interface to this package
}

// RHSValue is a scalar literal right-hand side.
type RHSValue struct {
	V any
}

func (RHSValue) rhsNode() {}

// RHSArray is a list right-hand side (IN, hasAny, hasAll). Elements are
// plain values; an element may itself be a []any tuple for tuple-list
// membership.
type RHSArray struct {
	Items []any
}

func (RHSArray) rhsNode() {}

// RHSTuple is a fixed-arity right-hand side (BETWEEN endpoints).
type RHSTuple struct {
	Items []any
}

func (RHSTuple) rhsNode() {}

// RHSColumn is a column-reference right-hand side (column-to-column
// comparison).
type RHSColumn struct {
	Ref string
}

func (RHSColumn) rhsNode() {}

// RHSSubquery marks a nested query right-hand side. The renderer recurses
// into the nested query and parenthesizes the result.
type RHSSubquery struct {
	Query *Query
}

func (RHSSubquery) rhsNode() {}

// RHSExpr is the structured fallback for right-hand sides that are
// themselves functions, CASE expressions, or raw SQL.
type RHSExpr struct {
	E Expr
}

func (RHSExpr) rhsNode() {}

// RHSNone marks operators with no right operand (IS NULL, IS NOT NULL).
type RHSNone struct{}

func (RHSNone) rhsNode() {}
