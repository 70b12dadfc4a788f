package qast

// Expr represents an expression node in the query AST.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the normalizer.
//
// Expr types:
//   - Column: a column reference, optionally table-qualified and aliased
//   - Value: a literal primitive (string/number/bool/time/nil)
//   - Array: an ordered list of expressions
//   - Tuple: a fixed-arity expression group
//   - Subquery: a nested SelectNode used in expression position
//   - Raw: opaque SQL text that bypasses quoting and escaping
//   - Func: a function call with ordered arguments
//   - Case: a CASE expression with (condition, then) branches
//
// Any Expr used in SELECT-column position may carry an alias. Raw and Func
// never receive automatic quoting.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Column is a reference to a column, optionally qualified by table and
// optionally aliased in SELECT position.
//
// Name may itself contain a dot ("events.user_id"); the renderer splits
// qualified names and quotes each segment independently.
type Column struct {
	Name  string // Column name, possibly "table.column"
	Table string // Optional explicit table qualifier
	Alias string // Optional SELECT alias
}

func (Column) exprNode() {}

// Value is a literal primitive embedded directly into the rendered SQL.
// Supported kinds are strings, integers, floats, decimals, booleans,
// time.Time, nil, and slices/maps of the same.
type Value struct {
	V any
}

func (Value) exprNode() {}

// Array is an ordered list of expressions, rendered as a bracketed list.
type Array struct {
	Items []Expr
}

func (Array) exprNode() {}

// Tuple is a fixed-arity group of expressions, rendered parenthesized.
// BETWEEN endpoints and IN-tuple elements are tuples.
type Tuple struct {
	Items []Expr
}

func (Tuple) exprNode() {}

// Subquery wraps a nested SelectNode used in expression position: a scalar
// SELECT column, an IN right-hand side, or an EXISTS argument.
//
// Callers construct the wrapper explicitly at the point a nested builder is
// passed in; nothing downstream probes dynamic types to discover nesting.
type Subquery struct {
	Node  *SelectNode
	Alias string // Optional SELECT alias
}

func (Subquery) exprNode() {}

// Raw is opaque SQL text passed through verbatim.
//
// Raw explicitly bypasses identifier quoting and value escaping. The
// validator records a warning whenever a Raw expression is present so
// callers can audit bypassed escaping.
type Raw struct {
	SQL   string
	Alias string
}

func (Raw) exprNode() {}

// Func is a function call expression. The name and arguments are rendered
// without automatic quoting of the assembled call text.
type Func struct {
	Name  string
	Args  []Expr
	Alias string
}

func (Func) exprNode() {}

// CaseWhen is one (condition, then) branch of a Case expression.
type CaseWhen struct {
	Cond PredicateNode
	Then Expr
}

// Case is a CASE WHEN ... THEN ... [ELSE ...] END expression.
// Branch order is significant and preserved through normalization.
type Case struct {
	Whens []CaseWhen
	Else  Expr // nil means no ELSE branch
	Alias string
}

func (Case) exprNode() {}
