package qast

// Node represents a statement root in the query AST.
//
// This is a sealed interface - only SelectNode, InsertNode, UpdateNode,
// and DeleteNode implement it. Each fluent builder owns exactly one Node
// and mutates it in place; the normalizer and validator are read-only
// consumers.
type Node interface {
	queryNode() // Marker method - seals interface to this package
}

// JoinType identifies the join flavor. Values are the SQL keywords so the
// renderer can emit them directly.
type JoinType string

const (
	JoinInner JoinType = "INNER JOIN"
	JoinLeft  JoinType = "LEFT JOIN"
	JoinRight JoinType = "RIGHT JOIN"
	JoinFull  JoinType = "FULL JOIN"
)

// TableRef is a FROM or JOIN target: either a named table or a nested
// subquery, optionally aliased. Exactly one of Name and Sub is set.
type TableRef struct {
	Name  string
	Sub   *SelectNode
	Alias string
}

// JoinSpec is one JOIN clause. On is required; the builders reject joins
// without an ON predicate before the AST is ever rendered.
type JoinSpec struct {
	Type  JoinType
	Table TableRef
	On    PredicateNode
}

// OrderBy is one ORDER BY term.
type OrderBy struct {
	Expr Expr
	Desc bool
}

// CTE is one WITH common-table-expression entry. CTEs are stored as given
// and not deeply validated.
type CTE struct {
	Name string
	Node *SelectNode
}

// SetOp composes this SELECT with another via UNION or UNION ALL.
type SetOp struct {
	All  bool
	Node *SelectNode
}

// SelectNode is the AST root for a SELECT statement.
type SelectNode struct {
	Columns  []Expr
	From     TableRef
	Joins    []JoinSpec
	PreWhere PredicateNode
	Where    PredicateNode
	Having   PredicateNode
	GroupBy  []Expr
	OrderBy  []OrderBy
	Limit    *int
	Offset   *int
	Distinct bool
	Final    bool
	Settings map[string]any
	Format   string
	CTEs     []CTE
	SetOps   []SetOp
}

func (*SelectNode) queryNode() {}

// InsertNode is the AST root for an INSERT statement rendered as SQL text.
// Only the explicit-VALUES insertion strategy reaches the renderer; the
// records and stream strategies are dispatched to the transport directly
// and never produce an InsertNode with Rows.
type InsertNode struct {
	Table    string
	Columns  []string
	Rows     [][]Expr
	Settings map[string]any
	Format   string
}

func (*InsertNode) queryNode() {}

// UpdateNode is the AST root for an UPDATE statement. The target engine
// expresses updates as ALTER TABLE ... UPDATE mutations; the renderer owns
// that shape.
type UpdateNode struct {
	Table    string
	Set      map[string]Expr
	Where    PredicateNode
	Settings map[string]any
}

func (*UpdateNode) queryNode() {}

// DeleteNode is the AST root for a DELETE statement, rendered as
// ALTER TABLE ... DELETE. A nil Where is permitted: full-table mutation is
// a legitimate operation in the target engine's mutation model.
type DeleteNode struct {
	Table    string
	Where    PredicateNode
	Settings map[string]any
}

func (*DeleteNode) queryNode() {}
