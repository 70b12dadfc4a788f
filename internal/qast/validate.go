package qast

import "fmt"

// WarnRawSQL is the warning message prefix recorded whenever a Raw
// expression or RawPredicate is present in a query. Raw SQL bypasses
// quoting and escaping; the warning gives callers a hook for security
// auditing without blocking compilation.
const WarnRawSQL = "raw SQL bypasses identifier quoting and value escaping"

// ValidationResult aggregates the outcome of a validation walk.
//
// Errors block compilation; warnings are informational only and never
// block. A deeply nested query reports ALL violations, not just the first:
// the walk never short-circuits.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the result contains no errors.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Merge appends another result's errors and warnings into this one.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Validate walks a statement node checking identifier well-formedness and
// structural invariants.
//
// Validate is a pure function and never panics. All failure paths funnel
// into the returned error list, so the same function serves advisory
// validation (builder.Validate) and the mandatory gate inside ToSQL.
//
// Checks performed:
//   - every identifier (table, column, alias) is a non-empty string;
//     character content is deliberately permissive because the renderer
//     neutralizes injection via universal quoting, not a denylist
//   - EXISTS/NOT EXISTS comparisons are exempt from left-column checks
//     (they have no left operand)
//   - Raw expressions and RawPredicates record a warning, never an error
//   - recursive descent covers AND/OR/NOT children, CASE branches,
//     function arguments, and nested subqueries
func Validate(n Node) ValidationResult {
	v := &validator{}
	v.validateNode(n)
	return ValidationResult{Errors: v.errors, Warnings: v.warnings}
}

// validator accumulates errors and warnings during traversal.
type validator struct {
	errors   []string
	warnings []string
}

func (v *validator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateNode(n Node) {
	switch node := n.(type) {
	case *SelectNode:
		v.validateSelect(node)
	case *InsertNode:
		v.validateInsert(node)
	case *UpdateNode:
		v.validateUpdate(node)
	case *DeleteNode:
		v.validateDelete(node)
	default:
		v.addError("unsupported statement type: %T", n)
	}
}

func (v *validator) validateSelect(sel *SelectNode) {
	if sel == nil {
		v.addError("nil SELECT node")
		return
	}

	v.validateTableRef(sel.From)

	for _, col := range sel.Columns {
		v.validateExpr(col)
	}

	for _, join := range sel.Joins {
		v.validateTableRef(join.Table)
		if join.On == nil {
			v.addError("join on %q requires an ON predicate", join.Table.Name)
		} else {
			v.validatePredicate(join.On)
		}
	}

	if sel.PreWhere != nil {
		v.validatePredicate(sel.PreWhere)
	}
	if sel.Where != nil {
		v.validatePredicate(sel.Where)
	}
	if sel.Having != nil {
		v.validatePredicate(sel.Having)
	}

	for _, g := range sel.GroupBy {
		v.validateExpr(g)
	}
	for _, o := range sel.OrderBy {
		v.validateExpr(o.Expr)
	}

	for _, cte := range sel.CTEs {
		// CTEs are stored but not deeply validated; only the name matters
		// for well-formedness.
		if cte.Name == "" {
			v.addError("CTE requires a non-empty name")
		}
	}

	for _, op := range sel.SetOps {
		if op.Node == nil {
			v.addError("UNION operand requires a SELECT node")
		} else {
			v.validateSelect(op.Node)
		}
	}
}

func (v *validator) validateInsert(ins *InsertNode) {
	if ins == nil {
		v.addError("nil INSERT node")
		return
	}
	v.validateIdentifier("table", ins.Table)
	for _, col := range ins.Columns {
		v.validateIdentifier("column", col)
	}
	if len(ins.Rows) == 0 {
		v.addError("INSERT requires at least one VALUES row")
	}
	for i, row := range ins.Rows {
		if len(ins.Columns) > 0 && len(row) != len(ins.Columns) {
			v.addError("VALUES row %d has %d values, want %d", i, len(row), len(ins.Columns))
		}
		for _, val := range row {
			v.validateExpr(val)
		}
	}
}

func (v *validator) validateUpdate(upd *UpdateNode) {
	if upd == nil {
		v.addError("nil UPDATE node")
		return
	}
	v.validateIdentifier("table", upd.Table)
	if len(upd.Set) == 0 {
		v.addError("UPDATE requires at least one SET assignment")
	}
	for col, val := range upd.Set {
		v.validateIdentifier("column", col)
		v.validateExpr(val)
	}
	if upd.Where != nil {
		v.validatePredicate(upd.Where)
	}
}

func (v *validator) validateDelete(del *DeleteNode) {
	if del == nil {
		v.addError("nil DELETE node")
		return
	}
	v.validateIdentifier("table", del.Table)
	// A nil Where is allowed: full-table DELETE mirrors the target
	// engine's own permissive mutation semantics.
	if del.Where != nil {
		v.validatePredicate(del.Where)
	}
}

func (v *validator) validateTableRef(ref TableRef) {
	if ref.Sub != nil {
		v.validateSelect(ref.Sub)
		return
	}
	v.validateIdentifier("table", ref.Name)
}

func (v *validator) validateIdentifier(kind, name string) {
	if name == "" {
		v.addError("%s name must be a non-empty string", kind)
	}
}

func (v *validator) validateExpr(e Expr) {
	switch expr := e.(type) {
	case Column:
		v.validateIdentifier("column", expr.Name)
	case Value:
		// Literal values are always well-formed at this layer; the value
		// formatter rejects unsupported kinds at render time.
	case Array:
		for _, item := range expr.Items {
			v.validateExpr(item)
		}
	case Tuple:
		for _, item := range expr.Items {
			v.validateExpr(item)
		}
	case Subquery:
		if expr.Node == nil {
			v.addError("subquery expression requires a SELECT node")
		} else {
			v.validateSelect(expr.Node)
		}
	case Raw:
		v.addWarning("%s: %q", WarnRawSQL, expr.SQL)
	case Func:
		v.validateIdentifier("function", expr.Name)
		for _, arg := range expr.Args {
			v.validateExpr(arg)
		}
	case Case:
		v.validateCase(expr)
	case nil:
		v.addError("nil expression")
	default:
		v.addError("unsupported expression type: %T", e)
	}
}

func (v *validator) validateCase(c Case) {
	if len(c.Whens) == 0 {
		v.addError("CASE expression requires at least one WHEN branch")
	}
	for _, when := range c.Whens {
		if when.Cond == nil {
			v.addError("CASE WHEN branch requires a condition")
		} else {
			v.validatePredicate(when.Cond)
		}
		if when.Then == nil {
			v.addError("CASE WHEN branch requires a THEN expression")
		} else {
			v.validateExpr(when.Then)
		}
	}
	if c.Else != nil {
		v.validateExpr(c.Else)
	}
}

func (v *validator) validatePredicate(p PredicateNode) {
	switch pred := p.(type) {
	case Compare:
		v.validateCompare(pred)
	case AndGroup:
		for _, child := range pred.Children {
			v.validatePredicate(child)
		}
	case OrGroup:
		for _, child := range pred.Children {
			v.validatePredicate(child)
		}
	case NotGroup:
		if pred.Child == nil {
			v.addError("NOT requires a child predicate")
		} else {
			v.validatePredicate(pred.Child)
		}
	case RawPredicate:
		v.addWarning("%s: %q", WarnRawSQL, pred.SQL)
	case nil:
		v.addError("nil predicate")
	default:
		v.addError("unsupported predicate type: %T", p)
	}
}

func (v *validator) validateCompare(cmp Compare) {
	switch cmp.Op {
	case OpExists, OpNotExists:
		// EXISTS-family comparisons have no left operand; the right side
		// must be a subquery.
		if _, ok := cmp.Right.(Subquery); !ok {
			v.addError("%s requires a subquery argument", cmp.Op)
		} else {
			v.validateExpr(cmp.Right)
		}
		return
	}

	if cmp.Left == nil {
		v.addError("comparison %q requires a left operand", cmp.Op)
	} else {
		v.validateExpr(cmp.Left)
	}

	switch cmp.Op {
	case OpIsNull, OpIsNotNull:
		// No right operand.
	default:
		if cmp.Right != nil {
			v.validateExpr(cmp.Right)
		}
	}
}
