package qir

import (
	"fmt"

	"github.com/clickforge/chquery/internal/qast"
)

// Normalize lowers a statement AST into its self-contained IR.
//
// Normalize first runs the AST validator, then lowers the tree; any
// lowering failure (an unsupported node kind reaching a default case) is
// appended to the same ValidationResult, so validation failure and
// normalization failure report through one channel. The returned Query is
// only meaningful when the result is valid.
func Normalize(n qast.Node) (*Query, qast.ValidationResult) {
	result := qast.Validate(n)

	nz := &normalizer{}
	var q *Query
	switch node := n.(type) {
	case *qast.SelectNode:
		q = nz.lowerSelect(node)
	case *qast.InsertNode:
		q = nz.lowerInsert(node)
	case *qast.UpdateNode:
		q = nz.lowerUpdate(node)
	case *qast.DeleteNode:
		q = nz.lowerDelete(node)
	default:
		nz.addError("unsupported statement type: %T", n)
		q = &Query{}
	}

	result.Errors = append(result.Errors, nz.errors...)
	return q, result
}

// copySettings detaches the settings map from the builder-owned AST so an
// already-compiled query cannot observe later builder mutation.
func copySettings(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// normalizer accumulates lowering errors during traversal.
type normalizer struct {
	errors []string
}

func (nz *normalizer) addError(format string, args ...any) {
	nz.errors = append(nz.errors, fmt.Sprintf(format, args...))
}

func (nz *normalizer) lowerSelect(sel *qast.SelectNode) *Query {
	if sel == nil {
		nz.addError("nil SELECT node")
		return &Query{Kind: KindSelect}
	}

	q := &Query{
		Kind:     KindSelect,
		Distinct: sel.Distinct,
		Final:    sel.Final,
		Limit:    sel.Limit,
		Offset:   sel.Offset,
		Settings: copySettings(sel.Settings),
		Format:   sel.Format,
	}

	if sel.From.Sub != nil {
		q.TableSub = nz.lowerSelect(sel.From.Sub)
	} else {
		q.Table = sel.From.Name
	}
	q.TableAlias = sel.From.Alias

	for _, col := range sel.Columns {
		q.Columns = append(q.Columns, nz.lowerExpr(col))
	}

	for _, join := range sel.Joins {
		j := Join{
			Type:  string(join.Type),
			Alias: join.Table.Alias,
			On:    nz.lowerPredicate(join.On, false),
		}
		if join.Table.Sub != nil {
			j.Sub = nz.lowerSelect(join.Table.Sub)
		} else {
			j.Table = join.Table.Name
		}
		q.Joins = append(q.Joins, j)
	}

	// PREWHERE and WHERE lower through the identical function; the
	// prewhere flag is purely a rendering-position distinction.
	if sel.PreWhere != nil {
		q.Prewhere = nz.lowerPredicate(sel.PreWhere, true)
	}
	if sel.Where != nil {
		q.Where = nz.lowerPredicate(sel.Where, false)
	}
	if sel.Having != nil {
		q.Having = nz.lowerPredicate(sel.Having, false)
	}

	for _, g := range sel.GroupBy {
		q.GroupBy = append(q.GroupBy, nz.lowerExpr(g))
	}
	for _, o := range sel.OrderBy {
		q.OrderBy = append(q.OrderBy, Order{Expr: nz.lowerExpr(o.Expr), Desc: o.Desc})
	}
	for _, cte := range sel.CTEs {
		q.CTEs = append(q.CTEs, CTE{Name: cte.Name, Query: nz.lowerSelect(cte.Node)})
	}
	for _, op := range sel.SetOps {
		q.SetOps = append(q.SetOps, SetOp{All: op.All, Query: nz.lowerSelect(op.Node)})
	}

	return q
}

func (nz *normalizer) lowerInsert(ins *qast.InsertNode) *Query {
	q := &Query{
		Kind:          KindInsert,
		Table:         ins.Table,
		InsertColumns: ins.Columns,
		Settings:      copySettings(ins.Settings),
		Format:        ins.Format,
	}
	for _, row := range ins.Rows {
		irRow := make([]Expr, 0, len(row))
		for _, val := range row {
			irRow = append(irRow, nz.lowerExpr(val))
		}
		q.Rows = append(q.Rows, irRow)
	}
	return q
}

func (nz *normalizer) lowerUpdate(upd *qast.UpdateNode) *Query {
	q := &Query{
		Kind:     KindUpdate,
		Table:    upd.Table,
		Settings: copySettings(upd.Settings),
	}
	if len(upd.Set) > 0 {
		q.Set = make(map[string]Expr, len(upd.Set))
		for col, val := range upd.Set {
			q.Set[col] = nz.lowerExpr(val)
		}
	}
	if upd.Where != nil {
		q.Where = nz.lowerPredicate(upd.Where, false)
	}
	return q
}

func (nz *normalizer) lowerDelete(del *qast.DeleteNode) *Query {
	q := &Query{
		Kind:     KindDelete,
		Table:    del.Table,
		Settings: copySettings(del.Settings),
	}
	if del.Where != nil {
		q.Where = nz.lowerPredicate(del.Where, false)
	}
	return q
}

// lowerExpr resolves an AST expression into ExprIR, preserving structural
// shape for functions and CASE expressions.
func (nz *normalizer) lowerExpr(e qast.Expr) Expr {
	switch expr := e.(type) {
	case qast.Column:
		return ColumnRef{Ref: qualifiedRef(expr), Alias: expr.Alias}
	case qast.Value:
		return Literal{V: expr.V}
	case qast.Array:
		items := make([]Expr, 0, len(expr.Items))
		for _, item := range expr.Items {
			items = append(items, nz.lowerExpr(item))
		}
		return ArrayExpr{Items: items}
	case qast.Tuple:
		items := make([]Expr, 0, len(expr.Items))
		for _, item := range expr.Items {
			items = append(items, nz.lowerExpr(item))
		}
		return TupleExpr{Items: items}
	case qast.Subquery:
		return SubqueryExpr{Query: nz.lowerSelect(expr.Node), Alias: expr.Alias}
	case qast.Raw:
		return RawExpr{SQL: expr.SQL, Alias: expr.Alias}
	case qast.Func:
		args := make([]Expr, 0, len(expr.Args))
		for _, arg := range expr.Args {
			args = append(args, nz.lowerExpr(arg))
		}
		return FuncExpr{Name: expr.Name, Args: args, Alias: expr.Alias}
	case qast.Case:
		whens := make([]CaseWhen, 0, len(expr.Whens))
		for _, when := range expr.Whens {
			whens = append(whens, CaseWhen{
				Cond: nz.lowerPredicate(when.Cond, false),
				Then: nz.lowerExpr(when.Then),
			})
		}
		var elseExpr Expr
		if expr.Else != nil {
			elseExpr = nz.lowerExpr(expr.Else)
		}
		return CaseExpr{Whens: whens, Else: elseExpr, Alias: expr.Alias}
	case nil:
		nz.addError("nil expression")
		return Literal{V: nil}
	default:
		nz.addError("unsupported expression type: %T", e)
		return Literal{V: nil}
	}
}

// lowerPredicate lowers a predicate tree 1:1 by shape, tagging every node
// with the prewhere flag.
func (nz *normalizer) lowerPredicate(p qast.PredicateNode, prewhere bool) Predicate {
	switch pred := p.(type) {
	case qast.Compare:
		return nz.lowerCompare(pred, prewhere)
	case qast.AndGroup:
		children := make([]Predicate, 0, len(pred.Children))
		for _, child := range pred.Children {
			children = append(children, nz.lowerPredicate(child, prewhere))
		}
		return AndNode{Children: children, FromCombinator: pred.FromCombinator, IsPrewhere: prewhere}
	case qast.OrGroup:
		children := make([]Predicate, 0, len(pred.Children))
		for _, child := range pred.Children {
			children = append(children, nz.lowerPredicate(child, prewhere))
		}
		return OrNode{Children: children, IsPrewhere: prewhere}
	case qast.NotGroup:
		return NotNode{Child: nz.lowerPredicate(pred.Child, prewhere), IsPrewhere: prewhere}
	case qast.RawPredicate:
		return RawPredicateNode{SQL: pred.SQL, IsPrewhere: prewhere}
	case nil:
		nz.addError("nil predicate")
		return RawPredicateNode{IsPrewhere: prewhere}
	default:
		nz.addError("unsupported predicate type: %T", p)
		return RawPredicateNode{IsPrewhere: prewhere}
	}
}

func (nz *normalizer) lowerCompare(cmp qast.Compare, prewhere bool) Predicate {
	node := CompareNode{Op: cmp.Op, IsPrewhere: prewhere}
	if cmp.Left != nil {
		node.Left = nz.lowerExpr(cmp.Left)
	}
	node.Right = nz.extractValue(cmp.Right)
	return node
}

// extractValue pulls the right-hand side of a comparison out of its
// expression wrapper into the plain RHS union.
func (nz *normalizer) extractValue(e qast.Expr) RHS {
	switch expr := e.(type) {
	case nil:
		return RHSNone{}
	case qast.Value:
		return RHSValue{V: expr.V}
	case qast.Array:
		return RHSArray{Items: nz.extractItems(expr.Items)}
	case qast.Tuple:
		return RHSTuple{Items: nz.extractItems(expr.Items)}
	case qast.Column:
		return RHSColumn{Ref: qualifiedRef(expr)}
	case qast.Subquery:
		return RHSSubquery{Query: nz.lowerSelect(expr.Node)}
	case qast.Raw, qast.Func, qast.Case:
		return RHSExpr{E: nz.lowerExpr(e)}
	default:
		nz.addError("unsupported right-hand expression type: %T", e)
		return RHSNone{}
	}
}

// extractItems flattens expression list elements into plain values.
// Nested tuples become []any elements, which is how tuple-list membership
// reaches the renderer.
func (nz *normalizer) extractItems(items []qast.Expr) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case qast.Value:
			out = append(out, it.V)
		case qast.Tuple:
			out = append(out, nz.extractItems(it.Items))
		case qast.Array:
			out = append(out, nz.extractItems(it.Items))
		default:
			nz.addError("unsupported list element type: %T", item)
		}
	}
	return out
}

// qualifiedRef joins an explicit table qualifier onto the column name.
// Names that already carry a dot pass through unchanged.
func qualifiedRef(c qast.Column) string {
	if c.Table != "" {
		return c.Table + "." + c.Name
	}
	return c.Name
}
