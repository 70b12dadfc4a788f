package chsql

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/clickforge/chquery/internal/qir"
)

// Renderer walks a normalized query and produces final SQL text.
//
// A Renderer is stateless between calls; the same instance may render many
// queries concurrently. The logger is an explicit port, never a global.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a Renderer. A nil logger falls back to
// slog.Default().
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render produces the SQL text for a normalized query.
func (r *Renderer) Render(q *qir.Query) (string, error) {
	if q == nil {
		return "", fmt.Errorf("cannot render nil query")
	}

	r.logger.Debug("rendering query", "kind", string(q.Kind), "table", q.Table)

	switch q.Kind {
	case qir.KindSelect:
		return r.renderSelect(q)
	case qir.KindInsert:
		return r.renderInsert(q)
	case qir.KindUpdate:
		return r.renderUpdate(q)
	case qir.KindDelete:
		return r.renderDelete(q)
	default:
		return "", fmt.Errorf("unsupported statement kind: %q", q.Kind)
	}
}

// renderSelect assembles the SELECT clause sequence in fixed order:
// columns, FROM, JOINs, PREWHERE, WHERE, GROUP BY, HAVING, ORDER BY,
// LIMIT and OFFSET, FINAL, SETTINGS, then any UNION operands.
func (r *Renderer) renderSelect(q *qir.Query) (string, error) {
	var sb strings.Builder

	if len(q.CTEs) > 0 {
		parts := make([]string, 0, len(q.CTEs))
		for _, cte := range q.CTEs {
			inner, err := r.renderSelect(cte.Query)
			if err != nil {
				return "", err
			}
			name, err := quoteIdent(cte.Name, ctxPredicate)
			if err != nil {
				return "", err
			}
			parts = append(parts, name+" AS ("+inner+")")
		}
		sb.WriteString("WITH " + strings.Join(parts, ", ") + " ")
	}

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}

	if len(q.Columns) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, 0, len(q.Columns))
		for _, col := range q.Columns {
			s, err := r.renderSelectColumn(col)
			if err != nil {
				return "", err
			}
			cols = append(cols, s)
		}
		sb.WriteString(strings.Join(cols, ", "))
	}

	from, err := r.renderTarget(q.Table, q.TableSub, q.TableAlias)
	if err != nil {
		return "", err
	}
	sb.WriteString(" FROM " + from)

	for _, join := range q.Joins {
		target, err := r.renderTarget(join.Table, join.Sub, join.Alias)
		if err != nil {
			return "", err
		}
		on, err := r.renderPredicate(join.On, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + join.Type + " " + target + " ON " + on)
	}

	if q.Prewhere != nil {
		s, err := r.renderPredicate(q.Prewhere, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" PREWHERE " + s)
	}
	if q.Where != nil {
		s, err := r.renderPredicate(q.Where, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE " + s)
	}

	if len(q.GroupBy) > 0 {
		parts := make([]string, 0, len(q.GroupBy))
		for _, g := range q.GroupBy {
			s, err := r.renderExpr(g, ctxPredicate)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		sb.WriteString(" GROUP BY " + strings.Join(parts, ", "))
	}

	if q.Having != nil {
		s, err := r.renderPredicate(q.Having, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" HAVING " + s)
	}

	if len(q.OrderBy) > 0 {
		parts := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			s, err := r.renderExpr(o.Expr, ctxPredicate)
			if err != nil {
				return "", err
			}
			if o.Desc {
				parts = append(parts, s+" DESC")
			} else {
				parts = append(parts, s+" ASC")
			}
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	if q.Limit != nil {
		sb.WriteString(" LIMIT " + strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		sb.WriteString(" OFFSET " + strconv.Itoa(*q.Offset))
	}

	if q.Final {
		sb.WriteString(" FINAL")
	}

	if err := writeSettings(&sb, q.Settings); err != nil {
		return "", err
	}

	for _, op := range q.SetOps {
		inner, err := r.renderSelect(op.Query)
		if err != nil {
			return "", err
		}
		if op.All {
			sb.WriteString(" UNION ALL " + inner)
		} else {
			sb.WriteString(" UNION " + inner)
		}
	}

	return sb.String(), nil
}

func (r *Renderer) renderInsert(q *qir.Query) (string, error) {
	var sb strings.Builder

	table, err := quoteIdent(q.Table, ctxPredicate)
	if err != nil {
		return "", err
	}
	sb.WriteString("INSERT INTO " + table)

	if len(q.InsertColumns) > 0 {
		cols := make([]string, 0, len(q.InsertColumns))
		for _, col := range q.InsertColumns {
			c, err := quoteIdent(col, ctxPredicate)
			if err != nil {
				return "", err
			}
			cols = append(cols, c)
		}
		sb.WriteString(" (" + strings.Join(cols, ", ") + ")")
	}

	sb.WriteString(" VALUES ")
	rows := make([]string, 0, len(q.Rows))
	for _, row := range q.Rows {
		vals := make([]string, 0, len(row))
		for _, val := range row {
			s, err := r.renderExpr(val, ctxPredicate)
			if err != nil {
				return "", err
			}
			vals = append(vals, s)
		}
		rows = append(rows, "("+strings.Join(vals, ", ")+")")
	}
	sb.WriteString(strings.Join(rows, ", "))

	return sb.String(), nil
}

// renderUpdate emits the target engine's mutation form:
// ALTER TABLE t UPDATE col = val, ... WHERE ...
func (r *Renderer) renderUpdate(q *qir.Query) (string, error) {
	var sb strings.Builder

	table, err := quoteIdent(q.Table, ctxPredicate)
	if err != nil {
		return "", err
	}
	sb.WriteString("ALTER TABLE " + table + " UPDATE ")

	// Sort assignment keys so repeated rendering is byte-identical.
	keys := make([]string, 0, len(q.Set))
	for k := range q.Set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	for _, col := range keys {
		c, err := quoteIdent(col, ctxPredicate)
		if err != nil {
			return "", err
		}
		v, err := r.renderExpr(q.Set[col], ctxPredicate)
		if err != nil {
			return "", err
		}
		assignments = append(assignments, c+" = "+v)
	}
	sb.WriteString(strings.Join(assignments, ", "))

	if q.Where != nil {
		s, err := r.renderPredicate(q.Where, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE " + s)
	}

	if err := writeSettings(&sb, q.Settings); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderDelete emits ALTER TABLE t DELETE [WHERE ...]. A missing WHERE is
// permitted: full-table deletion is a legitimate mutation in the target
// engine.
func (r *Renderer) renderDelete(q *qir.Query) (string, error) {
	var sb strings.Builder

	table, err := quoteIdent(q.Table, ctxPredicate)
	if err != nil {
		return "", err
	}
	sb.WriteString("ALTER TABLE " + table + " DELETE")

	if q.Where != nil {
		s, err := r.renderPredicate(q.Where, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE " + s)
	}

	if err := writeSettings(&sb, q.Settings); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderTarget renders a FROM or JOIN target: a quoted table name or a
// parenthesized subquery, plus an optional alias.
func (r *Renderer) renderTarget(table string, sub *qir.Query, alias string) (string, error) {
	var out string
	if sub != nil {
		inner, err := r.renderSelect(sub)
		if err != nil {
			return "", err
		}
		out = "(" + inner + ")"
	} else {
		quoted, err := quoteIdent(table, ctxPredicate)
		if err != nil {
			return "", err
		}
		out = quoted
	}
	if alias != "" {
		quoted, err := quoteIdent(alias, ctxPredicate)
		if err != nil {
			return "", err
		}
		out += " AS " + quoted
	}
	return out, nil
}

// renderSelectColumn renders one SELECT-list entry, appending the alias
// when the expression carries one.
func (r *Renderer) renderSelectColumn(e qir.Expr) (string, error) {
	s, err := r.renderExpr(e, ctxSelectList)
	if err != nil {
		return "", err
	}
	alias := exprAlias(e)
	if alias == "" {
		return s, nil
	}
	quoted, err := quoteIdent(alias, ctxPredicate)
	if err != nil {
		return "", err
	}
	return s + " AS " + quoted, nil
}

// exprAlias extracts the SELECT alias from expression nodes that carry
// one.
func exprAlias(e qir.Expr) string {
	switch expr := e.(type) {
	case qir.ColumnRef:
		return expr.Alias
	case qir.Literal:
		return expr.Alias
	case qir.SubqueryExpr:
		return expr.Alias
	case qir.RawExpr:
		return expr.Alias
	case qir.FuncExpr:
		return expr.Alias
	case qir.CaseExpr:
		return expr.Alias
	}
	return ""
}

// renderExpr renders a normalized expression. The identifier context
// decides whether parenthesized function-call text stays unquoted.
func (r *Renderer) renderExpr(e qir.Expr, ctx identContext) (string, error) {
	switch expr := e.(type) {
	case qir.ColumnRef:
		return quoteIdent(expr.Ref, ctx)
	case qir.Literal:
		return FormatValue(expr.V)
	case qir.ArrayExpr:
		parts := make([]string, 0, len(expr.Items))
		for _, item := range expr.Items {
			s, err := r.renderExpr(item, ctx)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case qir.TupleExpr:
		parts := make([]string, 0, len(expr.Items))
		for _, item := range expr.Items {
			s, err := r.renderExpr(item, ctx)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, ", ") + ")", nil
	case qir.SubqueryExpr:
		inner, err := r.renderSelect(expr.Query)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case qir.RawExpr:
		return expr.SQL, nil
	case qir.FuncExpr:
		return r.renderFunc(expr)
	case qir.CaseExpr:
		return r.renderCase(expr)
	case nil:
		return "", fmt.Errorf("nil expression")
	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

// renderFunc renders a function call. A two-argument cast call gets the
// dialect's CAST(x AS T) form, with the type name emitted bare.
func (r *Renderer) renderFunc(fn qir.FuncExpr) (string, error) {
	if strings.EqualFold(fn.Name, "cast") && len(fn.Args) == 2 {
		arg, err := r.renderExpr(fn.Args[0], ctxPredicate)
		if err != nil {
			return "", err
		}
		if lit, ok := fn.Args[1].(qir.Literal); ok {
			if typeName, ok := lit.V.(string); ok {
				return "CAST(" + arg + " AS " + typeName + ")", nil
			}
		}
		typ, err := r.renderExpr(fn.Args[1], ctxPredicate)
		if err != nil {
			return "", err
		}
		return "CAST(" + arg + " AS " + typ + ")", nil
	}

	args := make([]string, 0, len(fn.Args))
	for _, arg := range fn.Args {
		s, err := r.renderExpr(arg, ctxPredicate)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}
	return fn.Name + "(" + strings.Join(args, ", ") + ")", nil
}

func (r *Renderer) renderCase(c qir.CaseExpr) (string, error) {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, when := range c.Whens {
		cond, err := r.renderPredicate(when.Cond, true)
		if err != nil {
			return "", err
		}
		then, err := r.renderExpr(when.Then, ctxPredicate)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHEN " + cond + " THEN " + then)
	}
	if c.Else != nil {
		s, err := r.renderExpr(c.Else, ctxPredicate)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ELSE " + s)
	}
	sb.WriteString(" END")
	return sb.String(), nil
}

// writeSettings appends the trailing SETTINGS clause. Keys are sorted so
// repeated rendering of the same query is byte-identical; setting names
// are emitted bare, values through the literal formatter.
func writeSettings(sb *strings.Builder, settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := FormatValue(settings[k])
		if err != nil {
			return err
		}
		parts = append(parts, k+" = "+v)
	}
	sb.WriteString(" SETTINGS " + strings.Join(parts, ", "))
	return nil
}
