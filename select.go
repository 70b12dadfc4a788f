package chquery

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/clickforge/chquery/internal/qast"
)

// Direction is an ORDER BY sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Aliased is an alias-keyed column list entry: each key is the SELECT
// alias and each value is a column name, an expression, or a nested
// SelectBuilder rendered as a scalar subquery. Keys render in sorted
// order so compilation is deterministic.
type Aliased map[string]any

// SelectBuilder builds a SELECT statement through chained calls over a
// single mutable AST node. Follows single-owner fluent discipline: one
// goroutine mutates, compilation itself is side-effect-free.
type SelectBuilder struct {
	node *qast.SelectNode
	core builderCore
}

// Select starts a SELECT builder with the given columns. Columns may be
// names, expressions, CASE builders, or Aliased maps; no columns means
// SELECT *.
func Select(cols ...any) *SelectBuilder {
	b := &SelectBuilder{
		node: &qast.SelectNode{},
		core: newBuilderCore(),
	}
	return b.Columns(cols...)
}

// WithLogger sets the logging port used during compilation. A nil logger
// keeps the current one.
func (b *SelectBuilder) WithLogger(logger *slog.Logger) *SelectBuilder {
	b.core.setLogger(logger)
	return b
}

// Columns appends SELECT columns.
func (b *SelectBuilder) Columns(cols ...any) *SelectBuilder {
	for _, col := range cols {
		b.addColumn(col)
	}
	return b
}

func (b *SelectBuilder) addColumn(col any) {
	switch c := col.(type) {
	case Aliased:
		// Sorted alias order keeps repeated compilation byte-identical.
		aliases := make([]string, 0, len(c))
		for alias := range c {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		for _, alias := range aliases {
			b.node.Columns = append(b.node.Columns, b.aliasedExpr(alias, c[alias]))
		}
	case string:
		b.node.Columns = append(b.node.Columns, qast.Column{Name: c})
	default:
		b.node.Columns = append(b.node.Columns, b.core.toExpr(col))
	}
}

func (b *SelectBuilder) aliasedExpr(alias string, v any) qast.Expr {
	switch val := v.(type) {
	case string:
		return qast.Column{Name: val, Alias: alias}
	case *SelectBuilder:
		return qast.Subquery{Node: val.node, Alias: alias}
	default:
		return withAlias(b.core.toExpr(v), alias)
	}
}

// From sets the query target: a table name or a nested SelectBuilder.
func (b *SelectBuilder) From(target any) *SelectBuilder {
	return b.FromAs(target, "")
}

// FromAs sets the query target with an alias.
func (b *SelectBuilder) FromAs(target any, alias string) *SelectBuilder {
	switch t := target.(type) {
	case string:
		b.node.From = qast.TableRef{Name: t, Alias: alias}
	case *SelectBuilder:
		b.node.From = qast.TableRef{Sub: t.node, Alias: alias}
	case qast.Subquery:
		b.node.From = qast.TableRef{Sub: t.Node, Alias: alias}
	default:
		b.core.record(newValidationError(ErrCodeUnsupportedExpression, "from", target,
			"unsupported FROM target type: %T", target))
	}
	return b
}

// InnerJoin adds an INNER JOIN. The ON predicate is required and accepts
// the same inputs as Where.
func (b *SelectBuilder) InnerJoin(table any, on any) *SelectBuilder {
	return b.join(qast.JoinInner, table, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *SelectBuilder) LeftJoin(table any, on any) *SelectBuilder {
	return b.join(qast.JoinLeft, table, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *SelectBuilder) RightJoin(table any, on any) *SelectBuilder {
	return b.join(qast.JoinRight, table, on)
}

// FullJoin adds a FULL JOIN.
func (b *SelectBuilder) FullJoin(table any, on any) *SelectBuilder {
	return b.join(qast.JoinFull, table, on)
}

func (b *SelectBuilder) join(jt qast.JoinType, table any, on any) *SelectBuilder {
	spec := qast.JoinSpec{Type: jt}
	switch t := table.(type) {
	case string:
		spec.Table = qast.TableRef{Name: t}
	case *SelectBuilder:
		spec.Table = qast.TableRef{Sub: t.node}
	default:
		b.core.record(newValidationError(ErrCodeUnsupportedExpression, "join", table,
			"unsupported JOIN target type: %T", table))
		return b
	}
	spec.On = b.core.predicate(on)
	b.node.Joins = append(b.node.Joins, spec)
	return b
}

// Where adds filter conditions. Repeated calls AND-combine with prior
// WHERE state without introducing parentheses at the top level.
func (b *SelectBuilder) Where(input any) *SelectBuilder {
	b.node.Where = mergePredicate(b.node.Where, b.core.predicate(input))
	return b
}

// PreWhere adds conditions rendered in the PREWHERE clause. Lowering is
// identical to Where; only the rendering position differs.
func (b *SelectBuilder) PreWhere(input any) *SelectBuilder {
	b.node.PreWhere = mergePredicate(b.node.PreWhere, b.core.predicate(input))
	return b
}

// Having adds post-aggregation conditions.
func (b *SelectBuilder) Having(input any) *SelectBuilder {
	b.node.Having = mergePredicate(b.node.Having, b.core.predicate(input))
	return b
}

// GroupBy appends GROUP BY terms.
func (b *SelectBuilder) GroupBy(cols ...any) *SelectBuilder {
	for _, col := range cols {
		b.node.GroupBy = append(b.node.GroupBy, b.core.columnExpr(col))
	}
	return b
}

// OrderBy appends an ORDER BY term.
func (b *SelectBuilder) OrderBy(col any, dir Direction) *SelectBuilder {
	b.node.OrderBy = append(b.node.OrderBy, qast.OrderBy{
		Expr: b.core.columnExpr(col),
		Desc: dir == Desc,
	})
	return b
}

// Limit sets the row limit, overwriting any previous value.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.node.Limit = &n
	return b
}

// Offset sets the row offset, overwriting any previous value.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.node.Offset = &n
	return b
}

// Distinct marks the SELECT as DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.node.Distinct = true
	return b
}

// Final adds the engine's FINAL modifier.
func (b *SelectBuilder) Final() *SelectBuilder {
	b.node.Final = true
	return b
}

// Settings shallow-merges query settings, later keys winning.
func (b *SelectBuilder) Settings(settings map[string]any) *SelectBuilder {
	b.node.Settings = mergeSettings(b.node.Settings, settings)
	return b
}

// With adds a common table expression. CTEs are stored as given and not
// deeply validated.
func (b *SelectBuilder) With(name string, sub *SelectBuilder) *SelectBuilder {
	var node *qast.SelectNode
	if sub != nil {
		node = sub.node
	}
	b.node.CTEs = append(b.node.CTEs, qast.CTE{Name: name, Node: node})
	return b
}

// Union composes this SELECT with another via UNION.
func (b *SelectBuilder) Union(sub *SelectBuilder) *SelectBuilder {
	return b.setOp(false, sub)
}

// UnionAll composes this SELECT with another via UNION ALL.
func (b *SelectBuilder) UnionAll(sub *SelectBuilder) *SelectBuilder {
	return b.setOp(true, sub)
}

func (b *SelectBuilder) setOp(all bool, sub *SelectBuilder) *SelectBuilder {
	var node *qast.SelectNode
	if sub != nil {
		node = sub.node
	}
	b.node.SetOps = append(b.node.SetOps, qast.SetOp{All: all, Node: node})
	return b
}

// Format sets the output format tag. Streaming is gated on the
// streamable allowlist; any format may be set for Execute.
func (b *SelectBuilder) Format(format string) *SelectBuilder {
	b.node.Format = format
	return b
}

// ToSQL compiles the query: normalize, validate, render. The terminal
// read operation; the builder is unchanged and may be compiled again.
func (b *SelectBuilder) ToSQL() (CompiledQuery, error) {
	return b.core.compile(b.node)
}

// Validate runs the advisory validation pass without compiling.
func (b *SelectBuilder) Validate() ValidationResult {
	return b.core.validate(b.node)
}

// Execute compiles the query and runs it through the transport.
func (b *SelectBuilder) Execute(ctx context.Context, runner Runner) ([]map[string]any, error) {
	q, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return runner.Execute(ctx, q)
}

// Stream compiles the query and opens a streaming response. The output
// format must be in the streamable allowlist; anything else fails here,
// synchronously, before any I/O.
func (b *SelectBuilder) Stream(ctx context.Context, runner Runner) (io.ReadCloser, error) {
	if !IsStreamableFormat(b.node.Format) {
		return nil, &ValidationError{
			Code:    ErrCodeNonStreamableFormat,
			Message: "format is not streamable",
			Field:   "format",
			Value:   b.node.Format,
			QueryID: uuid.NewString(),
		}
	}
	q, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return runner.Stream(ctx, q)
}
