package chquery

import (
	"context"
	"log/slog"

	"github.com/clickforge/chquery/internal/qast"
)

// UpdateBuilder builds an ALTER TABLE ... UPDATE mutation. SET
// assignments render in sorted column order.
type UpdateBuilder struct {
	node *qast.UpdateNode
	core builderCore
}

// Update starts an UPDATE builder targeting the given table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{
		node: &qast.UpdateNode{Table: table, Set: map[string]qast.Expr{}},
		core: newBuilderCore(),
	}
}

// WithLogger sets the logging port used during compilation.
func (b *UpdateBuilder) WithLogger(logger *slog.Logger) *UpdateBuilder {
	b.core.setLogger(logger)
	return b
}

// Set shallow-merges column assignments, later calls winning per column.
func (b *UpdateBuilder) Set(assignments map[string]any) *UpdateBuilder {
	for col, v := range assignments {
		b.node.Set[col] = b.core.toExpr(v)
	}
	return b
}

// Where adds filter conditions, AND-combining with prior state. A
// mutation with no WHERE touches every row; that is allowed and not
// warned about.
func (b *UpdateBuilder) Where(input any) *UpdateBuilder {
	b.node.Where = mergePredicate(b.node.Where, b.core.predicate(input))
	return b
}

// Settings shallow-merges query settings, later keys winning.
func (b *UpdateBuilder) Settings(settings map[string]any) *UpdateBuilder {
	b.node.Settings = mergeSettings(b.node.Settings, settings)
	return b
}

// ToSQL compiles the mutation into SQL text.
func (b *UpdateBuilder) ToSQL() (CompiledQuery, error) {
	return b.core.compile(b.node)
}

// Validate runs the advisory validation pass without compiling.
func (b *UpdateBuilder) Validate() ValidationResult {
	return b.core.validate(b.node)
}

// Exec compiles and runs the mutation through the transport.
func (b *UpdateBuilder) Exec(ctx context.Context, runner Runner) error {
	q, err := b.ToSQL()
	if err != nil {
		return err
	}
	return runner.Command(ctx, q)
}
