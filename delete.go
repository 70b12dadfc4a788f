package chquery

import (
	"context"
	"log/slog"

	"github.com/clickforge/chquery/internal/qast"
)

// DeleteBuilder builds an ALTER TABLE ... DELETE mutation.
type DeleteBuilder struct {
	node *qast.DeleteNode
	core builderCore
}

// DeleteFrom starts a DELETE builder targeting the given table.
func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{
		node: &qast.DeleteNode{Table: table},
		core: newBuilderCore(),
	}
}

// WithLogger sets the logging port used during compilation.
func (b *DeleteBuilder) WithLogger(logger *slog.Logger) *DeleteBuilder {
	b.core.setLogger(logger)
	return b
}

// Where adds filter conditions, AND-combining with prior state. A
// DELETE with no WHERE removes every row; the caller is trusted.
func (b *DeleteBuilder) Where(input any) *DeleteBuilder {
	b.node.Where = mergePredicate(b.node.Where, b.core.predicate(input))
	return b
}

// Settings shallow-merges query settings, later keys winning.
func (b *DeleteBuilder) Settings(settings map[string]any) *DeleteBuilder {
	b.node.Settings = mergeSettings(b.node.Settings, settings)
	return b
}

// ToSQL compiles the mutation into SQL text.
func (b *DeleteBuilder) ToSQL() (CompiledQuery, error) {
	return b.core.compile(b.node)
}

// Validate runs the advisory validation pass without compiling.
func (b *DeleteBuilder) Validate() ValidationResult {
	return b.core.validate(b.node)
}

// Exec compiles and runs the mutation through the transport.
func (b *DeleteBuilder) Exec(ctx context.Context, runner Runner) error {
	q, err := b.ToSQL()
	if err != nil {
		return err
	}
	return runner.Command(ctx, q)
}
