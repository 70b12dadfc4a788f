package chquery

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clickforge/chquery/internal/qast"
)

type insertStrategy int

const (
	insertValues insertStrategy = iota
	insertRecords
	insertStream
)

// InsertBuilder builds an INSERT. Three mutually exclusive payload
// strategies exist: inline VALUES rows, structured records handed to the
// transport, and a raw byte stream in a named format. Setting a strategy
// replaces any previously set one.
type InsertBuilder struct {
	node     *qast.InsertNode
	core     builderCore
	strategy insertStrategy
	records  []map[string]any
	stream   io.Reader
}

// InsertInto starts an INSERT builder targeting the given table.
func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{
		node: &qast.InsertNode{Table: table},
		core: newBuilderCore(),
	}
}

// WithLogger sets the logging port used during compilation.
func (b *InsertBuilder) WithLogger(logger *slog.Logger) *InsertBuilder {
	b.core.setLogger(logger)
	return b
}

// Columns sets the explicit column list, replacing any previous one.
func (b *InsertBuilder) Columns(cols ...string) *InsertBuilder {
	b.node.Columns = cols
	return b
}

// Values selects the inline VALUES strategy and replaces the row set.
// Each row must match the column list arity; mismatches surface as
// validation errors at ToSQL or Run time.
func (b *InsertBuilder) Values(rows ...[]any) *InsertBuilder {
	b.strategy = insertValues
	b.records = nil
	b.stream = nil
	b.node.Rows = make([][]qast.Expr, 0, len(rows))
	for _, row := range rows {
		exprs := make([]qast.Expr, 0, len(row))
		for _, v := range row {
			exprs = append(exprs, b.core.toExpr(v))
		}
		b.node.Rows = append(b.node.Rows, exprs)
	}
	return b
}

// Records selects the structured-records strategy: rows travel to the
// transport as maps instead of being rendered into SQL text.
func (b *InsertBuilder) Records(records []map[string]any) *InsertBuilder {
	b.strategy = insertRecords
	b.node.Rows = nil
	b.stream = nil
	b.records = records
	return b
}

// FromStream selects the raw-stream strategy: the payload is a byte
// stream in the given format, passed through to the transport untouched.
func (b *InsertBuilder) FromStream(r io.Reader, format string) *InsertBuilder {
	b.strategy = insertStream
	b.node.Rows = nil
	b.records = nil
	b.stream = r
	b.node.Format = format
	return b
}

// Settings shallow-merges query settings, later keys winning.
func (b *InsertBuilder) Settings(settings map[string]any) *InsertBuilder {
	b.node.Settings = mergeSettings(b.node.Settings, settings)
	return b
}

// Format sets the payload format tag.
func (b *InsertBuilder) Format(format string) *InsertBuilder {
	b.node.Format = format
	return b
}

// ToSQL compiles the INSERT into SQL text. Only the inline VALUES
// strategy has a textual form; records and streams exist only as
// transport payloads and cannot be rendered.
func (b *InsertBuilder) ToSQL() (CompiledQuery, error) {
	if b.strategy != insertValues {
		err := newValidationError(ErrCodeUnsupportedExpression, "insert", nil,
			"insert strategy has no SQL text form; use Run")
		err.QueryID = uuid.NewString()
		return CompiledQuery{}, err
	}
	return b.core.compile(b.node)
}

// Validate runs the advisory validation pass without compiling.
func (b *InsertBuilder) Validate() ValidationResult {
	return b.core.validate(b.node)
}

// Run executes the INSERT through the transport, dispatching on the
// selected payload strategy.
func (b *InsertBuilder) Run(ctx context.Context, runner Runner) error {
	switch b.strategy {
	case insertRecords:
		return runner.Insert(ctx, InsertRequest{
			Table:   b.node.Table,
			Columns: b.node.Columns,
			Rows:    b.records,
			Format:  b.node.Format,
		})
	case insertStream:
		return runner.Insert(ctx, InsertRequest{
			Table:   b.node.Table,
			Columns: b.node.Columns,
			Stream:  b.stream,
			Format:  b.node.Format,
		})
	default:
		q, err := b.ToSQL()
		if err != nil {
			return err
		}
		return runner.Command(ctx, q)
	}
}
