package chquery

import (
	"context"
	"io"
)

// CompiledQuery is the output of ToSQL: the final SQL text plus the
// settings and format tag the transport should apply.
//
// Params is always empty because values are inlined directly into the
// SQL; the field is retained for interface stability with transports
// that expect a (sql, params) pair.
type CompiledQuery struct {
	SQL      string
	Params   []any
	Settings map[string]any
	Format   string
}

// InsertRequest is the transport-native insertion payload used by the
// records and stream insertion strategies, which bypass SQL text
// entirely. Exactly one of Rows and Stream is set.
type InsertRequest struct {
	Table   string
	Columns []string
	Rows    []map[string]any
	Stream  io.Reader
	Format  string
}

// Runner is the narrow interface to the external transport collaborator.
// The compiler only produces CompiledQuery values; everything network -
// retries, timeouts, pooling - lives behind this interface.
type Runner interface {
	// Execute runs a query expected to produce rows.
	Execute(ctx context.Context, q CompiledQuery) ([]map[string]any, error)

	// Command runs a statement with no result rows (INSERT, ALTER).
	Command(ctx context.Context, q CompiledQuery) error

	// Stream runs a query and returns the raw response body for
	// incremental consumption in a streamable format.
	Stream(ctx context.Context, q CompiledQuery) (io.ReadCloser, error)

	// Insert performs a transport-native batch insert without SQL text.
	Insert(ctx context.Context, req InsertRequest) error
}
