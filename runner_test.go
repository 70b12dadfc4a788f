package chquery

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records what the builders hand to the transport.
type fakeRunner struct {
	executed []CompiledQuery
	commands []CompiledQuery
	streamed []CompiledQuery
	inserts  []InsertRequest

	rows []map[string]any
	err  error
}

func (f *fakeRunner) Execute(ctx context.Context, q CompiledQuery) ([]map[string]any, error) {
	f.executed = append(f.executed, q)
	return f.rows, f.err
}

func (f *fakeRunner) Command(ctx context.Context, q CompiledQuery) error {
	f.commands = append(f.commands, q)
	return f.err
}

func (f *fakeRunner) Stream(ctx context.Context, q CompiledQuery) (io.ReadCloser, error) {
	f.streamed = append(f.streamed, q)
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeRunner) Insert(ctx context.Context, req InsertRequest) error {
	f.inserts = append(f.inserts, req)
	return f.err
}

func TestSelectExecute(t *testing.T) {
	runner := &fakeRunner{rows: []map[string]any{{"id": 1}}}
	rows, err := Select("id").From("users").Execute(context.Background(), runner)
	require.NoError(t, err)
	assert.Equal(t, runner.rows, rows)
	require.Len(t, runner.executed, 1)
	assert.Equal(t, "SELECT `id` FROM `users`", runner.executed[0].SQL)
}

func TestSelectExecuteCompileErrorSkipsTransport(t *testing.T) {
	runner := &fakeRunner{}
	_, err := Select("id").From("users").
		Where(Where{"id": In(7)}).
		Execute(context.Background(), runner)
	require.Error(t, err)
	assert.Empty(t, runner.executed)
}

func TestStreamRequiresStreamableFormat(t *testing.T) {
	runner := &fakeRunner{}

	// JSON is a whole-response format, not streamable.
	_, err := Select("id").From("users").
		Format(FormatJSON).
		Stream(context.Background(), runner)
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeNonStreamableFormat))
	assert.Empty(t, runner.streamed, "gate must fire before any I/O")

	// Empty format is rejected too.
	_, err = Select("id").From("users").Stream(context.Background(), runner)
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeNonStreamableFormat))

	rc, err := Select("id").From("users").
		Format(FormatJSONEachRow).
		Stream(context.Background(), runner)
	require.NoError(t, err)
	require.NotNil(t, rc)
	require.NoError(t, rc.Close())
	require.Len(t, runner.streamed, 1)
	assert.Equal(t, FormatJSONEachRow, runner.streamed[0].Format)
}

func TestUpdateExec(t *testing.T) {
	runner := &fakeRunner{}
	err := Update("users").
		Set(map[string]any{"status": "inactive"}).
		Where(Where{"age": Gt(18)}).
		Settings(map[string]any{"max_execution_time": 30}).
		Exec(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t,
		"ALTER TABLE `users` UPDATE `status` = 'inactive' WHERE `age` > 18 SETTINGS max_execution_time = 30",
		runner.commands[0].SQL)
}

func TestDeleteExec(t *testing.T) {
	runner := &fakeRunner{}
	err := DeleteFrom("users").
		Where(Where{"id": Eq(1)}).
		Exec(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "ALTER TABLE `users` DELETE WHERE `id` = 1", runner.commands[0].SQL)
}

func TestInsertValuesRun(t *testing.T) {
	runner := &fakeRunner{}
	err := InsertInto("events").
		Columns("id", "type").
		Values([]any{1, "click"}, []any{2, "view"}).
		Run(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t,
		"INSERT INTO `events` (`id`, `type`) VALUES (1, 'click'), (2, 'view')",
		runner.commands[0].SQL)
}

func TestInsertRecordsRun(t *testing.T) {
	runner := &fakeRunner{}
	records := []map[string]any{{"id": 1, "type": "click"}}
	err := InsertInto("events").
		Columns("id", "type").
		Records(records).
		Format(FormatJSONEachRow).
		Run(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, runner.inserts, 1)
	assert.Equal(t, "events", runner.inserts[0].Table)
	assert.Equal(t, records, runner.inserts[0].Rows)
	assert.Nil(t, runner.inserts[0].Stream)
	assert.Empty(t, runner.commands)
}

func TestInsertStreamRun(t *testing.T) {
	runner := &fakeRunner{}
	payload := strings.NewReader(`{"id":1}`)
	err := InsertInto("events").
		FromStream(payload, FormatJSONEachRow).
		Run(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, runner.inserts, 1)
	assert.Equal(t, FormatJSONEachRow, runner.inserts[0].Format)
	assert.NotNil(t, runner.inserts[0].Stream)
}

func TestInsertStrategyLastSetterWins(t *testing.T) {
	runner := &fakeRunner{}
	err := InsertInto("events").
		Columns("id").
		Records([]map[string]any{{"id": 1}}).
		Values([]any{2}).
		Run(context.Background(), runner)
	require.NoError(t, err)
	assert.Empty(t, runner.inserts)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "INSERT INTO `events` (`id`) VALUES (2)", runner.commands[0].SQL)
}

func TestInsertNonValuesToSQLFails(t *testing.T) {
	_, err := InsertInto("events").
		Records([]map[string]any{{"id": 1}}).
		ToSQL()
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeUnsupportedExpression))

	// The short-circuit failure carries a query ID like every other
	// compile error.
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.QueryID)

	_, err = InsertInto("events").
		FromStream(strings.NewReader(""), FormatCSV).
		ToSQL()
	require.Error(t, err)
}

func TestInsertRowArityChecked(t *testing.T) {
	_, err := InsertInto("events").
		Columns("id", "type").
		Values([]any{1}).
		ToSQL()
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeInvalidQuery))
}
