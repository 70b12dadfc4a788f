package chsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickforge/chquery/internal/qast"
	"github.com/clickforge/chquery/internal/qir"
)

func render(t *testing.T, q *qir.Query) string {
	t.Helper()
	sql, err := NewRenderer(nil).Render(q)
	require.NoError(t, err)
	return sql
}

func intp(n int) *int { return &n }

func TestRenderSelectStar(t *testing.T) {
	q := &qir.Query{Kind: qir.KindSelect, Table: "users"}
	assert.Equal(t, "SELECT * FROM `users`", render(t, q))
}

func TestRenderSelectClauseOrder(t *testing.T) {
	q := &qir.Query{
		Kind:    qir.KindSelect,
		Table:   "events",
		Columns: []qir.Expr{qir.ColumnRef{Ref: "type"}, qir.FuncExpr{Name: "count", Args: []qir.Expr{qir.ColumnRef{Ref: "*"}}, Alias: "n"}},
		Where: qir.CompareNode{
			Left:  qir.ColumnRef{Ref: "ts"},
			Op:    qast.OpGt,
			Right: qir.RHSValue{V: 0},
		},
		GroupBy: []qir.Expr{qir.ColumnRef{Ref: "type"}},
		Having: qir.CompareNode{
			Left:  qir.ColumnRef{Ref: "count(*)"},
			Op:    qast.OpGt,
			Right: qir.RHSValue{V: 10},
		},
		OrderBy:  []qir.Order{{Expr: qir.ColumnRef{Ref: "type"}}},
		Limit:    intp(5),
		Offset:   intp(10),
		Final:    true,
		Settings: map[string]any{"max_threads": 4},
	}
	assert.Equal(t,
		"SELECT `type`, count(*) AS `n` FROM `events`"+
			" WHERE `ts` > 0 GROUP BY `type` HAVING `count(*)` > 10"+
			" ORDER BY `type` ASC LIMIT 5 OFFSET 10 FINAL SETTINGS max_threads = 4",
		render(t, q))
}

func TestRenderSelectDistinct(t *testing.T) {
	q := &qir.Query{Kind: qir.KindSelect, Table: "t", Distinct: true}
	assert.Equal(t, "SELECT DISTINCT * FROM `t`", render(t, q))
}

func TestRenderPrewhereBeforeWhere(t *testing.T) {
	q := &qir.Query{
		Kind:     qir.KindSelect,
		Table:    "logs",
		Prewhere: qir.CompareNode{Left: qir.ColumnRef{Ref: "a"}, Op: qast.OpEq, Right: qir.RHSValue{V: 1}, IsPrewhere: true},
		Where:    qir.CompareNode{Left: qir.ColumnRef{Ref: "b"}, Op: qast.OpEq, Right: qir.RHSValue{V: 2}},
	}
	assert.Equal(t, "SELECT * FROM `logs` PREWHERE `a` = 1 WHERE `b` = 2", render(t, q))
}

func TestRenderJoin(t *testing.T) {
	q := &qir.Query{
		Kind:    qir.KindSelect,
		Table:   "orders",
		Columns: []qir.Expr{qir.ColumnRef{Ref: "orders.id"}},
		Joins: []qir.Join{{
			Type:  "LEFT JOIN",
			Table: "users",
			On: qir.CompareNode{
				Left:  qir.ColumnRef{Ref: "orders.user_id"},
				Op:    qast.OpEq,
				Right: qir.RHSColumn{Ref: "users.id"},
			},
		}},
	}
	assert.Equal(t,
		"SELECT `orders`.`id` FROM `orders` LEFT JOIN `users` ON `orders`.`user_id` = `users`.`id`",
		render(t, q))
}

func TestRenderSubqueryTarget(t *testing.T) {
	q := &qir.Query{
		Kind:       qir.KindSelect,
		TableSub:   &qir.Query{Kind: qir.KindSelect, Table: "raw"},
		TableAlias: "src",
	}
	assert.Equal(t, "SELECT * FROM (SELECT * FROM `raw`) AS `src`", render(t, q))
}

func TestRenderCTEAndUnion(t *testing.T) {
	q := &qir.Query{
		Kind:  qir.KindSelect,
		Table: "recent",
		CTEs: []qir.CTE{{
			Name:  "recent",
			Query: &qir.Query{Kind: qir.KindSelect, Table: "events", Limit: intp(10)},
		}},
		SetOps: []qir.SetOp{{
			All:   true,
			Query: &qir.Query{Kind: qir.KindSelect, Table: "archive"},
		}},
	}
	assert.Equal(t,
		"WITH `recent` AS (SELECT * FROM `events` LIMIT 10) SELECT * FROM `recent` UNION ALL SELECT * FROM `archive`",
		render(t, q))
}

func TestRenderCase(t *testing.T) {
	q := &qir.Query{
		Kind:  qir.KindSelect,
		Table: "users",
		Columns: []qir.Expr{qir.CaseExpr{
			Whens: []qir.CaseWhen{{
				Cond: qir.CompareNode{Left: qir.ColumnRef{Ref: "age"}, Op: qast.OpGte, Right: qir.RHSValue{V: 18}},
				Then: qir.Literal{V: "adult"},
			}},
			Else:  qir.Literal{V: "minor"},
			Alias: "bracket",
		}},
	}
	assert.Equal(t,
		"SELECT CASE WHEN `age` >= 18 THEN 'adult' ELSE 'minor' END AS `bracket` FROM `users`",
		render(t, q))
}

func TestRenderCastFunc(t *testing.T) {
	q := &qir.Query{
		Kind:  qir.KindSelect,
		Table: "t",
		Columns: []qir.Expr{qir.FuncExpr{
			Name: "cast",
			Args: []qir.Expr{qir.ColumnRef{Ref: "id"}, qir.Literal{V: "String"}},
		}},
	}
	assert.Equal(t, "SELECT CAST(`id` AS String) FROM `t`", render(t, q))
}

func TestRenderInsert(t *testing.T) {
	q := &qir.Query{
		Kind:          qir.KindInsert,
		Table:         "events",
		InsertColumns: []string{"id", "type"},
		Rows: [][]qir.Expr{
			{qir.Literal{V: 1}, qir.Literal{V: "click"}},
			{qir.Literal{V: 2}, qir.Literal{V: "view"}},
		},
	}
	assert.Equal(t,
		"INSERT INTO `events` (`id`, `type`) VALUES (1, 'click'), (2, 'view')",
		render(t, q))
}

func TestRenderUpdateSortsAssignments(t *testing.T) {
	q := &qir.Query{
		Kind:  qir.KindUpdate,
		Table: "users",
		Set: map[string]qir.Expr{
			"b_col": qir.Literal{V: 2},
			"a_col": qir.Literal{V: 1},
		},
		Where: qir.CompareNode{Left: qir.ColumnRef{Ref: "id"}, Op: qast.OpEq, Right: qir.RHSValue{V: 7}},
	}
	assert.Equal(t,
		"ALTER TABLE `users` UPDATE `a_col` = 1, `b_col` = 2 WHERE `id` = 7",
		render(t, q))
}

func TestRenderDeleteWithoutWhere(t *testing.T) {
	q := &qir.Query{Kind: qir.KindDelete, Table: "sessions"}
	assert.Equal(t, "ALTER TABLE `sessions` DELETE", render(t, q))
}

func TestRenderNilQuery(t *testing.T) {
	_, err := NewRenderer(nil).Render(nil)
	require.Error(t, err)
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(nil).Render(&qir.Query{Kind: "MERGE"})
	require.Error(t, err)
}
