package chquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickforge/chquery/internal/qast"
)

func mustPredicate(t *testing.T, input any) qast.PredicateNode {
	t.Helper()
	node, err := buildPredicate(input)
	require.Nil(t, err)
	return node
}

func TestLowerRecordSingleEntry(t *testing.T) {
	node := mustPredicate(t, Where{"id": Eq(1)})
	cmp, ok := node.(qast.Compare)
	require.True(t, ok)
	assert.Equal(t, qast.Column{Name: "id"}, cmp.Left)
	assert.Equal(t, qast.OpEq, cmp.Op)
	assert.Equal(t, qast.Value{V: 1}, cmp.Right)
}

func TestLowerRecordPlainValueIsEq(t *testing.T) {
	node := mustPredicate(t, Where{"status": "active"})
	cmp, ok := node.(qast.Compare)
	require.True(t, ok)
	assert.Equal(t, qast.OpEq, cmp.Op)
	assert.Equal(t, qast.Value{V: "active"}, cmp.Right)
}

func TestLowerRecordMultiKeySortsAndGroups(t *testing.T) {
	node := mustPredicate(t, Where{"b": Eq(2), "a": Eq(1)})
	and, ok := node.(qast.AndGroup)
	require.True(t, ok)
	// Implicit record AND carries no combinator mark.
	assert.False(t, and.FromCombinator)
	require.Len(t, and.Children, 2)
	assert.Equal(t, qast.Column{Name: "a"}, and.Children[0].(qast.Compare).Left)
	assert.Equal(t, qast.Column{Name: "b"}, and.Children[1].(qast.Compare).Left)
}

func TestLowerCombinators(t *testing.T) {
	node := mustPredicate(t, And(Where{"a": Eq(1)}, Where{"b": Eq(2)}))
	and, ok := node.(qast.AndGroup)
	require.True(t, ok)
	assert.True(t, and.FromCombinator)
	require.Len(t, and.Children, 2)

	node = mustPredicate(t, Or(Where{"a": Eq(1)}, Where{"b": Eq(2)}))
	or, ok := node.(qast.OrGroup)
	require.True(t, ok)
	require.Len(t, or.Children, 2)

	node = mustPredicate(t, Not(Where{"a": Eq(1)}))
	not, ok := node.(qast.NotGroup)
	require.True(t, ok)
	require.NotNil(t, not.Child)
}

func TestColumnScopedCombinatorDistributes(t *testing.T) {
	node := mustPredicate(t, Where{"price": And(Gt(10), Lt(100))})
	and, ok := node.(qast.AndGroup)
	require.True(t, ok)
	assert.True(t, and.FromCombinator)
	require.Len(t, and.Children, 2)

	lo := and.Children[0].(qast.Compare)
	assert.Equal(t, qast.Column{Name: "price"}, lo.Left)
	assert.Equal(t, qast.OpGt, lo.Op)

	hi := and.Children[1].(qast.Compare)
	assert.Equal(t, qast.Column{Name: "price"}, hi.Left)
	assert.Equal(t, qast.OpLt, hi.Op)
}

func TestColumnScopedCombinatorDistributesRecursively(t *testing.T) {
	node := mustPredicate(t, Where{"x": Or(Eq(1), And(Gt(5), Lt(9)))})
	or, ok := node.(qast.OrGroup)
	require.True(t, ok)
	require.Len(t, or.Children, 2)

	inner, ok := or.Children[1].(qast.AndGroup)
	require.True(t, ok)
	for _, child := range inner.Children {
		assert.Equal(t, qast.Column{Name: "x"}, child.(qast.Compare).Left)
	}
}

func TestColumnScopedPlainValueIsEq(t *testing.T) {
	node := mustPredicate(t, Where{"x": Or(1, 2)})
	or := node.(qast.OrGroup)
	require.Len(t, or.Children, 2)
	assert.Equal(t, qast.OpEq, or.Children[0].(qast.Compare).Op)
}

func TestStringInputIsRawPredicate(t *testing.T) {
	node := mustPredicate(t, "rand() < 0.5")
	raw, ok := node.(qast.RawPredicate)
	require.True(t, ok)
	assert.Equal(t, "rand() < 0.5", raw.SQL)
}

func TestBuildPredicateRejectsBadInput(t *testing.T) {
	_, err := buildPredicate(42)
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeUnsupportedPredicate, err.Code)

	_, err = buildPredicate(nil)
	require.NotNil(t, err)

	_, err = buildPredicate(Where{})
	require.NotNil(t, err)
}

func TestLowerOperatorRequiresColumnContext(t *testing.T) {
	_, err := buildPredicate(Eq(1))
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeUnsupportedOperator, err.Code)
}

func TestLowerExists(t *testing.T) {
	sub := Select("1").From("orders")
	node := mustPredicate(t, Exists(sub))
	cmp := node.(qast.Compare)
	assert.Nil(t, cmp.Left)
	assert.Equal(t, qast.OpExists, cmp.Op)
	_, ok := cmp.Right.(qast.Subquery)
	assert.True(t, ok)

	_, err := buildPredicate(Exists("not a subquery"))
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeMissingSubquery, err.Code)
}

func TestLowerInShapes(t *testing.T) {
	node := mustPredicate(t, Where{"id": In([]int{1, 2, 3})})
	cmp := node.(qast.Compare)
	arr, ok := cmp.Right.(qast.Array)
	require.True(t, ok)
	assert.Len(t, arr.Items, 3)

	sub := Select("user_id").From("orders")
	node = mustPredicate(t, Where{"id": In(sub)})
	_, ok = node.(qast.Compare).Right.(qast.Subquery)
	assert.True(t, ok)

	_, err := buildPredicate(Where{"id": In(7)})
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeUnsupportedOperator, err.Code)
}

func TestLowerInTupleBuildsTuples(t *testing.T) {
	node := mustPredicate(t, Where{"pair": InTuple([][]any{{1, "a"}, {2, "b"}})})
	arr := node.(qast.Compare).Right.(qast.Array)
	require.Len(t, arr.Items, 2)
	tuple, ok := arr.Items[0].(qast.Tuple)
	require.True(t, ok)
	assert.Len(t, tuple.Items, 2)
}

func TestLowerBetween(t *testing.T) {
	node := mustPredicate(t, Where{"price": Between(10, 100)})
	cmp := node.(qast.Compare)
	assert.Equal(t, qast.OpBetween, cmp.Op)
	tuple, ok := cmp.Right.(qast.Tuple)
	require.True(t, ok)
	assert.Len(t, tuple.Items, 2)
}

func TestLowerEqCol(t *testing.T) {
	node := mustPredicate(t, Where{"a": EqCol("b")})
	cmp := node.(qast.Compare)
	assert.Equal(t, qast.Column{Name: "b"}, cmp.Right)
}

func TestLowerIsNullFamily(t *testing.T) {
	node := mustPredicate(t, Where{"deleted_at": IsNull()})
	cmp := node.(qast.Compare)
	assert.Equal(t, qast.OpIsNull, cmp.Op)
	assert.Nil(t, cmp.Right)

	node = mustPredicate(t, Where{"deleted_at": IsNotNull()})
	assert.Equal(t, qast.OpIsNotNull, node.(qast.Compare).Op)
}

func TestLowerRawOp(t *testing.T) {
	node := mustPredicate(t, Where{"ignored": RawOp("match(name, '^a')")})
	raw, ok := node.(qast.RawPredicate)
	require.True(t, ok)
	assert.Equal(t, "match(name, '^a')", raw.SQL)
}
