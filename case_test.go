package chquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseExpression(t *testing.T) {
	bracket := Case().
		When(Where{"age": Lt(13)}, "child").
		When(Where{"age": Lt(18)}, "teen").
		Else("adult").
		As("bracket")

	sql := mustSQL(t, Select("id", bracket).From("users"))
	assert.Equal(t,
		"SELECT `id`, CASE WHEN `age` < 13 THEN 'child' WHEN `age` < 18 THEN 'teen' ELSE 'adult' END AS `bracket` FROM `users`",
		sql)
}

func TestCaseWithoutElse(t *testing.T) {
	c := Case().When(Where{"x": Eq(1)}, "one")
	sql := mustSQL(t, Select(c).From("t"))
	assert.Equal(t, "SELECT CASE WHEN `x` = 1 THEN 'one' END FROM `t`", sql)
}

func nestedCase(depth int) *CaseBuilder {
	c := Case().When(Where{"lvl": Eq(depth)}, depth)
	for i := depth - 1; i >= 1; i-- {
		c = Case().When(Where{"lvl": Eq(i)}, i).Else(c)
	}
	return c
}

func TestCaseDepthLimit(t *testing.T) {
	// Ten levels is the maximum and compiles.
	_, err := Select(nestedCase(10)).From("t").ToSQL()
	require.NoError(t, err)

	// Eleven levels fails at construction, surfaced at ToSQL.
	_, err = Select(nestedCase(11)).From("t").ToSQL()
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeCaseDepthExceeded))
}

func TestCaseEmptyWhensRejected(t *testing.T) {
	_, err := Select(Case()).From("t").ToSQL()
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeInvalidQuery))
}

func TestCaseBadConditionPropagates(t *testing.T) {
	c := Case().When(42, "x")
	_, err := Select(c).From("t").ToSQL()
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, ErrCodeUnsupportedPredicate))
}
