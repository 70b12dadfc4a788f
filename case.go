package chquery

import "github.com/clickforge/chquery/internal/qast"

// maxCaseDepth bounds CASE nesting to guard against unbounded recursive
// SQL generation. Exceeding it is a hard construction-time failure.
const maxCaseDepth = 10

// CaseBuilder accumulates (condition, then) branches for a CASE
// expression. Conditions accept the same inputs as Where; then-branches
// and the else-branch accept values, expressions, or nested CaseBuilders.
//
//	status := chquery.Case().
//		When(chquery.Where{"age": chquery.Lt(18)}, "minor").
//		Else("adult").
//		As("bracket")
type CaseBuilder struct {
	whens []qast.CaseWhen
	els   qast.Expr
	alias string
	depth int
	err   *ValidationError
}

// Case starts a new CASE expression builder.
func Case() *CaseBuilder {
	return &CaseBuilder{depth: 1}
}

// When appends one (condition, then) branch. Branch order is preserved.
func (c *CaseBuilder) When(cond any, then any) *CaseBuilder {
	node, err := buildPredicate(cond)
	if err != nil && c.err == nil {
		c.err = err
	}
	c.whens = append(c.whens, qast.CaseWhen{Cond: node, Then: c.operand(then)})
	return c
}

// Else sets the ELSE branch.
func (c *CaseBuilder) Else(v any) *CaseBuilder {
	c.els = c.operand(v)
	return c
}

// As sets the SELECT alias for the finished expression.
func (c *CaseBuilder) As(alias string) *CaseBuilder {
	c.alias = alias
	return c
}

// operand embeds a branch value, tracking nesting depth when the value is
// itself a CASE expression.
func (c *CaseBuilder) operand(v any) qast.Expr {
	if nested, ok := v.(*CaseBuilder); ok {
		if nested.depth+1 > c.depth {
			c.depth = nested.depth + 1
		}
		if c.depth > maxCaseDepth && c.err == nil {
			c.err = newValidationError(ErrCodeCaseDepthExceeded, "case", nil,
				"CASE nesting exceeds maximum depth of %d", maxCaseDepth)
		}
		if nested.err != nil && c.err == nil {
			c.err = nested.err
		}
		expr, _ := nested.build()
		return expr
	}
	return valueToExpr(v)
}

// build finalizes the CASE expression. The returned error is the first
// construction-time failure, including the depth guard.
func (c *CaseBuilder) build() (qast.Expr, error) {
	expr := qast.Case{Whens: c.whens, Else: c.els, Alias: c.alias}
	if c.err != nil {
		return expr, c.err
	}
	return expr, nil
}
