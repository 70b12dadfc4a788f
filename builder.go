package chquery

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/clickforge/chquery/internal/chsql"
	"github.com/clickforge/chquery/internal/qast"
	"github.com/clickforge/chquery/internal/qir"
)

// ValidationResult is the advisory outcome of Validate: the aggregated
// error and warning lists from the validator and normalizer, without any
// error being raised.
type ValidationResult = qast.ValidationResult

// builderCore carries the state shared by all four builders: the logging
// port and the construction-time errors recorded by fluent calls. Errors
// are deferred; they surface as one ValidationError at ToSQL time.
type builderCore struct {
	logger *slog.Logger
	errs   []*ValidationError
}

func newBuilderCore() builderCore {
	return builderCore{logger: slog.Default()}
}

func (c *builderCore) setLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *builderCore) record(err *ValidationError) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

// toExpr embeds an arbitrary input as an expression, recording CASE
// construction failures against the builder.
func (c *builderCore) toExpr(v any) qast.Expr {
	if cb, ok := v.(*CaseBuilder); ok {
		expr, err := cb.build()
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				c.record(ve)
			}
		}
		return expr
	}
	return valueToExpr(v)
}

// columnExpr converts a column-position input: bare strings are column
// references, everything else embeds as an expression.
func (c *builderCore) columnExpr(v any) qast.Expr {
	if name, ok := v.(string); ok {
		return qast.Column{Name: name}
	}
	return c.toExpr(v)
}

// predicate lowers a predicate input, recording failures.
func (c *builderCore) predicate(input any) qast.PredicateNode {
	node, err := buildPredicate(input)
	if err != nil {
		c.record(err)
		return nil
	}
	return node
}

// mergePredicate AND-merges a new predicate into existing WHERE state.
// The merged group is NOT marked combinator-built: repeated Where calls
// behave exactly like a multi-key record.
func mergePredicate(existing, add qast.PredicateNode) qast.PredicateNode {
	if add == nil {
		return existing
	}
	if existing == nil {
		return add
	}
	if grp, ok := existing.(qast.AndGroup); ok && !grp.FromCombinator {
		grp.Children = append(grp.Children, add)
		return grp
	}
	return qast.AndGroup{Children: []qast.PredicateNode{existing, add}}
}

// mergeSettings shallow-merges src into dst, later keys winning.
func mergeSettings(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// compile is the terminal pipeline shared by every builder's ToSQL:
// normalize, gate on the unified validation result, then render. Failure
// is always a single *ValidationError carrying the joined error list and
// a fresh query ID.
func (c *builderCore) compile(node qast.Node) (CompiledQuery, error) {
	ir, result := qir.Normalize(node)

	msgs := make([]string, 0, len(c.errs)+len(result.Errors))
	for _, e := range c.errs {
		msgs = append(msgs, e.Message)
	}
	msgs = append(msgs, result.Errors...)

	if len(msgs) > 0 {
		// The first structured builder error keeps its code and field;
		// pure validator failures aggregate under INVALID_QUERY.
		code := ErrCodeInvalidQuery
		var field string
		var value any
		if len(c.errs) > 0 {
			code = c.errs[0].Code
			field = c.errs[0].Field
			value = c.errs[0].Value
		}
		return CompiledQuery{}, &ValidationError{
			Code:    code,
			Message: strings.Join(msgs, "; "),
			Field:   field,
			Value:   value,
			QueryID: uuid.NewString(),
		}
	}

	for _, w := range result.Warnings {
		c.logger.Warn("query compilation warning", "warning", w)
	}

	sql, err := chsql.NewRenderer(c.logger).Render(ir)
	if err != nil {
		var mie *chsql.MalformedIdentifierError
		if errors.As(err, &mie) {
			return CompiledQuery{}, &ValidationError{
				Code:    ErrCodeMalformedIdentifier,
				Message: err.Error(),
				Field:   mie.Ident,
				QueryID: uuid.NewString(),
			}
		}
		return CompiledQuery{}, &ValidationError{
			Code:    ErrCodeUnsupportedExpression,
			Message: err.Error(),
			QueryID: uuid.NewString(),
		}
	}

	return CompiledQuery{
		SQL:      sql,
		Params:   []any{},
		Settings: ir.Settings,
		Format:   ir.Format,
	}, nil
}

// validate runs the advisory validation pass: builder-recorded errors
// first, then the validator/normalizer result. Nothing is raised.
func (c *builderCore) validate(node qast.Node) ValidationResult {
	_, result := qir.Normalize(node)
	if len(c.errs) == 0 {
		return result
	}
	merged := ValidationResult{}
	for _, e := range c.errs {
		merged.Errors = append(merged.Errors, e.Message)
	}
	merged.Merge(result)
	return merged
}
