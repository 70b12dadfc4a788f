package chsql

import (
	"fmt"
	"strings"

	"github.com/clickforge/chquery/internal/qast"
	"github.com/clickforge/chquery/internal/qir"
)

// lambdaVar is the bound variable name used by the array-membership
// lambda idioms.
const lambdaVar = "i"

// renderPredicate renders a boolean-logic node.
//
// Parenthesization rules:
//   - OR groups always parenthesize
//   - NOT wraps its child in NOT (...), reusing the parens a group child
//     already carries
//   - AND groups parenthesize only when nested; at the top level AND is
//     already the clause connective and renders bare
func (r *Renderer) renderPredicate(p qir.Predicate, topLevel bool) (string, error) {
	switch pred := p.(type) {
	case qir.CompareNode:
		return r.renderCompare(pred)
	case qir.AndNode:
		return r.renderAnd(pred, topLevel)
	case qir.OrNode:
		parts, err := r.renderChildren(pred.Children)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	case qir.NotNode:
		child, err := r.renderPredicate(pred.Child, false)
		if err != nil {
			return "", err
		}
		switch pred.Child.(type) {
		case qir.AndNode, qir.OrNode:
			// Nested groups already carry their own parens.
			return "NOT " + child, nil
		}
		return "NOT (" + child + ")", nil
	case qir.RawPredicateNode:
		return pred.SQL, nil
	case nil:
		return "", fmt.Errorf("nil predicate")
	default:
		return "", fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (r *Renderer) renderChildren(children []qir.Predicate) ([]string, error) {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		s, err := r.renderPredicate(child, false)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return parts, nil
}

func (r *Renderer) renderAnd(and qir.AndNode, topLevel bool) (string, error) {
	parts, err := r.renderChildren(and.Children)
	if err != nil {
		return "", err
	}
	joined := strings.Join(parts, " AND ")

	// At the top level AND is already the clause connective; nested OR
	// and NOT children bring their own parens.
	if !topLevel {
		return "(" + joined + ")", nil
	}
	return joined, nil
}

// renderCompare maps one comparison onto dialect syntax.
func (r *Renderer) renderCompare(cmp qir.CompareNode) (string, error) {
	switch cmp.Op {
	case qast.OpExists, qast.OpNotExists:
		sub, ok := cmp.Right.(qir.RHSSubquery)
		if !ok {
			return "", fmt.Errorf("%s requires a subquery right-hand side", cmp.Op)
		}
		inner, err := r.renderSelect(sub.Query)
		if err != nil {
			return "", err
		}
		return cmp.Op + " (" + inner + ")", nil
	}

	left, err := r.renderExpr(cmp.Left, ctxPredicate)
	if err != nil {
		return "", err
	}

	switch cmp.Op {
	case qast.OpIsNull, qast.OpIsNotNull:
		return left + " " + cmp.Op, nil

	case qast.OpIn, qast.OpNotIn:
		list, err := r.renderInList(cmp.Right)
		if err != nil {
			return "", err
		}
		return left + " " + cmp.Op + " " + list, nil

	case qast.OpBetween:
		items, err := rhsPair(cmp.Right)
		if err != nil {
			return "", err
		}
		lo, err := FormatValue(items[0])
		if err != nil {
			return "", err
		}
		hi, err := FormatValue(items[1])
		if err != nil {
			return "", err
		}
		return left + " BETWEEN " + lo + " AND " + hi, nil

	case qast.OpHasAny:
		return r.renderArrayLambda("arrayExists", left, cmp.Right)
	case qast.OpHasAll:
		return r.renderArrayLambda("arrayAll", left, cmp.Right)

	case qast.OpInTuple:
		list, err := r.renderInList(cmp.Right)
		if err != nil {
			return "", err
		}
		return left + " IN " + list, nil

	case qast.OpEq, qast.OpNe, qast.OpGt, qast.OpGte, qast.OpLt, qast.OpLte,
		qast.OpLike, qast.OpILike:
		rhs, err := r.renderRHS(cmp.Right)
		if err != nil {
			return "", err
		}
		return left + " " + cmp.Op + " " + rhs, nil

	default:
		return "", fmt.Errorf("unsupported operator: %q", cmp.Op)
	}
}

// renderInList renders the right-hand side of IN-family operators: a
// parenthesized value list or a parenthesized subquery.
func (r *Renderer) renderInList(rhs qir.RHS) (string, error) {
	switch v := rhs.(type) {
	case qir.RHSArray:
		return formatList(v.Items)
	case qir.RHSTuple:
		return formatList(v.Items)
	case qir.RHSSubquery:
		inner, err := r.renderSelect(v.Query)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case qir.RHSValue:
		// A scalar collapses to a one-element list.
		return formatList([]any{v.V})
	default:
		return "", fmt.Errorf("IN requires a list or subquery right-hand side, got %T", rhs)
	}
}

// renderArrayLambda emits the dialect's lambda-style array membership
// idiom: fn(i -> i IN (values), column).
func (r *Renderer) renderArrayLambda(fn, column string, rhs qir.RHS) (string, error) {
	arr, ok := rhs.(qir.RHSArray)
	if !ok {
		return "", fmt.Errorf("%s requires an array right-hand side, got %T", fn, rhs)
	}
	list, err := formatList(arr.Items)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s -> %s IN %s, %s)", fn, lambdaVar, lambdaVar, list, column), nil
}

// renderRHS renders a scalar-position right-hand side.
func (r *Renderer) renderRHS(rhs qir.RHS) (string, error) {
	switch v := rhs.(type) {
	case qir.RHSValue:
		return FormatValue(v.V)
	case qir.RHSColumn:
		return quoteIdent(v.Ref, ctxPredicate)
	case qir.RHSSubquery:
		inner, err := r.renderSelect(v.Query)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case qir.RHSArray:
		items := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			s, err := FormatValue(item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	case qir.RHSExpr:
		return r.renderExpr(v.E, ctxPredicate)
	case qir.RHSNone:
		return "", fmt.Errorf("missing right-hand side")
	default:
		return "", fmt.Errorf("unsupported right-hand side type: %T", rhs)
	}
}

// rhsPair extracts exactly two endpoint values (BETWEEN).
func rhsPair(rhs qir.RHS) ([]any, error) {
	var items []any
	switch v := rhs.(type) {
	case qir.RHSTuple:
		items = v.Items
	case qir.RHSArray:
		items = v.Items
	default:
		return nil, fmt.Errorf("BETWEEN requires two endpoint values, got %T", rhs)
	}
	if len(items) != 2 {
		return nil, fmt.Errorf("BETWEEN requires exactly 2 endpoint values, got %d", len(items))
	}
	return items, nil
}
