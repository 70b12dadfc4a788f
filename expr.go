package chquery

import "github.com/clickforge/chquery/internal/qast"

// Expr is a query expression node usable in column lists, function
// arguments, and predicate positions. Construct expressions with Col,
// Val, Raw, Fn, Tuple, Subquery, and the CASE builder; the concrete node
// types are sealed inside the AST package.
type Expr = qast.Expr

// Col references a column. The name may be table-qualified
// ("events.user_id"); the renderer splits and quotes each segment.
func Col(name string) Expr {
	return qast.Column{Name: name}
}

// ColAs references a column with a SELECT alias.
func ColAs(name, alias string) Expr {
	return qast.Column{Name: name, Alias: alias}
}

// Val embeds a literal value.
func Val(v any) Expr {
	return qast.Value{V: v}
}

// Raw embeds opaque SQL text as an expression. In predicate position a
// Raw expression becomes a raw predicate.
//
// UNSAFE: the text bypasses identifier quoting and value escaping
// entirely. Compilation records a warning whenever it is used.
func Raw(sql string) Expr {
	return qast.Raw{SQL: sql}
}

// Fn builds a function call expression. Arguments that are not already
// expressions are embedded as literal values; use Col to reference
// columns:
//
//	chquery.Fn("sum", chquery.Col("price"))
//	chquery.Fn("cast", chquery.Col("id"), "UInt64") // renders CAST(`id` AS UInt64)
func Fn(name string, args ...any) Expr {
	exprs := make([]qast.Expr, 0, len(args))
	for _, arg := range args {
		exprs = append(exprs, valueToExpr(arg))
	}
	return qast.Func{Name: name, Args: exprs}
}

// TupleOf groups expressions into a fixed-arity tuple.
func TupleOf(items ...any) Expr {
	exprs := make([]qast.Expr, 0, len(items))
	for _, item := range items {
		exprs = append(exprs, valueToExpr(item))
	}
	return qast.Tuple{Items: exprs}
}

// Subquery wraps a nested SELECT builder for use in expression position:
// a scalar SELECT column, an IN right-hand side, or an EXISTS argument.
// Nesting must go through the wrapper; nothing downstream probes dynamic
// types to discover it.
func Subquery(sub *SelectBuilder) Expr {
	if sub == nil {
		return qast.Subquery{}
	}
	return qast.Subquery{Node: sub.node}
}

// As returns a copy of the expression carrying the given SELECT alias.
// Expressions that cannot carry an alias are returned unchanged.
func As(e Expr, alias string) Expr {
	return withAlias(e, alias)
}

// withAlias sets the alias on expression kinds that carry one.
func withAlias(e qast.Expr, alias string) qast.Expr {
	switch expr := e.(type) {
	case qast.Column:
		expr.Alias = alias
		return expr
	case qast.Subquery:
		expr.Alias = alias
		return expr
	case qast.Raw:
		expr.Alias = alias
		return expr
	case qast.Func:
		expr.Alias = alias
		return expr
	case qast.Case:
		expr.Alias = alias
		return expr
	}
	return e
}

// valueToExpr embeds an arbitrary argument as an expression. Expressions
// pass through; nested builders become explicit subquery wrappers; CASE
// builders finalize; everything else is a literal.
func valueToExpr(v any) qast.Expr {
	switch val := v.(type) {
	case qast.Expr:
		return val
	case *SelectBuilder:
		return qast.Subquery{Node: val.node}
	case *CaseBuilder:
		expr, err := val.build()
		if err != nil {
			// Embedding the builder itself guarantees compilation fails;
			// builder methods that accept a *CaseBuilder directly record
			// the construction error with its proper code.
			return qast.Value{V: val}
		}
		return expr
	case Operator:
		// Operators are not expressions; this is caught by validation.
		return qast.Value{V: val}
	default:
		return qast.Value{V: v}
	}
}
