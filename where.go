package chquery

import (
	"reflect"
	"sort"

	"github.com/clickforge/chquery/internal/qast"
)

// buildPredicate lowers any accepted predicate input into an AST node.
//
// Three shapes are accepted: a column-keyed Where record, an explicit
// Combinator, or a raw predicate (a Raw expression or bare SQL string).
// Bare Operators are additionally accepted for the EXISTS family, which
// has no column context. This is the shared entry point mirrored by the
// column-scoped lowering in distribute: one case per variant in each.
func buildPredicate(input any) (qast.PredicateNode, *ValidationError) {
	switch in := input.(type) {
	case Where:
		return lowerRecord(in)
	case map[string]any:
		return lowerRecord(Where(in))
	case Combinator:
		return lowerCombinator(in)
	case Operator:
		return lowerOperator("", in)
	case qast.PredicateNode:
		return in, nil
	case qast.Expr:
		if raw, ok := in.(qast.Raw); ok {
			return qast.RawPredicate{SQL: raw.SQL}, nil
		}
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", input,
			"expression type %T cannot be used as a predicate", input)
	case string:
		return qast.RawPredicate{SQL: in}, nil
	case nil:
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", nil,
			"nil predicate input")
	default:
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", input,
			"unsupported predicate input type: %T", input)
	}
}

// lowerRecord lowers a column-keyed record. A single entry lowers to its
// comparison directly; multiple entries implicitly AND-combine without
// the combinator mark. Keys are sorted so compilation is deterministic.
func lowerRecord(rec Where) (qast.PredicateNode, *ValidationError) {
	if len(rec) == 0 {
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", nil,
			"empty predicate record")
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	children := make([]qast.PredicateNode, 0, len(keys))
	for _, col := range keys {
		node, err := lowerEntry(col, rec[col])
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	if len(children) == 1 {
		return children[0], nil
	}
	return qast.AndGroup{Children: children, FromCombinator: false}, nil
}

// lowerEntry lowers one record entry. A plain value is shorthand for Eq.
func lowerEntry(col string, v any) (qast.PredicateNode, *ValidationError) {
	switch val := v.(type) {
	case Operator:
		return lowerOperator(col, val)
	case Combinator:
		return distribute(col, val)
	default:
		return lowerOperator(col, Eq(v))
	}
}

// lowerCombinator lowers a bare combinator: every item is a standalone
// predicate input routed back through buildPredicate.
func lowerCombinator(c Combinator) (qast.PredicateNode, *ValidationError) {
	children := make([]qast.PredicateNode, 0, len(c.items))
	for _, item := range c.items {
		node, err := buildPredicate(item)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return combineChildren(c.kind, children)
}

// distribute lowers a combinator scoped to a bare column context, e.g.
// Where{"price": And(Gt(10), Lt(100))}: the column recursively
// distributes onto every leaf Operator, while nested records re-enter the
// standalone lowering. One case per variant, mirroring buildPredicate.
func distribute(col string, c Combinator) (qast.PredicateNode, *ValidationError) {
	children := make([]qast.PredicateNode, 0, len(c.items))
	for _, item := range c.items {
		var node qast.PredicateNode
		var err *ValidationError
		switch it := item.(type) {
		case Operator:
			node, err = lowerOperator(col, it)
		case Combinator:
			node, err = distribute(col, it)
		case Where:
			node, err = lowerRecord(it)
		case map[string]any:
			node, err = lowerRecord(Where(it))
		default:
			node, err = lowerOperator(col, Eq(item))
		}
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return combineChildren(c.kind, children)
}

// combineChildren wraps lowered children in the combinator's group node.
// Explicit And groups carry the combinator mark that drives the
// renderer's parenthesization tie-break.
func combineChildren(kind combKind, children []qast.PredicateNode) (qast.PredicateNode, *ValidationError) {
	if len(children) == 0 {
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", nil,
			"combinator requires at least one input")
	}
	switch kind {
	case combAnd:
		return qast.AndGroup{Children: children, FromCombinator: true}, nil
	case combOr:
		return qast.OrGroup{Children: children}, nil
	case combNot:
		return qast.NotGroup{Child: children[0]}, nil
	default:
		return nil, newValidationError(ErrCodeUnsupportedPredicate, "", string(kind),
			"unsupported combinator kind: %q", kind)
	}
}

// lowerOperator is the single canonical Operator lowering shared by every
// builder and combinator path. It pairs the operator with its column
// context and produces a comparison node.
func lowerOperator(col string, op Operator) (qast.PredicateNode, *ValidationError) {
	// EXISTS-family operators and raw SQL have no column context.
	switch op.Type {
	case opExists:
		return lowerExists(qast.OpExists, op.Value)
	case opNotExists:
		return lowerExists(qast.OpNotExists, op.Value)
	case opRaw:
		sql, ok := op.Value.(string)
		if !ok {
			return nil, newValidationError(ErrCodeUnsupportedOperator, col, op.Value,
				"raw operator requires SQL text, got %T", op.Value)
		}
		return qast.RawPredicate{SQL: sql}, nil
	}

	if col == "" {
		return nil, newValidationError(ErrCodeUnsupportedOperator, "", string(op.Type),
			"operator %q requires a column context", op.Type)
	}
	left := qast.Column{Name: col}

	switch op.Type {
	case opEq:
		return qast.Compare{Left: left, Op: qast.OpEq, Right: valueToExpr(op.Value)}, nil
	case opNe:
		return qast.Compare{Left: left, Op: qast.OpNe, Right: valueToExpr(op.Value)}, nil
	case opGt:
		return qast.Compare{Left: left, Op: qast.OpGt, Right: valueToExpr(op.Value)}, nil
	case opGte:
		return qast.Compare{Left: left, Op: qast.OpGte, Right: valueToExpr(op.Value)}, nil
	case opLt:
		return qast.Compare{Left: left, Op: qast.OpLt, Right: valueToExpr(op.Value)}, nil
	case opLte:
		return qast.Compare{Left: left, Op: qast.OpLte, Right: valueToExpr(op.Value)}, nil
	case opLike:
		return qast.Compare{Left: left, Op: qast.OpLike, Right: valueToExpr(op.Value)}, nil
	case opILike:
		return qast.Compare{Left: left, Op: qast.OpILike, Right: valueToExpr(op.Value)}, nil

	case opEqCol:
		name, ok := op.Value.(string)
		if !ok {
			return nil, newValidationError(ErrCodeUnsupportedOperator, col, op.Value,
				"column comparison requires a column name, got %T", op.Value)
		}
		return qast.Compare{Left: left, Op: qast.OpEq, Right: qast.Column{Name: name}}, nil

	case opIsNull:
		return qast.Compare{Left: left, Op: qast.OpIsNull}, nil
	case opIsNotNull:
		return qast.Compare{Left: left, Op: qast.OpIsNotNull}, nil

	case opIn:
		right, err := listOrSubquery(col, op.Value)
		if err != nil {
			return nil, err
		}
		return qast.Compare{Left: left, Op: qast.OpIn, Right: right}, nil
	case opNotIn:
		right, err := listOrSubquery(col, op.Value)
		if err != nil {
			return nil, err
		}
		return qast.Compare{Left: left, Op: qast.OpNotIn, Right: right}, nil

	case opBetween:
		endpoints, ok := op.Value.([]any)
		if !ok || len(endpoints) != 2 {
			return nil, newValidationError(ErrCodeUnsupportedOperator, col, op.Value,
				"between requires exactly 2 endpoint values")
		}
		return qast.Compare{Left: left, Op: qast.OpBetween, Right: qast.Tuple{
			Items: []qast.Expr{valueToExpr(endpoints[0]), valueToExpr(endpoints[1])},
		}}, nil

	case opHasAny:
		right, err := toExprArray(col, op.Value)
		if err != nil {
			return nil, err
		}
		return qast.Compare{Left: left, Op: qast.OpHasAny, Right: right}, nil
	case opHasAll:
		right, err := toExprArray(col, op.Value)
		if err != nil {
			return nil, err
		}
		return qast.Compare{Left: left, Op: qast.OpHasAll, Right: right}, nil
	case opInTuple:
		right, err := toExprArray(col, op.Value)
		if err != nil {
			return nil, err
		}
		return qast.Compare{Left: left, Op: qast.OpInTuple, Right: right}, nil

	default:
		return nil, newValidationError(ErrCodeUnsupportedOperator, col, string(op.Type),
			"unsupported operator type: %q", op.Type)
	}
}

// lowerExists lowers an EXISTS-family operator. The argument must be
// subquery-shaped; this is the deliberate late catch for the total
// constructors.
func lowerExists(token string, v any) (qast.PredicateNode, *ValidationError) {
	switch sub := v.(type) {
	case *SelectBuilder:
		return qast.Compare{Op: token, Right: qast.Subquery{Node: sub.node}}, nil
	case qast.Subquery:
		return qast.Compare{Op: token, Right: sub}, nil
	default:
		return nil, newValidationError(ErrCodeMissingSubquery, "", v,
			"%s requires a subquery argument, got %T", token, v)
	}
}

// listOrSubquery lowers an IN right-hand side: a nested builder, an
// explicit subquery wrapper, or a slice of values.
func listOrSubquery(col string, v any) (qast.Expr, *ValidationError) {
	switch val := v.(type) {
	case *SelectBuilder:
		return qast.Subquery{Node: val.node}, nil
	case qast.Subquery:
		return val, nil
	default:
		return toExprArray(col, v)
	}
}

// toExprArray lowers a slice value into an Array expression. Slice
// elements that are themselves slices become tuples, which is how
// tuple-list membership values are expressed.
func toExprArray(col string, v any) (qast.Expr, *ValidationError) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, newValidationError(ErrCodeUnsupportedOperator, col, v,
			"operator requires a slice value, got %T", v)
	}

	items := make([]qast.Expr, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		ev := reflect.ValueOf(elem)
		if ev.IsValid() && (ev.Kind() == reflect.Slice || ev.Kind() == reflect.Array) {
			tuple := make([]qast.Expr, 0, ev.Len())
			for j := 0; j < ev.Len(); j++ {
				tuple = append(tuple, qast.Value{V: ev.Index(j).Interface()})
			}
			items = append(items, qast.Tuple{Items: tuple})
			continue
		}
		items = append(items, qast.Value{V: elem})
	}
	return qast.Array{Items: items}, nil
}
