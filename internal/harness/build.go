package harness

import (
	"fmt"

	"github.com/clickforge/chquery"
)

// Build compiles a scenario through the public builder API and returns
// the compiled query.
func Build(s Scenario) (chquery.CompiledQuery, error) {
	switch s.Kind {
	case "select":
		return buildSelect(s)
	case "insert":
		return buildInsert(s)
	case "update":
		return buildUpdate(s)
	case "delete":
		return buildDelete(s)
	default:
		return chquery.CompiledQuery{}, fmt.Errorf("scenario %s: unknown kind %q", s.Name, s.Kind)
	}
}

func buildSelect(s Scenario) (chquery.CompiledQuery, error) {
	cols := make([]any, 0, len(s.Columns))
	for _, c := range s.Columns {
		cols = append(cols, c)
	}
	b := chquery.Select(cols...).From(s.Table)

	if err := applyConditions(b.Where, s.Name, s.Where); err != nil {
		return chquery.CompiledQuery{}, err
	}
	if err := applyConditions(b.PreWhere, s.Name, s.PreWhere); err != nil {
		return chquery.CompiledQuery{}, err
	}

	for _, g := range s.GroupBy {
		b.GroupBy(g)
	}
	for _, o := range s.OrderBy {
		dir := chquery.Asc
		if o.Desc {
			dir = chquery.Desc
		}
		b.OrderBy(o.Column, dir)
	}
	if s.Limit != nil {
		b.Limit(*s.Limit)
	}
	if s.Offset != nil {
		b.Offset(*s.Offset)
	}
	if s.Distinct {
		b.Distinct()
	}
	if s.Final {
		b.Final()
	}
	if len(s.Settings) > 0 {
		b.Settings(s.Settings)
	}
	if s.Format != "" {
		b.Format(s.Format)
	}
	return b.ToSQL()
}

func buildInsert(s Scenario) (chquery.CompiledQuery, error) {
	b := chquery.InsertInto(s.Table)
	if len(s.Columns) > 0 {
		b.Columns(s.Columns...)
	}
	b.Values(s.Rows...)
	if len(s.Settings) > 0 {
		b.Settings(s.Settings)
	}
	return b.ToSQL()
}

func buildUpdate(s Scenario) (chquery.CompiledQuery, error) {
	b := chquery.Update(s.Table).Set(s.Set)
	if err := applyConditions(b.Where, s.Name, s.Where); err != nil {
		return chquery.CompiledQuery{}, err
	}
	if len(s.Settings) > 0 {
		b.Settings(s.Settings)
	}
	return b.ToSQL()
}

func buildDelete(s Scenario) (chquery.CompiledQuery, error) {
	b := chquery.DeleteFrom(s.Table)
	if err := applyConditions(b.Where, s.Name, s.Where); err != nil {
		return chquery.CompiledQuery{}, err
	}
	if len(s.Settings) > 0 {
		b.Settings(s.Settings)
	}
	return b.ToSQL()
}

// applyConditions feeds each condition to a Where-style method in file
// order, one call per condition so the builder AND-merges them.
func applyConditions[T any](where func(any) T, scenario string, conds []Condition) error {
	for _, c := range conds {
		op, err := operatorFor(scenario, c)
		if err != nil {
			return err
		}
		where(chquery.Where{c.Column: op})
	}
	return nil
}

func operatorFor(scenario string, c Condition) (chquery.Operator, error) {
	switch c.Op {
	case "eq":
		return chquery.Eq(c.Value), nil
	case "ne":
		return chquery.Ne(c.Value), nil
	case "gt":
		return chquery.Gt(c.Value), nil
	case "gte":
		return chquery.Gte(c.Value), nil
	case "lt":
		return chquery.Lt(c.Value), nil
	case "lte":
		return chquery.Lte(c.Value), nil
	case "in":
		return chquery.In(c.Value), nil
	case "notIn":
		return chquery.NotIn(c.Value), nil
	case "between":
		pair, ok := c.Value.([]any)
		if !ok || len(pair) != 2 {
			return chquery.Operator{}, fmt.Errorf("scenario %s: between on %s needs a two-element value", scenario, c.Column)
		}
		return chquery.Between(pair[0], pair[1]), nil
	case "like":
		return chquery.Like(fmt.Sprint(c.Value)), nil
	case "ilike":
		return chquery.ILike(fmt.Sprint(c.Value)), nil
	case "isNull":
		return chquery.IsNull(), nil
	case "isNotNull":
		return chquery.IsNotNull(), nil
	case "hasAny":
		return chquery.HasAny(c.Value), nil
	case "hasAll":
		return chquery.HasAll(c.Value), nil
	case "inTuple":
		return chquery.InTuple(c.Value), nil
	default:
		return chquery.Operator{}, fmt.Errorf("scenario %s: unknown operator %q on %s", scenario, c.Op, c.Column)
	}
}
