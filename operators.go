package chquery

// OpType identifies an operator helper. Operators are plain data: they
// are never rendered directly, only lowered into comparison predicates by
// the single canonical lowering function shared by every builder.
type OpType string

const (
	opEq        OpType = "eq"
	opNe        OpType = "ne"
	opGt        OpType = "gt"
	opGte       OpType = "gte"
	opLt        OpType = "lt"
	opLte       OpType = "lte"
	opEqCol     OpType = "eqCol"
	opIn        OpType = "in"
	opNotIn     OpType = "notIn"
	opBetween   OpType = "between"
	opLike      OpType = "like"
	opILike     OpType = "ilike"
	opIsNull    OpType = "isNull"
	opIsNotNull OpType = "isNotNull"
	opHasAny    OpType = "hasAny"
	opHasAll    OpType = "hasAll"
	opInTuple   OpType = "inTuple"
	opExists    OpType = "exists"
	opNotExists OpType = "notExists"
	opRaw       OpType = "raw"
)

// Operator pairs an operator type with its right-hand value. Construction
// is total: helpers never fail. Contract violations (an EXISTS argument
// that is not subquery-shaped, a non-slice IN value) are caught at
// lowering time, when the operator meets its column context.
type Operator struct {
	Type  OpType
	Value any
}

// Eq matches rows where the column equals the value.
func Eq(v any) Operator { return Operator{Type: opEq, Value: v} }

// Ne matches rows where the column does not equal the value.
func Ne(v any) Operator { return Operator{Type: opNe, Value: v} }

// Gt matches rows where the column is greater than the value.
func Gt(v any) Operator { return Operator{Type: opGt, Value: v} }

// Gte matches rows where the column is greater than or equal to the value.
func Gte(v any) Operator { return Operator{Type: opGte, Value: v} }

// Lt matches rows where the column is less than the value.
func Lt(v any) Operator { return Operator{Type: opLt, Value: v} }

// Lte matches rows where the column is less than or equal to the value.
func Lte(v any) Operator { return Operator{Type: opLte, Value: v} }

// EqCol compares the column against another column rather than a literal.
func EqCol(column string) Operator { return Operator{Type: opEqCol, Value: column} }

// In matches rows where the column is a member of the value list. The
// argument is a slice, or a nested SELECT builder for IN (subquery).
func In(values any) Operator { return Operator{Type: opIn, Value: values} }

// NotIn is the negation of In.
func NotIn(values any) Operator { return Operator{Type: opNotIn, Value: values} }

// Between matches rows where the column lies between the two endpoints,
// inclusive. Exactly two endpoints, enforced by the signature.
func Between(lo, hi any) Operator { return Operator{Type: opBetween, Value: []any{lo, hi}} }

// Like matches the column against a SQL LIKE pattern.
func Like(pattern string) Operator { return Operator{Type: opLike, Value: pattern} }

// ILike matches the column against a case-insensitive LIKE pattern.
func ILike(pattern string) Operator { return Operator{Type: opILike, Value: pattern} }

// IsNull matches rows where the column is NULL.
func IsNull() Operator { return Operator{Type: opIsNull} }

// IsNotNull matches rows where the column is not NULL.
func IsNotNull() Operator { return Operator{Type: opIsNotNull} }

// HasAny matches rows where the array column contains any of the values.
func HasAny(values any) Operator { return Operator{Type: opHasAny, Value: values} }

// HasAll matches rows where the array column contains all of the values.
func HasAll(values any) Operator { return Operator{Type: opHasAll, Value: values} }

// InTuple matches the column against a list of tuples. Each element of
// the argument slice is itself a slice forming one tuple.
func InTuple(tuples any) Operator { return Operator{Type: opInTuple, Value: tuples} }

// Exists matches when the subquery returns at least one row. The argument
// must be subquery-shaped (a *SelectBuilder or Subquery expression);
// anything else fails at lowering time, not at construction.
func Exists(sub any) Operator { return Operator{Type: opExists, Value: sub} }

// NotExists is the negation of Exists.
func NotExists(sub any) Operator { return Operator{Type: opNotExists, Value: sub} }

// RawOp embeds opaque predicate SQL.
//
// UNSAFE: the text bypasses identifier quoting and value escaping
// entirely. Compilation records a warning whenever it is used.
func RawOp(sql string) Operator { return Operator{Type: opRaw, Value: sql} }
