package chsql

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the literal layout for date values: space-separated,
// truncated to whole seconds, no timezone suffix.
const dateLayout = "2006-01-02 15:04:05"

// FormatValue serializes a Go value into a ClickHouse literal for direct
// inlining.
//
//   - strings: single-quoted, embedded quotes doubled
//   - integers and floats: passed through; ±Inf and NaN become the
//     dialect literals inf, -inf, nan
//   - decimal.Decimal: exact decimal text
//   - time.Time: quoted 'YYYY-MM-DD HH:MM:SS'
//   - booleans: bareword true / false
//   - nil: bareword NULL
//   - slices: bracket-delimited, recursively formatted
//   - string-keyed maps: Map literal syntax {'k': v, ...}, keys sorted
//
// Unsupported kinds return an error rather than a best-effort string.
func FormatValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteString(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return formatFloat(float64(val)), nil
	case float64:
		return formatFloat(val), nil
	case decimal.Decimal:
		return val.String(), nil
	case time.Time:
		return "'" + val.Format(dateLayout) + "'", nil
	case []any:
		return formatSlice(val)
	case map[string]any:
		return formatMap(val)
	}

	// Typed slices and maps arrive through reflection.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return formatSlice(items)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			for _, key := range rv.MapKeys() {
				m[key.String()] = rv.MapIndex(key).Interface()
			}
			return formatMap(m)
		}
	}

	return "", fmt.Errorf("unsupported value type: %T", v)
}

// quoteString single-quotes a string literal, doubling embedded quotes.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatFloat renders a float, mapping the non-finite values onto the
// dialect's bareword literals.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatSlice renders a bracket-delimited array literal.
func formatSlice(items []any) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := FormatValue(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// formatMap renders the dialect Map literal syntax. Keys are sorted so
// repeated rendering of the same map is byte-identical.
func formatMap(m map[string]any) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		s, err := FormatValue(m[k])
		if err != nil {
			return "", err
		}
		parts = append(parts, quoteString(k)+": "+s)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// formatList renders a parenthesized, comma-separated value list, the
// right-hand shape for IN and the lambda membership idioms.
func formatList(items []any) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		// A []any element is a tuple, which is how tuple-list membership
		// values arrive.
		if tuple, ok := item.([]any); ok {
			inner, err := formatList(tuple)
			if err != nil {
				return "", err
			}
			parts = append(parts, inner)
			continue
		}
		s, err := FormatValue(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
