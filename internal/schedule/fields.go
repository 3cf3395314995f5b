package schedule

import "strconv"

// Field-alias tables for the loosely-shaped rows the scheduling backend
// emits. Every alias the service tolerates is listed here and nowhere else;
// the canonical names are the first entry of each table.
var (
	indexAliases       = []string{"installment", "period"}
	dueDateAliases     = []string{"dueDate", "date"}
	feesAliases        = []string{"fee", "fees"}
	paidFeesAliases    = []string{"paidFees", "paidFee"}
	paymentDateAliases = []string{"date", "paymentDate"}

	envelopeKeys = []string{"schedule", "rows", "data"}
	paymentKeys  = []string{"payments", "transactions"}
)

// toNumber coerces a decoded JSON value to a float64. The second return
// reports whether the value had a numeric interpretation at all; the first
// is always usable and defaults to 0, matching the upstream contract where
// a malformed amount is an intentional zero rather than an error.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// firstValue returns the value of the first alias present in the row.
func firstValue(row map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// num resolves the first present alias and coerces it, defaulting to 0.
func num(row map[string]any, keys ...string) float64 {
	v, ok := firstValue(row, keys...)
	if !ok {
		return 0
	}
	f, _ := toNumber(v)
	return f
}

// optNum resolves the first present alias to a numeric value, or nil when
// the field is absent or has no numeric interpretation.
func optNum(row map[string]any, keys ...string) *float64 {
	v, ok := firstValue(row, keys...)
	if !ok {
		return nil
	}
	f, numeric := toNumber(v)
	if !numeric {
		return nil
	}
	return &f
}

// anyPresent reports whether any of the aliases exists on the row.
func anyPresent(row map[string]any, keys ...string) bool {
	_, ok := firstValue(row, keys...)
	return ok
}

// truthy applies loose truthiness to a flag field: true booleans, non-zero
// numbers, and non-empty strings all count.
func truthy(row map[string]any, keys ...string) bool {
	v, ok := firstValue(row, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}
