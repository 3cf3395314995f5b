package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/mkopodev/schedule-service/internal/models"
)

// dateLayouts are tried in order when normalizing upstream date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ExtractRows pulls an installment list out of a loosely-shaped payload: a
// bare array, or an object wrapping one under "schedule", "rows" or "data"
// (in that precedence). It returns nil when no array shape is found, which
// callers treat as "no schedule available" rather than an error.
func ExtractRows(payload any) []models.InstallmentRow {
	arr := rowsArray(payload)
	if arr == nil {
		return nil
	}
	rows := make([]models.InstallmentRow, 0, len(arr))
	for i, el := range arr {
		rows = append(rows, normalizeRow(el, i))
	}
	return rows
}

func rowsArray(payload any) []any {
	switch p := payload.(type) {
	case []any:
		return p
	case map[string]any:
		for _, key := range envelopeKeys {
			if arr, ok := p[key].([]any); ok {
				return arr
			}
		}
	}
	return nil
}

// normalizeRow resolves aliases and coerces amounts for one raw row.
// pos is the zero-based array position, used when the row carries no
// installment number of its own.
func normalizeRow(el any, pos int) models.InstallmentRow {
	r := models.InstallmentRow{Index: pos + 1}
	row, ok := el.(map[string]any)
	if !ok {
		return r
	}

	if idx := optNum(row, indexAliases...); idx != nil && *idx > 0 {
		r.Index = int(*idx)
	}
	r.DueDate = ToISODate(firstPresent(row, dueDateAliases...))
	r.Principal = math.Max(num(row, "principal"), 0)
	r.Interest = math.Max(num(row, "interest"), 0)
	r.Penalty = math.Max(num(row, "penalty"), 0)
	r.Fees = math.Max(num(row, feesAliases...), 0)

	r.Total = optNum(row, "total")
	r.Balance = optNum(row, "balance")

	r.PaidPrincipal = optNum(row, "paidPrincipal")
	r.PaidInterest = optNum(row, "paidInterest")
	r.PaidPenalty = optNum(row, "paidPenalty")
	if anyPresent(row, paidFeesAliases...) {
		// Both spellings contribute when a backend sends them side by side.
		merged := num(row, "paidFees") + num(row, "paidFee")
		r.PaidFees = &merged
	}

	r.Paid = truthy(row, "paid")
	r.Settled = truthy(row, "settled")
	return r
}

// ExtractPayments pulls a payment-transaction ledger out of a payload
// object, under "payments" or "transactions". Bare numbers are treated as
// amounts. Returns nil when the payload carries no ledger.
func ExtractPayments(payload any) []models.PaymentTransaction {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	raw, _ := firstValue(obj, paymentKeys...)
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	payments := make([]models.PaymentTransaction, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			payments = append(payments, models.PaymentTransaction{
				Amount: num(m, "amount"),
				Date:   ToISODate(firstPresent(m, paymentDateAliases...)),
			})
			continue
		}
		if f, numeric := toNumber(el); numeric {
			payments = append(payments, models.PaymentTransaction{Amount: f})
		}
	}
	return payments
}

func firstPresent(row map[string]any, keys ...string) any {
	v, _ := firstValue(row, keys...)
	return v
}

// ToISODate normalizes a date value to "YYYY-MM-DD". Empty or falsy input
// yields ""; values no layout can parse degrade to the first ten characters
// of their string form so already-ISO strings pass through unchanged.
func ToISODate(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if !t {
			return ""
		}
		return clipDate(fmt.Sprint(t))
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case float64:
		// Epoch milliseconds, the other shape upstream emits.
		if t == 0 {
			return ""
		}
		return time.UnixMilli(int64(t)).Format("2006-01-02")
	case string:
		if t == "" {
			return ""
		}
		for _, layout := range dateLayouts {
			if d, err := time.ParseInLocation(layout, t, time.Local); err == nil {
				return d.Format("2006-01-02")
			}
		}
		return clipDate(t)
	default:
		return clipDate(fmt.Sprint(v))
	}
}

func clipDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
