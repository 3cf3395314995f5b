package schedule

import (
	"math"

	"github.com/mkopodev/schedule-service/internal/models"
)

// Allocation is the paid-component breakdown synthesized by the waterfall
// allocator, plus the amount applied to each row in schedule order.
type Allocation struct {
	PaidPrincipal float64
	PaidInterest  float64
	PaidPenalty   float64
	PaidFees      float64

	Applied []float64
}

// Allocate distributes a lump payment amount across the schedule. Rows are
// processed in array order, and within each row the buckets are drained
// fee, penalty, interest, principal — that order is a business rule. The
// allocator stops the instant the amount is exhausted, even mid-row.
func Allocate(rows []models.InstallmentRow, totalAmount float64) Allocation {
	alloc := Allocation{Applied: make([]float64, len(rows))}
	remaining := totalAmount

	for i := range rows {
		if remaining <= 0 {
			break
		}
		row := rows[i]
		buckets := [...]struct {
			scheduled float64
			paid      *float64
		}{
			{row.Fees, &alloc.PaidFees},
			{row.Penalty, &alloc.PaidPenalty},
			{row.Interest, &alloc.PaidInterest},
			{row.Principal, &alloc.PaidPrincipal},
		}
		for _, b := range buckets {
			applied := math.Min(remaining, b.scheduled)
			if applied > 0 {
				*b.paid += applied
				alloc.Applied[i] += applied
				remaining -= applied
			}
			if remaining <= 0 {
				break
			}
		}
	}
	return alloc
}
