package schedule

import (
	"math"

	"github.com/mkopodev/schedule-service/internal/models"
)

// Aggregate rolls a whole installment list into a ScheduleSummary,
// reconciled against an optional payment ledger.
//
// Scheduled totals sum per-row values as delivered (the per-row total is
// trusted, not re-derived). The paid-component breakdown comes from
// row-carried paid fields when any row has a non-zero one, otherwise from
// the waterfall allocator run over the ledger sum. Next due is the first
// row, in schedule order, whose outstanding exceeds the settlement
// threshold: rows carrying their own settlement evidence are reconciled
// from it, the rest fall back to the ledger allocation.
func Aggregate(rows []models.InstallmentRow, payments []models.PaymentTransaction) models.ScheduleSummary {
	var s models.ScheduleSummary

	for _, row := range rows {
		s.ScheduledPrincipal += row.Principal
		s.ScheduledInterest += row.Interest
		s.ScheduledPenalty += row.Penalty
		s.ScheduledFees += row.Fees
		s.ScheduledTotal += RowTotal(row)
	}

	for _, p := range payments {
		s.TotalPaid += p.Amount
	}

	rowCarried := false
	for _, row := range rows {
		if hasPaidComponents(row) && rowPaidSum(row) != 0 {
			rowCarried = true
			break
		}
	}

	var alloc Allocation
	if rowCarried {
		for _, row := range rows {
			s.PaidPrincipal += deref(row.PaidPrincipal)
			s.PaidInterest += deref(row.PaidInterest)
			s.PaidPenalty += deref(row.PaidPenalty)
			s.PaidFees += deref(row.PaidFees)
		}
		if len(payments) == 0 {
			// No ledger supplied; the row-carried amounts are the record
			// of what was paid.
			s.TotalPaid = s.PaidPrincipal + s.PaidInterest + s.PaidPenalty + s.PaidFees
		}
	} else {
		alloc = Allocate(rows, s.TotalPaid)
		s.PaidPrincipal = alloc.PaidPrincipal
		s.PaidInterest = alloc.PaidInterest
		s.PaidPenalty = alloc.PaidPenalty
		s.PaidFees = alloc.PaidFees
	}

	s.Outstanding = math.Max(s.ScheduledTotal-s.TotalPaid, 0)
	s.OutstandingTotal = s.Outstanding

	for i, row := range rows {
		outstanding := Outstanding(row)
		if !selfDescribed(row) && !rowCarried && len(payments) > 0 {
			outstanding = math.Max(RowTotal(row)-alloc.Applied[i], 0)
		}
		if outstanding > settleEpsilon {
			s.NextDue = &models.NextDue{
				Idx:    row.Index,
				Date:   row.DueDate,
				Amount: RowTotal(row),
			}
			break
		}
	}

	return s
}

func rowPaidSum(row models.InstallmentRow) float64 {
	return deref(row.PaidPrincipal) + deref(row.PaidInterest) +
		deref(row.PaidPenalty) + deref(row.PaidFees)
}
