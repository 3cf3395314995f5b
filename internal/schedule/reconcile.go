package schedule

import (
	"math"

	"github.com/mkopodev/schedule-service/internal/models"
)

// settleEpsilon is the outstanding threshold below which an installment
// counts as settled, absorbing float noise from upstream arithmetic.
const settleEpsilon = 1e-6

// RowTotal returns the scheduled total of a row: the explicit total when the
// backend sent one, otherwise the four-component sum.
func RowTotal(row models.InstallmentRow) float64 {
	if row.Total != nil {
		return *row.Total
	}
	return row.Principal + row.Interest + row.Penalty + row.Fees
}

// hasPaidComponents reports whether the row carries any pre-attributed paid
// amounts, regardless of their value.
func hasPaidComponents(row models.InstallmentRow) bool {
	return row.PaidPrincipal != nil || row.PaidInterest != nil ||
		row.PaidPenalty != nil || row.PaidFees != nil
}

// selfDescribed reports whether the row carries its own settlement evidence
// (explicit balance, paid/settled flags, or a paid-component breakdown).
// Such rows are reconciled from their own fields, never from a ledger.
func selfDescribed(row models.InstallmentRow) bool {
	return row.Balance != nil || row.Paid || row.Settled || hasPaidComponents(row)
}

// Outstanding derives the unpaid amount of a single installment. Source
// conventions are mutually inconsistent, so the precedence is fixed:
// explicit balance wins, then a paid-component breakdown, then the
// paid/settled flags, and an untouched row is fully outstanding.
func Outstanding(row models.InstallmentRow) float64 {
	total := RowTotal(row)
	if row.Balance != nil {
		return *row.Balance
	}
	if hasPaidComponents(row) {
		paid := deref(row.PaidPrincipal) + deref(row.PaidInterest) +
			deref(row.PaidPenalty) + deref(row.PaidFees)
		return math.Max(total-paid, 0)
	}
	if row.Paid || row.Settled {
		return 0
	}
	return total
}

// ReconcileRow computes the display-ready projection of one installment:
// coerced components, outstanding, and settlement status. Status follows the
// outstanding threshold alone; the paid/settled flags only feed outstanding
// derivation and never act as a second status source.
func ReconcileRow(row models.InstallmentRow) models.ReconciledRow {
	outstanding := Outstanding(row)
	status := models.StatusPending
	if outstanding <= settleEpsilon {
		status = models.StatusSettled
	}
	return models.ReconciledRow{
		Idx:           row.Index,
		DueDate:       row.DueDate,
		Principal:     row.Principal,
		Interest:      row.Interest,
		Penalty:       row.Penalty,
		Fees:          row.Fees,
		PI:            row.Principal + row.Interest,
		PaidPrincipal: row.PaidPrincipal,
		PaidInterest:  row.PaidInterest,
		Outstanding:   outstanding,
		Status:        status,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
