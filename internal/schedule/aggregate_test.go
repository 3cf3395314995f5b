package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopodev/schedule-service/internal/models"
)

func TestAggregateScheduledTotals(t *testing.T) {
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 1000, Interest: 100, Fees: 10},
		{Index: 2, Principal: 1000, Interest: 80, Penalty: 20},
	}
	s := Aggregate(rows, nil)

	assert.Equal(t, 2000.0, s.ScheduledPrincipal)
	assert.Equal(t, 180.0, s.ScheduledInterest)
	assert.Equal(t, 20.0, s.ScheduledPenalty)
	assert.Equal(t, 10.0, s.ScheduledFees)
	assert.Equal(t, 2210.0, s.ScheduledTotal)
	assert.Zero(t, s.TotalPaid)
	assert.Equal(t, 2210.0, s.Outstanding)
	assert.Equal(t, s.Outstanding, s.OutstandingTotal)
}

func TestAggregateTrustsRowTotals(t *testing.T) {
	// Per-row totals are summed as delivered even when they disagree with
	// the component sum.
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 100, Interest: 10, Total: fptr(100)},
	}
	s := Aggregate(rows, nil)
	assert.Equal(t, 100.0, s.ScheduledTotal)
}

func TestAggregateOutstandingClamped(t *testing.T) {
	rows := []models.InstallmentRow{{Index: 1, Principal: 100}}
	s := Aggregate(rows, []models.PaymentTransaction{{Amount: 250}})

	assert.Equal(t, 250.0, s.TotalPaid)
	assert.Zero(t, s.Outstanding, "overpayment clamps to zero")
	assert.Nil(t, s.NextDue)
}

func TestAggregateRowCarriedPaidComponents(t *testing.T) {
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 1000, Interest: 100, PaidPrincipal: fptr(1000), PaidInterest: fptr(100)},
		{Index: 2, Principal: 1000, Interest: 100, PaidPrincipal: fptr(400)},
	}
	s := Aggregate(rows, nil)

	assert.Equal(t, 1400.0, s.PaidPrincipal)
	assert.Equal(t, 100.0, s.PaidInterest)
	assert.Equal(t, 1500.0, s.TotalPaid, "row-carried amounts stand in for a missing ledger")
	assert.Equal(t, 700.0, s.Outstanding)
	require.NotNil(t, s.NextDue)
	assert.Equal(t, 2, s.NextDue.Idx)
}

func TestAggregateNextDueOriginalOrder(t *testing.T) {
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 500, Balance: fptr(0)},
		{Index: 2, Principal: 500, DueDate: "2024-02-01"},
		{Index: 3, Principal: 300, DueDate: "2024-01-01"},
	}
	s := Aggregate(rows, nil)

	require.NotNil(t, s.NextDue)
	assert.Equal(t, 2, s.NextDue.Idx, "first positive outstanding in schedule order, not date order")
	assert.Equal(t, "2024-02-01", s.NextDue.Date)
	assert.Equal(t, 500.0, s.NextDue.Amount)
}

func TestAggregateLedgerEndToEnd(t *testing.T) {
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 1000, Interest: 100},
		{Index: 2, Principal: 1000, Interest: 100},
		{Index: 3, Principal: 1000, Interest: 100},
	}
	payments := []models.PaymentTransaction{{Amount: 1100}, {Amount: 550}}
	s := Aggregate(rows, payments)

	assert.Equal(t, 3300.0, s.ScheduledTotal)
	assert.Equal(t, 1650.0, s.TotalPaid)
	assert.Equal(t, 1650.0, s.Outstanding)

	// Waterfall: row 1 consumed in full (interest 100, principal 1000),
	// the remaining 550 hits row 2 as interest 100 + principal 450.
	assert.Equal(t, 200.0, s.PaidInterest)
	assert.Equal(t, 1450.0, s.PaidPrincipal)
	assert.Zero(t, s.PaidPenalty)
	assert.Zero(t, s.PaidFees)

	// Row 1 is fully covered by the allocation, so the next due
	// installment is row 2.
	require.NotNil(t, s.NextDue)
	assert.Equal(t, 2, s.NextDue.Idx)
	assert.Equal(t, 1100.0, s.NextDue.Amount)
}

func TestAggregateRowEvidenceBeatsLedger(t *testing.T) {
	// A row carrying its own settlement evidence is reconciled from it even
	// when a ledger is supplied; only bare rows use the allocation.
	rows := []models.InstallmentRow{
		{Index: 1, Principal: 1000, Settled: true},
		{Index: 2, Principal: 1000},
	}
	s := Aggregate(rows, []models.PaymentTransaction{{Amount: 200}})

	require.NotNil(t, s.NextDue)
	assert.Equal(t, 2, s.NextDue.Idx)
}

func TestAggregateEmptySchedule(t *testing.T) {
	s := Aggregate(nil, nil)
	assert.Zero(t, s.ScheduledTotal)
	assert.Nil(t, s.NextDue)
}
