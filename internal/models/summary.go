package models

// NextDue points at the first installment still carrying positive outstanding.
type NextDue struct {
	Idx    int     `json:"idx"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ScheduleSummary aggregates a whole repayment schedule: scheduled totals,
// payments received, outstanding, and the paid-component breakdown.
type ScheduleSummary struct {
	ScheduledPrincipal float64 `json:"scheduledPrincipal"`
	ScheduledInterest  float64 `json:"scheduledInterest"`
	ScheduledPenalty   float64 `json:"scheduledPenalty"`
	ScheduledFees      float64 `json:"scheduledFees"`
	ScheduledTotal     float64 `json:"scheduledTotal"`

	TotalPaid        float64 `json:"totalPaid"`
	Outstanding      float64 `json:"outstanding"`
	OutstandingTotal float64 `json:"outstandingTotal"`

	PaidPrincipal float64 `json:"paidPrincipal"`
	PaidInterest  float64 `json:"paidInterest"`
	PaidPenalty   float64 `json:"paidPenalty"`
	PaidFees      float64 `json:"paidFees"`

	NextDue *NextDue `json:"nextDue"`
}
