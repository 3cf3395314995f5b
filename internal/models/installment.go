package models

// InstallmentRow is one scheduled entry of a loan repayment plan as delivered
// by the upstream scheduling backend, after field-alias normalization.
// Optional fields use pointers so "absent" can be told apart from zero.
type InstallmentRow struct {
	Index     int     `json:"index"`
	DueDate   string  `json:"dueDate"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Penalty   float64 `json:"penalty"`
	Fees      float64 `json:"fees"`

	// Total is the pre-computed scheduled total, when the backend sent one.
	Total *float64 `json:"total,omitempty"`

	PaidPrincipal *float64 `json:"paidPrincipal,omitempty"`
	PaidInterest  *float64 `json:"paidInterest,omitempty"`
	PaidPenalty   *float64 `json:"paidPenalty,omitempty"`
	PaidFees      *float64 `json:"paidFees,omitempty"`

	// Balance is an explicit outstanding amount; authoritative when present.
	Balance *float64 `json:"balance,omitempty"`

	Paid    bool `json:"paid,omitempty"`
	Settled bool `json:"settled,omitempty"`
}

// ReconciledRow is the display-ready projection of a single installment.
type ReconciledRow struct {
	Idx       int     `json:"idx"`
	DueDate   string  `json:"dueDate"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Penalty   float64 `json:"penalty"`
	Fees      float64 `json:"fees"`
	PI        float64 `json:"pi"`

	// Paid components are nil when the backend never attributed a payment
	// to this row; renderers show that as a dash, not a zero.
	PaidPrincipal *float64 `json:"paidPrincipal"`
	PaidInterest  *float64 `json:"paidInterest"`

	Outstanding float64 `json:"outstanding"`
	Status      string  `json:"status"`
}

// Settlement status values for a reconciled row.
const (
	StatusSettled = "Settled"
	StatusPending = "Pending"
)
