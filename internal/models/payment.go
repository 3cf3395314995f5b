package models

// PaymentTransaction is one entry of a payment ledger that has not yet been
// attributed to specific installments.
type PaymentTransaction struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}

// StatementEntry is a payment transaction as lifted from a bank statement,
// carrying the loan reference it was booked under.
type StatementEntry struct {
	Reference   string             `json:"reference"`
	Transaction PaymentTransaction `json:"transaction"`
}
