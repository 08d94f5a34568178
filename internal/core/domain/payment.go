package domain

import "time"

// Payment is a record of money received against an invoice. Payments are
// append-only facts: they are never edited, only recorded or deleted, and the
// invoice's paid state is always derived by summing them.
type Payment struct {
	PaymentID       string    `json:"paymentID"` // Primary Key (UUID)
	InvoiceID       string    `json:"invoiceID"` // FK -> invoices.invoice_id
	AmountCents     int64     `json:"amountCents"` // Always > 0
	PaymentMethod   string    `json:"paymentMethod"`
	ReferenceNumber *string   `json:"referenceNumber"`
	PaymentDate     time.Time `json:"paymentDate"`
	AuditFields
}

// InvoiceBalance summarises the reconciliation state of an invoice.
// BalanceCents may be negative: overpayment is recorded as-is, the ledger is a
// record of fact, not a cap enforcement point.
type InvoiceBalance struct {
	InvoiceID        string `json:"invoiceID"`
	TotalAmountCents int64  `json:"totalAmountCents"`
	TotalPaidCents   int64  `json:"totalPaidCents"`
	BalanceCents     int64  `json:"balanceCents"`
}
