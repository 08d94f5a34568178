package models

import "time"

// Payment mirrors the payments table.
type Payment struct {
	PaymentID       string    `json:"paymentID"`
	InvoiceID       string    `json:"invoiceID"`
	AmountCents     int64     `json:"amountCents"`
	PaymentMethod   string    `json:"paymentMethod"`
	ReferenceNumber *string   `json:"referenceNumber"`
	PaymentDate     time.Time `json:"paymentDate"`
	AuditFields
}
