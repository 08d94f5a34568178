package models

import "time"

// InvoiceStatus indicates where an invoice is in its lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice mirrors the invoices table. TotalAmountCents is a creation-time
// snapshot, never recomputed from live time entries.
type Invoice struct {
	InvoiceID        string        `json:"invoiceID"`
	MatterID         string        `json:"matterID"`
	ClientID         string        `json:"clientID"`
	InvoiceNumber    string        `json:"invoiceNumber"` // Globally unique
	TotalAmountCents int64         `json:"totalAmountCents"`
	Status           InvoiceStatus `json:"status"`
	DueDate          *time.Time    `json:"dueDate"`
	PaidDate         *time.Time    `json:"paidDate"`
	Notes            string        `json:"notes"`
	AuditFields
}
