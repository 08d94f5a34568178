package domain

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

// Invoice aggregates a fixed set of time entries into a billing document.
// TotalAmountCents is a snapshot computed at creation and is never recomputed
// from live time entries; invoices must not silently change value after the
// underlying entries are edited.
type Invoice struct {
	InvoiceID        string        `json:"invoiceID"` // Primary Key (UUID)
	MatterID         string        `json:"matterID"`  // FK -> matters.matter_id
	ClientID         string        `json:"clientID"`  // FK -> clients.client_id
	InvoiceNumber    string        `json:"invoiceNumber"`
	TotalAmountCents int64         `json:"totalAmountCents"`
	Status           InvoiceStatus `json:"status"`
	DueDate          *time.Time    `json:"dueDate"`
	PaidDate         *time.Time    `json:"paidDate"` // Set iff Status == paid
	Notes            string        `json:"notes"`
	AuditFields
}

// directTransitions enumerates the status changes UpdateStatus may perform.
// paid -> sent is deliberately absent: the only path backward from paid is a
// payment deletion dropping the paid total below the invoice amount.
var directTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransition reports whether UpdateStatus may move an invoice from one status
// to another.
func CanTransition(from, to InvoiceStatus) bool {
	for _, next := range directTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidInvoiceStatus reports whether s is one of the known lifecycle statuses.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Outstanding reports whether the invoice counts toward the outstanding amount
// (sent or overdue, i.e. billed but not collected).
func (i Invoice) Outstanding() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
