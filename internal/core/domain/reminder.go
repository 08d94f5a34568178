package domain

import "time"

// ReminderType classifies a payment reminder relative to the invoice due date.
type ReminderType string

const (
	ReminderUpcoming ReminderType = "upcoming"
	ReminderDue      ReminderType = "due"
	ReminderOverdue  ReminderType = "overdue"
	ReminderCustom   ReminderType = "custom"
)

// PaymentReminder is a scheduled notification tied to an invoice's due date.
// Reminders are never auto-deleted, only marked sent.
type PaymentReminder struct {
	ReminderID   string       `json:"reminderID"` // Primary Key (UUID)
	InvoiceID    string       `json:"invoiceID"`  // FK -> invoices.invoice_id
	ReminderDate time.Time    `json:"reminderDate"`
	ReminderType ReminderType `json:"reminderType"`
	IsSent       bool         `json:"isSent"`
	SentAt       *time.Time   `json:"sentAt"`
	AuditFields
}

// ReminderCandidate is a reminder date derived from a due date before persistence.
type ReminderCandidate struct {
	Date time.Time
	Type ReminderType
}

// DeriveReminderCandidates computes the reminder schedule for a due date as
// observed at a given moment. The pre-due candidates (-7d, -3d, due day) are
// only generated while still in the future; the post-due candidates (+3d, +7d)
// are always generated, even when already past.
func DeriveReminderCandidates(dueDate, now time.Time) []ReminderCandidate {
	candidates := make([]ReminderCandidate, 0, 5)

	before := []struct {
		offsetDays int
		typ        ReminderType
	}{
		{-7, ReminderUpcoming},
		{-3, ReminderUpcoming},
		{0, ReminderDue},
	}
	for _, c := range before {
		date := dueDate.AddDate(0, 0, c.offsetDays)
		if date.After(now) {
			candidates = append(candidates, ReminderCandidate{Date: date, Type: c.typ})
		}
	}

	for _, offset := range []int{3, 7} {
		candidates = append(candidates, ReminderCandidate{
			Date: dueDate.AddDate(0, 0, offset),
			Type: ReminderOverdue,
		})
	}

	return candidates
}
