package domain

import "time"

// TimeEntry represents a unit of billable or non-billable work recorded against a matter.
// HourlyRateCents is a snapshot taken at creation; once the entry is invoiced the
// duration and rate are frozen (historical billing record).
type TimeEntry struct {
	TimeEntryID     string    `json:"timeEntryID"` // Primary Key (UUID)
	MatterID        string    `json:"matterID"`    // FK -> matters.matter_id (NON-NULL)
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"` // Always > 0
	HourlyRateCents *int64    `json:"hourlyRateCents"` // Nullable rate snapshot, in cents
	IsBillable      bool      `json:"isBillable"`
	IsInvoiced      bool      `json:"isInvoiced"`
	InvoiceID       *string   `json:"invoiceID"` // Set iff IsInvoiced
	EntryDate       time.Time `json:"entryDate"`
	AuditFields
}

// Billable reports whether the entry contributes to an invoice total: it must be
// billable and carry a captured hourly rate. Non-billable or rate-less entries may
// still be associated with an invoice but are zero-valued.
func (e TimeEntry) Billable() bool {
	return e.IsBillable && e.HourlyRateCents != nil
}
