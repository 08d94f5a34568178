package models

import "time"

// TimeEntry mirrors the time_entries table.
type TimeEntry struct {
	TimeEntryID     string    `json:"timeEntryID"`
	MatterID        string    `json:"matterID"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	HourlyRateCents *int64    `json:"hourlyRateCents"` // Nullable rate snapshot
	IsBillable      bool      `json:"isBillable"`
	IsInvoiced      bool      `json:"isInvoiced"`
	InvoiceID       *string   `json:"invoiceID"` // Set iff IsInvoiced
	EntryDate       time.Time `json:"entryDate"`
	AuditFields
}
