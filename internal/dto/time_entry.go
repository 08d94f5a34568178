package dto

import (
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// CreateTimeEntryRequest defines the data needed to record a time entry.
type CreateTimeEntryRequest struct {
	MatterID        string    `json:"matterID" binding:"required"`
	Description     string    `json:"description" binding:"required,notblank"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	HourlyRateCents *int64    `json:"hourlyRateCents"` // Optional rate snapshot
	IsBillable      bool      `json:"isBillable"`
	EntryDate       time.Time `json:"entryDate" binding:"required"`
}

// UpdateTimeEntryRequest defines the mutable fields of a not-yet-invoiced entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTimeEntryRequest struct {
	Description     *string    `json:"description"`
	DurationMinutes *int       `json:"durationMinutes"`
	HourlyRateCents *int64     `json:"hourlyRateCents"`
	IsBillable      *bool      `json:"isBillable"`
	EntryDate       *time.Time `json:"entryDate"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	TimeEntryID     string    `json:"timeEntryID"`
	MatterID        string    `json:"matterID"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	HourlyRateCents *int64    `json:"hourlyRateCents"`
	IsBillable      bool      `json:"isBillable"`
	IsInvoiced      bool      `json:"isInvoiced"`
	InvoiceID       *string   `json:"invoiceID"`
	EntryDate       time.Time `json:"entryDate"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
}

// ListTimeEntriesParams defines query parameters for listing entries by matter.
type ListTimeEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTimeEntriesResponse wraps the paginated list of entries.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	NextToken   *string             `json:"nextToken,omitempty"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to TimeEntryResponse DTO
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		TimeEntryID:     e.TimeEntryID,
		MatterID:        e.MatterID,
		Description:     e.Description,
		DurationMinutes: e.DurationMinutes,
		HourlyRateCents: e.HourlyRateCents,
		IsBillable:      e.IsBillable,
		IsInvoiced:      e.IsInvoiced,
		InvoiceID:       e.InvoiceID,
		EntryDate:       e.EntryDate,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToTimeEntryResponses converts a slice of domain.TimeEntry to response DTOs
func ToTimeEntryResponses(entries []domain.TimeEntry) []TimeEntryResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToTimeEntryResponse(&e)
	}
	return res
}
