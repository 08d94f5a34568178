package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/dto"
)

// TimeEntryReaderSvc defines read operations for time entry data
type TimeEntryReaderSvc interface {
	// GetTimeEntryByID retrieves a specific time entry by its ID.
	GetTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)

	// ListUnbilled retrieves billable, not yet invoiced entries for a matter.
	ListUnbilled(ctx context.Context, matterID string) ([]domain.TimeEntry, error)

	// ListTimeEntries retrieves a paginated list of entries for a matter.
	ListTimeEntries(ctx context.Context, matterID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error)
}

// TimeEntryWriterSvc defines write operations for time entry data
type TimeEntryWriterSvc interface {
	// RecordTimeEntry records a new unit of work against a matter.
	RecordTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error)

	// UpdateTimeEntry updates a not-yet-invoiced entry.
	UpdateTimeEntry(ctx context.Context, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error)

	// DeleteTimeEntry deletes a not-yet-invoiced entry.
	DeleteTimeEntry(ctx context.Context, timeEntryID string, requestingUserID string) error
}

// TimeEntrySvcFacade combines all time-entry service interfaces
type TimeEntrySvcFacade interface {
	TimeEntryReaderSvc
	TimeEntryWriterSvc
}
