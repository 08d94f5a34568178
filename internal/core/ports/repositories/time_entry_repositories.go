package repositories

import (
	"context"
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TimeEntryReader defines read operations for time entry data
type TimeEntryReader interface {
	// FindTimeEntryByID retrieves a specific time entry by its unique identifier.
	FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)

	// FindTimeEntriesByIDs retrieves the named time entries, keyed by ID.
	// IDs that do not resolve are simply absent from the result map.
	FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error)

	// FindTimeEntriesByInvoiceID retrieves all entries attached to an invoice.
	FindTimeEntriesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.TimeEntry, error)

	// ListUnbilledTimeEntries retrieves billable, not yet invoiced entries for a matter.
	ListUnbilledTimeEntries(ctx context.Context, matterID string) ([]domain.TimeEntry, error)

	// ListTimeEntriesByMatter retrieves a paginated list of entries for a matter
	// using token-based pagination, ordered by entry date descending.
	ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error)
}

// TimeEntryWriter defines write operations for time entry data
type TimeEntryWriter interface {
	// SaveTimeEntry persists a new time entry.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateTimeEntry updates a not-yet-invoiced entry's mutable fields.
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// DeleteTimeEntry removes a not-yet-invoiced entry.
	DeleteTimeEntry(ctx context.Context, timeEntryID string) error

	// MarkEntriesInvoicedInTx conditionally stamps the given entries as invoiced
	// to invoiceID within an existing transaction. The update only touches rows
	// that are not invoiced, or already invoiced to the same invoice; it returns
	// the number of rows matched so the caller can detect a concurrent claim and
	// abort the transaction.
	MarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, timeEntryIDs []string, invoiceID string, updatedByUserID string, updatedAt time.Time) (int64, error)

	// UnmarkEntriesInvoicedInTx clears the invoiced flag and invoice link for all
	// entries pointing at invoiceID, within an existing transaction.
	UnmarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedByUserID string, updatedAt time.Time) error
}

// TimeEntryRepositoryFacade combines all time-entry repository interfaces
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
