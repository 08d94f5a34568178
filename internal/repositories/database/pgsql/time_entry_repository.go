package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	"github.com/caseledger/caseledger/internal/models"
	"github.com/caseledger/caseledger/internal/utils/mapping"
	"github.com/caseledger/caseledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const timeEntryColumns = `time_entry_id, matter_id, description, duration_minutes, hourly_rate_cents, is_billable, is_invoiced, invoice_id, entry_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxTimeEntryRepository struct {
	BaseRepository
}

// newPgxTimeEntryRepository creates a new repository for time entry data.
func newPgxTimeEntryRepository(pool *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

func scanTimeEntry(row pgx.Row) (*models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID,
		&m.MatterID,
		&m.Description,
		&m.DurationMinutes,
		&m.HourlyRateCents,
		&m.IsBillable,
		&m.IsInvoiced,
		&m.InvoiceID,
		&m.EntryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTimeEntry persists a new time entry.
func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TimeEntryID,
		m.MatterID,
		m.Description,
		m.DurationMinutes,
		m.HourlyRateCents,
		m.IsBillable,
		m.IsInvoiced,
		m.InvoiceID,
		m.EntryDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert time entry "+m.TimeEntryID, err)
	}
	return nil
}

// FindTimeEntryByID retrieves a time entry by its ID.
func (r *PgxTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = $1;`

	m, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry by ID "+timeEntryID, err)
	}

	entry := mapping.ToDomainTimeEntry(*m)
	return &entry, nil
}

// FindTimeEntriesByIDs retrieves the named time entries, keyed by ID. IDs that
// do not resolve are absent from the result map; the caller decides whether a
// missing ID is an error.
func (r *PgxTimeEntryRepository) FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error) {
	if len(timeEntryIDs) == 0 {
		return map[string]domain.TimeEntry{}, nil
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, timeEntryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query time entries by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.TimeEntry, len(timeEntryIDs))
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		result[m.TimeEntryID] = mapping.ToDomainTimeEntry(*m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows", err)
	}

	return result, nil
}

// FindTimeEntriesByInvoiceID retrieves all entries attached to an invoice.
func (r *PgxTimeEntryRepository) FindTimeEntriesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE invoice_id = $1 ORDER BY entry_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query time entries for invoice "+invoiceID, err)
	}
	defer rows.Close()

	entries := []models.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row for invoice "+invoiceID, err)
		}
		entries = append(entries, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainTimeEntrySlice(entries), nil
}

// ListUnbilledTimeEntries retrieves billable, not yet invoiced entries for a matter.
func (r *PgxTimeEntryRepository) ListUnbilledTimeEntries(ctx context.Context, matterID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE matter_id = $1 AND is_billable = TRUE AND is_invoiced = FALSE
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, matterID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbilled time entries for matter "+matterID, err)
	}
	defer rows.Close()

	entries := []models.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unbilled time entry row for matter "+matterID, err)
		}
		entries = append(entries, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unbilled time entry rows for matter "+matterID, err)
	}

	return mapping.ToDomainTimeEntrySlice(entries), nil
}

// ListTimeEntriesByMatter retrieves a paginated list of entries for a matter
// using token-based pagination, newest first.
func (r *PgxTimeEntryRepository) ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE matter_id = $1`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{matterID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query time entries for matter "+matterID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.TimeEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan time entry row for matter "+matterID, err)
		}
		modelEntries = append(modelEntries, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating time entry rows for matter "+matterID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainTimeEntrySlice(results), nextTokenVal, nil
}

// UpdateTimeEntry updates a not-yet-invoiced entry's mutable fields. The
// is_invoiced guard is repeated here so an entry claimed by a concurrent
// invoice creation cannot be rewritten underneath it.
func (r *PgxTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE time_entries
		SET description = $2,
		    duration_minutes = $3,
		    hourly_rate_cents = $4,
		    is_billable = $5,
		    entry_date = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE time_entry_id = $1 AND is_invoiced = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TimeEntryID,
		m.Description,
		m.DurationMinutes,
		m.HourlyRateCents,
		m.IsBillable,
		m.EntryDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update time entry "+m.TimeEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + m.TimeEntryID + " not found for update")
	}
	return nil
}

// DeleteTimeEntry removes a not-yet-invoiced entry.
func (r *PgxTimeEntryRepository) DeleteTimeEntry(ctx context.Context, timeEntryID string) error {
	query := `DELETE FROM time_entries WHERE time_entry_id = $1 AND is_invoiced = FALSE;`

	cmdTag, err := r.Pool.Exec(ctx, query, timeEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete time entry "+timeEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + timeEntryID + " not found for delete")
	}
	return nil
}

// MarkEntriesInvoicedInTx conditionally stamps the given entries as invoiced
// within an existing transaction. The WHERE clause only matches rows that are
// not invoiced (or already stamped for the same invoice, making retries
// harmless); the returned count lets the caller detect a concurrent claim.
func (r *PgxTimeEntryRepository) MarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, timeEntryIDs []string, invoiceID string, updatedByUserID string, updatedAt time.Time) (int64, error) {
	query := `
		UPDATE time_entries
		SET is_invoiced = TRUE,
		    invoice_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE time_entry_id = ANY($1)
		  AND (is_invoiced = FALSE OR invoice_id = $2);
	`
	cmdTag, err := tx.Exec(ctx, query, timeEntryIDs, invoiceID, updatedAt, updatedByUserID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark time entries invoiced for invoice "+invoiceID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// UnmarkEntriesInvoicedInTx releases all entries attached to invoiceID within
// an existing transaction.
func (r *PgxTimeEntryRepository) UnmarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE time_entries
		SET is_invoiced = FALSE,
		    invoice_id = NULL,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE invoice_id = $1;
	`
	_, err := tx.Exec(ctx, query, invoiceID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release time entries for invoice "+invoiceID, err)
	}
	return nil
}
