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

const invoiceColumns = `invoice_id, matter_id, client_id, invoice_number, total_amount_cents, status, due_date, paid_date, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool, timeEntryRepo portsrepo.TimeEntryRepositoryFacade) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		timeEntryRepo:  timeEntryRepo,
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.MatterID,
		&m.ClientID,
		&m.InvoiceNumber,
		&m.TotalAmountCents,
		&m.Status,
		&m.DueDate,
		&m.PaidDate,
		&m.Notes,
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

// SaveInvoiceWithEntries persists a draft invoice and stamps its time entries
// invoiced, in one transaction. The entry update is conditional on
// is_invoiced = FALSE; if fewer rows match than entries were requested,
// another invoice claimed one concurrently and the whole transaction rolls
// back with ErrAlreadyInvoiced.
func (r *PgxInvoiceRepository) SaveInvoiceWithEntries(ctx context.Context, invoice domain.Invoice, timeEntryIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.MatterID,
		m.ClientID,
		m.InvoiceNumber,
		m.TotalAmountCents,
		string(m.Status),
		m.DueDate,
		m.PaidDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	claimed, err := r.timeEntryRepo.MarkEntriesInvoicedInTx(ctx, tx, timeEntryIDs, invoice.InvoiceID, invoice.CreatedBy, invoice.CreatedAt)
	if err != nil {
		return err
	}
	if claimed != int64(len(timeEntryIDs)) {
		// A concurrent createInvoice claimed at least one entry first.
		return apperrors.ErrAlreadyInvoiced
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	invoice := mapping.ToDomainInvoice(*m)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) listInvoices(ctx context.Context, filterColumn, filterValue string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + filterColumn + ` = $1`
	orderByClause := `ORDER BY created_at DESC`

	args := []interface{}{filterValue}
	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices by "+filterColumn+" "+filterValue, err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		modelInvoices = append(modelInvoices, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		lastInvoice := modelInvoices[limit-1]
		newToken := pagination.EncodeDateBasedToken(lastInvoice.CreatedAt)
		nextTokenVal = &newToken
		results = modelInvoices[:limit]
	}

	return mapping.ToDomainInvoiceSlice(results), nextTokenVal, nil
}

// ListInvoicesByMatter retrieves a paginated list of invoices for a matter, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByMatter(ctx context.Context, matterID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	return r.listInvoices(ctx, "matter_id", matterID, status, limit, nextToken)
}

// ListInvoicesByClient retrieves a paginated list of invoices for a client, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByClient(ctx context.Context, clientID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	return r.listInvoices(ctx, "client_id", clientID, status, limit, nextToken)
}

// FindOverdueInvoices retrieves billed, unpaid invoices strictly past their due
// date. Draft invoices past their due date are excluded.
func (r *PgxInvoiceRepository) FindOverdueInvoices(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status IN ('sent', 'overdue') AND due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overdue invoices", err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan overdue invoice row", err)
		}
		modelInvoices = append(modelInvoices, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating overdue invoice rows", err)
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// UpdateInvoiceStatus sets status and paid date on an invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2,
		    paid_date = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE invoice_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), paidDate, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice status for "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found for status update")
	}
	return nil
}

// DeleteInvoiceWithCleanup deletes the invoice plus its payments and
// reminders, and releases its time entries, in one transaction.
func (r *PgxInvoiceRepository) DeleteInvoiceWithCleanup(ctx context.Context, invoiceID string, deletedByUserID string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete payments for invoice "+invoiceID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_reminders WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete reminders for invoice "+invoiceID, err)
	}

	if err := r.timeEntryRepo.UnmarkEntriesInvoicedInTx(ctx, tx, invoiceID, deletedByUserID, deletedAt); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found for delete")
	}

	return r.Commit(ctx, tx)
}
