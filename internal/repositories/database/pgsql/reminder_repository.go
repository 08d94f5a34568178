package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	"github.com/caseledger/caseledger/internal/models"
	"github.com/caseledger/caseledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reminderColumns = `reminder_id, invoice_id, reminder_date, reminder_type, is_sent, sent_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxReminderRepository struct {
	BaseRepository
}

// newPgxReminderRepository creates a new repository for payment reminder data.
func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

func scanReminder(row pgx.Row) (*models.PaymentReminder, error) {
	var m models.PaymentReminder
	err := row.Scan(
		&m.ReminderID,
		&m.InvoiceID,
		&m.ReminderDate,
		&m.ReminderType,
		&m.IsSent,
		&m.SentAt,
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

// FindReminderByID retrieves a reminder by its ID.
func (r *PgxReminderRepository) FindReminderByID(ctx context.Context, reminderID string) (*domain.PaymentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM payment_reminders WHERE reminder_id = $1;`

	m, err := scanReminder(r.Pool.QueryRow(ctx, query, reminderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reminder by ID "+reminderID, err)
	}

	reminder := mapping.ToDomainPaymentReminder(*m)
	return &reminder, nil
}

// FindRemindersByInvoiceID retrieves all reminders for an invoice ordered by
// reminder date.
func (r *PgxReminderRepository) FindRemindersByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM payment_reminders WHERE invoice_id = $1 ORDER BY reminder_date;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reminders for invoice "+invoiceID, err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

// FindPendingReminders retrieves unsent reminders due at or before asOf.
func (r *PgxReminderRepository) FindPendingReminders(ctx context.Context, asOf time.Time) ([]domain.PaymentReminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM payment_reminders
		WHERE is_sent = FALSE AND reminder_date <= $1
		ORDER BY reminder_date;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending reminders", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func collectReminders(rows pgx.Rows) ([]domain.PaymentReminder, error) {
	reminders := []models.PaymentReminder{}
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reminder row", err)
		}
		reminders = append(reminders, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reminder rows", err)
	}

	return mapping.ToDomainPaymentReminderSlice(reminders), nil
}

// SaveReminders batch-inserts the given reminders in one round trip.
func (r *PgxReminderRepository) SaveReminders(ctx context.Context, reminders []domain.PaymentReminder) error {
	if len(reminders) == 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO payment_reminders (` + reminderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	batch := &pgx.Batch{}
	for _, d := range reminders {
		m := mapping.ToModelPaymentReminder(d)
		batch.Queue(insertQuery,
			m.ReminderID,
			m.InvoiceID,
			m.ReminderDate,
			string(m.ReminderType),
			m.IsSent,
			m.SentAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range reminders {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to batch insert reminders", err)
		}
	}
	return nil
}

// MarkReminderSent stamps a reminder as sent.
func (r *PgxReminderRepository) MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time, updatedByUserID string) error {
	query := `
		UPDATE payment_reminders
		SET is_sent = TRUE,
		    sent_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE reminder_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, reminderID, sentAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark reminder sent "+reminderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("reminder " + reminderID + " not found for update")
	}
	return nil
}
