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

const paymentColumns = `payment_id, invoice_id, amount_cents, payment_method, reference_number, payment_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.InvoiceID,
		&m.AmountCents,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.PaymentDate,
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

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

// FindPaymentsByInvoiceID retrieves all payments for an invoice, oldest first.
func (r *PgxPaymentRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for invoice "+invoiceID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for invoice "+invoiceID, err)
		}
		payments = append(payments, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// SumPaymentsByInvoiceID computes the paid total for an invoice from the rows.
func (r *PgxPaymentRepository) SumPaymentsByInvoiceID(ctx context.Context, invoiceID string) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE invoice_id = $1;`

	var total int64
	if err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum payments for invoice "+invoiceID, err)
	}
	return total, nil
}

// lockInvoiceForUpdate fetches the invoice row inside tx with a row lock, so
// concurrent payment mutations against the same invoice serialize.
func (r *PgxPaymentRepository) lockInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`

	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	return m, nil
}

func (r *PgxPaymentRepository) sumPaymentsInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (int64, error) {
	var total int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE invoice_id = $1;`, invoiceID).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum payments in transaction for invoice "+invoiceID, err)
	}
	return total, nil
}

func (r *PgxPaymentRepository) setInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status models.InvoiceStatus, paidDate *time.Time, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2,
		    paid_date = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, query, invoiceID, string(status), paidDate, updatedAt, updatedByUserID); err != nil {
		return apperrors.NewAppError(500, "failed to reconcile invoice status for "+invoiceID, err)
	}
	return nil
}

// SavePaymentAndReconcile inserts the payment and reconciles the invoice's
// paid status against the new running total, all under a row lock on the
// invoice. The paid determination is therefore always made against the true
// total, never a stale read.
func (r *PgxPaymentRepository) SavePaymentAndReconcile(ctx context.Context, payment domain.Payment) (domain.InvoiceStatus, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	invoice, err := r.lockInvoiceForUpdate(ctx, tx, payment.InvoiceID)
	if err != nil {
		return "", err
	}

	m := mapping.ToModelPayment(payment)
	insertQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.PaymentID,
		m.InvoiceID,
		m.AmountCents,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.PaymentDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	totalPaid, err := r.sumPaymentsInTx(ctx, tx, payment.InvoiceID)
	if err != nil {
		return "", err
	}

	status := invoice.Status
	paidDate := invoice.PaidDate
	if totalPaid >= invoice.TotalAmountCents && invoice.Status != models.InvoiceStatusPaid {
		status = models.InvoiceStatusPaid
		pd := payment.PaymentDate
		paidDate = &pd
		if err := r.setInvoiceStatusInTx(ctx, tx, payment.InvoiceID, status, paidDate, payment.CreatedBy, payment.CreatedAt); err != nil {
			return "", err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return domain.InvoiceStatus(status), nil
}

// DeletePaymentAndReconcile deletes the payment and reconciles the invoice
// against the remaining total. A paid invoice whose remaining total no longer
// covers the amount reverts to sent with its paid date cleared; this is the
// only path backward from paid.
func (r *PgxPaymentRepository) DeletePaymentAndReconcile(ctx context.Context, paymentID string, updatedByUserID string) (domain.InvoiceStatus, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	// Resolve the parent invoice before deleting the row.
	var invoiceID string
	err = tx.QueryRow(ctx, `SELECT invoice_id FROM payments WHERE payment_id = $1;`, paymentID).Scan(&invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}

	invoice, err := r.lockInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return "", err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return "", apperrors.NewNotFoundError("payment " + paymentID + " not found for delete")
	}

	totalPaid, err := r.sumPaymentsInTx(ctx, tx, invoiceID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	status := invoice.Status
	if invoice.Status == models.InvoiceStatusPaid && totalPaid < invoice.TotalAmountCents {
		status = models.InvoiceStatusSent
		if err := r.setInvoiceStatusInTx(ctx, tx, invoiceID, status, nil, updatedByUserID, now); err != nil {
			return "", err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return domain.InvoiceStatus(status), nil
}
