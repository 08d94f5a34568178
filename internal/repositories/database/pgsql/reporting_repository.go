package pgsql

import (
	"context"
	"time"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only repository for dashboard data.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ListInvoiceSummaries retrieves the slim projection of every invoice.
func (r *PgxReportingRepository) ListInvoiceSummaries(ctx context.Context) ([]domain.InvoiceSummary, error) {
	query := `SELECT invoice_id, total_amount_cents, status, created_at, paid_date FROM invoices;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice summaries", err)
	}
	defer rows.Close()

	summaries := []domain.InvoiceSummary{}
	for rows.Next() {
		var s domain.InvoiceSummary
		if err := rows.Scan(&s.InvoiceID, &s.TotalAmountCents, &s.Status, &s.CreatedAt, &s.PaidDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice summary row", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice summary rows", err)
	}
	return summaries, nil
}

// SumBillableMinutes computes lifetime billable minutes. Entries with no rate
// snapshot still count toward hours; only the billable flag gates inclusion.
func (r *PgxReportingRepository) SumBillableMinutes(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(duration_minutes), 0) FROM time_entries WHERE is_billable = TRUE;`

	var total int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum billable minutes", err)
	}
	return total, nil
}

// SumBillableMinutesSince computes billable minutes for entries dated at or
// after the given moment.
func (r *PgxReportingRepository) SumBillableMinutesSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(duration_minutes), 0) FROM time_entries WHERE is_billable = TRUE AND entry_date >= $1;`

	var total int64
	if err := r.Pool.QueryRow(ctx, query, since).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum billable minutes since "+since.Format(time.RFC3339), err)
	}
	return total, nil
}
