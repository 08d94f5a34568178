package repositories

import (
	"context"
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving dashboard report data.
// The reporter is strictly read-only.
type ReportingRepository interface {
	// ListInvoiceSummaries retrieves the slim projection of every invoice the
	// dashboard aggregates over.
	ListInvoiceSummaries(ctx context.Context) ([]domain.InvoiceSummary, error)

	// SumBillableMinutes computes the total billable minutes recorded, lifetime.
	SumBillableMinutes(ctx context.Context) (int64, error)

	// SumBillableMinutesSince computes the total billable minutes for entries
	// dated at or after the given moment.
	SumBillableMinutesSince(ctx context.Context, since time.Time) (int64, error)
}
