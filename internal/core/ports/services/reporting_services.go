package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ReportingService defines the read-only dashboard aggregation.
type ReportingService interface {
	// DashboardMetrics computes revenue, collection and aging metrics for the
	// given reporting period.
	DashboardMetrics(ctx context.Context, period domain.ReportPeriod) (*domain.DashboardMetrics, error)
}
