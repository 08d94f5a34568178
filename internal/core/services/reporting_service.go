package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
)

// trailingRevenueMonths is the width of the monthly revenue breakdown.
const trailingRevenueMonths = 6

// reportingService is the read-only dashboard aggregator. All bucketing and
// window math happens here over slim projections fetched from the repository,
// so the computations are testable against in-memory rows.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock, used by tests to pin the window math.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// DashboardMetrics computes the revenue, collection and aging metrics for the
// given period. Strictly read-only; nothing here mutates stored state.
// Implements portssvc.ReportingService
func (s *reportingService) DashboardMetrics(ctx context.Context, period domain.ReportPeriod) (*domain.DashboardMetrics, error) {
	if !domain.ValidReportPeriod(period) {
		return nil, fmt.Errorf("%w: unknown report period %q", apperrors.ErrValidation, period)
	}

	now := s.now()
	periodStart := domain.PeriodStart(period, now)

	summaries, err := s.reportingRepo.ListInvoiceSummaries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch invoice summaries for dashboard")
		return nil, fmt.Errorf("failed to fetch invoice summaries: %w", err)
	}

	metrics := &domain.DashboardMetrics{
		Period: period,
		AgingBuckets: map[string]int64{
			domain.AgingBucketCurrent: 0,
			domain.AgingBucket31to60:  0,
			domain.AgingBucket61to90:  0,
			domain.AgingBucket90Plus:  0,
		},
	}

	monthlyStart := monthFloor(now).AddDate(0, -(trailingRevenueMonths - 1), 0)
	monthly := make(map[string]int64, trailingRevenueMonths)

	var totalInvoicedCents int64
	var paidCount int64
	var paymentDaysTotal float64

	for _, inv := range summaries {
		totalInvoicedCents += inv.TotalAmountCents

		switch inv.Status {
		case domain.InvoiceStatusPaid:
			metrics.TotalRevenueCents += inv.TotalAmountCents
			if !inv.CreatedAt.Before(periodStart) {
				metrics.PeriodRevenueCents += inv.TotalAmountCents
			}
			if !inv.CreatedAt.Before(monthlyStart) {
				monthly[inv.CreatedAt.Format("2006-01")] += inv.TotalAmountCents
			}
			if inv.PaidDate != nil {
				paidCount++
				paymentDaysTotal += inv.PaidDate.Sub(inv.CreatedAt).Hours() / 24
			}
		case domain.InvoiceStatusSent, domain.InvoiceStatusOverdue:
			metrics.OutstandingCents += inv.TotalAmountCents
			ageDays := int(now.Sub(inv.CreatedAt).Hours() / 24)
			metrics.AgingBuckets[domain.AgingBucketFor(ageDays)] += inv.TotalAmountCents
		}
	}

	if paidCount > 0 {
		metrics.AveragePaymentDays = paymentDaysTotal / float64(paidCount)
	}
	if totalInvoicedCents > 0 {
		metrics.CollectionRatePercent = int64(math.Round(float64(metrics.TotalRevenueCents) / float64(totalInvoicedCents) * 100))
	}

	metrics.MonthlyRevenue = make([]domain.MonthlyRevenue, 0, trailingRevenueMonths)
	for i := 0; i < trailingRevenueMonths; i++ {
		month := monthlyStart.AddDate(0, i, 0).Format("2006-01")
		metrics.MonthlyRevenue = append(metrics.MonthlyRevenue, domain.MonthlyRevenue{
			Month:        month,
			RevenueCents: monthly[month],
		})
	}

	lifetimeMinutes, err := s.reportingRepo.SumBillableMinutes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum billable minutes")
		return nil, fmt.Errorf("failed to sum billable minutes: %w", err)
	}
	periodMinutes, err := s.reportingRepo.SumBillableMinutesSince(ctx, periodStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum period billable minutes")
		return nil, fmt.Errorf("failed to sum period billable minutes: %w", err)
	}
	metrics.BillableHours = float64(lifetimeMinutes) / 60
	metrics.PeriodBillableHours = float64(periodMinutes) / 60

	return metrics, nil
}

// monthFloor truncates t to the first instant of its calendar month.
func monthFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
