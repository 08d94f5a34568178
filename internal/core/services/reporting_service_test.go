package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
	now               time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(
		suite.mockReportingRepo,
		services.WithReportingClock(func() time.Time { return suite.now }),
	)
}

func (suite *ReportingServiceTestSuite) TestDashboardMetrics_Month() {
	ctx := context.Background()

	paidRecent := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	paidRecentDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	paidOld := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	paidOldDate := time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC)

	summaries := []domain.InvoiceSummary{
		// Paid 9 days after creation, inside the month window
		{InvoiceID: uuid.NewString(), TotalAmountCents: 60000, Status: domain.InvoiceStatusPaid, CreatedAt: paidRecent, PaidDate: &paidRecentDate},
		// Paid 30 days after creation, outside the month window
		{InvoiceID: uuid.NewString(), TotalAmountCents: 40000, Status: domain.InvoiceStatusPaid, CreatedAt: paidOld, PaidDate: &paidOldDate},
		// Outstanding, 45 days old
		{InvoiceID: uuid.NewString(), TotalAmountCents: 30000, Status: domain.InvoiceStatusSent, CreatedAt: suite.now.AddDate(0, 0, -45)},
		// Outstanding, 10 days old
		{InvoiceID: uuid.NewString(), TotalAmountCents: 20000, Status: domain.InvoiceStatusOverdue, CreatedAt: suite.now.AddDate(0, 0, -10)},
		// Draft counts toward total invoiced but nothing else
		{InvoiceID: uuid.NewString(), TotalAmountCents: 50000, Status: domain.InvoiceStatusDraft, CreatedAt: suite.now.AddDate(0, 0, -5)},
	}

	suite.mockReportingRepo.On("ListInvoiceSummaries", ctx).Return(summaries, nil).Once()
	suite.mockReportingRepo.On("SumBillableMinutes", ctx).Return(int64(3000), nil).Once()
	suite.mockReportingRepo.On("SumBillableMinutesSince", ctx, domain.PeriodStart(domain.PeriodMonth, suite.now)).Return(int64(600), nil).Once()

	metrics, err := suite.service.DashboardMetrics(ctx, domain.PeriodMonth)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodMonth, metrics.Period)
	suite.Equal(int64(100000), metrics.TotalRevenueCents)
	suite.Equal(int64(60000), metrics.PeriodRevenueCents)
	suite.Equal(int64(50000), metrics.OutstandingCents)
	// (9 + 30) / 2
	suite.InDelta(19.5, metrics.AveragePaymentDays, 0.01)
	// 100000 / 200000
	suite.Equal(int64(50), metrics.CollectionRatePercent)
	suite.Equal(50.0, metrics.BillableHours)
	suite.Equal(10.0, metrics.PeriodBillableHours)

	suite.Equal(int64(30000), metrics.AgingBuckets[domain.AgingBucket31to60])
	suite.Equal(int64(20000), metrics.AgingBuckets[domain.AgingBucketCurrent])
	suite.Equal(int64(0), metrics.AgingBuckets[domain.AgingBucket61to90])
	suite.Equal(int64(0), metrics.AgingBuckets[domain.AgingBucket90Plus])

	suite.Require().Len(metrics.MonthlyRevenue, 6)
	suite.Equal("2025-01", metrics.MonthlyRevenue[0].Month)
	suite.Equal("2025-06", metrics.MonthlyRevenue[5].Month)
	suite.Equal(int64(40000), metrics.MonthlyRevenue[2].RevenueCents) // March
	suite.Equal(int64(60000), metrics.MonthlyRevenue[5].RevenueCents) // June
	suite.Equal(int64(0), metrics.MonthlyRevenue[4].RevenueCents)     // May

	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardMetrics_YearWindowStartsJanFirst() {
	ctx := context.Background()

	suite.mockReportingRepo.On("ListInvoiceSummaries", ctx).Return([]domain.InvoiceSummary{}, nil).Once()
	suite.mockReportingRepo.On("SumBillableMinutes", ctx).Return(int64(0), nil).Once()
	suite.mockReportingRepo.On("SumBillableMinutesSince", ctx, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)).Return(int64(0), nil).Once()

	metrics, err := suite.service.DashboardMetrics(ctx, domain.PeriodYear)

	suite.Require().NoError(err)
	suite.Equal(int64(0), metrics.TotalRevenueCents)
	suite.Equal(int64(0), metrics.CollectionRatePercent)
	suite.Equal(0.0, metrics.AveragePaymentDays)
}

func (suite *ReportingServiceTestSuite) TestDashboardMetrics_UnknownPeriodRejected() {
	ctx := context.Background()

	_, err := suite.service.DashboardMetrics(ctx, domain.ReportPeriod("decade"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ListInvoiceSummaries", ctx)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
