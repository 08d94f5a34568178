package dto

import (
	"github.com/caseledger/caseledger/internal/core/domain"
)

// DashboardMetricsParams selects the reporting window.
type DashboardMetricsParams struct {
	Period domain.ReportPeriod `form:"period,default=month"`
}

// MonthlyRevenueResponse is one month of the trailing revenue breakdown.
type MonthlyRevenueResponse struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenueCents"`
}

// DashboardMetricsResponse is the dashboard aggregation payload.
type DashboardMetricsResponse struct {
	Period                domain.ReportPeriod      `json:"period"`
	TotalRevenueCents     int64                    `json:"totalRevenueCents"`
	PeriodRevenueCents    int64                    `json:"periodRevenueCents"`
	OutstandingCents      int64                    `json:"outstandingCents"`
	AveragePaymentDays    float64                  `json:"averagePaymentDays"`
	CollectionRatePercent int64                    `json:"collectionRatePercent"`
	MonthlyRevenue        []MonthlyRevenueResponse `json:"monthlyRevenue"`
	BillableHours         float64                  `json:"billableHours"`
	PeriodBillableHours   float64                  `json:"periodBillableHours"`
	AgingBuckets          map[string]int64         `json:"agingBuckets"`
}

// ToDashboardMetricsResponse converts domain.DashboardMetrics to its DTO
func ToDashboardMetricsResponse(m *domain.DashboardMetrics) DashboardMetricsResponse {
	monthly := make([]MonthlyRevenueResponse, len(m.MonthlyRevenue))
	for i, mr := range m.MonthlyRevenue {
		monthly[i] = MonthlyRevenueResponse{Month: mr.Month, RevenueCents: mr.RevenueCents}
	}
	return DashboardMetricsResponse{
		Period:                m.Period,
		TotalRevenueCents:     m.TotalRevenueCents,
		PeriodRevenueCents:    m.PeriodRevenueCents,
		OutstandingCents:      m.OutstandingCents,
		AveragePaymentDays:    m.AveragePaymentDays,
		CollectionRatePercent: m.CollectionRatePercent,
		MonthlyRevenue:        monthly,
		BillableHours:         m.BillableHours,
		PeriodBillableHours:   m.PeriodBillableHours,
		AgingBuckets:          m.AgingBuckets,
	}
}
