package domain

import "time"

// ReportPeriod selects the window for period-scoped dashboard metrics.
type ReportPeriod string

const (
	PeriodMonth   ReportPeriod = "month"
	PeriodQuarter ReportPeriod = "quarter"
	PeriodYear    ReportPeriod = "year"
)

// ValidReportPeriod reports whether p is a known period.
func ValidReportPeriod(p ReportPeriod) bool {
	return p == PeriodMonth || p == PeriodQuarter || p == PeriodYear
}

// PeriodStart returns the inclusive lower bound of the reporting window ending
// at now: one calendar month back, three calendar months back, or Jan 1 of the
// current year.
func PeriodStart(period ReportPeriod, now time.Time) time.Time {
	switch period {
	case PeriodQuarter:
		return now.AddDate(0, -3, 0)
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return now.AddDate(0, -1, 0)
	}
}

// InvoiceSummary is the slim invoice projection the reporter aggregates over.
type InvoiceSummary struct {
	InvoiceID        string
	TotalAmountCents int64
	Status           InvoiceStatus
	CreatedAt        time.Time
	PaidDate         *time.Time
}

// AgingBucket labels for outstanding invoice age, in days since creation.
const (
	AgingBucketCurrent = "0-30"
	AgingBucket31to60  = "31-60"
	AgingBucket61to90  = "61-90"
	AgingBucket90Plus  = "90+"
)

// AgingBucketFor classifies an invoice age in whole days into its bucket.
// Boundaries are inclusive on the upper edge: day 30 is still current, day 31
// falls into 31-60, and so on.
func AgingBucketFor(ageDays int) string {
	switch {
	case ageDays <= 30:
		return AgingBucketCurrent
	case ageDays <= 60:
		return AgingBucket31to60
	case ageDays <= 90:
		return AgingBucket61to90
	default:
		return AgingBucket90Plus
	}
}

// MonthlyRevenue is one month of the trailing revenue breakdown.
type MonthlyRevenue struct {
	Month        string `json:"month"` // YYYY-MM
	RevenueCents int64  `json:"revenueCents"`
}

// DashboardMetrics is the read-only aggregation the analytics reporter produces.
type DashboardMetrics struct {
	Period                ReportPeriod      `json:"period"`
	TotalRevenueCents     int64             `json:"totalRevenueCents"`
	PeriodRevenueCents    int64             `json:"periodRevenueCents"`
	OutstandingCents      int64             `json:"outstandingCents"`
	AveragePaymentDays    float64           `json:"averagePaymentDays"`
	CollectionRatePercent int64             `json:"collectionRatePercent"`
	MonthlyRevenue        []MonthlyRevenue  `json:"monthlyRevenue"`
	BillableHours         float64           `json:"billableHours"`
	PeriodBillableHours   float64           `json:"periodBillableHours"`
	AgingBuckets          map[string]int64  `json:"agingBuckets"`
}
