package billing

import (
	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// LineAmount computes the exact (unrounded) value of a single time entry in
// cents: (durationMinutes / 60) * hourlyRateCents. Entries that are
// non-billable or carry no rate snapshot are zero-valued but still associable
// with an invoice.
func LineAmount(entry domain.TimeEntry) decimal.Decimal {
	if !entry.Billable() {
		return decimal.Zero
	}
	minutes := decimal.NewFromInt(int64(entry.DurationMinutes))
	rate := decimal.NewFromInt(*entry.HourlyRateCents)
	return minutes.Div(minutesPerHour).Mul(rate)
}

// InvoiceTotalCents sums the line amounts of the given entries and rounds the
// sum to the nearest cent. Rounding happens once, on the total, so fractional
// cents from partial hours do not accumulate per line.
func InvoiceTotalCents(entries []domain.TimeEntry) int64 {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(LineAmount(entry))
	}
	return total.Round(0).IntPart()
}

// Hours converts a duration in minutes into fractional hours.
func Hours(durationMinutes int) float64 {
	hours, _ := decimal.NewFromInt(int64(durationMinutes)).Div(minutesPerHour).Float64()
	return hours
}
