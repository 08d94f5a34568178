package billing_test

import (
	"testing"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/utils/billing"
	"github.com/stretchr/testify/assert"
)

func ratePtr(cents int64) *int64 {
	return &cents
}

func TestInvoiceTotalCents(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.TimeEntry
		want    int64
	}{
		{
			name: "three hours at $200/hr",
			entries: []domain.TimeEntry{
				{DurationMinutes: 120, HourlyRateCents: ratePtr(20000), IsBillable: true},
				{DurationMinutes: 60, HourlyRateCents: ratePtr(20000), IsBillable: true},
			},
			want: 60000,
		},
		{
			name: "non-billable entries contribute zero",
			entries: []domain.TimeEntry{
				{DurationMinutes: 60, HourlyRateCents: ratePtr(20000), IsBillable: true},
				{DurationMinutes: 240, HourlyRateCents: ratePtr(20000), IsBillable: false},
			},
			want: 20000,
		},
		{
			name: "rate-less entries contribute zero",
			entries: []domain.TimeEntry{
				{DurationMinutes: 60, HourlyRateCents: ratePtr(15000), IsBillable: true},
				{DurationMinutes: 90, HourlyRateCents: nil, IsBillable: true},
			},
			want: 15000,
		},
		{
			name: "fractional cents round once on the total",
			entries: []domain.TimeEntry{
				// 10 min at $100/hr = 1666.66... cents, three of them = 5000 exactly
				{DurationMinutes: 10, HourlyRateCents: ratePtr(10000), IsBillable: true},
				{DurationMinutes: 10, HourlyRateCents: ratePtr(10000), IsBillable: true},
				{DurationMinutes: 10, HourlyRateCents: ratePtr(10000), IsBillable: true},
			},
			want: 5000,
		},
		{
			name: "single fractional line rounds to nearest cent",
			entries: []domain.TimeEntry{
				// 50 min at $99.99/hr = 8332.5 cents -> 8333
				{DurationMinutes: 50, HourlyRateCents: ratePtr(9999), IsBillable: true},
			},
			want: 8333,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.InvoiceTotalCents(tt.entries))
		})
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, 1.5, billing.Hours(90))
	assert.Equal(t, 0.25, billing.Hours(15))
	assert.Equal(t, 0.0, billing.Hours(0))
}
