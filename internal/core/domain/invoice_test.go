package domain_test

import (
	"testing"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.InvoiceStatus
		to   domain.InvoiceStatus
		want bool
	}{
		{"draft to sent", domain.InvoiceStatusDraft, domain.InvoiceStatusSent, true},
		{"draft to cancelled", domain.InvoiceStatusDraft, domain.InvoiceStatusCancelled, true},
		{"draft to paid skips sending", domain.InvoiceStatusDraft, domain.InvoiceStatusPaid, false},
		{"sent to paid", domain.InvoiceStatusSent, domain.InvoiceStatusPaid, true},
		{"sent to overdue", domain.InvoiceStatusSent, domain.InvoiceStatusOverdue, true},
		{"sent to cancelled", domain.InvoiceStatusSent, domain.InvoiceStatusCancelled, true},
		{"sent back to draft", domain.InvoiceStatusSent, domain.InvoiceStatusDraft, false},
		{"overdue to paid", domain.InvoiceStatusOverdue, domain.InvoiceStatusPaid, true},
		{"overdue to cancelled", domain.InvoiceStatusOverdue, domain.InvoiceStatusCancelled, true},
		{"overdue back to sent", domain.InvoiceStatusOverdue, domain.InvoiceStatusSent, false},
		{"paid to sent only via payment reversal", domain.InvoiceStatusPaid, domain.InvoiceStatusSent, false},
		{"paid to cancelled", domain.InvoiceStatusPaid, domain.InvoiceStatusCancelled, false},
		{"cancelled is terminal", domain.InvoiceStatusCancelled, domain.InvoiceStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidInvoiceStatus(t *testing.T) {
	assert.True(t, domain.ValidInvoiceStatus(domain.InvoiceStatusDraft))
	assert.True(t, domain.ValidInvoiceStatus(domain.InvoiceStatusOverdue))
	assert.False(t, domain.ValidInvoiceStatus(domain.InvoiceStatus("refunded")))
	assert.False(t, domain.ValidInvoiceStatus(domain.InvoiceStatus("")))
}

func TestInvoice_Outstanding(t *testing.T) {
	assert.True(t, domain.Invoice{Status: domain.InvoiceStatusSent}.Outstanding())
	assert.True(t, domain.Invoice{Status: domain.InvoiceStatusOverdue}.Outstanding())
	assert.False(t, domain.Invoice{Status: domain.InvoiceStatusDraft}.Outstanding())
	assert.False(t, domain.Invoice{Status: domain.InvoiceStatusPaid}.Outstanding())
	assert.False(t, domain.Invoice{Status: domain.InvoiceStatusCancelled}.Outstanding())
}
