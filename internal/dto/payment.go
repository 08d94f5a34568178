package dto

import (
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// CreatePaymentRequest defines the data needed to record a payment against an
// invoice.
type CreatePaymentRequest struct {
	AmountCents     int64      `json:"amountCents" binding:"required,gt=0"`
	PaymentMethod   string     `json:"paymentMethod" binding:"required"`
	ReferenceNumber *string    `json:"referenceNumber"`
	PaymentDate     *time.Time `json:"paymentDate"` // Defaults to now
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string    `json:"paymentID"`
	InvoiceID       string    `json:"invoiceID"`
	AmountCents     int64     `json:"amountCents"`
	PaymentMethod   string    `json:"paymentMethod"`
	ReferenceNumber *string   `json:"referenceNumber"`
	PaymentDate     time.Time `json:"paymentDate"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
}

// RecordPaymentResponse is the payment plus the invoice status it produced.
type RecordPaymentResponse struct {
	Payment       PaymentResponse      `json:"payment"`
	InvoiceStatus domain.InvoiceStatus `json:"invoiceStatus"`
}

// InvoiceBalanceResponse summarises the reconciliation state of an invoice.
type InvoiceBalanceResponse struct {
	InvoiceID        string `json:"invoiceID"`
	TotalAmountCents int64  `json:"totalAmountCents"`
	TotalPaidCents   int64  `json:"totalPaidCents"`
	BalanceCents     int64  `json:"balanceCents"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		InvoiceID:       p.InvoiceID,
		AmountCents:     p.AmountCents,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		PaymentDate:     p.PaymentDate,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to response DTOs
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p)
	}
	return res
}

// ToInvoiceBalanceResponse converts a domain.InvoiceBalance to its DTO
func ToInvoiceBalanceResponse(b *domain.InvoiceBalance) InvoiceBalanceResponse {
	return InvoiceBalanceResponse{
		InvoiceID:        b.InvoiceID,
		TotalAmountCents: b.TotalAmountCents,
		TotalPaidCents:   b.TotalPaidCents,
		BalanceCents:     b.BalanceCents,
	}
}
