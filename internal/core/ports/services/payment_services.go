package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// ListPayments retrieves all payments recorded against an invoice.
	ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// GetBalance reports the reconciliation state of an invoice.
	GetBalance(ctx context.Context, invoiceID string) (*domain.InvoiceBalance, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// RecordPayment records a payment and reconciles the invoice's paid status.
	RecordPayment(ctx context.Context, invoiceID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, domain.InvoiceStatus, error)

	// DeletePayment deletes a payment and reconciles the invoice's paid status.
	// This is the only path by which an invoice may move backward from paid.
	DeletePayment(ctx context.Context, paymentID string, requestingUserID string) (domain.InvoiceStatus, error)
}

// PaymentSvcFacade combines all payment service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
