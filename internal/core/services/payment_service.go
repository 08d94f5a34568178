package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/dto"
)

// paymentService records payments against invoices and keeps the invoice paid
// status reconciled with the payment rows. The paid total is always recomputed
// from the rows; it is never cached on the invoice.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
	activitySvc portssvc.ActivitySvcFacade
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentActivityLogger sets the audit logger for the payment service.
func WithPaymentActivityLogger(activitySvc portssvc.ActivitySvcFacade) PaymentServiceOption {
	return func(s *paymentService) {
		s.activitySvc = activitySvc
	}
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceReader, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) recordActivity(ctx context.Context, entityID, action, detail, actorUserID string) {
	if s.activitySvc != nil {
		s.activitySvc.RecordActivity(ctx, "payment", entityID, action, detail, actorUserID)
	}
}

// RecordPayment records a payment against an invoice and reconciles the
// invoice's paid status inside the same transaction as the insert. The repo
// holds a row lock on the invoice for the duration, so two clerks recording
// against the same invoice serialize and the paid determination is made
// against the true running total. Overpayment is accepted and recorded.
// Implements portssvc.PaymentWriterSvc
func (s *paymentService) RecordPayment(ctx context.Context, invoiceID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, domain.InvoiceStatus, error) {
	if req.AmountCents <= 0 {
		return nil, "", fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceStatusDraft || invoice.Status == domain.InvoiceStatusCancelled {
		return nil, "", fmt.Errorf("%w: cannot record payment against a %s invoice", apperrors.ErrInvalidTransition, invoice.Status)
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		InvoiceID:       invoiceID,
		AmountCents:     req.AmountCents,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		PaymentDate:     paymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	status, err := s.paymentRepo.SavePaymentAndReconcile(ctx, payment)
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID))
		return nil, "", fmt.Errorf("failed to record payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.Int64("amount_cents", payment.AmountCents),
		slog.String("invoice_status", string(status)))
	s.recordActivity(ctx, payment.PaymentID, "recorded",
		fmt.Sprintf(`{"invoiceID":%q,"amountCents":%d,"invoiceStatus":%q}`, invoiceID, payment.AmountCents, status),
		creatorUserID)

	return &payment, status, nil
}

// DeletePayment removes a payment and re-reconciles the parent invoice. When
// the remaining paid total no longer covers the invoice, a paid invoice drops
// back to sent. This is the single path by which paid moves backward.
// Implements portssvc.PaymentWriterSvc
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, requestingUserID string) (domain.InvoiceStatus, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return "", fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	status, err := s.paymentRepo.DeletePaymentAndReconcile(ctx, paymentID, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return "", fmt.Errorf("failed to delete payment: %w", err)
	}

	s.LogInfo(ctx, "Payment deleted",
		slog.String("payment_id", paymentID),
		slog.String("invoice_id", payment.InvoiceID),
		slog.String("invoice_status", string(status)))
	s.recordActivity(ctx, paymentID, "deleted",
		fmt.Sprintf(`{"invoiceID":%q,"amountCents":%d,"invoiceStatus":%q}`, payment.InvoiceID, payment.AmountCents, status),
		requestingUserID)

	return status, nil
}

// ListPayments retrieves all payments recorded against an invoice.
// Implements portssvc.PaymentReaderSvc
func (s *paymentService) ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	payments, err := s.paymentRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetBalance reports the reconciliation state of an invoice: its snapshot
// total, the paid total recomputed from payment rows, and the difference.
// Overpayment shows as a negative balance.
// Implements portssvc.PaymentReaderSvc
func (s *paymentService) GetBalance(ctx context.Context, invoiceID string) (*domain.InvoiceBalance, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	paidCents, err := s.paymentRepo.SumPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to compute invoice balance: %w", err)
	}

	return &domain.InvoiceBalance{
		InvoiceID:        invoiceID,
		TotalAmountCents: invoice.TotalAmountCents,
		TotalPaidCents:   paidCents,
		BalanceCents:     invoice.TotalAmountCents - paidCents,
	}, nil
}
