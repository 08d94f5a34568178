package repositories

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByInvoiceID retrieves all payments recorded against an invoice,
	// oldest first.
	FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// SumPaymentsByInvoiceID computes the paid total for an invoice from the
	// payment rows. The sum is never cached on the invoice; it is recomputed on
	// every reconciliation check.
	SumPaymentsByInvoiceID(ctx context.Context, invoiceID string) (int64, error)
}

// PaymentWriter defines write operations for payment data.
// Both mutations reconcile the parent invoice's paid status in the same
// database transaction, holding a row lock on the invoice so concurrent
// payment activity against one invoice serializes.
type PaymentWriter interface {
	// SavePaymentAndReconcile inserts the payment, recomputes the paid total and
	// transitions the invoice to paid when the total covers the invoice amount.
	// Returns the invoice status after reconciliation.
	SavePaymentAndReconcile(ctx context.Context, payment domain.Payment) (domain.InvoiceStatus, error)

	// DeletePaymentAndReconcile deletes the payment, recomputes the paid total
	// and reverts a paid invoice to sent when the total no longer covers the
	// invoice amount. Returns the invoice status after reconciliation.
	DeletePaymentAndReconcile(ctx context.Context, paymentID string, updatedByUserID string) (domain.InvoiceStatus, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
