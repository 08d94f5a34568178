package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ReminderSvcFacade defines the reminder scheduling operations.
type ReminderSvcFacade interface {
	// AutoCreateReminders derives and persists the reminder schedule for an
	// invoice's due date. NOT idempotent: calling it twice duplicates reminders;
	// callers are responsible for not double-invoking it.
	AutoCreateReminders(ctx context.Context, invoiceID string, creatorUserID string) ([]domain.PaymentReminder, error)

	// MarkSent stamps a reminder as sent.
	MarkSent(ctx context.Context, reminderID string, requestingUserID string) (*domain.PaymentReminder, error)

	// ListReminders retrieves all reminders for an invoice.
	ListReminders(ctx context.Context, invoiceID string) ([]domain.PaymentReminder, error)

	// GetOverdueInvoices retrieves invoices that are billed, unpaid and past due.
	GetOverdueInvoices(ctx context.Context) ([]domain.Invoice, error)
}
