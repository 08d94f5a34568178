package repositories

import (
	"context"
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ReminderReader defines read operations for payment reminder data
type ReminderReader interface {
	// FindReminderByID retrieves a specific reminder by its unique identifier.
	FindReminderByID(ctx context.Context, reminderID string) (*domain.PaymentReminder, error)

	// FindRemindersByInvoiceID retrieves all reminders for an invoice, ordered by
	// reminder date.
	FindRemindersByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentReminder, error)

	// FindPendingReminders retrieves unsent reminders whose date is at or before
	// the given moment.
	FindPendingReminders(ctx context.Context, asOf time.Time) ([]domain.PaymentReminder, error)
}

// ReminderWriter defines write operations for payment reminder data
type ReminderWriter interface {
	// SaveReminders batch-inserts the given reminders.
	SaveReminders(ctx context.Context, reminders []domain.PaymentReminder) error

	// MarkReminderSent stamps a reminder as sent.
	MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time, updatedByUserID string) error
}

// ReminderRepositoryFacade combines all reminder repository interfaces
type ReminderRepositoryFacade interface {
	ReminderReader
	ReminderWriter
}
