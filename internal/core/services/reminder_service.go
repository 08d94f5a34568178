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
)

// reminderService derives payment reminder schedules from invoice due dates
// and surfaces overdue invoices for follow-up.
type reminderService struct {
	BaseService
	reminderRepo portsrepo.ReminderRepositoryFacade
	invoiceRepo  portsrepo.InvoiceReader
}

// NewReminderService creates a new ReminderService.
func NewReminderService(reminderRepo portsrepo.ReminderRepositoryFacade, invoiceRepo portsrepo.InvoiceReader) portssvc.ReminderSvcFacade {
	return &reminderService{
		reminderRepo: reminderRepo,
		invoiceRepo:  invoiceRepo,
	}
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

// AutoCreateReminders derives the reminder schedule from the invoice's due
// date and persists it. Pre-due reminders are only created while their date is
// still in the future; post-due reminders are always created. The operation is
// not idempotent; invoking it twice for the same invoice duplicates the
// schedule.
// Implements portssvc.ReminderSvcFacade
func (s *reminderService) AutoCreateReminders(ctx context.Context, invoiceID string, creatorUserID string) ([]domain.PaymentReminder, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.DueDate == nil {
		return nil, fmt.Errorf("%w: invoice %s has no due date", apperrors.ErrMissingDueDate, invoiceID)
	}

	now := time.Now().UTC()
	candidates := domain.DeriveReminderCandidates(*invoice.DueDate, now)

	reminders := make([]domain.PaymentReminder, 0, len(candidates))
	for _, candidate := range candidates {
		reminders = append(reminders, domain.PaymentReminder{
			ReminderID:   uuid.NewString(),
			InvoiceID:    invoiceID,
			ReminderDate: candidate.Date,
			ReminderType: candidate.Type,
			IsSent:       false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	if len(reminders) > 0 {
		if err := s.reminderRepo.SaveReminders(ctx, reminders); err != nil {
			s.LogError(ctx, err, "Failed to save reminders", slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to save reminders: %w", err)
		}
	}

	s.LogInfo(ctx, "Reminders created",
		slog.String("invoice_id", invoiceID),
		slog.Int("count", len(reminders)))

	return reminders, nil
}

// MarkSent stamps a reminder as sent. Marking an already-sent reminder again
// is a no-op that returns the reminder unchanged.
// Implements portssvc.ReminderSvcFacade
func (s *reminderService) MarkSent(ctx context.Context, reminderID string, requestingUserID string) (*domain.PaymentReminder, error) {
	reminder, err := s.reminderRepo.FindReminderByID(ctx, reminderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reminder", slog.String("reminder_id", reminderID))
		}
		return nil, fmt.Errorf("failed to find reminder %s: %w", reminderID, err)
	}

	if reminder.IsSent {
		s.LogDebug(ctx, "Reminder already sent", slog.String("reminder_id", reminderID))
		return reminder, nil
	}

	now := time.Now().UTC()
	if err := s.reminderRepo.MarkReminderSent(ctx, reminderID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to mark reminder sent", slog.String("reminder_id", reminderID))
		return nil, fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	reminder.IsSent = true
	reminder.SentAt = &now
	reminder.LastUpdatedAt = now
	reminder.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Reminder marked sent", slog.String("reminder_id", reminderID), slog.String("invoice_id", reminder.InvoiceID))
	return reminder, nil
}

// ListReminders retrieves all reminders for an invoice, ordered by date.
// Implements portssvc.ReminderSvcFacade
func (s *reminderService) ListReminders(ctx context.Context, invoiceID string) ([]domain.PaymentReminder, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	reminders, err := s.reminderRepo.FindRemindersByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reminders", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// GetOverdueInvoices retrieves invoices that are billed, unpaid and strictly
// past their due date. An invoice due today is not overdue.
// Implements portssvc.ReminderSvcFacade
func (s *reminderService) GetOverdueInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindOverdueInvoices(ctx, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to find overdue invoices")
		return nil, fmt.Errorf("failed to find overdue invoices: %w", err)
	}
	return invoices, nil
}
