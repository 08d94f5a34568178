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
	"github.com/caseledger/caseledger/internal/utils"
	"github.com/caseledger/caseledger/internal/utils/billing"
)

// invoiceService owns the invoice lifecycle: aggregation of time entries into
// a draft, the status machine, and deletion with entry release.
type invoiceService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	paymentRepo   portsrepo.PaymentReader
	activitySvc   portssvc.ActivitySvcFacade
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceActivityLogger sets the audit logger for the invoice service.
func WithInvoiceActivityLogger(activitySvc portssvc.ActivitySvcFacade) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.activitySvc = activitySvc
	}
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, timeEntryRepo portsrepo.TimeEntryRepositoryFacade, paymentRepo portsrepo.PaymentReader, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo:   invoiceRepo,
		timeEntryRepo: timeEntryRepo,
		paymentRepo:   paymentRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure invoiceService implements the facade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) recordActivity(ctx context.Context, entityID, action, detail, actorUserID string) {
	if s.activitySvc != nil {
		s.activitySvc.RecordActivity(ctx, "invoice", entityID, action, detail, actorUserID)
	}
}

// CreateInvoice aggregates the named time entries into a new draft invoice.
// The invoice total is a snapshot computed here, once; later edits to time
// entries never change it. Persisting the invoice and stamping the entries
// happen in a single database transaction, so a concurrent CreateInvoice over
// an overlapping entry set cannot leave partial state behind.
// Implements portssvc.InvoiceWriterSvc
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if len(req.TimeEntryIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one time entry is required", apperrors.ErrValidation)
	}

	entryIDs := uniqueStrings(req.TimeEntryIDs)

	entriesMap, err := s.timeEntryRepo.FindTimeEntriesByIDs(ctx, entryIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch time entries for invoice creation", slog.String("matter_id", req.MatterID))
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	entries := make([]domain.TimeEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		entry, found := entriesMap[id]
		if !found {
			return nil, fmt.Errorf("%w: time entry %s", apperrors.ErrNotFound, id)
		}
		if entry.MatterID != req.MatterID {
			s.LogWarn(ctx, "Time entry from different matter supplied to invoice creation",
				slog.String("time_entry_id", id),
				slog.String("entry_matter_id", entry.MatterID),
				slog.String("invoice_matter_id", req.MatterID))
			return nil, fmt.Errorf("%w: time entry %s belongs to matter %s", apperrors.ErrCrossMatter, id, entry.MatterID)
		}
		if entry.IsInvoiced {
			return nil, fmt.Errorf("%w: time entry %s", apperrors.ErrAlreadyInvoiced, id)
		}
		entries = append(entries, entry)
	}

	now := time.Now().UTC()

	invoiceNumber, err := utils.GenerateInvoiceNumber(now)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invoice number")
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		MatterID:         req.MatterID,
		ClientID:         req.ClientID,
		InvoiceNumber:    invoiceNumber,
		TotalAmountCents: billing.InvoiceTotalCents(entries),
		Status:           domain.InvoiceStatusDraft,
		DueDate:          req.DueDate,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoiceWithEntries(ctx, invoice, entryIDs); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyInvoiced) {
			s.LogError(ctx, err, "Failed to save invoice", slog.String("matter_id", req.MatterID))
		}
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int64("total_amount_cents", invoice.TotalAmountCents),
		slog.Int("entry_count", len(entries)))
	s.recordActivity(ctx, invoice.InvoiceID, "created",
		fmt.Sprintf(`{"invoiceNumber":%q,"totalAmountCents":%d,"timeEntries":%d}`, invoice.InvoiceNumber, invoice.TotalAmountCents, len(entries)),
		creatorUserID)

	return &invoice, nil
}

// GetInvoiceByID retrieves a specific invoice.
// Implements portssvc.InvoiceReaderSvc
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// GetInvoiceDetail retrieves an invoice plus its line-item time entries and
// payments. This is the read accessor the PDF/export renderer consumes.
// Implements portssvc.InvoiceReaderSvc
func (s *invoiceService) GetInvoiceDetail(ctx context.Context, invoiceID string) (*portssvc.InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	entries, err := s.timeEntryRepo.FindTimeEntriesByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch time entries for invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to fetch invoice line items: %w", err)
	}

	payments, err := s.paymentRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch payments for invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to fetch invoice payments: %w", err)
	}

	return &portssvc.InvoiceDetail{
		Invoice:     *invoice,
		TimeEntries: entries,
		Payments:    payments,
	}, nil
}

// ListInvoicesByMatter retrieves a paginated list of invoices for a matter.
// Implements portssvc.InvoiceReaderSvc
func (s *invoiceService) ListInvoicesByMatter(ctx context.Context, matterID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByMatter(ctx, matterID, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by matter", slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: nextToken,
	}, nil
}

// ListInvoicesByClient retrieves a paginated list of invoices for a client.
// Implements portssvc.InvoiceReaderSvc
func (s *invoiceService) ListInvoicesByClient(ctx context.Context, clientID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByClient(ctx, clientID, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: nextToken,
	}, nil
}

// UpdateStatus performs a lifecycle transition on an invoice. paid -> sent is
// never legal here; that move only happens through payment deletion in the
// payment ledger. Requesting paid without a paid date stamps the current time.
// Repeating a paid request with the same paid date is a no-op.
// Implements portssvc.InvoiceWriterSvc
func (s *invoiceService) UpdateStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, requestingUserID string) (*domain.Invoice, error) {
	if !domain.ValidInvoiceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	now := time.Now().UTC()

	if invoice.Status == req.Status {
		if req.Status == domain.InvoiceStatusPaid && req.PaidDate != nil && invoice.PaidDate != nil && req.PaidDate.Equal(*invoice.PaidDate) {
			// Repeated identical request; nothing to do.
			s.LogDebug(ctx, "Invoice already in requested paid state", slog.String("invoice_id", invoiceID))
			return invoice, nil
		}
		if req.Status != domain.InvoiceStatusPaid {
			s.LogDebug(ctx, "Invoice already in requested status", slog.String("invoice_id", invoiceID), slog.String("status", string(req.Status)))
			return invoice, nil
		}
	}

	if !domain.CanTransition(invoice.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, invoice.Status, req.Status)
	}

	var paidDate *time.Time
	if req.Status == domain.InvoiceStatusPaid {
		paidDate = req.PaidDate
		if paidDate == nil {
			paidDate = &now
		}
	}

	previousStatus := invoice.Status
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, req.Status, paidDate, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update invoice status", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	invoice.Status = req.Status
	invoice.PaidDate = paidDate
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(previousStatus)),
		slog.String("to", string(req.Status)))
	s.recordActivity(ctx, invoiceID, "status_changed",
		fmt.Sprintf(`{"from":%q,"to":%q}`, previousStatus, req.Status),
		requestingUserID)

	return invoice, nil
}

// DeleteInvoice removes a draft or cancelled invoice. Its payments and
// reminders are removed and its time entries unconditionally released, all in
// one transaction.
// Implements portssvc.InvoiceWriterSvc
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	if invoice.Status != domain.InvoiceStatusDraft && invoice.Status != domain.InvoiceStatusCancelled {
		return fmt.Errorf("%w: only draft or cancelled invoices can be deleted, invoice is %s", apperrors.ErrInvalidTransition, invoice.Status)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.DeleteInvoiceWithCleanup(ctx, invoiceID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	s.recordActivity(ctx, invoiceID, "deleted",
		fmt.Sprintf(`{"invoiceNumber":%q}`, invoice.InvoiceNumber),
		requestingUserID)

	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
