package repositories

import (
	"context"
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByMatter retrieves a paginated list of invoices for a matter,
	// newest first, optionally filtered by status.
	ListInvoicesByMatter(ctx context.Context, matterID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListInvoicesByClient retrieves a paginated list of invoices for a client,
	// newest first, optionally filtered by status.
	ListInvoicesByClient(ctx context.Context, clientID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// FindOverdueInvoices retrieves invoices with status sent or overdue whose
	// due date is strictly before the given moment.
	FindOverdueInvoices(ctx context.Context, now time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoiceWithEntries persists a draft invoice and stamps the named time
	// entries as invoiced to it, atomically. The entry update is a conditional
	// set on is_invoiced; if any entry was claimed concurrently the whole
	// transaction rolls back with apperrors.ErrAlreadyInvoiced.
	SaveInvoiceWithEntries(ctx context.Context, invoice domain.Invoice, timeEntryIDs []string) error

	// UpdateInvoiceStatus sets status and paid date on an invoice.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedByUserID string, updatedAt time.Time) error

	// DeleteInvoiceWithCleanup deletes the invoice plus its payments and
	// reminders, and releases its time entries, atomically.
	DeleteInvoiceWithCleanup(ctx context.Context, invoiceID string, deletedByUserID string, deletedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
