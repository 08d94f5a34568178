package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/dto"
)

// InvoiceDetail bundles an invoice with its line-item time entries and
// payments, for the export renderer and detail views.
type InvoiceDetail struct {
	Invoice     domain.Invoice
	TimeEntries []domain.TimeEntry
	Payments    []domain.Payment
}

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// GetInvoiceDetail retrieves an invoice plus its time entries and payments.
	GetInvoiceDetail(ctx context.Context, invoiceID string) (*InvoiceDetail, error)

	// ListInvoicesByMatter retrieves a paginated list of invoices for a matter.
	ListInvoicesByMatter(ctx context.Context, matterID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListInvoicesByClient retrieves a paginated list of invoices for a client.
	ListInvoicesByClient(ctx context.Context, clientID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice aggregates time entries into a new draft invoice.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateStatus performs a lifecycle transition on an invoice.
	UpdateStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes a draft or cancelled invoice and releases its entries.
	DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
