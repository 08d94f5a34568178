package dto

import (
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to aggregate time entries into
// a draft invoice.
type CreateInvoiceRequest struct {
	MatterID     string     `json:"matterID" binding:"required"`
	ClientID     string     `json:"clientID" binding:"required"`
	TimeEntryIDs []string   `json:"timeEntryIDs" binding:"required,min=1"`
	DueDate      *time.Time `json:"dueDate"`
	Notes        string     `json:"notes"`
}

// UpdateInvoiceStatusRequest defines a requested status transition.
type UpdateInvoiceStatusRequest struct {
	Status   domain.InvoiceStatus `json:"status" binding:"required,oneof=draft sent paid overdue cancelled"`
	PaidDate *time.Time           `json:"paidDate"` // Optional; paid without one stamps now
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID        string               `json:"invoiceID"`
	MatterID         string               `json:"matterID"`
	ClientID         string               `json:"clientID"`
	InvoiceNumber    string               `json:"invoiceNumber"`
	TotalAmountCents int64                `json:"totalAmountCents"`
	Status           domain.InvoiceStatus `json:"status"`
	DueDate          *time.Time           `json:"dueDate"`
	PaidDate         *time.Time           `json:"paidDate"`
	Notes            string               `json:"notes"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// InvoiceDetailResponse is the invoice plus its line-item time entries and
// payments, consumed by the PDF/export renderer and the portal detail page.
type InvoiceDetailResponse struct {
	Invoice     InvoiceResponse     `json:"invoice"`
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	Payments    []PaymentResponse   `json:"payments"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status    *domain.InvoiceStatus `form:"status"`
	Limit     int                   `form:"limit,default=20"`
	NextToken *string               `form:"nextToken"`
}

// ListInvoicesResponse wraps the paginated list of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		MatterID:         inv.MatterID,
		ClientID:         inv.ClientID,
		InvoiceNumber:    inv.InvoiceNumber,
		TotalAmountCents: inv.TotalAmountCents,
		Status:           inv.Status,
		DueDate:          inv.DueDate,
		PaidDate:         inv.PaidDate,
		Notes:            inv.Notes,
		CreatedAt:        inv.CreatedAt,
		CreatedBy:        inv.CreatedBy,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to response DTOs
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}
