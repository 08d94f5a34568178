package mapping

import (
	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:        d.InvoiceID,
		MatterID:         d.MatterID,
		ClientID:         d.ClientID,
		InvoiceNumber:    d.InvoiceNumber,
		TotalAmountCents: d.TotalAmountCents,
		Status:           models.InvoiceStatus(d.Status),
		DueDate:          d.DueDate,
		PaidDate:         d.PaidDate,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:        m.InvoiceID,
		MatterID:         m.MatterID,
		ClientID:         m.ClientID,
		InvoiceNumber:    m.InvoiceNumber,
		TotalAmountCents: m.TotalAmountCents,
		Status:           domain.InvoiceStatus(m.Status),
		DueDate:          m.DueDate,
		PaidDate:         m.PaidDate,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
