package mapping

import (
	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/models"
)

// ToModelTimeEntry converts a domain TimeEntry to a model TimeEntry
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		TimeEntryID:     d.TimeEntryID,
		MatterID:        d.MatterID,
		Description:     d.Description,
		DurationMinutes: d.DurationMinutes,
		HourlyRateCents: d.HourlyRateCents,
		IsBillable:      d.IsBillable,
		IsInvoiced:      d.IsInvoiced,
		InvoiceID:       d.InvoiceID,
		EntryDate:       d.EntryDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry to a domain TimeEntry
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID:     m.TimeEntryID,
		MatterID:        m.MatterID,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		HourlyRateCents: m.HourlyRateCents,
		IsBillable:      m.IsBillable,
		IsInvoiced:      m.IsInvoiced,
		InvoiceID:       m.InvoiceID,
		EntryDate:       m.EntryDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimeEntrySlice converts a slice of model TimeEntries to domain TimeEntries
func ToDomainTimeEntrySlice(ms []models.TimeEntry) []domain.TimeEntry {
	ds := make([]domain.TimeEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTimeEntry(m)
	}
	return ds
}
