package mapping

import (
	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/caseledger/caseledger/internal/models"
)

// ToModelPaymentReminder converts a domain PaymentReminder to a model PaymentReminder
func ToModelPaymentReminder(d domain.PaymentReminder) models.PaymentReminder {
	return models.PaymentReminder{
		ReminderID:   d.ReminderID,
		InvoiceID:    d.InvoiceID,
		ReminderDate: d.ReminderDate,
		ReminderType: models.ReminderType(d.ReminderType),
		IsSent:       d.IsSent,
		SentAt:       d.SentAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentReminder converts a model PaymentReminder to a domain PaymentReminder
func ToDomainPaymentReminder(m models.PaymentReminder) domain.PaymentReminder {
	return domain.PaymentReminder{
		ReminderID:   m.ReminderID,
		InvoiceID:    m.InvoiceID,
		ReminderDate: m.ReminderDate,
		ReminderType: domain.ReminderType(m.ReminderType),
		IsSent:       m.IsSent,
		SentAt:       m.SentAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentReminderSlice converts a slice of model PaymentReminders to domain PaymentReminders
func ToDomainPaymentReminderSlice(ms []models.PaymentReminder) []domain.PaymentReminder {
	ds := make([]domain.PaymentReminder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentReminder(m)
	}
	return ds
}
