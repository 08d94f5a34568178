package dto

import (
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ReminderResponse defines the data returned for a payment reminder.
type ReminderResponse struct {
	ReminderID   string              `json:"reminderID"`
	InvoiceID    string              `json:"invoiceID"`
	ReminderDate time.Time           `json:"reminderDate"`
	ReminderType domain.ReminderType `json:"reminderType"`
	IsSent       bool                `json:"isSent"`
	SentAt       *time.Time          `json:"sentAt"`
}

// AutoCreateRemindersResponse reports the reminders generated for an invoice.
type AutoCreateRemindersResponse struct {
	Created   int                `json:"created"`
	Reminders []ReminderResponse `json:"reminders"`
}

// ToReminderResponse converts a domain.PaymentReminder to ReminderResponse DTO
func ToReminderResponse(r *domain.PaymentReminder) ReminderResponse {
	return ReminderResponse{
		ReminderID:   r.ReminderID,
		InvoiceID:    r.InvoiceID,
		ReminderDate: r.ReminderDate,
		ReminderType: r.ReminderType,
		IsSent:       r.IsSent,
		SentAt:       r.SentAt,
	}
}

// ToReminderResponses converts a slice of domain.PaymentReminder to response DTOs
func ToReminderResponses(reminders []domain.PaymentReminder) []ReminderResponse {
	res := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		res[i] = ToReminderResponse(&r)
	}
	return res
}
