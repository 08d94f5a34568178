package models

import "time"

// ReminderType classifies a payment reminder relative to the invoice due date.
type ReminderType string

const (
	ReminderUpcoming ReminderType = "upcoming"
	ReminderDue      ReminderType = "due"
	ReminderOverdue  ReminderType = "overdue"
	ReminderCustom   ReminderType = "custom"
)

// PaymentReminder mirrors the payment_reminders table.
type PaymentReminder struct {
	ReminderID   string       `json:"reminderID"`
	InvoiceID    string       `json:"invoiceID"`
	ReminderDate time.Time    `json:"reminderDate"`
	ReminderType ReminderType `json:"reminderType"`
	IsSent       bool         `json:"isSent"`
	SentAt       *time.Time   `json:"sentAt"`
	AuditFields
}
