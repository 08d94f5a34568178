package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
)

// --- Mock TimeEntryRepository ---

type MockTimeEntryRepository struct {
	mock.Mock
}

var _ portsrepo.TimeEntryRepositoryFacade = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindTimeEntriesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListUnbilledTimeEntries(ctx context.Context, matterID string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error) {
	args := m.Called(ctx, matterID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TimeEntry), returnedNextToken, args.Error(2)
}

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) DeleteTimeEntry(ctx context.Context, timeEntryID string) error {
	args := m.Called(ctx, timeEntryID)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) MarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, timeEntryIDs []string, invoiceID string, updatedByUserID string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, tx, timeEntryIDs, invoiceID, updatedByUserID, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimeEntryRepository) UnmarkEntriesInvoicedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByMatter(ctx context.Context, matterID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, matterID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) ListInvoicesByClient(ctx context.Context, clientID string, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, clientID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) FindOverdueInvoices(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceWithEntries(ctx context.Context, invoice domain.Invoice, timeEntryIDs []string) error {
	args := m.Called(ctx, invoice, timeEntryIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, paidDate, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoiceWithCleanup(ctx context.Context, invoiceID string, deletedByUserID string, deletedAt time.Time) error {
	args := m.Called(ctx, invoiceID, deletedByUserID, deletedAt)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPaymentsByInvoiceID(ctx context.Context, invoiceID string) (int64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentAndReconcile(ctx context.Context, payment domain.Payment) (domain.InvoiceStatus, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(domain.InvoiceStatus), args.Error(1)
}

func (m *MockPaymentRepository) DeletePaymentAndReconcile(ctx context.Context, paymentID string, updatedByUserID string) (domain.InvoiceStatus, error) {
	args := m.Called(ctx, paymentID, updatedByUserID)
	return args.Get(0).(domain.InvoiceStatus), args.Error(1)
}

// --- Mock ReminderRepository ---

type MockReminderRepository struct {
	mock.Mock
}

var _ portsrepo.ReminderRepositoryFacade = (*MockReminderRepository)(nil)

func (m *MockReminderRepository) FindReminderByID(ctx context.Context, reminderID string) (*domain.PaymentReminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReminder), args.Error(1)
}

func (m *MockReminderRepository) FindRemindersByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentReminder, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentReminder), args.Error(1)
}

func (m *MockReminderRepository) FindPendingReminders(ctx context.Context, asOf time.Time) ([]domain.PaymentReminder, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentReminder), args.Error(1)
}

func (m *MockReminderRepository) SaveReminders(ctx context.Context, reminders []domain.PaymentReminder) error {
	args := m.Called(ctx, reminders)
	return args.Error(0)
}

func (m *MockReminderRepository) MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time, updatedByUserID string) error {
	args := m.Called(ctx, reminderID, sentAt, updatedByUserID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListInvoiceSummaries(ctx context.Context) ([]domain.InvoiceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSummary), args.Error(1)
}

func (m *MockReportingRepository) SumBillableMinutes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) SumBillableMinutesSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
