package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/core/services"
)

type ReminderServiceTestSuite struct {
	suite.Suite
	mockReminderRepo *MockReminderRepository
	mockInvoiceRepo  *MockInvoiceRepository
	service          portssvc.ReminderSvcFacade
	userID           string
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.mockReminderRepo = new(MockReminderRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewReminderService(suite.mockReminderRepo, suite.mockInvoiceRepo)
	suite.userID = uuid.NewString()
}

func (suite *ReminderServiceTestSuite) TestAutoCreateReminders_FutureDueDateYieldsFive() {
	ctx := context.Background()
	dueDate := time.Now().UTC().AddDate(0, 0, 10)
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusSent,
		DueDate:   &dueDate,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockReminderRepo.On("SaveReminders", ctx, mock.AnythingOfType("[]domain.PaymentReminder")).Return(nil).Once()

	reminders, err := suite.service.AutoCreateReminders(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reminders, 5)

	types := make(map[domain.ReminderType]int)
	for _, r := range reminders {
		types[r.ReminderType]++
		suite.Equal(invoice.InvoiceID, r.InvoiceID)
		suite.False(r.IsSent)
		suite.NotEmpty(r.ReminderID)
	}
	suite.Equal(2, types[domain.ReminderUpcoming])
	suite.Equal(1, types[domain.ReminderDue])
	suite.Equal(2, types[domain.ReminderOverdue])
	suite.mockReminderRepo.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestAutoCreateReminders_PastDueDateYieldsOverdueOnly() {
	ctx := context.Background()
	dueDate := time.Now().UTC().AddDate(0, 0, -30)
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusOverdue,
		DueDate:   &dueDate,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockReminderRepo.On("SaveReminders", ctx, mock.AnythingOfType("[]domain.PaymentReminder")).Return(nil).Once()

	reminders, err := suite.service.AutoCreateReminders(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reminders, 2)
	for _, r := range reminders {
		suite.Equal(domain.ReminderOverdue, r.ReminderType)
	}
}

func (suite *ReminderServiceTestSuite) TestAutoCreateReminders_MissingDueDate() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusSent,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.AutoCreateReminders(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingDueDate)
	suite.mockReminderRepo.AssertNotCalled(suite.T(), "SaveReminders", mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestAutoCreateReminders_InvoiceNotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AutoCreateReminders(ctx, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReminderServiceTestSuite) TestMarkSent() {
	ctx := context.Background()
	reminder := &domain.PaymentReminder{
		ReminderID:   uuid.NewString(),
		InvoiceID:    uuid.NewString(),
		ReminderType: domain.ReminderDue,
	}

	suite.mockReminderRepo.On("FindReminderByID", ctx, reminder.ReminderID).Return(reminder, nil).Once()
	suite.mockReminderRepo.On("MarkReminderSent", ctx, reminder.ReminderID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	updated, err := suite.service.MarkSent(ctx, reminder.ReminderID, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.IsSent)
	suite.Require().NotNil(updated.SentAt)
	suite.WithinDuration(time.Now().UTC(), *updated.SentAt, 5*time.Second)
}

func (suite *ReminderServiceTestSuite) TestMarkSent_AlreadySentIsNoOp() {
	ctx := context.Background()
	sentAt := time.Now().UTC().Add(-time.Hour)
	reminder := &domain.PaymentReminder{
		ReminderID: uuid.NewString(),
		IsSent:     true,
		SentAt:     &sentAt,
	}

	suite.mockReminderRepo.On("FindReminderByID", ctx, reminder.ReminderID).Return(reminder, nil).Once()

	updated, err := suite.service.MarkSent(ctx, reminder.ReminderID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(sentAt, *updated.SentAt)
	suite.mockReminderRepo.AssertNotCalled(suite.T(), "MarkReminderSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestGetOverdueInvoices() {
	ctx := context.Background()
	overdue := []domain.Invoice{
		{InvoiceID: uuid.NewString(), Status: domain.InvoiceStatusSent},
		{InvoiceID: uuid.NewString(), Status: domain.InvoiceStatusOverdue},
	}

	suite.mockInvoiceRepo.On("FindOverdueInvoices", ctx, mock.AnythingOfType("time.Time")).Return(overdue, nil).Once()

	invoices, err := suite.service.GetOverdueInvoices(ctx)

	suite.Require().NoError(err)
	suite.Len(invoices, 2)
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}
