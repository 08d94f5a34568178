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
	"github.com/caseledger/caseledger/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockTimeEntryRepo *MockTimeEntryRepository
	mockPaymentRepo   *MockPaymentRepository
	service           portssvc.InvoiceSvcFacade
	matterID          string
	clientID          string
	userID            string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockTimeEntryRepo = new(MockTimeEntryRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockTimeEntryRepo, suite.mockPaymentRepo)

	suite.matterID = uuid.NewString()
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) newUnbilledEntry(minutes int, rateCents int64) domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID:     uuid.NewString(),
		MatterID:        suite.matterID,
		Description:     "Drafted motion",
		DurationMinutes: minutes,
		HourlyRateCents: &rateCents,
		IsBillable:      true,
		EntryDate:       time.Now().UTC(),
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	entry1 := suite.newUnbilledEntry(120, 20000)
	entry2 := suite.newUnbilledEntry(60, 20000)
	ids := []string{entry1.TimeEntryID, entry2.TimeEntryID}
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: ids,
	}

	entriesMap := map[string]domain.TimeEntry{
		entry1.TimeEntryID: entry1,
		entry2.TimeEntryID: entry2,
	}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, ids).Return(entriesMap, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntries", ctx, mock.AnythingOfType("domain.Invoice"), ids).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Regexp(`^INV-\d{14}-[A-Z2-9]{6}$`, invoice.InvoiceNumber)
	// 3 hours at $200.00/h
	suite.Equal(int64(60000), invoice.TotalAmountCents)
	suite.Equal(domain.InvoiceStatusDraft, invoice.Status)
	suite.Nil(invoice.PaidDate)
	suite.Equal(suite.userID, invoice.CreatedBy)

	suite.mockTimeEntryRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DeduplicatesEntryIDs() {
	ctx := context.Background()
	entry := suite.newUnbilledEntry(60, 30000)
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: []string{entry.TimeEntryID, entry.TimeEntryID},
	}

	entriesMap := map[string]domain.TimeEntry{entry.TimeEntryID: entry}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, []string{entry.TimeEntryID}).Return(entriesMap, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntries", ctx, mock.AnythingOfType("domain.Invoice"), []string{entry.TimeEntryID}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// The duplicated id is counted once
	suite.Equal(int64(30000), invoice.TotalAmountCents)
	suite.mockTimeEntryRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_EntryNotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: []string{missingID},
	}

	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, []string{missingID}).Return(map[string]domain.TimeEntry{}, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceWithEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CrossMatter() {
	ctx := context.Background()
	entry := suite.newUnbilledEntry(60, 20000)
	entry.MatterID = uuid.NewString() // belongs elsewhere
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: []string{entry.TimeEntryID},
	}

	entriesMap := map[string]domain.TimeEntry{entry.TimeEntryID: entry}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, []string{entry.TimeEntryID}).Return(entriesMap, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossMatter)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceWithEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AlreadyInvoiced() {
	ctx := context.Background()
	otherInvoiceID := uuid.NewString()
	entry := suite.newUnbilledEntry(60, 20000)
	entry.IsInvoiced = true
	entry.InvoiceID = &otherInvoiceID
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: []string{entry.TimeEntryID},
	}

	entriesMap := map[string]domain.TimeEntry{entry.TimeEntryID: entry}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, []string{entry.TimeEntryID}).Return(entriesMap, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyInvoiced)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonBillableEntriesAreZeroValued() {
	ctx := context.Background()
	billable := suite.newUnbilledEntry(60, 20000)
	nonBillable := suite.newUnbilledEntry(90, 20000)
	nonBillable.IsBillable = false
	rateless := suite.newUnbilledEntry(45, 0)
	rateless.HourlyRateCents = nil
	ids := []string{billable.TimeEntryID, nonBillable.TimeEntryID, rateless.TimeEntryID}
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: ids,
	}

	entriesMap := map[string]domain.TimeEntry{
		billable.TimeEntryID:    billable,
		nonBillable.TimeEntryID: nonBillable,
		rateless.TimeEntryID:    rateless,
	}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, ids).Return(entriesMap, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntries", ctx, mock.AnythingOfType("domain.Invoice"), ids).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Only the billable entry with a rate contributes
	suite.Equal(int64(20000), invoice.TotalAmountCents)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ConcurrentClaimSurfaces() {
	ctx := context.Background()
	entry := suite.newUnbilledEntry(60, 20000)
	req := dto.CreateInvoiceRequest{
		MatterID:     suite.matterID,
		ClientID:     suite.clientID,
		TimeEntryIDs: []string{entry.TimeEntryID},
	}

	entriesMap := map[string]domain.TimeEntry{entry.TimeEntryID: entry}
	suite.mockTimeEntryRepo.On("FindTimeEntriesByIDs", ctx, []string{entry.TimeEntryID}).Return(entriesMap, nil).Once()
	// Another createInvoice won the conditional update inside the repo tx
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntries", ctx, mock.AnythingOfType("domain.Invoice"), []string{entry.TimeEntryID}).Return(apperrors.ErrAlreadyInvoiced).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyInvoiced)
}

func (suite *InvoiceServiceTestSuite) TestUpdateStatus_DraftToSent() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoice.InvoiceID, domain.InvoiceStatusSent, (*time.Time)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, invoice.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusSent}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusSent, updated.Status)
	suite.Nil(updated.PaidDate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateStatus_SentToPaidStampsPaidDate() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusSent,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoice.InvoiceID, domain.InvoiceStatusPaid, mock.AnythingOfType("*time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, invoice.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusPaid}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, updated.Status)
	suite.Require().NotNil(updated.PaidDate)
	suite.WithinDuration(time.Now().UTC(), *updated.PaidDate, 5*time.Second)
}

func (suite *InvoiceServiceTestSuite) TestUpdateStatus_RepeatedPaidSamePaidDateIsNoOp() {
	ctx := context.Background()
	paidDate := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusPaid,
		PaidDate:  &paidDate,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, invoice.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusPaid, PaidDate: &paidDate}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, updated.Status)
	suite.Equal(paidDate, *updated.PaidDate)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateStatus_PaidToSentRejected() {
	ctx := context.Background()
	paidDate := time.Now().UTC()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusPaid,
		PaidDate:  &paidDate,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.UpdateStatus(ctx, invoice.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusSent}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *InvoiceServiceTestSuite) TestUpdateStatus_DraftToPaidRejected() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.UpdateStatus(ctx, invoice.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusPaid}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_DraftSucceeds() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoiceWithCleanup", ctx, invoice.InvoiceID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_SentRejected() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusSent,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoiceWithCleanup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceDetail() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceStatusSent,
	}
	entries := []domain.TimeEntry{suite.newUnbilledEntry(60, 20000)}
	payments := []domain.Payment{{PaymentID: uuid.NewString(), InvoiceID: invoice.InvoiceID, AmountCents: 5000}}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockTimeEntryRepo.On("FindTimeEntriesByInvoiceID", ctx, invoice.InvoiceID).Return(entries, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return(payments, nil).Once()

	detail, err := suite.service.GetInvoiceDetail(ctx, invoice.InvoiceID)

	suite.Require().NoError(err)
	suite.Equal(invoice.InvoiceID, detail.Invoice.InvoiceID)
	suite.Len(detail.TimeEntries, 1)
	suite.Len(detail.Payments, 1)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
