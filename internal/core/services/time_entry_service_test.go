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

type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTimeEntryRepository
	service  portssvc.TimeEntrySvcFacade
	matterID string
	userID   string
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTimeEntryRepository)
	suite.service = services.NewTimeEntryService(suite.mockRepo)
	suite.matterID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TimeEntryServiceTestSuite) TestRecordTimeEntry_Success() {
	ctx := context.Background()
	rate := int64(25000)
	req := dto.CreateTimeEntryRequest{
		MatterID:        suite.matterID,
		Description:     "Client call re discovery",
		DurationMinutes: 30,
		HourlyRateCents: &rate,
		IsBillable:      true,
		EntryDate:       time.Now().UTC(),
	}

	suite.mockRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil).Once()

	entry, err := suite.service.RecordTimeEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.TimeEntryID)
	suite.Equal(suite.matterID, entry.MatterID)
	suite.Equal(30, entry.DurationMinutes)
	suite.False(entry.IsInvoiced)
	suite.Nil(entry.InvoiceID)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestRecordTimeEntry_NonPositiveDuration() {
	ctx := context.Background()
	req := dto.CreateTimeEntryRequest{
		MatterID:        suite.matterID,
		Description:     "bad",
		DurationMinutes: 0,
		EntryDate:       time.Now().UTC(),
	}

	_, err := suite.service.RecordTimeEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestRecordTimeEntry_NegativeRate() {
	ctx := context.Background()
	rate := int64(-1)
	req := dto.CreateTimeEntryRequest{
		MatterID:        suite.matterID,
		Description:     "bad",
		DurationMinutes: 30,
		HourlyRateCents: &rate,
		EntryDate:       time.Now().UTC(),
	}

	_, err := suite.service.RecordTimeEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestUpdateTimeEntry_InvoicedEntryFrozen() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	entry := &domain.TimeEntry{
		TimeEntryID: uuid.NewString(),
		MatterID:    suite.matterID,
		IsInvoiced:  true,
		InvoiceID:   &invoiceID,
	}
	newDesc := "amended description"

	suite.mockRepo.On("FindTimeEntryByID", ctx, entry.TimeEntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateTimeEntry(ctx, entry.TimeEntryID, dto.UpdateTimeEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestUpdateTimeEntry_PartialUpdate() {
	ctx := context.Background()
	rate := int64(20000)
	entry := &domain.TimeEntry{
		TimeEntryID:     uuid.NewString(),
		MatterID:        suite.matterID,
		Description:     "original",
		DurationMinutes: 60,
		HourlyRateCents: &rate,
		IsBillable:      true,
	}
	newMinutes := 90

	suite.mockRepo.On("FindTimeEntryByID", ctx, entry.TimeEntryID).Return(entry, nil).Once()
	suite.mockRepo.On("UpdateTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil).Once()

	updated, err := suite.service.UpdateTimeEntry(ctx, entry.TimeEntryID, dto.UpdateTimeEntryRequest{DurationMinutes: &newMinutes}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(90, updated.DurationMinutes)
	suite.Equal("original", updated.Description)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *TimeEntryServiceTestSuite) TestDeleteTimeEntry_InvoicedEntryRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	entry := &domain.TimeEntry{
		TimeEntryID: uuid.NewString(),
		IsInvoiced:  true,
		InvoiceID:   &invoiceID,
	}

	suite.mockRepo.On("FindTimeEntryByID", ctx, entry.TimeEntryID).Return(entry, nil).Once()

	err := suite.service.DeleteTimeEntry(ctx, entry.TimeEntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestListUnbilled() {
	ctx := context.Background()
	rate := int64(20000)
	entries := []domain.TimeEntry{
		{TimeEntryID: uuid.NewString(), MatterID: suite.matterID, IsBillable: true, HourlyRateCents: &rate},
	}

	suite.mockRepo.On("ListUnbilledTimeEntries", ctx, suite.matterID).Return(entries, nil).Once()

	result, err := suite.service.ListUnbilled(ctx, suite.matterID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *TimeEntryServiceTestSuite) TestListTimeEntries_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListTimeEntriesByMatter", ctx, suite.matterID, 20, (*string)(nil)).Return([]domain.TimeEntry{}, nil, nil).Once()

	resp, err := suite.service.ListTimeEntries(ctx, suite.matterID, dto.ListTimeEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.TimeEntries)
	suite.Nil(resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
