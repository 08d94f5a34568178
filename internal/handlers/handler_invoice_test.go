package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/dto"
	"github.com/caseledger/caseledger/internal/handlers"
	"github.com/caseledger/caseledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceDetail(ctx context.Context, invoiceID string) (*portssvc.InvoiceDetail, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceService) ListInvoicesByMatter(ctx context.Context, matterID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, matterID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}

func (m *MockInvoiceService) ListInvoicesByClient(ctx context.Context, clientID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, clientID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, requestingUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	args := m.Called(ctx, invoiceID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *InvoiceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "caseledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) authedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	matterID := uuid.NewString()
	clientID := uuid.NewString()
	entryID := uuid.NewString()

	createReq := dto.CreateInvoiceRequest{
		MatterID:     matterID,
		ClientID:     clientID,
		TimeEntryIDs: []string{entryID},
	}

	expected := &domain.Invoice{
		InvoiceID:        uuid.NewString(),
		MatterID:         matterID,
		ClientID:         clientID,
		InvoiceNumber:    "INV-20250115103000-A7K3QZ",
		TotalAmountCents: 60000,
		Status:           domain.InvoiceStatusDraft,
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateInvoiceRequest) bool {
			return r.MatterID == matterID && len(r.TimeEntryIDs) == 1
		}),
		mock.AnythingOfType("string"),
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/invoices", createReq)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.InvoiceID, resp.InvoiceID)
	suite.Equal(int64(60000), resp.TotalAmountCents)
	suite.Equal(domain.InvoiceStatusDraft, resp.Status)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_AlreadyInvoicedConflict() {
	createReq := dto.CreateInvoiceRequest{
		MatterID:     uuid.NewString(),
		ClientID:     uuid.NewString(),
		TimeEntryIDs: []string{uuid.NewString()},
	}

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("entry taken: %w", apperrors.ErrAlreadyInvoiced)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/invoices", createReq)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingEntries() {
	createReq := dto.CreateInvoiceRequest{
		MatterID: uuid.NewString(),
		ClientID: uuid.NewString(),
	}

	w := suite.authedRequest(http.MethodPost, "/api/v1/invoices", createReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()

	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, invoiceID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateStatus_InvalidTransitionConflict() {
	invoiceID := uuid.NewString()
	statusReq := dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceStatusPaid}

	suite.mockInvoiceService.On("UpdateStatus", mock.Anything, invoiceID, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("draft to paid: %w", apperrors.ErrInvalidTransition)).Once()

	w := suite.authedRequest(http.MethodPatch, "/api/v1/invoices/"+invoiceID+"/status", statusReq)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestDeleteInvoice_NoContent() {
	invoiceID := uuid.NewString()

	suite.mockInvoiceService.On("DeleteInvoice", mock.Anything, invoiceID, mock.AnythingOfType("string")).
		Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/invoices/"+invoiceID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestRequestWithoutToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "GetInvoiceByID")
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
