package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockService = new(MockTransactionService)
	handlers.RegisterTransactionRoutes(suite.router.Group("/"), suite.mockService)
}

func (suite *TransactionHandlerTestSuite) serve(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Defaults() {
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Type: domain.Credit, Amount: decimal.NewFromInt(100), Description: "Salary", CreatedAt: domain.NewDate(2024, time.January, 1)},
		{TransactionID: uuid.NewString(), Type: domain.Debit, Amount: decimal.NewFromInt(30), Description: "Groceries", CreatedAt: domain.NewDate(2024, time.January, 2)},
	}
	suite.mockService.On("ListTransactions", mock.Anything, dto.ListTransactionsParams{Skip: 0, Limit: 100}).Return(txns, nil).Once()

	w := suite.serve(http.MethodGet, "/transactions/", "")

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal(txns[0].TransactionID, body[0].ID)
	suite.True(body[1].Amount.Equal(decimal.NewFromInt(30)))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidLimit() {
	w := suite.serve(http.MethodGet, "/transactions/?limit=0", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Debit,
		Amount:        decimal.RequireFromString("12.50"),
		Description:   "Coffee",
		CreatedAt:     domain.NewDate(2024, time.March, 1),
	}
	suite.mockService.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Debit &&
			req.Amount.Equal(decimal.RequireFromString("12.5")) &&
			req.Description == "Coffee" &&
			req.CreatedAt != nil && req.CreatedAt.String() == "2024-03-01"
	})).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"debit","amount":12.5,"description":"Coffee","created_at":"2024-03-01"}`)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.TransactionID, body.ID)
	suite.Equal("2024-03-01", body.CreatedAt.String())
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_RejectsUnknownType() {
	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"transfer","amount":10}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "oneof")
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_TypeIgnoresCase() {
	created := &domain.Transaction{TransactionID: uuid.NewString(), Type: domain.Credit, Amount: decimal.NewFromInt(10)}
	suite.mockService.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Credit
	})).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"Credit","amount":10}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Duplicate() {
	suite.mockService.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to create transaction: %w", apperrors.ErrDuplicate)).Once()

	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"credit","amount":5}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_RejectsNonNumericAmount() {
	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"credit","amount":"abc"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ServiceValidationError() {
	suite.mockService.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.Validationf("transaction amount must be positive, got -5")).Once()

	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"credit","amount":-5}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "must be positive")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_StoreFailure() {
	suite.mockService.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	w := suite.serve(http.MethodPost, "/transactions/", `{"type":"credit","amount":5}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to create transaction"}`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_Success() {
	id := uuid.NewString()
	updated := &domain.Transaction{
		TransactionID: id,
		Type:          domain.Credit,
		Amount:        decimal.NewFromInt(50),
		Description:   "Refund",
		CreatedAt:     domain.NewDate(2024, time.February, 10),
	}
	suite.mockService.On("UpdateTransaction", mock.Anything, id, mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Type == domain.Credit && req.CreatedAt == nil
	})).Return(updated, nil).Once()

	w := suite.serve(http.MethodPut, "/transactions/"+id, `{"type":"credit","amount":50,"description":"Refund"}`)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(id, body.ID)
	suite.Equal("Refund", body.Description)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_NotFound() {
	suite.mockService.On("UpdateTransaction", mock.Anything, "missing", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPut, "/transactions/missing", `{"type":"debit","amount":1}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"detail":"Transaction not found"}`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestGetBalance() {
	suite.mockService.On("GetBalance", mock.Anything).Return(decimal.RequireFromString("38.20"), nil).Once()

	w := suite.serve(http.MethodGet, "/balance/", "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Balance.Equal(decimal.RequireFromString("38.2")))
}

func (suite *TransactionHandlerTestSuite) TestListDescriptions_EmptyIsArray() {
	suite.mockService.On("ListDescriptions", mock.Anything).Return(nil, nil).Once()

	w := suite.serve(http.MethodGet, "/descriptions/", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestSuggestDescriptions_PassesQuery() {
	suite.mockService.On("SuggestDescriptions", mock.Anything, "cof").Return([]string{"Coffee", "Coffee beans"}, nil).Once()

	w := suite.serve(http.MethodGet, "/descriptions/suggest?q=cof", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`["Coffee","Coffee beans"]`, w.Body.String())
	suite.mockService.AssertExpectations(suite.T())
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
