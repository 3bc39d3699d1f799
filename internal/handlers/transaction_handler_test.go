package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"
	"cashflow-api/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	budgetService      *service_mocks.MockBudgetServiceInterface
	handler            *TransactionHandler
	echo               *echo.Echo
	accountID          uuid.UUID
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.budgetService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactionService, s.budgetService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.accountID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

func (s *TransactionHandlerSuite) debitBody(categoryID string) map[string]interface{} {
	return map[string]interface{}{
		"accountId":  s.accountID.String(),
		"date":       "2024-03-15T10:30:00Z",
		"amount":     1000.00,
		"type":       models.TransactionTypeDebit,
		"vendor":     gofakeit.Company(),
		"categoryId": categoryID,
	}
}

func (s *TransactionHandlerSuite) TestCreateTransaction_BudgetDebit() {
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/transactions", s.debitBody("cat-groceries"))

	s.transactionService.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, txn *models.Transaction) (*models.Transaction, *models.BudgetStatus, error) {
			s.Equal(s.accountID, txn.AccountID)
			s.True(txn.Amount.Equal(decimal.NewFromInt(1000)))
			s.Require().NotNil(txn.CategoryID)
			s.Equal("cat-groceries", *txn.CategoryID)
			txn.ID = uuid.New()
			return txn, &models.BudgetStatus{
				CategoryID:   "cat-groceries",
				BudgetAmount: decimal.NewFromInt(4000),
				ActualSpend:  decimal.NewFromInt(1000),
				Remaining:    decimal.NewFromInt(3000),
				PercentUsed:  25,
				AlertLevel:   models.AlertLevelOK,
			}, nil
		})

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.CreateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(1000.0, resp.Transaction.Amount)
	s.Require().NotNil(resp.BudgetUpdate)
	s.Equal(25, resp.BudgetUpdate.PercentUsed)
}

func (s *TransactionHandlerSuite) TestCreateTransaction_CreditHasNoBudgetUpdate() {
	body := s.debitBody("")
	delete(body, "categoryId")
	body["type"] = models.TransactionTypeCredit
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/transactions", body)

	s.transactionService.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, txn *models.Transaction) (*models.Transaction, *models.BudgetStatus, error) {
			txn.ID = uuid.New()
			return txn, nil, nil
		})

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)
	s.NotContains(rec.Body.String(), "budgetUpdate")
}

func (s *TransactionHandlerSuite) TestCreateTransaction_InvalidPayload() {
	body := s.debitBody("cat-groceries")
	body["amount"] = -5
	body["type"] = "REFUND"
	body["accountId"] = "not-a-uuid"
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/transactions", body)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	resp := decodeError(rec)
	s.Equal(string(errors.ValidationGeneral), resp.Code)
	s.Len(resp.Details, 3)
}

func (s *TransactionHandlerSuite) TestCreateTransaction_UnknownCategory() {
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/transactions", s.debitBody("cat-missing"))

	s.transactionService.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, nil, services.ErrCategoryNotFound)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CategoryNotFound), decodeError(rec).Code)
}

func (s *TransactionHandlerSuite) TestCreateTransaction_InactiveAccount() {
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/transactions", s.debitBody("cat-groceries"))

	s.transactionService.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, nil, services.ErrAccountInactive)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(errors.AccountInactive), decodeError(rec).Code)
}

func (s *TransactionHandlerSuite) TestListTransactions_MonthFilter() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/transactions?month=2024-03&categoryId=cat-groceries&limit=10", nil)
	march := budget.MonthPeriod(2024, time.March, time.UTC)

	s.budgetService.EXPECT().ResolvePeriod("2024-03").Return(march, nil)
	s.transactionService.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
			s.Equal("cat-groceries", filters.CategoryID)
			s.Equal(10, filters.Limit)
			s.Require().NotNil(filters.StartDate)
			s.Require().NotNil(filters.EndDate)
			s.Equal(march.Start, *filters.StartDate)
			s.Equal(march.End, *filters.EndDate)
			return []models.Transaction{{ID: uuid.New(), Amount: decimal.NewFromInt(1800), Type: models.TransactionTypeDebit}}, 1, nil
		})

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Transactions, 1)
	s.Equal(int64(1), resp.Pagination.Total)
	s.Equal(10, resp.Pagination.Limit)
}

func (s *TransactionHandlerSuite) TestListTransactions_DefaultLimit() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/transactions", nil)

	s.transactionService.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
			s.Equal(defaultPageSize, filters.Limit)
			s.Nil(filters.StartDate)
			return nil, 0, nil
		})

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"transactions":[]`)
}

func (s *TransactionHandlerSuite) TestListTransactions_InvalidMonth() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/transactions?month=24-3", nil)

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerSuite) TestGetTransaction_InvalidID() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/transactions/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	s.Require().NoError(s.handler.GetTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationInvalidFormat), decodeError(rec).Code)
}

func (s *TransactionHandlerSuite) TestGetTransaction_NotFound() {
	id := uuid.New()
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/transactions/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.transactionService.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, services.ErrTransactionNotFound)

	s.Require().NoError(s.handler.GetTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
