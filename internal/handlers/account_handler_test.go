package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"
	"cashflow-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	accountService *service_mocks.MockAccountServiceInterface
	handler        *AccountHandler
	echo           *echo.Echo
}

func (s *AccountHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountService = service_mocks.NewMockAccountServiceInterface(s.ctrl)
	s.handler = NewAccountHandler(s.accountService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *AccountHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

func (s *AccountHandlerSuite) TestCreateAccount_Success() {
	body := map[string]interface{}{
		"bankName":      models.BankFNB,
		"accountType":   models.AccountTypeChecking,
		"accountName":   "Everyday",
		"accountNumber": "4821",
	}
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/accounts", body)

	s.accountService.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, account *models.Account) (*models.Account, error) {
			s.Equal("4821", account.AccountNumber)
			account.ID = uuid.New()
			account.Currency = models.DefaultCurrency
			account.IsActive = true
			return account, nil
		})

	s.Require().NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(models.DefaultCurrency, resp.Currency)
	s.True(resp.IsActive)
}

func (s *AccountHandlerSuite) TestCreateAccount_UnsupportedBank() {
	body := map[string]interface{}{
		"bankName":      "ACME",
		"accountType":   models.AccountTypeChecking,
		"accountName":   "Everyday",
		"accountNumber": "48211",
	}
	c, rec := newTestContext(s.echo, http.MethodPost, "/api/accounts", body)

	s.Require().NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Len(decodeError(rec).Details, 2)
}

func (s *AccountHandlerSuite) TestListAccounts() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/accounts", nil)

	s.accountService.EXPECT().ListAccounts(gomock.Any()).Return([]models.Account{
		{ID: uuid.New(), BankName: models.BankNedbank, AccountType: models.AccountTypeSavings, AccountName: "Rainy day", AccountNumber: "0091", IsActive: true},
	}, nil)

	s.Require().NoError(s.handler.ListAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal("Rainy day", resp[0].AccountName)
}

func (s *AccountHandlerSuite) TestListAccounts_Failure() {
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/accounts", nil)

	s.accountService.EXPECT().ListAccounts(gomock.Any()).Return(nil, fmt.Errorf("boom"))

	s.Require().NoError(s.handler.ListAccounts(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "boom")
}

func (s *AccountHandlerSuite) TestGetAccount_NotFound() {
	id := uuid.New()
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/accounts/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.accountService.EXPECT().GetAccount(gomock.Any(), id).Return(nil, services.ErrAccountNotFound)

	s.Require().NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
