package handlers

import (
	"net/http"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	budgetService      services.BudgetServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface, budgetService services.BudgetServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		budgetService:      budgetService,
	}
}

// CreateTransaction records a transaction
// @Summary Create transaction
// @Description Record a transaction. A categorised DEBIT adds to the category's spend for the month and the updated budget status is returned.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 / CATEGORY_001 - Account or category not found"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_002 / CATEGORY_002 - Account or category inactive"
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transaction, status, err := h.transactionService.CreateTransaction(c.Request().Context(), req.ToModel())
	if err != nil {
		return SendServiceError(c, err)
	}

	resp := dto.CreateTransactionResponse{
		Transaction: dto.NewTransactionResponse(transaction),
	}
	if status != nil {
		update := dto.NewBudgetStatusResponse(*status)
		resp.BudgetUpdate = &update
	}

	return c.JSON(http.StatusCreated, resp)
}

// ListTransactions lists transactions newest first
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param month query string false "Month in YYYY-MM form"
// @Param categoryId query string false "Category ID"
// @Param accountId query string false "Account ID"
// @Param type query string false "DEBIT or CREDIT"
// @Param offset query int false "Offset"
// @Param limit query int false "Page size, at most 500"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid filters"
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	var query dto.ListTransactionsQuery
	if ok, err := bindAndValidate(c, &query); !ok {
		return err
	}

	filters := models.TransactionFilters{
		CategoryID: query.CategoryID,
		Type:       query.Type,
		Offset:     query.Offset,
		Limit:      pageLimit(query.Limit),
	}

	if query.AccountID != "" {
		accountID := uuid.MustParse(query.AccountID)
		filters.AccountID = &accountID
	}

	if query.Month != "" {
		period, err := h.budgetService.ResolvePeriod(query.Month)
		if err != nil {
			return SendError(c, errors.ValidationInvalidPeriod, errors.WithDetails(err.Error()))
		}
		filters.StartDate = &period.Start
		filters.EndDate = &period.End
	}

	transactions, total, err := h.transactionService.ListTransactions(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	items := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, dto.NewTransactionResponse(&transactions[i]))
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: items,
		Pagination: dto.PaginationInfo{
			Offset: filters.Offset,
			Limit:  filters.Limit,
			Total:  total,
		},
	})
}

// GetTransaction returns one transaction
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid transaction ID"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}
