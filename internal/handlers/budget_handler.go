package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget status, summary and budget update requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetStatuses returns the budget status of every active category
// @Summary Budget statuses
// @Tags Budget
// @Produce json
// @Param month query string false "Month in YYYY-MM form"
// @Success 200 {object} dto.BudgetStatusListResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid month"
// @Failure 500 {object} errors.ErrorResponse "BUDGET_003 - Failed to compute budget status"
// @Router /api/budget/status [get]
func (h *BudgetHandler) GetStatuses(c echo.Context) error {
	period, ok, err := h.period(c)
	if !ok {
		return err
	}

	statuses, err := h.budgetService.GetBudgetStatuses(c.Request().Context(), period)
	if err != nil {
		return h.computationError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetStatusListResponse(period.Label(), statuses))
}

// GetSummary returns the month's totals across active categories
// @Summary Budget summary
// @Tags Budget
// @Produce json
// @Param month query string false "Month in YYYY-MM form"
// @Success 200 {object} dto.PeriodSummaryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid month"
// @Router /api/budget/summary [get]
func (h *BudgetHandler) GetSummary(c echo.Context) error {
	period, ok, err := h.period(c)
	if !ok {
		return err
	}

	summary, err := h.budgetService.GetPeriodSummary(c.Request().Context(), period)
	if err != nil {
		return h.computationError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewPeriodSummaryResponse(summary))
}

// GetCategoryStatus returns one category's budget status
// @Summary Category budget status
// @Tags Budget
// @Produce json
// @Param id path string true "Category ID"
// @Param month query string false "Month in YYYY-MM form"
// @Success 200 {object} dto.BudgetStatusResponse
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categories/{id}/status [get]
func (h *BudgetHandler) GetCategoryStatus(c echo.Context) error {
	period, ok, err := h.period(c)
	if !ok {
		return err
	}

	status, err := h.budgetService.GetCategoryStatus(c.Request().Context(), c.Param("id"), period)
	if err != nil {
		if stderrors.Is(err, services.ErrNotFound) {
			return SendServiceError(c, err)
		}
		return h.computationError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetStatusResponse(*status))
}

// UpdateBudget changes a category's monthly budget and alert threshold.
// Periods already opened keep their snapshot.
// @Summary Update category budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateBudgetRequest true "Budget"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categories/{id}/budget [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	var req dto.UpdateBudgetRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	monthlyBudget, alertThreshold := req.Amounts()
	category, err := h.budgetService.UpdateBudget(c.Request().Context(), c.Param("id"), monthlyBudget, alertThreshold)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *BudgetHandler) period(c echo.Context) (budget.Period, bool, error) {
	period, err := h.budgetService.ResolvePeriod(c.QueryParam("month"))
	if err != nil {
		return budget.Period{}, false, SendError(c, errors.ValidationInvalidPeriod, errors.WithDetails(err.Error()))
	}
	return period, true, nil
}

func (h *BudgetHandler) computationError(c echo.Context, err error) error {
	slog.Error("budget status computation failed",
		"trace_id", getTraceID(c),
		"path", c.Path(),
		"error", err,
	)
	return SendError(c, errors.BudgetComputationFailed)
}
