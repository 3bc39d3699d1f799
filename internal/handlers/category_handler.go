package handlers

import (
	"log/slog"
	"net/http"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CategoryHandler handles category and category overview requests
type CategoryHandler struct {
	categoryService  services.CategoryServiceInterface
	budgetService    services.BudgetServiceInterface
	defaultThreshold decimal.Decimal
}

// NewCategoryHandler creates a new category handler. New categories without
// an alertThreshold get defaultThreshold.
func NewCategoryHandler(categoryService services.CategoryServiceInterface, budgetService services.BudgetServiceInterface, defaultThreshold decimal.Decimal) *CategoryHandler {
	return &CategoryHandler{
		categoryService:  categoryService,
		budgetService:    budgetService,
		defaultThreshold: defaultThreshold,
	}
}

// ListCategories returns the active categories with the month's spend
// @Summary Category overview
// @Description List active categories in display order with the month's spend, debit count and percent used
// @Tags Categories
// @Produce json
// @Param month query string false "Month in YYYY-MM form, defaults to the current month"
// @Success 200 {object} dto.CategoryOverviewResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid month"
// @Failure 500 {object} errors.ErrorResponse "CATEGORY_005 - Failed to fetch categories"
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	period, err := h.budgetService.ResolvePeriod(c.QueryParam("month"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidPeriod, errors.WithDetails(err.Error()))
	}

	overview, err := h.budgetService.GetCategoryOverview(c.Request().Context(), period)
	if err != nil {
		slog.Error("failed to fetch categories",
			"trace_id", getTraceID(c),
			"month", period.Label(),
			"error", err,
		)
		return SendError(c, errors.CategoryFetchFailed)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryOverviewResponse(period.Label(), overview))
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_003 - Category already exists"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_004 - Invalid parent category"
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req.ToModel(h.defaultThreshold))
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// GetCategory returns one category
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryService.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// UpdateCategory changes the presentation fields of a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_002 - Category is inactive"
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req dto.UpdateCategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// DeactivateCategory soft-deletes a category
// @Summary Deactivate category
// @Tags Categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) DeactivateCategory(c echo.Context) error {
	if err := h.categoryService.DeactivateCategory(c.Request().Context(), c.Param("id")); err != nil {
		return SendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
