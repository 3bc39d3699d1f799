package dto

import (
	"time"

	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents the payload for creating a category
type CreateCategoryRequest struct {
	ID               string   `json:"id" validate:"omitempty,max=64"`
	Name             string   `json:"name" validate:"required,min=1,max=100"`
	Icon             string   `json:"icon" validate:"required,min=1,max=10"`
	Color            string   `json:"color" validate:"required,hex_color"`
	MonthlyBudget    *float64 `json:"monthlyBudget" validate:"omitempty,money"`
	AlertThreshold   *float64 `json:"alertThreshold" validate:"omitempty,threshold"`
	ParentCategoryID *string  `json:"parentCategoryId" validate:"omitempty,min=1,max=64"`
	Order            *int     `json:"order" validate:"omitempty,min=0"`
}

// ToModel builds the category. A missing budget is zero and a missing
// threshold is defaultThreshold.
func (r CreateCategoryRequest) ToModel(defaultThreshold decimal.Decimal) *models.Category {
	category := &models.Category{
		ID:               r.ID,
		Name:             r.Name,
		Icon:             r.Icon,
		Color:            r.Color,
		MonthlyBudget:    decimal.Zero,
		AlertThreshold:   defaultThreshold,
		ParentCategoryID: r.ParentCategoryID,
	}

	if r.MonthlyBudget != nil {
		category.MonthlyBudget = FromMoney(*r.MonthlyBudget)
	}
	if r.AlertThreshold != nil {
		category.AlertThreshold = decimal.NewFromFloat(*r.AlertThreshold)
	}
	if r.Order != nil {
		category.Order = *r.Order
	}

	return category
}

// UpdateCategoryRequest changes presentation fields. Budget changes go through UpdateBudgetRequest.
type UpdateCategoryRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon             *string `json:"icon" validate:"omitempty,min=1,max=10"`
	Color            *string `json:"color" validate:"omitempty,hex_color"`
	Order            *int    `json:"order" validate:"omitempty,min=0"`
	ParentCategoryID *string `json:"parentCategoryId" validate:"omitempty,max=64"`
}

// ToUpdate converts the request; an empty parentCategoryId clears the parent
func (r UpdateCategoryRequest) ToUpdate() models.CategoryUpdate {
	return models.CategoryUpdate{
		Name:             r.Name,
		Icon:             r.Icon,
		Color:            r.Color,
		Order:            r.Order,
		ParentCategoryID: r.ParentCategoryID,
	}
}

// CategoryResponse is the JSON form of a category
type CategoryResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Icon             string    `json:"icon"`
	Color            string    `json:"color"`
	MonthlyBudget    float64   `json:"monthlyBudget"`
	AlertThreshold   float64   `json:"alertThreshold"`
	ParentCategoryID *string   `json:"parentCategoryId"`
	Order            int       `json:"order"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewCategoryResponse converts a category model
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Icon:             c.Icon,
		Color:            c.Color,
		MonthlyBudget:    Money(c.MonthlyBudget),
		AlertThreshold:   Money(c.AlertThreshold),
		ParentCategoryID: c.ParentCategoryID,
		Order:            c.Order,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// CategoryOverviewItem is one category row of GET /api/categories
type CategoryOverviewItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	MonthlyBudget    float64 `json:"monthlyBudget"`
	ActualSpend      float64 `json:"actualSpend"`
	TransactionCount int64   `json:"transactionCount"`
	PercentUsed      int     `json:"percentUsed"`
}

// CategoryOverviewResponse is the body of GET /api/categories
type CategoryOverviewResponse struct {
	Categories []CategoryOverviewItem `json:"categories"`
	Month      string                 `json:"month"`
}

// NewCategoryOverviewResponse converts the overview rows for month
func NewCategoryOverviewResponse(month string, overview []models.CategoryOverview) CategoryOverviewResponse {
	items := make([]CategoryOverviewItem, 0, len(overview))
	for _, o := range overview {
		items = append(items, CategoryOverviewItem{
			ID:               o.ID,
			Name:             o.Name,
			Icon:             o.Icon,
			Color:            o.Color,
			MonthlyBudget:    Money(o.MonthlyBudget),
			ActualSpend:      Money(o.ActualSpend),
			TransactionCount: o.TransactionCount,
			PercentUsed:      o.PercentUsed,
		})
	}

	return CategoryOverviewResponse{
		Categories: items,
		Month:      month,
	}
}
