package dto

import (
	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

// UpdateBudgetRequest represents the payload for PUT /api/categories/:id/budget
type UpdateBudgetRequest struct {
	MonthlyBudget  *float64 `json:"monthlyBudget" validate:"required,money"`
	AlertThreshold *float64 `json:"alertThreshold" validate:"required,threshold"`
}

// Amounts returns the budget and threshold as decimals
func (r UpdateBudgetRequest) Amounts() (decimal.Decimal, decimal.Decimal) {
	return FromMoney(*r.MonthlyBudget), decimal.NewFromFloat(*r.AlertThreshold)
}

// BudgetStatusResponse is the JSON form of a budget status
type BudgetStatusResponse struct {
	CategoryID     string            `json:"categoryId"`
	CategoryName   string            `json:"categoryName"`
	BudgetAmount   float64           `json:"budgetAmount"`
	ActualSpend    float64           `json:"actualSpend"`
	Remaining      float64           `json:"remaining"`
	PercentUsed    int               `json:"percentUsed"`
	AlertThreshold float64           `json:"alertThreshold"`
	AlertLevel     models.AlertLevel `json:"alertLevel"`
	DaysRemaining  int               `json:"daysRemaining"`
	Unbudgeted     bool              `json:"unbudgeted"`
}

// NewBudgetStatusResponse converts a computed status
func NewBudgetStatusResponse(s models.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		CategoryID:     s.CategoryID,
		CategoryName:   s.CategoryName,
		BudgetAmount:   Money(s.BudgetAmount),
		ActualSpend:    Money(s.ActualSpend),
		Remaining:      Money(s.Remaining),
		PercentUsed:    s.PercentUsed,
		AlertThreshold: Money(s.AlertThreshold),
		AlertLevel:     s.AlertLevel,
		DaysRemaining:  s.DaysRemaining,
		Unbudgeted:     s.Unbudgeted,
	}
}

// BudgetStatusListResponse is the body of GET /api/budget/status
type BudgetStatusListResponse struct {
	Month    string                 `json:"month"`
	Statuses []BudgetStatusResponse `json:"statuses"`
}

// NewBudgetStatusListResponse converts the statuses of month
func NewBudgetStatusListResponse(month string, statuses []models.BudgetStatus) BudgetStatusListResponse {
	items := make([]BudgetStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, NewBudgetStatusResponse(s))
	}
	return BudgetStatusListResponse{Month: month, Statuses: items}
}

// PeriodSummaryResponse is the body of GET /api/budget/summary
type PeriodSummaryResponse struct {
	Period             string                    `json:"period"`
	TotalBudget        float64                   `json:"totalBudget"`
	TotalSpend         float64                   `json:"totalSpend"`
	TotalRemaining     float64                   `json:"totalRemaining"`
	OverallPercentUsed int                       `json:"overallPercentUsed"`
	CategoryCount      int                       `json:"categoryCount"`
	AlertCounts        map[models.AlertLevel]int `json:"alertCounts"`
	Categories         []BudgetStatusResponse    `json:"categories"`
}

// NewPeriodSummaryResponse converts an aggregated summary
func NewPeriodSummaryResponse(s *models.PeriodSummary) PeriodSummaryResponse {
	items := make([]BudgetStatusResponse, 0, len(s.Categories))
	for _, status := range s.Categories {
		items = append(items, NewBudgetStatusResponse(status))
	}

	return PeriodSummaryResponse{
		Period:             s.Period,
		TotalBudget:        Money(s.TotalBudget),
		TotalSpend:         Money(s.TotalSpend),
		TotalRemaining:     Money(s.TotalRemaining),
		OverallPercentUsed: s.OverallPercentUsed,
		CategoryCount:      s.CategoryCount,
		AlertCounts:        s.AlertCounts,
		Categories:         items,
	}
}
