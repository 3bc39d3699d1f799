package budget

import (
	"fmt"
	"time"

	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

// Input carries everything needed to compute one category's status
type Input struct {
	CategoryID     string
	CategoryName   string
	BudgetAmount   decimal.Decimal
	ActualSpend    decimal.Decimal
	AlertThreshold decimal.NullDecimal
	Period         Period
	Now            time.Time
}

// Calculator derives budget statuses. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	defaultThreshold decimal.Decimal
}

// NewCalculator creates a calculator that falls back to defaultThreshold for
// inputs without an alert threshold
func NewCalculator(defaultThreshold decimal.Decimal) *Calculator {
	return &Calculator{defaultThreshold: defaultThreshold}
}

// Calculate computes the status for one category and period
func (c *Calculator) Calculate(in Input) (models.BudgetStatus, error) {
	threshold := c.defaultThreshold
	if in.AlertThreshold.Valid {
		threshold = in.AlertThreshold.Decimal
	}

	if err := validateInput(in.BudgetAmount, in.ActualSpend, threshold); err != nil {
		return models.BudgetStatus{}, err
	}

	percentUsed := PercentUsed(in.ActualSpend, in.BudgetAmount)

	return models.BudgetStatus{
		CategoryID:     in.CategoryID,
		CategoryName:   in.CategoryName,
		BudgetAmount:   in.BudgetAmount,
		ActualSpend:    in.ActualSpend,
		Remaining:      in.BudgetAmount.Sub(in.ActualSpend),
		PercentUsed:    percentUsed,
		AlertThreshold: threshold,
		AlertLevel:     AlertLevelFor(percentUsed, threshold),
		DaysRemaining:  in.Period.DaysRemaining(in.Now),
		Unbudgeted:     in.BudgetAmount.IsZero() && in.ActualSpend.IsPositive(),
	}, nil
}

// AlertLevelFor is exceeded above 100%, critical above the alert threshold
// and ok otherwise. Exactly on either line stays in the lower level.
func AlertLevelFor(percentUsed int, alertThreshold decimal.Decimal) models.AlertLevel {
	pct := decimal.NewFromInt(int64(percentUsed))

	switch {
	case pct.GreaterThan(hundred):
		return models.AlertLevelExceeded
	case pct.GreaterThan(alertThreshold.Mul(hundred)):
		return models.AlertLevelCritical
	default:
		return models.AlertLevelOK
	}
}

// PercentUsed returns round(spend / budget * 100) with half-up rounding, or
// 0 when the budget is zero.
func PercentUsed(spend, budget decimal.Decimal) int {
	if budget.IsZero() {
		return 0
	}
	return int(spend.Mul(hundred).Div(budget).Round(0).IntPart())
}

func validateInput(budgetAmount, actualSpend, threshold decimal.Decimal) error {
	if budgetAmount.IsNegative() {
		return fmt.Errorf("%w: budget amount must not be negative", ErrInvalidInput)
	}
	if actualSpend.IsNegative() {
		return fmt.Errorf("%w: actual spend must not be negative", ErrInvalidInput)
	}
	if threshold.IsNegative() || threshold.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: alert threshold must be between 0 and 1", ErrInvalidInput)
	}
	return nil
}
