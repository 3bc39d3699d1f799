package models

import "github.com/shopspring/decimal"

// AlertLevel classifies how much of a budget has been consumed
type AlertLevel string

const (
	AlertLevelOK       AlertLevel = "ok"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
	AlertLevelExceeded AlertLevel = "exceeded"
)

// AllAlertLevels returns the alert levels from least to most severe
func AllAlertLevels() []AlertLevel {
	return []AlertLevel{
		AlertLevelOK,
		AlertLevelWarning,
		AlertLevelCritical,
		AlertLevelExceeded,
	}
}

// BudgetStatus is the derived spend-versus-budget view of one category for one period.
// It is recomputed on every read and never persisted.
type BudgetStatus struct {
	CategoryID     string          `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	ActualSpend    decimal.Decimal `json:"actualSpend"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentUsed    int             `json:"percentUsed"`
	AlertThreshold decimal.Decimal `json:"alertThreshold"`
	AlertLevel     AlertLevel      `json:"alertLevel"`
	DaysRemaining  int             `json:"daysRemaining"`

	// Unbudgeted is set when money was spent against a zero budget.
	Unbudgeted bool `json:"unbudgeted"`
}
