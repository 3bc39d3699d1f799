package models

import "github.com/shopspring/decimal"

// CategoryOverview is one row of the category list with this month's spend
type CategoryOverview struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	Color            string          `json:"color"`
	MonthlyBudget    decimal.Decimal `json:"monthlyBudget"`
	ActualSpend      decimal.Decimal `json:"actualSpend"`
	TransactionCount int64           `json:"transactionCount"`
	PercentUsed      int             `json:"percentUsed"`
}
