package models

import "github.com/shopspring/decimal"

// PeriodSummary aggregates the budget statuses of all categories in one month
type PeriodSummary struct {
	Period             string             `json:"period"`
	TotalBudget        decimal.Decimal    `json:"totalBudget"`
	TotalSpend         decimal.Decimal    `json:"totalSpend"`
	TotalRemaining     decimal.Decimal    `json:"totalRemaining"`
	OverallPercentUsed int                `json:"overallPercentUsed"`
	CategoryCount      int                `json:"categoryCount"`
	AlertCounts        map[AlertLevel]int `json:"alertCounts"`
	Categories         []BudgetStatus     `json:"categories"`
}
