package dto

import "github.com/shopspring/decimal"

// MonthQuery is the optional ?month=YYYY-MM selector of the budget endpoints
type MonthQuery struct {
	Month string `query:"month" validate:"omitempty,period"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// Money converts a stored amount to a JSON number
func Money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// FromMoney converts a JSON number to an amount rounded to cents
func FromMoney(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
