package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNegativeSpend = errors.New("actual spend cannot be negative")

// BudgetPeriod tracks one category's budget and spend for one calendar month.
// BudgetAmount is a snapshot of the category budget when the period was opened.
type BudgetPeriod struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID   string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_budget_periods_category_month" json:"categoryId"`
	Year         int             `gorm:"not null;uniqueIndex:idx_budget_periods_category_month" json:"year"`
	Month        int             `gorm:"not null;uniqueIndex:idx_budget_periods_category_month" json:"month"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"budgetAmount"`
	ActualSpend  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"actualSpend"`
	StartDate    time.Time       `gorm:"not null" json:"startDate"`
	EndDate      time.Time       `gorm:"not null" json:"endDate"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}

// NewBudgetPeriod opens a period for category between start and end, both inclusive
func NewBudgetPeriod(category *Category, start, end time.Time) *BudgetPeriod {
	return &BudgetPeriod{
		CategoryID:   category.ID,
		Year:         start.Year(),
		Month:        int(start.Month()),
		BudgetAmount: category.MonthlyBudget,
		ActualSpend:  decimal.Zero,
		StartDate:    start,
		EndDate:      end,
	}
}

// BeforeCreate hook for BudgetPeriod
func (p *BudgetPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	return p.Validate()
}

// Validate validates the period fields
func (p *BudgetPeriod) Validate() error {
	if p.CategoryID == "" {
		return errors.New("category ID is required")
	}
	if p.Month < 1 || p.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if p.BudgetAmount.IsNegative() {
		return ErrNegativeBudget
	}
	if p.ActualSpend.IsNegative() {
		return ErrNegativeSpend
	}
	if p.EndDate.Before(p.StartDate) {
		return errors.New("period end must not be before its start")
	}
	return nil
}

// TableName returns the table name for BudgetPeriod
func (p *BudgetPeriod) TableName() string {
	return "budget_periods"
}
