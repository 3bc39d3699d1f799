package services

import (
	"context"
	"time"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryServiceInterface defines category management operations
type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id string, update models.CategoryUpdate) (*models.Category, error)
	DeactivateCategory(ctx context.Context, id string) error
}

// BudgetServiceInterface computes budget views for a month
type BudgetServiceInterface interface {
	// ResolvePeriod parses a YYYY-MM label; an empty label means the current month
	ResolvePeriod(month string) (budget.Period, error)

	GetCategoryOverview(ctx context.Context, period budget.Period) ([]models.CategoryOverview, error)
	GetBudgetStatuses(ctx context.Context, period budget.Period) ([]models.BudgetStatus, error)
	GetCategoryStatus(ctx context.Context, categoryID string, period budget.Period) (*models.BudgetStatus, error)
	GetPeriodSummary(ctx context.Context, period budget.Period) (*models.PeriodSummary, error)

	// UpdateBudget changes a category's budget for periods opened from now on
	UpdateBudget(ctx context.Context, categoryID string, monthlyBudget, alertThreshold decimal.Decimal) (*models.Category, error)
}

// TransactionServiceInterface records and lists transactions
type TransactionServiceInterface interface {
	// CreateTransaction stores transaction. For a categorised debit it also
	// returns the category's budget status after the spend was added.
	CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, *models.BudgetStatus, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error)
}

// AccountServiceInterface defines bank account operations
type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
