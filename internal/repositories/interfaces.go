package repositories

import (
	"context"
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	UpdateBudget(ctx context.Context, id string, monthlyBudget, alertThreshold decimal.Decimal) (*models.Category, error)
	Deactivate(ctx context.Context, id string) error
}

// BudgetPeriodRepositoryInterface defines the contract for budget period repository operations
type BudgetPeriodRepositoryInterface interface {
	GetByCategoryAndMonth(ctx context.Context, categoryID string, year, month int) (*models.BudgetPeriod, error)
	ListByMonth(ctx context.Context, year, month int) ([]models.BudgetPeriod, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	CountDebitsByCategory(ctx context.Context, start, end time.Time) (map[string]int64, error)
	CreateDebit(ctx context.Context, transaction *models.Transaction, period *models.BudgetPeriod) (*models.BudgetPeriod, error)
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, includeInactive bool) ([]models.Account, error)
}
