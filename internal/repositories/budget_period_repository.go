package repositories

import (
	"context"
	"errors"
	"fmt"

	"cashflow-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBudgetPeriodNotFound = errors.New("budget period not found")

// periodConflict targets idx_budget_periods_category_month
var periodConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "category_id"}, {Name: "year"}, {Name: "month"}},
	DoNothing: true,
}

// budgetPeriodRepository implements BudgetPeriodRepositoryInterface
type budgetPeriodRepository struct {
	db *gorm.DB
}

// NewBudgetPeriodRepository creates a new budget period repository
func NewBudgetPeriodRepository(db *gorm.DB) BudgetPeriodRepositoryInterface {
	return &budgetPeriodRepository{
		db: db,
	}
}

// GetByCategoryAndMonth retrieves one category's period for year/month
func (r *budgetPeriodRepository) GetByCategoryAndMonth(ctx context.Context, categoryID string, year, month int) (*models.BudgetPeriod, error) {
	return findPeriod(r.db.WithContext(ctx), categoryID, year, month)
}

// ListByMonth retrieves every period opened for year/month
func (r *budgetPeriodRepository) ListByMonth(ctx context.Context, year, month int) ([]models.BudgetPeriod, error) {
	var periods []models.BudgetPeriod
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to list budget periods: %w", err)
	}
	return periods, nil
}

// openPeriod inserts period unless one already exists for its category and
// month, then returns the stored row. Concurrent callers end up with the same row.
func openPeriod(tx *gorm.DB, period *models.BudgetPeriod) (*models.BudgetPeriod, error) {
	candidate := *period
	if err := tx.Clauses(periodConflict).Create(&candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to create budget period: %w", err)
	}
	return findPeriod(tx, period.CategoryID, period.Year, period.Month)
}

func findPeriod(db *gorm.DB, categoryID string, year, month int) (*models.BudgetPeriod, error) {
	var period models.BudgetPeriod
	if err := db.Where("category_id = ? AND year = ? AND month = ?", categoryID, year, month).
		First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetPeriodNotFound
		}
		return nil, fmt.Errorf("failed to get budget period: %w", err)
	}
	return &period, nil
}
