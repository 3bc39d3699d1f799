package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotBudgetDebit      = errors.New("transaction is not a categorised debit")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a transaction that does not touch any budget period
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// List retrieves transactions matching filters, newest first, with the total match count
func (r *transactionRepository) List(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})

	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", filters.StartDate.UTC())
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", filters.EndDate.UTC())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Offset(filters.Offset).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// CountDebitsByCategory counts categorised debits dated within [start, end], keyed by category ID
func (r *transactionRepository) CountDebitsByCategory(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL AND type = ? AND date >= ? AND date <= ?",
			models.TransactionTypeDebit, start.UTC(), end.UTC()).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions by category: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

// CreateDebit records a categorised debit and adds its amount to the
// category's period in one database transaction. period is opened if it does
// not exist yet; the updated period is returned.
func (r *transactionRepository) CreateDebit(ctx context.Context, transaction *models.Transaction, period *models.BudgetPeriod) (*models.BudgetPeriod, error) {
	if !transaction.CountsTowardsBudget() {
		return nil, ErrNotBudgetDebit
	}

	var updated *models.BudgetPeriod

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if _, err := openPeriod(tx, period); err != nil {
			return err
		}

		result := tx.Model(&models.BudgetPeriod{}).
			Where("category_id = ? AND year = ? AND month = ?", period.CategoryID, period.Year, period.Month).
			UpdateColumns(map[string]interface{}{
				"actual_spend": gorm.Expr("actual_spend + ?", transaction.Amount),
				"updated_at":   time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update budget period spend: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBudgetPeriodNotFound
		}

		var err error
		updated, err = findPeriod(tx, period.CategoryID, period.Year, period.Month)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
