package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements TransactionServiceInterface
type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	calculator      *budget.Calculator
	metrics         MetricsRecorderInterface
	location        *time.Location
	now             func() time.Time
	logger          *slog.Logger
}

// NewTransactionService creates a transaction service. A debit is attributed
// to the month its date falls in, in location.
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	calculator *budget.Calculator,
	metrics MetricsRecorderInterface,
	location *time.Location,
	logger *slog.Logger,
) TransactionServiceInterface {
	if location == nil {
		location = time.UTC
	}

	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		calculator:      calculator,
		metrics:         metrics,
		location:        location,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, *models.BudgetStatus, error) {
	if err := s.checkAccount(ctx, transaction.AccountID); err != nil {
		return nil, nil, err
	}

	transaction.Date = transaction.Date.UTC()
	if transaction.Source == "" {
		transaction.Source = models.TransactionSourceManual
	}
	if transaction.CategoryID != nil && *transaction.CategoryID == "" {
		transaction.CategoryID = nil
	}

	if err := transaction.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var category *models.Category
	if transaction.CategoryID != nil {
		var err error
		category, err = s.activeCategory(ctx, *transaction.CategoryID)
		if err != nil {
			return nil, nil, err
		}
	}

	if !transaction.CountsTowardsBudget() {
		if err := s.transactionRepo.Create(ctx, transaction); err != nil {
			return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
		}
		s.recordMetrics(transaction)

		s.logger.Info("transaction recorded",
			"transaction_id", transaction.ID,
			"type", transaction.Type,
			"amount", transaction.Amount.String(),
		)
		return transaction, nil, nil
	}

	month := budget.PeriodFor(transaction.Date.In(s.location))
	period, err := s.transactionRepo.CreateDebit(ctx, transaction, models.NewBudgetPeriod(category, month.Start, month.End))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record debit: %w", err)
	}
	s.recordMetrics(transaction)

	status, err := s.calculator.Calculate(budget.Input{
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		BudgetAmount:   period.BudgetAmount,
		ActualSpend:    period.ActualSpend,
		AlertThreshold: decimal.NewNullDecimal(category.AlertThreshold),
		Period:         month,
		Now:            s.now(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("category %s: %w", category.ID, err)
	}

	s.logger.Info("debit recorded",
		"transaction_id", transaction.ID,
		"category_id", category.ID,
		"period", month.Label(),
		"amount", transaction.Amount.String(),
		"actual_spend", period.ActualSpend.String(),
		"alert_level", status.AlertLevel,
	)

	if status.AlertLevel == models.AlertLevelCritical || status.AlertLevel == models.AlertLevelExceeded {
		s.metrics.IncrementCounter(MetricBudgetAlerts, map[string]string{"level": string(status.AlertLevel)})
		s.logger.Warn("category budget alert",
			"category_id", category.ID,
			"percent_used", status.PercentUsed,
			"alert_level", status.AlertLevel,
		)
	}

	return transaction, &status, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	transactions, total, err := s.transactionRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

func (s *transactionService) checkAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}
	if !account.IsActive {
		return ErrAccountInactive
	}
	return nil
}

func (s *transactionService) activeCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if !category.IsActive {
		return nil, ErrCategoryInactive
	}
	return category, nil
}

func (s *transactionService) recordMetrics(transaction *models.Transaction) {
	categorised := "false"
	if transaction.CategoryID != nil {
		categorised = "true"
	}

	s.metrics.IncrementCounter(MetricTransactionsRecorded, map[string]string{
		"type":        transaction.Type,
		"categorised": categorised,
	})
	amount, _ := transaction.Amount.Float64()
	s.metrics.RecordGauge(MetricTransactionsRecorded, amount, nil)
}
