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

	"github.com/shopspring/decimal"
)

// budgetService implements BudgetServiceInterface
type budgetService struct {
	categoryRepo    repositories.CategoryRepositoryInterface
	periodRepo      repositories.BudgetPeriodRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	calculator      *budget.Calculator
	metrics         MetricsRecorderInterface
	location        *time.Location
	now             func() time.Time
	logger          *slog.Logger
}

// NewBudgetService creates a budget service. Months are resolved in location.
func NewBudgetService(
	categoryRepo repositories.CategoryRepositoryInterface,
	periodRepo repositories.BudgetPeriodRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	calculator *budget.Calculator,
	metrics MetricsRecorderInterface,
	location *time.Location,
	logger *slog.Logger,
) BudgetServiceInterface {
	if location == nil {
		location = time.UTC
	}

	return &budgetService{
		categoryRepo:    categoryRepo,
		periodRepo:      periodRepo,
		transactionRepo: transactionRepo,
		calculator:      calculator,
		metrics:         metrics,
		location:        location,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *budgetService) ResolvePeriod(month string) (budget.Period, error) {
	if month == "" {
		return budget.PeriodFor(s.now().In(s.location)), nil
	}
	return budget.ParsePeriod(month, s.location)
}

// GetCategoryOverview lists active categories with the month's spend and debit count
func (s *budgetService) GetCategoryOverview(ctx context.Context, period budget.Period) ([]models.CategoryOverview, error) {
	categories, periods, err := s.loadMonth(ctx, period)
	if err != nil {
		return nil, err
	}

	counts, err := s.transactionRepo.CountDebitsByCategory(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	overview := make([]models.CategoryOverview, 0, len(categories))
	for _, category := range categories {
		budgetAmount, spend := amountsFor(category, periods)

		overview = append(overview, models.CategoryOverview{
			ID:               category.ID,
			Name:             category.Name,
			Icon:             category.Icon,
			Color:            category.Color,
			MonthlyBudget:    budgetAmount,
			ActualSpend:      spend,
			TransactionCount: counts[category.ID],
			PercentUsed:      budget.PercentUsed(spend, budgetAmount),
		})
	}

	return overview, nil
}

// GetBudgetStatuses computes the status of every active category
func (s *budgetService) GetBudgetStatuses(ctx context.Context, period budget.Period) ([]models.BudgetStatus, error) {
	start := time.Now()

	categories, periods, err := s.loadMonth(ctx, period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	statuses := make([]models.BudgetStatus, 0, len(categories))
	for _, category := range categories {
		status, err := s.calculator.Calculate(s.inputFor(category, periods, period, now))
		if err != nil {
			s.logger.Error("budget status computation failed",
				"category_id", category.ID,
				"period", period.Label(),
				"error", err,
			)
			return nil, fmt.Errorf("category %s: %w", category.ID, err)
		}

		s.metrics.RecordGauge(MetricBudgetPercentUsed, float64(status.PercentUsed), map[string]string{
			"category": category.ID,
		})
		statuses = append(statuses, status)
	}

	s.metrics.RecordProcessingTime(MetricStatusComputation, time.Since(start))

	return statuses, nil
}

// GetCategoryStatus computes one category's status, active or not
func (s *budgetService) GetCategoryStatus(ctx context.Context, categoryID string, period budget.Period) (*models.BudgetStatus, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	periods := map[string]models.BudgetPeriod{}
	stored, err := s.periodRepo.GetByCategoryAndMonth(ctx, categoryID, period.Year, int(period.Month))
	switch {
	case err == nil:
		periods[categoryID] = *stored
	case !errors.Is(err, repositories.ErrBudgetPeriodNotFound):
		return nil, fmt.Errorf("failed to get budget period: %w", err)
	}

	status, err := s.calculator.Calculate(s.inputFor(*category, periods, period, s.now()))
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}

	return &status, nil
}

// GetPeriodSummary aggregates the statuses of all active categories
func (s *budgetService) GetPeriodSummary(ctx context.Context, period budget.Period) (*models.PeriodSummary, error) {
	statuses, err := s.GetBudgetStatuses(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := budget.Aggregate(period.Label(), statuses)
	return &summary, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, categoryID string, monthlyBudget, alertThreshold decimal.Decimal) (*models.Category, error) {
	if monthlyBudget.IsNegative() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrNegativeBudget)
	}
	if alertThreshold.IsNegative() || alertThreshold.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrInvalidThreshold)
	}

	category, err := s.categoryRepo.UpdateBudget(ctx, categoryID, monthlyBudget, alertThreshold)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoriesChanged, map[string]string{"operation": "budget"})
	s.logger.Info("category budget updated",
		"category_id", categoryID,
		"monthly_budget", monthlyBudget.String(),
		"alert_threshold", alertThreshold.String(),
	)

	return category, nil
}

// loadMonth fetches the active categories and their opened periods keyed by category ID
func (s *budgetService) loadMonth(ctx context.Context, period budget.Period) ([]models.Category, map[string]models.BudgetPeriod, error) {
	categories, err := s.categoryRepo.List(ctx, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}

	stored, err := s.periodRepo.ListByMonth(ctx, period.Year, int(period.Month))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list budget periods: %w", err)
	}

	periods := make(map[string]models.BudgetPeriod, len(stored))
	for _, p := range stored {
		periods[p.CategoryID] = p
	}

	return categories, periods, nil
}

func (s *budgetService) inputFor(category models.Category, periods map[string]models.BudgetPeriod, period budget.Period, now time.Time) budget.Input {
	budgetAmount, spend := amountsFor(category, periods)

	return budget.Input{
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		BudgetAmount:   budgetAmount,
		ActualSpend:    spend,
		AlertThreshold: decimal.NewNullDecimal(category.AlertThreshold),
		Period:         period,
		Now:            now,
	}
}

// amountsFor uses the period snapshot when one is open, otherwise the
// category's current budget with no spend.
func amountsFor(category models.Category, periods map[string]models.BudgetPeriod) (decimal.Decimal, decimal.Decimal) {
	if p, ok := periods[category.ID]; ok {
		return p.BudgetAmount, p.ActualSpend
	}
	return category.MonthlyBudget, decimal.Zero
}
