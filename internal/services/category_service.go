package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"
)

// categoryService implements CategoryServiceInterface
type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateCategory validates and stores a new active category. Without an
// explicit id the category gets the name-derived "cat-" id.
func (s *categoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.ID == "" {
		category.ID = models.CategoryIDFromName(category.Name)
	}
	category.IsActive = true

	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if category.ParentCategoryID != nil {
		if err := s.checkParent(ctx, category.ID, *category.ParentCategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoriesChanged, map[string]string{"operation": "create"})
	s.logger.Info("category created",
		"category_id", category.ID,
		"name", category.Name,
		"monthly_budget", category.MonthlyBudget.String(),
	)

	return category, nil
}

// GetCategory returns a category, active or not
func (s *categoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns categories in display order
func (s *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies update to an active category
func (s *categoryService) UpdateCategory(ctx context.Context, id string, update models.CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryInactive
	}
	if update.IsEmpty() {
		return category, nil
	}

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	update.Apply(category)

	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if category.ParentCategoryID != nil {
		if err := s.checkParent(ctx, category.ID, *category.ParentCategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoriesChanged, map[string]string{"operation": "update"})
	s.logger.Info("category updated", "category_id", category.ID)

	return category, nil
}

// DeactivateCategory hides a category. Its transactions and periods are kept.
func (s *categoryService) DeactivateCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to deactivate category: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoriesChanged, map[string]string{"operation": "deactivate"})
	s.logger.Info("category deactivated", "category_id", id)

	return nil
}

// checkParent requires parentID to be another active category that is not
// itself a child, so the hierarchy stays one level deep.
func (s *categoryService) checkParent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return fmt.Errorf("%w: %w", ErrInvalidParent, models.ErrCategoryOwnParent)
	}

	parent, err := s.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidParent, parentID)
		}
		return fmt.Errorf("failed to get parent category: %w", err)
	}

	if !parent.IsActive {
		return fmt.Errorf("%w: %s is not active", ErrInvalidParent, parentID)
	}
	if parent.ParentCategoryID != nil {
		return fmt.Errorf("%w: %s is already a subcategory", ErrInvalidParent, parentID)
	}

	return nil
}
