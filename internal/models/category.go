package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryNameMaxLength = 100
	CategoryIconMaxLength = 10

	// CategoryIDPrefix marks ids derived from a category name
	CategoryIDPrefix = "cat-"
)

var (
	ErrInvalidCategoryName  = errors.New("category name must be between 1 and 100 characters")
	ErrInvalidCategoryColor = errors.New("category color must be a #RRGGBB hex value")
	ErrNegativeBudget       = errors.New("monthly budget cannot be negative")
	ErrInvalidThreshold     = errors.New("alert threshold must be between 0 and 1")
	ErrCategoryInactive     = errors.New("category is not active")
	ErrCategoryOwnParent    = errors.New("category cannot be its own parent")

	colorPattern      = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern       = regexp.MustCompile(`[^a-z0-9]+`)
)

// Category is a spending bucket with a monthly budget
type Category struct {
	ID               string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Icon             string          `gorm:"type:varchar(32);not null" json:"icon"`
	Color            string          `gorm:"type:varchar(7);not null" json:"color"`
	MonthlyBudget    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthlyBudget"`
	AlertThreshold   decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"alertThreshold"`
	ParentCategoryID *string         `gorm:"type:varchar(64);index" json:"parentCategoryId,omitempty"`
	Order            int             `gorm:"column:sort_order;not null" json:"order"`
	IsActive         bool            `gorm:"not null;index" json:"isActive"`
	CreatedAt        time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" || len([]rune(name)) > CategoryNameMaxLength {
		return ErrInvalidCategoryName
	}

	if c.Icon == "" {
		return errors.New("category icon is required")
	}

	if !IsValidColor(c.Color) {
		return ErrInvalidCategoryColor
	}

	if c.MonthlyBudget.IsNegative() {
		return ErrNegativeBudget
	}

	if c.AlertThreshold.IsNegative() || c.AlertThreshold.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidThreshold
	}

	if c.ParentCategoryID != nil && *c.ParentCategoryID == c.ID && c.ID != "" {
		return ErrCategoryOwnParent
	}

	return nil
}

// Deactivate hides the category from overviews. Categories are never hard-deleted.
func (c *Category) Deactivate() error {
	if !c.IsActive {
		return ErrCategoryInactive
	}
	c.IsActive = false
	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidColor checks for a #RRGGBB value
func IsValidColor(color string) bool {
	return colorPattern.MatchString(color)
}

// CategoryIDFromName derives a path-safe id, "Dining Out" -> "cat-dining-out".
// Runs of anything outside [a-z0-9] become one hyphen. It returns "" when
// nothing usable is left, so the create hook assigns a uuid instead.
func CategoryIDFromName(name string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return ""
	}
	return CategoryIDPrefix + slug
}
