package database

import (
	"context"
	"fmt"
	"log"

	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

type seedCategory struct {
	name   string
	icon   string
	color  string
	budget int64
}

var defaultCategories = []seedCategory{
	{"Groceries", "🛒", "#10b981", 6000},
	{"Transport", "🚗", "#3b82f6", 3000},
	{"Entertainment", "🎬", "#8b5cf6", 1500},
	{"Dining Out", "🍽️", "#f59e0b", 2000},
	{"Utilities", "💡", "#6366f1", 2500},
	{"Health & Medical", "⚕️", "#ec4899", 1000},
	{"Shopping", "🛍️", "#14b8a6", 2000},
	{"Insurance", "🛡️", "#0ea5e9", 3000},
	{"Education", "📚", "#a855f7", 1000},
	{"Personal Care", "💅", "#f97316", 800},
	{"Savings", "💰", "#22c55e", 0},
	{"Uncategorized", "❓", "#64748b", 0},
}

// DefaultCategories returns the starter categories in display order
func DefaultCategories() []models.Category {
	categories := make([]models.Category, 0, len(defaultCategories))
	for i, c := range defaultCategories {
		categories = append(categories, models.Category{
			ID:             models.CategoryIDFromName(c.name),
			Name:           c.name,
			Icon:           c.icon,
			Color:          c.color,
			MonthlyBudget:  decimal.NewFromInt(c.budget),
			AlertThreshold: decimal.NewFromFloat(0.8),
			Order:          i,
			IsActive:       true,
		})
	}
	return categories
}

// DefaultAccount returns the sample cheque account created by the seed
func DefaultAccount() models.Account {
	return models.Account{
		BankName:      models.BankFNB,
		AccountType:   models.AccountTypeChecking,
		AccountName:   "Jacs FNB Cheque",
		AccountNumber: "1234",
		Currency:      models.DefaultCurrency,
		IsActive:      true,
	}
}

// Seed inserts the default categories and sample account. Existing rows are
// left untouched, so running it twice is safe.
func (db *DB) Seed(ctx context.Context) error {
	tx := db.DB.WithContext(ctx)

	for _, category := range DefaultCategories() {
		category := category
		if err := tx.Where("id = ?", category.ID).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.ID, err)
		}
	}
	log.Printf("Seeded %d default categories", len(defaultCategories))

	account := DefaultAccount()
	err := tx.Where("bank_name = ? AND account_number = ?", account.BankName, account.AccountNumber).
		FirstOrCreate(&account).Error
	if err != nil {
		return fmt.Errorf("failed to seed account: %w", err)
	}
	log.Printf("Seeded account %s (%s)", account.AccountName, account.MaskedNumber())

	return nil
}
