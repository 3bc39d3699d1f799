package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeDebit  = "DEBIT"
	TransactionTypeCredit = "CREDIT"

	TransactionSourceStatement = "STATEMENT"
	TransactionSourcePOSScan   = "POS_SCAN"
	TransactionSourceManual    = "MANUAL"

	VendorMaxLength      = 255
	DescriptionMaxLength = 500
	NotesMaxLength       = 1000
)

var (
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionSource = errors.New("invalid transaction source")
	ErrInvalidAmount            = errors.New("transaction amount must be positive")
	ErrAmountTooLarge           = errors.New("transaction amount exceeds 1,000,000")

	MaxTransactionAmount = decimal.NewFromInt(1_000_000)
)

// Transaction is a single money movement on an account
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"accountId"`
	CategoryID  *string         `gorm:"type:varchar(64);index" json:"categoryId,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null" json:"type"`
	Vendor      string          `gorm:"type:varchar(255);not null" json:"vendor"`
	Description string          `gorm:"type:varchar(500)" json:"description,omitempty"`
	Source      string          `gorm:"type:varchar(20);not null" json:"source"`
	IsRecurring bool            `gorm:"not null" json:"isRecurring"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Source == "" {
		t.Source = TransactionSourceManual
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Source != "" && !IsValidTransactionSource(t.Source) {
		return ErrInvalidTransactionSource
	}

	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Amount.GreaterThan(MaxTransactionAmount) {
		return ErrAmountTooLarge
	}

	if t.Vendor == "" || len(t.Vendor) > VendorMaxLength {
		return errors.New("vendor must be between 1 and 255 characters")
	}

	if len(t.Description) > DescriptionMaxLength {
		return errors.New("description must be at most 500 characters")
	}

	if t.Notes != nil && len(*t.Notes) > NotesMaxLength {
		return errors.New("notes must be at most 1000 characters")
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	return nil
}

// IsDebit returns true for money leaving the account
func (t *Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// CountsTowardsBudget reports whether the transaction adds to a category's spend
func (t *Transaction) CountsTowardsBudget() bool {
	return t.IsDebit() && t.CategoryID != nil && *t.CategoryID != ""
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeDebit, TransactionTypeCredit:
		return true
	default:
		return false
	}
}

// IsValidTransactionSource checks if the transaction source is valid
func IsValidTransactionSource(source string) bool {
	switch source {
	case TransactionSourceStatement, TransactionSourcePOSScan, TransactionSourceManual:
		return true
	default:
		return false
	}
}
