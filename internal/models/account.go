package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BankFNB     = "FNB"
	BankNedbank = "NEDBANK"

	AccountTypeChecking   = "CHECKING"
	AccountTypeSavings    = "SAVINGS"
	AccountTypeCreditCard = "CREDIT_CARD"

	DefaultCurrency = "ZAR"

	// AccountNumberLength is the number of trailing digits stored for an account
	AccountNumberLength = 4
)

var (
	ErrInvalidBankName    = errors.New("invalid bank name")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrAccountNotActive   = errors.New("account is not active")
)

// Account is a bank account transactions are recorded against
type Account struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BankName      string    `gorm:"type:varchar(20);not null" json:"bankName"`
	AccountType   string    `gorm:"type:varchar(20);not null" json:"accountType"`
	AccountName   string    `gorm:"type:varchar(100);not null" json:"accountName"`
	AccountNumber string    `gorm:"type:varchar(4);not null" json:"accountNumber"`
	Currency      string    `gorm:"type:varchar(3);not null" json:"currency"`
	IsActive      bool      `gorm:"not null" json:"isActive"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if !IsValidBankName(a.BankName) {
		return ErrInvalidBankName
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	name := strings.TrimSpace(a.AccountName)
	if name == "" || len([]rune(name)) > 100 {
		return errors.New("account name must be between 1 and 100 characters")
	}

	if len(a.AccountNumber) != AccountNumberLength {
		return errors.New("account number must be exactly 4 characters")
	}

	if len(a.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}

	return nil
}

// MaskedNumber returns the account number prefixed with a mask, "****1234"
func (a *Account) MaskedNumber() string {
	return "****" + a.AccountNumber
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidBankName checks if the bank is supported
func IsValidBankName(bank string) bool {
	switch bank {
	case BankFNB, BankNedbank:
		return true
	default:
		return false
	}
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard:
		return true
	default:
		return false
	}
}
