package dto

import (
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
)

// CreateAccountRequest represents the payload for POST /api/accounts
type CreateAccountRequest struct {
	BankName      string `json:"bankName" validate:"required,bank_name"`
	AccountType   string `json:"accountType" validate:"required,account_type"`
	AccountName   string `json:"accountName" validate:"required,min=1,max=100"`
	AccountNumber string `json:"accountNumber" validate:"required,len=4"`
	Currency      string `json:"currency" validate:"omitempty,len=3,alpha"`
}

// ToModel builds the account; the service fills in the default currency
func (r CreateAccountRequest) ToModel() *models.Account {
	return &models.Account{
		BankName:      r.BankName,
		AccountType:   r.AccountType,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		Currency:      r.Currency,
	}
}

// AccountResponse is the JSON form of an account
type AccountResponse struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bankName"`
	AccountType   string    `json:"accountType"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber"`
	Currency      string    `json:"currency"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAccountResponse converts an account model
func NewAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		AccountType:   a.AccountType,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		Currency:      a.Currency,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}
