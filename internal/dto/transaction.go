package dto

import (
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
)

// CreateTransactionRequest represents the payload for POST /api/transactions
type CreateTransactionRequest struct {
	AccountID   string    `json:"accountId" validate:"required,uuid"`
	Date        time.Time `json:"date" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,transaction_amount"`
	Type        string    `json:"type" validate:"required,transaction_type"`
	Vendor      string    `json:"vendor" validate:"required,min=1,max=255"`
	Description string    `json:"description" validate:"max=500"`
	CategoryID  *string   `json:"categoryId" validate:"omitempty,max=64"`
	Source      string    `json:"source" validate:"omitempty,transaction_source"`
	IsRecurring bool      `json:"isRecurring"`
	Notes       *string   `json:"notes" validate:"omitempty,max=1000"`
}

// ToModel builds the transaction; AccountID must already be validated as a UUID
func (r CreateTransactionRequest) ToModel() *models.Transaction {
	return &models.Transaction{
		AccountID:   uuid.MustParse(r.AccountID),
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Amount:      FromMoney(r.Amount),
		Type:        r.Type,
		Vendor:      r.Vendor,
		Description: r.Description,
		Source:      r.Source,
		IsRecurring: r.IsRecurring,
		Notes:       r.Notes,
	}
}

// ListTransactionsQuery contains filtering and pagination for GET /api/transactions
type ListTransactionsQuery struct {
	Month      string `query:"month" validate:"omitempty,period"`
	CategoryID string `query:"categoryId" validate:"omitempty,max=64"`
	AccountID  string `query:"accountId" validate:"omitempty,uuid"`
	Type       string `query:"type" validate:"omitempty,transaction_type"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// TransactionResponse is the JSON form of a transaction
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"accountId"`
	CategoryID  *string   `json:"categoryId"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Vendor      string    `json:"vendor"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	IsRecurring bool      `json:"isRecurring"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTransactionResponse converts a transaction model
func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		Amount:      Money(t.Amount),
		Type:        t.Type,
		Vendor:      t.Vendor,
		Description: t.Description,
		Source:      t.Source,
		IsRecurring: t.IsRecurring,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

// CreateTransactionResponse carries the new transaction and, for a
// categorised debit, the category's updated budget status
type CreateTransactionResponse struct {
	Transaction  TransactionResponse   `json:"transaction"`
	BudgetUpdate *BudgetStatusResponse `json:"budgetUpdate,omitempty"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}
