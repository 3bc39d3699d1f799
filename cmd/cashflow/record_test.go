package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cashflow-api/internal/client"
	"cashflow-api/internal/dto"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountsServer(t *testing.T, accounts []dto.AccountResponse) *client.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/accounts" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(accounts)
	}))
	t.Cleanup(srv.Close)

	return client.New(srv.URL)
}

func TestFirstActiveAccount_SkipsInactive(t *testing.T) {
	closed, open := uuid.New(), uuid.New()
	api := accountsServer(t, []dto.AccountResponse{
		{ID: closed, BankName: "FNB", IsActive: false},
		{ID: open, BankName: "Capitec", IsActive: true},
	})

	id, err := firstActiveAccount(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, open.String(), id)
}

func TestFirstActiveAccount_NoneActive(t *testing.T) {
	api := accountsServer(t, []dto.AccountResponse{{ID: uuid.New(), IsActive: false}})

	_, err := firstActiveAccount(context.Background(), api)
	assert.ErrorIs(t, err, errNoActiveAccount)
}

func TestRenderRecorded_WithBudgetUpdate(t *testing.T) {
	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderRecorded(&out, &dto.CreateTransactionResponse{
		Transaction: dto.TransactionResponse{Type: "DEBIT", Amount: 250, Vendor: "Checkers"},
		BudgetUpdate: &dto.BudgetStatusResponse{
			CategoryName:  "Groceries",
			BudgetAmount:  4000,
			ActualSpend:   3050,
			PercentUsed:   76,
			DaysRemaining: 12,
		},
	})

	assert.Equal(t, "Recorded DEBIT $250 at Checkers\nGroceries: $3,050 of $4,000 (76%), 12 days left\n", out.String())
}

func TestRenderRecorded_Credit(t *testing.T) {
	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderRecorded(&out, &dto.CreateTransactionResponse{
		Transaction: dto.TransactionResponse{Type: "CREDIT", Amount: 12000, Vendor: "Employer"},
	})

	assert.Equal(t, "Recorded CREDIT $12,000 at Employer\n", out.String())
}

func TestRenderBudget(t *testing.T) {
	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderBudget(&out, &dto.CategoryResponse{
		Name:           "Groceries",
		MonthlyBudget:  4500,
		AlertThreshold: 0.9,
	})

	assert.Equal(t, "Groceries budget set to $4,500, alert at 90%\n", out.String())
}
