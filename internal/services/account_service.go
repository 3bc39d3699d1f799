package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"

	"github.com/google/uuid"
)

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	logger      *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(accountRepo repositories.AccountRepositoryInterface, logger *slog.Logger) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateAccount stores a new active account. Only the last four digits of
// the account number are ever kept.
func (s *accountService) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.Currency = strings.ToUpper(strings.TrimSpace(account.Currency))
	if account.Currency == "" {
		account.Currency = models.DefaultCurrency
	}
	account.AccountName = strings.TrimSpace(account.AccountName)
	account.IsActive = true

	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		"account_id", account.ID,
		"bank", account.BankName,
		"account_type", account.AccountType,
		"account_number", account.MaskedNumber(),
	)

	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts returns the active accounts
func (s *accountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accountRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
