package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cashflow-api/internal/client"
	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var errNoActiveAccount = errors.New("no active account; pass --account or create one first")

func recordCmd() *cobra.Command {
	var (
		apiURL      string
		accountID   string
		categoryID  string
		vendor      string
		description string
		date        string
		amount      float64
		credit      bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a transaction",
		Long: `Post a transaction to a running API. Debits with a category count towards
that category's budget for the month and the updated status is printed.`,
		Example: `  cashflow record --amount 250 --vendor Checkers --category cat-groceries
  cashflow record --amount 12000 --vendor Employer --credit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPresenter(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			when := time.Now()
			if date != "" {
				when, err = time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
				}
			}

			api := client.New(apiURL)
			if accountID == "" {
				accountID, err = firstActiveAccount(cmd.Context(), api)
				if err != nil {
					return err
				}
			}

			req := dto.CreateTransactionRequest{
				AccountID:   accountID,
				Date:        when,
				Amount:      amount,
				Type:        models.TransactionTypeDebit,
				Vendor:      vendor,
				Description: description,
			}
			if credit {
				req.Type = models.TransactionTypeCredit
			}
			if categoryID != "" {
				req.CategoryID = &categoryID
			}

			resp, err := api.CreateTransaction(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			p.renderRecorded(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	apiFlag(cmd, &apiURL)
	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount")
	cmd.Flags().StringVar(&vendor, "vendor", "", "who was paid, or who paid")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id, e.g. cat-groceries")
	cmd.Flags().StringVar(&accountID, "account", "", "account id (default: first active account)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD form (default: today)")
	cmd.Flags().BoolVar(&credit, "credit", false, "record money in rather than out")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("vendor")

	return cmd
}

func firstActiveAccount(ctx context.Context, api *client.Client) (string, error) {
	accounts, err := api.Accounts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, a := range accounts {
		if a.IsActive {
			return a.ID.String(), nil
		}
	}
	return "", errNoActiveAccount
}

func (p *presenter) renderRecorded(out io.Writer, resp *dto.CreateTransactionResponse) {
	tx := resp.Transaction
	fmt.Fprintf(out, "Recorded %s %s at %s\n", tx.Type, p.formatter.Currency(decimal.NewFromFloat(tx.Amount)), tx.Vendor)

	status := resp.BudgetUpdate
	if status == nil {
		return
	}

	budgetAmount := decimal.NewFromFloat(status.BudgetAmount)
	used := p.percent(status.PercentUsed, budgetAmount)
	fmt.Fprintf(out, "%s: %s of %s (%s), %d days left\n",
		status.CategoryName,
		p.formatter.Currency(decimal.NewFromFloat(status.ActualSpend)),
		p.formatter.Currency(budgetAmount),
		used.style.Render(used.text),
		status.DaysRemaining)
}

func budgetCmd() *cobra.Command {
	var (
		apiURL    string
		amount    float64
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "budget <category-id>",
		Short: "Set a category's monthly budget and alert threshold",
		Long: `Change a category's monthly budget and alert threshold. Months that already
have spend recorded keep the budget they started with.`,
		Example: `  cashflow budget cat-groceries --amount 4500 --threshold 0.9`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPresenter(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			category, err := client.New(apiURL).UpdateBudget(cmd.Context(), args[0], dto.UpdateBudgetRequest{
				MonthlyBudget:  &amount,
				AlertThreshold: &threshold,
			})
			if err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}

			p.renderBudget(cmd.OutOrStdout(), category)
			return nil
		},
	}

	apiFlag(cmd, &apiURL)
	cmd.Flags().Float64Var(&amount, "amount", 0, "monthly budget")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "alert threshold as a fraction, e.g. 0.8")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("threshold")

	return cmd
}

func (p *presenter) renderBudget(out io.Writer, category *dto.CategoryResponse) {
	fmt.Fprintf(out, "%s budget set to %s, alert at %s\n",
		category.Name,
		p.formatter.Currency(decimal.NewFromFloat(category.MonthlyBudget)),
		p.formatter.Ratio(decimal.NewFromFloat(category.AlertThreshold)))
}
