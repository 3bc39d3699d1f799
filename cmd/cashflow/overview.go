package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/client"
	"cashflow-api/internal/dto"
	"cashflow-api/internal/format"
	"cashflow-api/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// styles are bound to the renderer of the output they are written to, so
// colour is dropped when that output is not a terminal
type styles struct {
	header lipgloss.Style
	muted  lipgloss.Style
	plain  lipgloss.Style
	bands  map[models.AlertLevel]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
		plain:  r.NewStyle(),
		bands: map[models.AlertLevel]lipgloss.Style{
			models.AlertLevelOK:       r.NewStyle().Foreground(lipgloss.Color("#10b981")),
			models.AlertLevelWarning:  r.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
			models.AlertLevelCritical: r.NewStyle().Foreground(lipgloss.Color("#ef4444")),
			models.AlertLevelExceeded: r.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		},
	}
}

// presenter holds what every API-backed command needs to print amounts
type presenter struct {
	formatter *format.Formatter
	policy    budget.Policy
	styles    styles
}

func newPresenter(out io.Writer) (*presenter, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	locale, err := format.LookupLocale(cfg.Budget.Locale)
	if err != nil {
		return nil, err
	}
	policy, err := budget.NewPolicy(cfg.Budget.WarningRatio, cfg.Budget.ExceededRatio)
	if err != nil {
		return nil, err
	}

	return &presenter{
		formatter: format.New(locale.WithSymbol(cfg.Budget.CurrencySymbol)),
		policy:    policy,
		styles:    newStyles(lipgloss.NewRenderer(out)),
	}, nil
}

// percent renders a usage percentage in its band colour, or n/a without a budget
func (p *presenter) percent(percentUsed int, budgetAmount decimal.Decimal) cell {
	if budgetAmount.IsZero() {
		return cell{"n/a", p.styles.muted}
	}
	return cell{p.formatter.Percent(percentUsed), p.styles.bands[p.policy.Band(percentUsed)]}
}

func apiFlag(cmd *cobra.Command, apiURL *string) {
	defaultURL := os.Getenv("CASHFLOW_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	cmd.Flags().StringVar(apiURL, "api", defaultURL, "API base URL (env CASHFLOW_API_URL)")
}

func overviewCmd() *cobra.Command {
	var apiURL, month string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the month's spend per category",
		Long: `Fetch the category overview and budget summary from a running API and print
spend against budget, coloured by how much of each budget is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPresenter(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			api := client.New(apiURL)
			overview, err := api.CategoryOverview(cmd.Context(), month)
			if err != nil {
				return fmt.Errorf("failed to fetch overview: %w", err)
			}
			summary, err := api.Summary(cmd.Context(), overview.Month)
			if err != nil {
				return fmt.Errorf("failed to fetch summary: %w", err)
			}

			p.renderOverview(cmd.OutOrStdout(), overview, summary)
			return nil
		},
	}

	apiFlag(cmd, &apiURL)
	cmd.Flags().StringVar(&month, "month", "", "month in YYYY-MM form (default: current month)")

	return cmd
}

// renderOverview prints one row per category. Totals come from the server's
// summary rather than being re-added from the rows.
func (p *presenter) renderOverview(out io.Writer, overview *dto.CategoryOverviewResponse, summary *dto.PeriodSummaryResponse) {
	st, f := p.styles, p.formatter

	fmt.Fprintln(out, st.header.Render("Budget overview "+overview.Month))

	if len(overview.Categories) == 0 {
		fmt.Fprintln(out, st.muted.Render("No active categories."))
		return
	}

	rows := [][]cell{
		{{"Category", st.header}, {"Spent", st.header}, {"Budget", st.header}, {"Used", st.header}, {"Txns", st.header}},
		{{strings.Repeat("-", 20), st.plain}, {strings.Repeat("-", 10), st.plain}, {strings.Repeat("-", 10), st.plain}, {strings.Repeat("-", 5), st.plain}, {strings.Repeat("-", 4), st.plain}},
	}

	for _, c := range overview.Categories {
		limit := decimal.NewFromFloat(c.MonthlyBudget)
		rows = append(rows, []cell{
			{c.Icon + " " + c.Name, st.plain},
			{f.Currency(decimal.NewFromFloat(c.ActualSpend)), st.plain},
			{f.Currency(limit), st.plain},
			p.percent(c.PercentUsed, limit),
			{fmt.Sprintf("%d", c.TransactionCount), st.plain},
		})
	}

	totalBudget := decimal.NewFromFloat(summary.TotalBudget)
	rows = append(rows, []cell{
		{"Total", st.header},
		{f.Currency(decimal.NewFromFloat(summary.TotalSpend)), st.plain},
		{f.Currency(totalBudget), st.plain},
		p.percent(summary.OverallPercentUsed, totalBudget),
		{"", st.plain},
	})

	writeTable(out, rows)
	fmt.Fprintln(out, st.muted.Render("Remaining "+f.Currency(decimal.NewFromFloat(summary.TotalRemaining))))
}
