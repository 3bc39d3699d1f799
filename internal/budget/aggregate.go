package budget

import (
	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate totals statuses into a period summary. The breakdown keeps the
// input order; an empty input yields zero totals.
func Aggregate(period string, statuses []models.BudgetStatus) models.PeriodSummary {
	totalBudget := decimal.Zero
	totalSpend := decimal.Zero

	counts := make(map[models.AlertLevel]int, len(models.AllAlertLevels()))
	for _, level := range models.AllAlertLevels() {
		counts[level] = 0
	}

	breakdown := make([]models.BudgetStatus, 0, len(statuses))
	for _, status := range statuses {
		totalBudget = totalBudget.Add(status.BudgetAmount)
		totalSpend = totalSpend.Add(status.ActualSpend)
		counts[status.AlertLevel]++
		breakdown = append(breakdown, status)
	}

	return models.PeriodSummary{
		Period:             period,
		TotalBudget:        totalBudget,
		TotalSpend:         totalSpend,
		TotalRemaining:     totalBudget.Sub(totalSpend),
		OverallPercentUsed: PercentUsed(totalSpend, totalBudget),
		CategoryCount:      len(statuses),
		AlertCounts:        counts,
		Categories:         breakdown,
	}
}
