package main

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/dto"
	"cashflow-api/internal/format"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func testPresenter(out io.Writer, profile termenv.Profile) *presenter {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)

	return &presenter{
		formatter: format.New(format.UnitedStates),
		policy:    budget.DefaultPolicy(),
		styles:    newStyles(r),
	}
}

func sampleOverview() (*dto.CategoryOverviewResponse, *dto.PeriodSummaryResponse) {
	overview := &dto.CategoryOverviewResponse{
		Month: "2024-03",
		Categories: []dto.CategoryOverviewItem{
			{ID: "cat-groceries", Name: "Groceries", Icon: "🛒", MonthlyBudget: 4000, ActualSpend: 2800, TransactionCount: 2, PercentUsed: 70},
			{ID: "cat-transport", Name: "Transport", Icon: "🚗", MonthlyBudget: 3000, ActualSpend: 3210, TransactionCount: 5, PercentUsed: 107},
			{ID: "cat-savings", Name: "Savings", Icon: "💰"},
		},
	}
	summary := &dto.PeriodSummaryResponse{
		Period:             "2024-03",
		TotalBudget:        7000,
		TotalSpend:         6010,
		TotalRemaining:     990,
		OverallPercentUsed: 86,
	}
	return overview, summary
}

func TestRenderOverview(t *testing.T) {
	overview, summary := sampleOverview()

	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderOverview(&out, overview, summary)

	text := out.String()
	assert.Contains(t, text, "Budget overview 2024-03")
	assert.Contains(t, text, "Groceries")
	assert.Contains(t, text, "$2,800")
	assert.Contains(t, text, "$4,000")
	assert.Contains(t, text, "107%")
	assert.Contains(t, text, "n/a")
	assert.Contains(t, text, "$6,010")
	assert.Contains(t, text, "$7,000")
	assert.Contains(t, text, "86%")
	assert.Contains(t, text, "Remaining $990")
}

func TestRenderOverview_TotalsComeFromSummary(t *testing.T) {
	overview, summary := sampleOverview()
	summary.TotalSpend = 1234
	summary.OverallPercentUsed = 18

	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderOverview(&out, overview, summary)

	assert.Contains(t, out.String(), "$1,234")
	assert.Contains(t, out.String(), "18%")
	assert.NotContains(t, out.String(), "$6,010")
}

func TestRenderOverview_ColumnsAlignWithColour(t *testing.T) {
	overview, summary := sampleOverview()

	var out bytes.Buffer
	testPresenter(&out, termenv.ANSI256).renderOverview(&out, overview, summary)
	require.Contains(t, out.String(), "\x1b[", "colour output expected")

	lines := strings.Split(ansiPattern.ReplaceAllString(out.String(), ""), "\n")
	column := func(line, token string) int {
		idx := strings.Index(line, token)
		require.GreaterOrEqual(t, idx, 0, "%q not in %q", token, line)
		return lipgloss.Width(line[:idx])
	}

	header := lines[1]
	spent, used := column(header, "Spent"), column(header, "Used")

	for _, tc := range []struct{ spent, used string }{
		{"$2,800", "70%"},
		{"$3,210", "107%"},
		{"$0", "n/a"},
		{"$6,010", "86%"},
	} {
		var line string
		for _, l := range lines {
			if strings.Contains(l, tc.spent) && strings.Contains(l, tc.used) {
				line = l
				break
			}
		}
		require.NotEmpty(t, line, "row with %s", tc.spent)
		assert.Equal(t, spent, column(line, tc.spent), "spent column in %q", line)
		assert.Equal(t, used, column(line, tc.used), "used column in %q", line)
	}
}

func TestRenderOverview_Empty(t *testing.T) {
	var out bytes.Buffer
	testPresenter(&out, termenv.Ascii).renderOverview(&out, &dto.CategoryOverviewResponse{Month: "2024-03"}, &dto.PeriodSummaryResponse{})

	assert.Contains(t, out.String(), "No active categories.")
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug", "json"))
	assert.NoError(t, setupLogging("WARN", "text"))
	assert.Error(t, setupLogging("verbose", "text"))
	assert.Error(t, setupLogging("info", "xml"))
}
