package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashflow-api/internal/config"
	"cashflow-api/internal/database"
	"cashflow-api/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	db      *database.DB
	handler http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:             "0",
			Host:             "127.0.0.1",
			Environment:      "test",
			ShutdownTimeout:  time.Second,
			CORSAllowOrigins: []string{"http://localhost:3000"},
		},
		Budget: config.BudgetConfig{
			DefaultAlertThreshold: decimal.RequireFromString("0.8"),
			WarningRatio:          decimal.RequireFromString("0.8"),
			ExceededRatio:         decimal.NewFromInt(1),
			Locale:                "en-ZA",
			CurrencySymbol:        "R",
			Timezone:              "UTC",
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
}

func (s *ServerTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.Require().NoError(s.db.Seed(context.Background()))

	srv, err := New(testConfig(), s.db, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.handler = srv.Handler()
}

func (s *ServerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestRootAndHealth() {
	rec := s.do(http.MethodGet, "/", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"healthy"`)
	s.Contains(rec.Body.String(), `"name":"cashflow-api"`)

	rec = s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/does-not-exist", nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"Not Found"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestDebitUpdatesOverviewAndStatus() {
	rec := s.do(http.MethodGet, "/api/accounts", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var accounts []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &accounts))
	s.Require().Len(accounts, 1)

	today := time.Now().UTC()
	for _, amount := range []float64{1000, 1800} {
		rec = s.do(http.MethodPost, "/api/transactions", map[string]interface{}{
			"accountId":  accounts[0].ID.String(),
			"date":       today.Format(time.RFC3339),
			"amount":     amount,
			"type":       "DEBIT",
			"vendor":     "Checkers",
			"categoryId": "cat-groceries",
		})
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created dto.CreateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().NotNil(created.BudgetUpdate)
	s.Equal(2800.0, created.BudgetUpdate.ActualSpend)
	s.Equal(47, created.BudgetUpdate.PercentUsed)

	rec = s.do(http.MethodGet, "/api/categories", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var overview dto.CategoryOverviewResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &overview))
	s.Equal(today.Format("2006-01"), overview.Month)
	s.Len(overview.Categories, 12)
	s.Equal("cat-groceries", overview.Categories[0].ID)
	s.Equal(2800.0, overview.Categories[0].ActualSpend)
	s.Equal(int64(2), overview.Categories[0].TransactionCount)

	rec = s.do(http.MethodGet, "/api/categories/cat-groceries/status", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"alertLevel":"ok"`)
}

func (s *ServerTestSuite) TestBudgetUpdateOnlyAffectsNewPeriods() {
	rec := s.do(http.MethodGet, "/api/accounts", nil)
	var accounts []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &accounts))

	rec = s.do(http.MethodPost, "/api/transactions", map[string]interface{}{
		"accountId":  accounts[0].ID.String(),
		"date":       time.Now().UTC().Format(time.RFC3339),
		"amount":     1500,
		"type":       "DEBIT",
		"vendor":     "Uber",
		"categoryId": "cat-transport",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/categories/cat-transport/budget", map[string]interface{}{
		"monthlyBudget":  10000,
		"alertThreshold": 0.8,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/categories/cat-transport/status", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var status dto.BudgetStatusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &status))
	s.Equal(3000.0, status.BudgetAmount)
	s.Equal(50, status.PercentUsed)
}

func (s *ServerTestSuite) TestInvalidMonthRejected() {
	rec := s.do(http.MethodGet, "/api/budget/summary?month=2024-13", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *ServerTestSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/api/budget/status", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "budget_status_computation_duration_milliseconds")
}

func (s *ServerTestSuite) TestRunStopsOnCancel() {
	srv, err := New(testConfig(), s.db, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(3 * time.Second):
		s.Fail("server did not stop")
	}
}

func (s *ServerTestSuite) TestConfiguredDefaultThresholdAppliesToNewCategories() {
	s.T().Setenv("BUDGET_DEFAULT_ALERT_THRESHOLD", "0.6")
	cfg := testConfig()
	cfg.Budget.DefaultAlertThreshold = config.Load().Budget.DefaultAlertThreshold

	srv, err := New(cfg, s.db, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.handler = srv.Handler()

	rec := s.do(http.MethodPost, "/api/categories", map[string]interface{}{
		"name":          "Pets",
		"icon":          "🐾",
		"color":         "#8B5CF6",
		"monthlyBudget": 1000,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.CategoryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal(0.6, created.AlertThreshold)
}

func (s *ServerTestSuite) TestCreatedCategoryIsRoutableByDerivedID() {
	rec := s.do(http.MethodPost, "/api/categories", map[string]interface{}{
		"name":  "Food/Drink?",
		"icon":  "🍔",
		"color": "#F97316",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.CategoryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("cat-food-drink", created.ID)

	rec = s.do(http.MethodGet, "/api/categories/"+created.ID, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"name":"Food/Drink?"`)
}
