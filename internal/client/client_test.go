package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cashflow-api/internal/cache"
	"cashflow-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *Client
	overviews atomic.Int32
	summaries atomic.Int32
	accounts  atomic.Int32
	block     atomic.Bool
	release   chan struct{}
	mu        sync.Mutex
	spend     float64
}

func (s *ClientTestSuite) SetupTest() {
	s.overviews.Store(0)
	s.summaries.Store(0)
	s.accounts.Store(0)
	s.spend = 1000
	s.block.Store(false)
	s.release = make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		spend := s.spend
		s.mu.Unlock()

		s.overviews.Add(1)
		if s.block.Load() {
			<-s.release
		}

		month := r.URL.Query().Get("month")
		if month == "bad" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Bad Request","message":"Month must be in YYYY-MM format","code":"VALIDATION_006"}`))
			return
		}

		_ = json.NewEncoder(w).Encode(dto.CategoryOverviewResponse{
			Month: month,
			Categories: []dto.CategoryOverviewItem{
				{ID: "cat-groceries", Name: "Groceries", MonthlyBudget: 4000, ActualSpend: spend},
			},
		})
	})
	mux.HandleFunc("GET /api/budget/summary", func(w http.ResponseWriter, r *http.Request) {
		s.summaries.Add(1)

		s.mu.Lock()
		spend := s.spend
		s.mu.Unlock()

		_ = json.NewEncoder(w).Encode(dto.PeriodSummaryResponse{
			Period:      r.URL.Query().Get("month"),
			TotalBudget: 4000,
			TotalSpend:  spend,
		})
	})
	mux.HandleFunc("GET /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		s.accounts.Add(1)
		_ = json.NewEncoder(w).Encode([]dto.AccountResponse{
			{BankName: "FNB", AccountType: "CHECKING", AccountNumber: "1234", Currency: "ZAR", IsActive: true},
		})
	})
	mux.HandleFunc("PUT /api/categories/{id}/budget", func(w http.ResponseWriter, r *http.Request) {
		var req dto.UpdateBudgetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(dto.CategoryResponse{
			ID:             r.PathValue("id"),
			MonthlyBudget:  *req.MonthlyBudget,
			AlertThreshold: *req.AlertThreshold,
		})
	})
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateTransactionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		s.mu.Lock()
		s.spend += req.Amount
		s.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.CreateTransactionResponse{
			Transaction: dto.TransactionResponse{Amount: req.Amount, Vendor: req.Vendor},
		})
	})

	s.server = httptest.NewServer(mux)
	s.client = New(s.server.URL+"/", WithCache(cache.NewLRU[[]byte](16, time.Minute)))
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestOverviewIsCachedPerMonth() {
	ctx := context.Background()

	first, err := s.client.CategoryOverview(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal("2024-03", first.Month)

	_, err = s.client.CategoryOverview(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(int32(1), s.overviews.Load())

	_, err = s.client.CategoryOverview(ctx, "2024-04")
	s.Require().NoError(err)
	s.Equal(int32(2), s.overviews.Load())
}

func (s *ClientTestSuite) TestConcurrentReadsShareOneRequest() {
	s.block.Store(true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := s.client.CategoryOverview(context.Background(), "2024-03")
			s.NoError(err)
			s.Len(resp.Categories, 1)
		}()
	}

	s.Eventually(func() bool { return s.overviews.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(s.release)
	wg.Wait()

	s.Equal(int32(1), s.overviews.Load())
}

func (s *ClientTestSuite) TestCreateTransactionInvalidatesOverview() {
	ctx := context.Background()

	before, err := s.client.CategoryOverview(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(1000.0, before.Categories[0].ActualSpend)

	_, err = s.client.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount: 1800,
		Type:   "DEBIT",
		Vendor: "Woolworths",
	})
	s.Require().NoError(err)

	after, err := s.client.CategoryOverview(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(2800.0, after.Categories[0].ActualSpend)
	s.Equal(int32(2), s.overviews.Load())
}

func (s *ClientTestSuite) TestErrorEnvelopeDecoded() {
	_, err := s.client.CategoryOverview(context.Background(), "bad")
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal("VALIDATION_006", apiErr.Envelope.Code)

	// failures are not cached
	_, err = s.client.CategoryOverview(context.Background(), "bad")
	s.Require().Error(err)
	s.Equal(int32(2), s.overviews.Load())
}

func (s *ClientTestSuite) TestInvalidateAll() {
	ctx := context.Background()

	_, err := s.client.CategoryOverview(ctx, "")
	s.Require().NoError(err)
	s.client.Invalidate()
	_, err = s.client.CategoryOverview(ctx, "")
	s.Require().NoError(err)

	s.Equal(int32(2), s.overviews.Load())
}

func (s *ClientTestSuite) TestSummaryInvalidatedByDebit() {
	ctx := context.Background()

	summary, err := s.client.Summary(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal("2024-03", summary.Period)
	s.Equal(1000.0, summary.TotalSpend)

	_, err = s.client.Summary(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(int32(1), s.summaries.Load())

	_, err = s.client.CreateTransaction(ctx, dto.CreateTransactionRequest{Amount: 500, Type: "DEBIT", Vendor: "Engen"})
	s.Require().NoError(err)

	summary, err = s.client.Summary(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(1500.0, summary.TotalSpend)
	s.Equal(int32(2), s.summaries.Load())
}

func (s *ClientTestSuite) TestUpdateBudgetInvalidatesCategoryAndBudgetReads() {
	ctx := context.Background()

	_, err := s.client.CategoryOverview(ctx, "")
	s.Require().NoError(err)
	_, err = s.client.Summary(ctx, "")
	s.Require().NoError(err)
	_, err = s.client.Accounts(ctx)
	s.Require().NoError(err)

	amount, threshold := 4500.0, 0.9
	updated, err := s.client.UpdateBudget(ctx, "cat-groceries", dto.UpdateBudgetRequest{
		MonthlyBudget:  &amount,
		AlertThreshold: &threshold,
	})
	s.Require().NoError(err)
	s.Equal("cat-groceries", updated.ID)
	s.Equal(4500.0, updated.MonthlyBudget)

	_, err = s.client.CategoryOverview(ctx, "")
	s.Require().NoError(err)
	_, err = s.client.Summary(ctx, "")
	s.Require().NoError(err)
	_, err = s.client.Accounts(ctx)
	s.Require().NoError(err)

	s.Equal(int32(2), s.overviews.Load())
	s.Equal(int32(2), s.summaries.Load())
	s.Equal(int32(1), s.accounts.Load(), "accounts are not affected by a budget change")
}

func (s *ClientTestSuite) TestReadInFlightDuringWriteIsNotCached() {
	ctx := context.Background()
	s.block.Store(true)

	done := make(chan float64)
	go func() {
		resp, err := s.client.CategoryOverview(ctx, "2024-03")
		if err != nil {
			done <- -1
			return
		}
		done <- resp.Categories[0].ActualSpend
	}()

	s.Require().Eventually(func() bool { return s.overviews.Load() == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.client.CreateTransaction(ctx, dto.CreateTransactionRequest{Amount: 1800, Type: "DEBIT", Vendor: "Woolworths"})
	s.Require().NoError(err)

	s.block.Store(false)
	close(s.release)
	s.Equal(1000.0, <-done, "the in-flight read still sees the old spend")

	after, err := s.client.CategoryOverview(ctx, "2024-03")
	s.Require().NoError(err)
	s.Equal(2800.0, after.Categories[0].ActualSpend)
	s.Equal(int32(2), s.overviews.Load())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "GET /api/categories", cacheKey(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, "GET /api/budget/status?month=2024-03", cacheKey(http.MethodGet, "/api/budget/status", monthQuery("2024-03")))
}
