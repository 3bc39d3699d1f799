// Package client is a Go client for the cashflow HTTP API. GET responses are
// cached per query and concurrent identical GETs share one request; writes
// invalidate the cached reads they affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"cashflow-api/internal/cache"
	"cashflow-api/internal/dto"
	apperrors "cashflow-api/internal/errors"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 30 * time.Second
	defaultCacheLen = 128
)

// Key prefixes of the cached reads
const (
	prefixCategories = "GET /api/categories"
	prefixBudget     = "GET /api/budget/"
)

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	Status   int
	Envelope apperrors.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Envelope.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Envelope.Code, e.Envelope.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Envelope.Error)
}

// Client talks to one API base URL
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache[[]byte]
	group      singleflight.Group

	// generation is bumped on every invalidation. A read only caches its
	// body if no invalidation ran while it was in flight.
	generation atomic.Uint64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache replaces the default LRU response cache
func WithCache(store cache.Cache[[]byte]) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8080"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      cache.NewLRU[[]byte](defaultCacheLen, defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CategoryOverview fetches GET /api/categories for month; "" means the
// server's current month
func (c *Client) CategoryOverview(ctx context.Context, month string) (*dto.CategoryOverviewResponse, error) {
	var resp dto.CategoryOverviewResponse
	if err := c.get(ctx, "/api/categories", monthQuery(month), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary fetches GET /api/budget/summary
func (c *Client) Summary(ctx context.Context, month string) (*dto.PeriodSummaryResponse, error) {
	var resp dto.PeriodSummaryResponse
	if err := c.get(ctx, "/api/budget/summary", monthQuery(month), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Accounts fetches GET /api/accounts
func (c *Client) Accounts(ctx context.Context) ([]dto.AccountResponse, error) {
	var resp []dto.AccountResponse
	if err := c.get(ctx, "/api/accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTransaction posts a transaction. Category and budget reads are
// invalidated since a debit changes both.
func (c *Client) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	var resp dto.CreateTransactionResponse
	if err := c.send(ctx, http.MethodPost, "/api/transactions", req, &resp); err != nil {
		return nil, err
	}
	c.invalidate(prefixCategories, prefixBudget)
	return &resp, nil
}

// UpdateBudget changes a category's budget and alert threshold
func (c *Client) UpdateBudget(ctx context.Context, categoryID string, req dto.UpdateBudgetRequest) (*dto.CategoryResponse, error) {
	var resp dto.CategoryResponse
	path := "/api/categories/" + url.PathEscape(categoryID) + "/budget"
	if err := c.send(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, err
	}
	c.invalidate(prefixCategories, prefixBudget)
	return &resp, nil
}

// Invalidate drops every cached read
func (c *Client) Invalidate() {
	c.invalidate("GET ")
}

func (c *Client) invalidate(prefixes ...string) {
	c.generation.Add(1)
	for _, prefix := range prefixes {
		c.cache.InvalidatePrefix(prefix)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	key := cacheKey(http.MethodGet, path, query)

	if body, ok := c.cache.Get(key); ok {
		return json.Unmarshal(body, out)
	}

	// Callers sharing a flight get the first caller's context.
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		target := c.baseURL + path
		if len(query) > 0 {
			target += "?" + query.Encode()
		}

		generation := c.generation.Load()
		body, err := c.do(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		if c.generation.Load() == generation {
			c.cache.Set(key, body)
		}
		return body, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), out)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.do(ctx, method, c.baseURL+path, raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, &apiErr.Envelope); err != nil {
			apiErr.Envelope.Error = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	return body, nil
}

// cacheKey is "METHOD path?query" with the query keys sorted
func cacheKey(method, path string, query url.Values) string {
	key := method + " " + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	return key
}

func monthQuery(month string) url.Values {
	if month == "" {
		return nil
	}
	return url.Values{"month": []string{month}}
}
