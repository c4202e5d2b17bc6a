package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for every non-2xx response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed HTTP client for the FinTrack API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the API served at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TransactionQuery narrows transaction listings and exports. Zero values are omitted.
type TransactionQuery struct {
	Limit     int
	Offset    int
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func idPath(prefix string, id int32) string {
	return prefix + "/" + strconv.FormatInt(int64(id), 10)
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
	return out, err
}

// ListTransactions calls GET /transactions
func (c *Client) ListTransactions(ctx context.Context, q TransactionQuery) ([]api.Transaction, error) {
	var out []api.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", q.values(), nil, &out)
	return out, err
}

// CreateTransaction calls POST /transactions
func (c *Client) CreateTransaction(ctx context.Context, req api.TransactionRequest) (api.Transaction, error) {
	var out api.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &out)
	return out, err
}

// UpdateTransaction calls PUT /transactions/:id
func (c *Client) UpdateTransaction(ctx context.Context, id int32, req api.TransactionRequest) (api.Transaction, error) {
	var out api.Transaction
	err := c.do(ctx, http.MethodPut, idPath("/transactions", id), nil, req, &out)
	return out, err
}

// DeleteTransaction calls DELETE /transactions/:id
func (c *Client) DeleteTransaction(ctx context.Context, id int32) (api.DeleteTransactionResponse, error) {
	var out api.DeleteTransactionResponse
	err := c.do(ctx, http.MethodDelete, idPath("/transactions", id), nil, nil, &out)
	return out, err
}

// Summary calls GET /analytics/summary. An empty period uses the server default.
func (c *Client) Summary(ctx context.Context, period string) (api.Summary, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	var out api.Summary
	err := c.do(ctx, http.MethodGet, "/analytics/summary", q, nil, &out)
	return out, err
}

// Trends calls GET /analytics/trends. Zero months uses the server default.
func (c *Client) Trends(ctx context.Context, months int) ([]api.MonthlyTrend, error) {
	q := url.Values{}
	if months != 0 {
		q.Set("months", strconv.Itoa(months))
	}
	var out []api.MonthlyTrend
	err := c.do(ctx, http.MethodGet, "/analytics/trends", q, nil, &out)
	return out, err
}

// ListGoals calls GET /goals
func (c *Client) ListGoals(ctx context.Context) ([]api.Goal, error) {
	var out []api.Goal
	err := c.do(ctx, http.MethodGet, "/goals", nil, nil, &out)
	return out, err
}

// CreateGoal calls POST /goals
func (c *Client) CreateGoal(ctx context.Context, req api.CreateGoalRequest) (api.Goal, error) {
	var out api.Goal
	err := c.do(ctx, http.MethodPost, "/goals", nil, req, &out)
	return out, err
}

// AddGoalProgress calls PUT /goals/:id/progress
func (c *Client) AddGoalProgress(ctx context.Context, id int32, amount decimal.Decimal) (api.Goal, error) {
	var out api.Goal
	err := c.do(ctx, http.MethodPut, idPath("/goals", id)+"/progress", nil, api.GoalProgressRequest{Amount: api.MoneyPtr(amount)}, &out)
	return out, err
}

// UpdateGoal calls PUT /goals/:id
func (c *Client) UpdateGoal(ctx context.Context, id int32, req api.UpdateGoalRequest) (api.Goal, error) {
	var out api.Goal
	err := c.do(ctx, http.MethodPut, idPath("/goals", id), nil, req, &out)
	return out, err
}

// DeleteGoal calls DELETE /goals/:id
func (c *Client) DeleteGoal(ctx context.Context, id int32) (api.DeleteGoalResponse, error) {
	var out api.DeleteGoalResponse
	err := c.do(ctx, http.MethodDelete, idPath("/goals", id), nil, nil, &out)
	return out, err
}

// ListBudgets calls GET /budgets. Zero month or year uses the server's current month.
func (c *Client) ListBudgets(ctx context.Context, month, year int) ([]api.Budget, error) {
	q := url.Values{}
	if month != 0 {
		q.Set("month", strconv.Itoa(month))
	}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var out []api.Budget
	err := c.do(ctx, http.MethodGet, "/budgets", q, nil, &out)
	return out, err
}

// UpsertBudget calls POST /budgets
func (c *Client) UpsertBudget(ctx context.Context, req api.BudgetRequest) (api.Budget, error) {
	var out api.Budget
	err := c.do(ctx, http.MethodPost, "/budgets", nil, req, &out)
	return out, err
}

// ListCategories calls GET /categories, optionally narrowed by type
func (c *Client) ListCategories(ctx context.Context, categoryType string) ([]api.Category, error) {
	q := url.Values{}
	if categoryType != "" {
		q.Set("type", categoryType)
	}
	var out []api.Category
	err := c.do(ctx, http.MethodGet, "/categories", q, nil, &out)
	return out, err
}

// ExportTransactions calls POST /exports/transactions. Limit and offset are ignored.
func (c *Client) ExportTransactions(ctx context.Context, q TransactionQuery) (api.Export, error) {
	q.Limit, q.Offset = 0, 0
	var out api.Export
	err := c.do(ctx, http.MethodPost, "/exports/transactions", q.values(), nil, &out)
	return out, err
}
