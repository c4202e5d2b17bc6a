package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/handler"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/testutil"
	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	server       *httptest.Server
	transactions *testutil.MockTransactionRepository
	goals        *testutil.MockGoalRepository
	budgets      *testutil.MockBudgetRepository
	categories   *testutil.MockCategoryRepository
	analytics    *testutil.MockAnalyticsRepository
	hub          *websocket.Hub
}

// newTestAPI serves the real routes over the in-memory repositories
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	a := &testAPI{
		transactions: testutil.NewMockTransactionRepository(),
		goals:        testutil.NewMockGoalRepository(),
		budgets:      testutil.NewMockBudgetRepository(),
		categories:   testutil.NewMockCategoryRepository(),
		analytics:    testutil.NewMockAnalyticsRepository(),
		hub:          websocket.NewHub(),
	}

	txService := service.NewTransactionService(a.transactions)
	goalService := service.NewGoalService(a.goals)
	budgetService := service.NewBudgetService(a.budgets)
	txService.SetEventPublisher(a.hub)
	goalService.SetEventPublisher(a.hub)
	budgetService.SetEventPublisher(a.hub)

	e := echo.New()
	handler.RegisterRoutes(e, handler.Handlers{
		Transactions: handler.NewTransactionHandler(txService),
		Analytics:    handler.NewAnalyticsHandler(service.NewAnalyticsService(a.analytics)),
		Goals:        handler.NewGoalHandler(goalService),
		Budgets:      handler.NewBudgetHandler(budgetService),
		Categories:   handler.NewCategoryHandler(service.NewCategoryService(a.categories)),
		Exports:      handler.NewExportHandler(service.NewExportService(a.transactions, testutil.NewMockObjectStorage())),
		WebSocket:    handler.NewWebSocketHandler(a.hub, nil),
	}, nil)

	a.server = httptest.NewServer(e)
	t.Cleanup(func() {
		a.hub.CloseAll()
		a.server.Close()
	})
	return a
}

func (a *testAPI) client() *Client {
	return New(a.server.URL, WithHTTPClient(a.server.Client()))
}

func money(s string) *api.Money {
	return api.MoneyPtr(decimal.RequireFromString(s))
}

func TestClient_TransactionLifecycle(t *testing.T) {
	a := newTestAPI(t)
	c := a.client()
	ctx := context.Background()

	created, err := c.CreateTransaction(ctx, api.TransactionRequest{
		Type:        "expense",
		Description: "Groceries",
		Amount:      money("42.5"),
		Date:        "2024-03-10",
		Category:    "Food",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), created.ID)
	assert.Equal(t, "42.50", created.Amount.String())
	assert.Equal(t, "2024-03-10", created.Date.String())
	assert.Equal(t, "cash", created.PaymentMethod)

	updated, err := c.UpdateTransaction(ctx, created.ID, api.TransactionRequest{
		Type:        "expense",
		Description: "Groceries",
		Amount:      money("50"),
		Date:        "2024-03-10",
		Category:    "Food",
	})
	require.NoError(t, err)
	assert.Equal(t, "50.00", updated.Amount.String())

	list, err := c.ListTransactions(ctx, TransactionQuery{Type: "expense"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := c.DeleteTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Success)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = c.DeleteTransaction(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_ValidationError(t *testing.T) {
	a := newTestAPI(t)

	_, err := a.client().CreateTransaction(context.Background(), api.TransactionRequest{Type: "income"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Missing required fields")
}

func TestClient_ListTransactionsQuery(t *testing.T) {
	a := newTestAPI(t)

	_, err := a.client().ListTransactions(context.Background(), TransactionQuery{Limit: 5, Offset: 10})
	require.NoError(t, err)

	assert.Equal(t, domain.Pagination{Limit: 5, Offset: 10}, a.transactions.LastPage)
}

func TestClient_Goals(t *testing.T) {
	a := newTestAPI(t)
	c := a.client()
	ctx := context.Background()

	goal, err := c.CreateGoal(ctx, api.CreateGoalRequest{Title: "Laptop", TargetAmount: money("100")})
	require.NoError(t, err)
	assert.Equal(t, "active", goal.Status)

	goal, err = c.AddGoalProgress(ctx, goal.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "completed", goal.Status)

	goal, err = c.UpdateGoal(ctx, goal.ID, api.UpdateGoalRequest{
		Title:         "Laptop",
		TargetAmount:  money("200"),
		CurrentAmount: money("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", goal.Status)

	resp, err := c.DeleteGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Goal deleted successfully", resp.Message)

	_, err = c.AddGoalProgress(ctx, goal.ID, decimal.NewFromInt(1))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_BudgetsAndCategories(t *testing.T) {
	a := newTestAPI(t)
	a.categories.AddCategory(&domain.Category{Name: "Salary", Type: domain.TransactionTypeIncome})
	a.categories.AddCategory(&domain.Category{Name: "Food", Type: domain.TransactionTypeExpense})
	c := a.client()
	ctx := context.Background()

	month, year := 3, 2024
	budget, err := c.UpsertBudget(ctx, api.BudgetRequest{
		Category:     "Food",
		MonthlyLimit: money("300"),
		Month:        &month,
		Year:         &year,
	})
	require.NoError(t, err)
	assert.Equal(t, "300.00", budget.MonthlyLimit.String())

	budgets, err := c.ListBudgets(ctx, 3, 2024)
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	_, err = c.ListBudgets(ctx, 13, 2024)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid month", apiErr.Message)

	income, err := c.ListCategories(ctx, "income")
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Name)
}

func TestClient_AnalyticsAndExport(t *testing.T) {
	a := newTestAPI(t)
	a.transactions.AddTransaction(&domain.Transaction{
		Type:     domain.TransactionTypeIncome,
		Amount:   decimal.NewFromInt(10),
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: "Other",
	})
	c := a.client()
	ctx := context.Background()

	summary, err := c.Summary(ctx, "week")
	require.NoError(t, err)
	assert.Equal(t, "week", summary.Period)

	_, err = c.Trends(ctx, -1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	export, err := c.ExportTransactions(ctx, TransactionQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, export.Rows)
	assert.Contains(t, export.URL, export.Key)
}

func TestClient_Health(t *testing.T) {
	a := newTestAPI(t)

	health, err := a.client().Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListGoals(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
