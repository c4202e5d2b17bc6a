package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBudgetHandler() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockBudgetRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := service.NewBudgetService(repo)
	svc.SetEventPublisher(publisher)
	svc.SetClock(func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) })
	return NewBudgetHandler(svc), repo, publisher
}

func TestUpsertBudget_KeepsSpentAmount(t *testing.T) {
	handler, _, publisher := newBudgetHandler()

	c, rec := newContext(http.MethodPost, "/budgets", `{"category":"Food","monthly_limit":300,"spent_amount":"45.5","month":3,"year":2024}`)
	require.NoError(t, handler.UpsertBudget(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPost, "/budgets", `{"category":"Food","monthly_limit":400,"spent_amount":999,"month":3,"year":2024}`)
	require.NoError(t, handler.UpsertBudget(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var budget map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budget))
	assert.Equal(t, "400.00", budget["monthly_limit"])
	assert.Equal(t, "45.50", budget["spent_amount"])
	assert.Equal(t, float64(1), budget["id"])
	assert.Nil(t, budget["user_id"])

	assert.Equal(t, []string{"budget.updated", "budget.updated"}, publisher.Types())
}

func TestUpsertBudget_DefaultsToCurrentMonth(t *testing.T) {
	handler, repo, _ := newBudgetHandler()

	c, rec := newContext(http.MethodPost, "/budgets", `{"category":"Rent","monthly_limit":1200}`)
	require.NoError(t, handler.UpsertBudget(c))
	require.Equal(t, http.StatusOK, rec.Code)

	budgets, err := repo.GetByMonth(c.Request().Context(), 3, 2024)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].SpentAmount.IsZero())
}

func TestUpsertBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing category", `{"monthly_limit":100}`, "Missing required fields"},
		{"missing limit", `{"category":"Food"}`, "Missing required fields"},
		{"negative limit", `{"category":"Food","monthly_limit":-1}`, "Invalid amount"},
		{"month out of range", `{"category":"Food","monthly_limit":10,"month":13}`, "Invalid month"},
		{"year out of range", `{"category":"Food","monthly_limit":10,"year":1800}`, "Invalid year"},
		{"month not a number", `{"category":"Food","monthly_limit":10,"month":"march"}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo, publisher := newBudgetHandler()
			c, rec := newContext(http.MethodPost, "/budgets", tt.body)

			require.NoError(t, handler.UpsertBudget(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec))
			assert.Empty(t, repo.Budgets)
			assert.Empty(t, publisher.Events)
		})
	}
}

func TestGetBudgets(t *testing.T) {
	handler, repo, _ := newBudgetHandler()
	repo.AddBudget(&domain.Budget{Category: "Food", MonthlyLimit: decimal.NewFromInt(300), Month: 3, Year: 2024})
	repo.AddBudget(&domain.Budget{Category: "Bills", MonthlyLimit: decimal.NewFromInt(100), Month: 3, Year: 2024})
	repo.AddBudget(&domain.Budget{Category: "Food", MonthlyLimit: decimal.NewFromInt(250), Month: 2, Year: 2024})

	tests := []struct {
		query      string
		categories []string
	}{
		{"", []string{"Bills", "Food"}},
		{"?month=2&year=2024", []string{"Food"}},
		{"?month=1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/budgets"+tt.query, "")
			require.NoError(t, handler.GetBudgets(c))
			require.Equal(t, http.StatusOK, rec.Code)

			var budgets []map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budgets))
			categories := []string{}
			for _, b := range budgets {
				categories = append(categories, b["category"].(string))
			}
			assert.Equal(t, tt.categories, categories)
		})
	}
}

func TestGetBudgets_InvalidQuery(t *testing.T) {
	tests := []struct {
		query   string
		message string
	}{
		{"?month=abc", "Invalid month"},
		{"?year=later", "Invalid year"},
		{"?month=0", "Invalid month"},
		{"?year=3000", "Invalid year"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			handler, _, _ := newBudgetHandler()
			c, rec := newContext(http.MethodGet, "/budgets"+tt.query, "")

			require.NoError(t, handler.GetBudgets(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec))
		})
	}
}
