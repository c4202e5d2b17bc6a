package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockCategoryRepository) {
	repo := testutil.NewMockCategoryRepository()
	owner := int32(7)
	repo.AddCategory(&domain.Category{Name: "Salary", Type: domain.TransactionTypeIncome, Icon: "💰"})
	repo.AddCategory(&domain.Category{Name: "Food & Dining", Type: domain.TransactionTypeExpense, Icon: "🍽️"})
	repo.AddCategory(&domain.Category{Name: "Bills & Utilities", Type: domain.TransactionTypeExpense, Icon: "📄"})
	repo.AddCategory(&domain.Category{Name: "Private", Type: domain.TransactionTypeExpense, UserID: &owner})
	return NewCategoryHandler(service.NewCategoryService(repo)), repo
}

func categoryNames(t *testing.T, body []byte) []string {
	t.Helper()
	var categories []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &categories))
	names := []string{}
	for _, c := range categories {
		names = append(names, c["name"].(string))
	}
	return names
}

func TestGetCategories(t *testing.T) {
	tests := []struct {
		query string
		names []string
	}{
		{"", []string{"Bills & Utilities", "Food & Dining", "Salary"}},
		{"?type=expense", []string{"Bills & Utilities", "Food & Dining"}},
		{"?type=income", []string{"Salary"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			handler, _ := newCategoryHandler()
			c, rec := newContext(http.MethodGet, "/categories"+tt.query, "")

			require.NoError(t, handler.GetCategories(c))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.names, categoryNames(t, rec.Body.Bytes()))
		})
	}
}

func TestGetCategories_InvalidType(t *testing.T) {
	handler, _ := newCategoryHandler()
	c, rec := newContext(http.MethodGet, "/categories?type=transfer", "")

	require.NoError(t, handler.GetCategories(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid transaction type", errorBody(t, rec))
}

func TestGetCategories_StoreFailure(t *testing.T) {
	handler, repo := newCategoryHandler()
	repo.GetGlobalFn = func(categoryType *domain.CategoryType) ([]*domain.Category, error) {
		return nil, errors.New("relation does not exist")
	}
	c, rec := newContext(http.MethodGet, "/categories", "")

	require.NoError(t, handler.GetCategories(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch categories", errorBody(t, rec))
}
