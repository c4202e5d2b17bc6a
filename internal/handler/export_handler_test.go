package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportHandler(storage domain.ObjectStorage) (*ExportHandler, *testutil.MockTransactionRepository) {
	repo := testutil.NewMockTransactionRepository()
	svc := service.NewExportService(repo, storage)
	svc.SetClock(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) })
	return NewExportHandler(svc), repo
}

func TestExportTransactions_NotConfigured(t *testing.T) {
	handler, _ := newExportHandler(nil)
	c, rec := newContext(http.MethodPost, "/exports/transactions", "")

	require.NoError(t, handler.ExportTransactions(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Export storage not configured", errorBody(t, rec))
}

func TestExportTransactions(t *testing.T) {
	storage := testutil.NewMockObjectStorage()
	handler, repo := newExportHandler(storage)
	seedTransaction(repo, 1, domain.TransactionTypeExpense, "Food", "2024-03-01")
	seedTransaction(repo, 2, domain.TransactionTypeIncome, "Salary", "2024-03-02")
	seedTransaction(repo, 3, domain.TransactionTypeExpense, "Food", "2024-03-03")

	c, rec := newContext(http.MethodPost, "/exports/transactions?type=expense", "")
	require.NoError(t, handler.ExportTransactions(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["rows"])

	key := resp["key"].(string)
	assert.True(t, strings.HasPrefix(key, "exports/2024-03-15/"), key)
	assert.True(t, strings.HasSuffix(key, ".csv"), key)
	assert.Equal(t, "https://storage.test/"+key+"?expires=900", resp["url"])
	assert.Equal(t, "2024-03-15T09:15:00Z", resp["expires_at"])

	lines := strings.Split(strings.TrimSpace(string(storage.Objects[key])), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "text/csv", storage.ContentTypes[key])
}

func TestExportTransactions_InvalidFilter(t *testing.T) {
	handler, _ := newExportHandler(testutil.NewMockObjectStorage())
	c, rec := newContext(http.MethodPost, "/exports/transactions?startDate=03-01-2024", "")

	require.NoError(t, handler.ExportTransactions(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportTransactions_UploadFailure(t *testing.T) {
	storage := testutil.NewMockObjectStorage()
	storage.UploadFn = func(key string, data io.Reader, contentType string, size int64) (string, error) {
		return "", errors.New("access denied")
	}
	handler, _ := newExportHandler(storage)
	c, rec := newContext(http.MethodPost, "/exports/transactions", "")

	require.NoError(t, handler.ExportTransactions(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to export transactions", errorBody(t, rec))
}
