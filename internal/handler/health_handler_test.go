package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.WithinDuration(t, time.Now(), resp.Timestamp, time.Minute)
}
