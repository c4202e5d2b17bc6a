package handler

import (
	"net/http"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/labstack/echo/v4"
)

// HealthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, api.HealthResponse{Status: "OK", Timestamp: time.Now().UTC()})
}
