package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler serves aggregate reports over transactions
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary godoc
// @Summary Income and expense summary
// @Description Totals per type and per category over a trailing window. Unknown periods cover all transactions.
// @Tags analytics
// @Produce json
// @Param period query string false "week, month (default) or year"
// @Success 200 {object} api.Summary
// @Failure 500 {object} api.ErrorResponse
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	var period *string
	if values, ok := c.QueryParams()["period"]; ok && len(values) > 0 {
		period = &values[0]
	}
	summary, err := h.analyticsService.GetSummary(c.Request().Context(), period)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch analytics summary")
		return NewInternalError(c, "Failed to fetch analytics summary")
	}
	return c.JSON(http.StatusOK, api.NewSummary(summary))
}

// GetTrends godoc
// @Summary Monthly trends
// @Description Totals per calendar month and type, newest month first
// @Tags analytics
// @Produce json
// @Param months query int false "Months to cover (default 12)"
// @Success 200 {array} api.MonthlyTrend
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(c echo.Context) error {
	months, ok := parseMonths(c.QueryParam("months"))
	if !ok {
		return NewValidationError(c, "Invalid months parameter")
	}

	trends, err := h.analyticsService.GetTrends(c.Request().Context(), months)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Int("months", months).Msg("Failed to fetch trends")
		return NewInternalError(c, "Failed to fetch trends")
	}
	return c.JSON(http.StatusOK, api.NewMonthlyTrends(trends))
}

// parseMonths defaults an absent value and rejects anything but an integer
// between 1 and MaxTrendMonths
func parseMonths(s string) (int, bool) {
	if s == "" {
		return domain.DefaultTrendMonths, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > domain.MaxTrendMonths {
		return 0, false
	}
	return n, true
}
