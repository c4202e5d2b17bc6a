package handler

import (
	"errors"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExportHandler renders transaction exports into object storage
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportTransactions godoc
// @Summary Export transactions as CSV
// @Description Uploads every matching transaction as CSV and returns a temporary download link
// @Tags exports
// @Produce json
// @Param type query string false "income or expense"
// @Param category query string false "Exact category name"
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 201 {object} api.Export
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Failure 503 {object} api.ErrorResponse
// @Router /exports/transactions [post]
func (h *ExportHandler) ExportTransactions(c echo.Context) error {
	if !h.exportService.Enabled() {
		return NewServiceUnavailableError(c, "Export storage not configured")
	}
	filters, err := parseTransactionFilters(c)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}

	export, err := h.exportService.ExportTransactions(c.Request().Context(), filters)
	if err != nil {
		if errors.Is(err, domain.ErrStorageNotConfigured) {
			return NewServiceUnavailableError(c, "Export storage not configured")
		}
		log.Error().Err(err).Msg("Failed to export transactions")
		return NewInternalError(c, "Failed to export transactions")
	}

	log.Info().Str("key", export.Key).Int("rows", export.Rows).Msg("Transactions exported")
	return c.JSON(http.StatusCreated, api.NewExport(export))
}
