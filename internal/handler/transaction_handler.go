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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetTransactions godoc
// @Summary List transactions
// @Description Page through transactions ordered by date, newest first
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Rows to skip (default 0)"
// @Param type query string false "income or expense"
// @Param category query string false "Exact category name"
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {array} api.Transaction
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, err := parseTransactionFilters(c)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}
	page := domain.Pagination{
		Limit:  parseLimit(c.QueryParam("limit")),
		Offset: parseOffset(c.QueryParam("offset")),
	}

	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), filters, page)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch transactions")
		return NewInternalError(c, "Failed to fetch transactions")
	}
	return c.JSON(http.StatusOK, api.NewTransactions(transactions))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Record a new income or expense. An amount of zero is accepted.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body api.TransactionRequest true "Transaction"
// @Success 201 {object} api.Transaction
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req api.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	input, err := toTransactionInput(req)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), input)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}
	return c.JSON(http.StatusCreated, api.NewTransaction(transaction))
}

// UpdateTransaction godoc
// @Summary Replace a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body api.TransactionRequest true "Transaction"
// @Success 200 {object} api.Transaction
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid id")
	}
	var req api.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	input, err := toTransactionInput(req)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Int32("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, api.NewTransaction(transaction))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} api.DeleteTransactionResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid id")
	}

	deletedID, err := h.transactionService.DeleteTransaction(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}
	return c.JSON(http.StatusOK, api.DeleteTransactionResponse{Success: true, ID: deletedID})
}

// toTransactionInput converts the wire body. An absent date is left for the service to reject.
func toTransactionInput(req api.TransactionRequest) (service.TransactionInput, error) {
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		Type:          req.Type,
		Description:   req.Description,
		Amount:        moneyToDecimal(req.Amount),
		Date:          date,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}, nil
}
