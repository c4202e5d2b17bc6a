package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetBudgets godoc
// @Summary List budgets of a month
// @Description Month and year default to the current month
// @Tags budgets
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {array} api.Budget
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	month, err := parseOptionalInt(c.QueryParam("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month")
	}
	year, err := parseOptionalInt(c.QueryParam("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year")
	}

	budgets, err := h.budgetService.ListBudgets(c.Request().Context(), month, year)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Msg("Failed to fetch budgets")
		return NewInternalError(c, "Failed to fetch budgets")
	}
	return c.JSON(http.StatusOK, api.NewBudgets(budgets))
}

// UpsertBudget godoc
// @Summary Create or update a budget
// @Description Sets the monthly limit of a category. An existing row keeps its spent amount.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body api.BudgetRequest true "Budget"
// @Success 200 {object} api.Budget
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	var req api.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	budget, err := h.budgetService.UpsertBudget(c.Request().Context(), service.BudgetInput{
		Category:     req.Category,
		MonthlyLimit: moneyToDecimal(req.MonthlyLimit),
		SpentAmount:  moneyToDecimal(req.SpentAmount),
		Month:        req.Month,
		Year:         req.Year,
	})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Msg("Failed to create/update budget")
		return NewInternalError(c, "Failed to create/update budget")
	}
	return c.JSON(http.StatusOK, api.NewBudget(budget))
}
