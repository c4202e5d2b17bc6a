package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler serves the global category list
type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {array} api.Category
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Msg("Failed to fetch categories")
		return NewInternalError(c, "Failed to fetch categories")
	}
	return c.JSON(http.StatusOK, api.NewCategories(categories))
}
