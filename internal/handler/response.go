package handler

import (
	"errors"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every error answer
type ErrorResponse = api.ErrorResponse

// NewValidationError creates a 400 response
func NewValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// NewNotFoundError creates a 404 response
func NewNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// NewInternalError creates a 500 response. The message must not carry error details.
func NewInternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// NewServiceUnavailableError creates a 503 response
func NewServiceUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: message})
}

// validationErrors maps domain validation errors to client-facing messages
var validationErrors = []struct {
	err     error
	message string
}{
	{domain.ErrMissingRequiredFields, "Missing required fields"},
	{domain.ErrInvalidTransactionType, "Invalid transaction type"},
	{domain.ErrInvalidPaymentMethod, "Invalid payment method"},
	{domain.ErrInvalidAmount, "Invalid amount"},
	{domain.ErrTitleRequired, "Title is required"},
	{domain.ErrInvalidTargetAmount, "Target amount must be greater than zero"},
	{domain.ErrInvalidDate, "Invalid date, expected YYYY-MM-DD"},
	{domain.ErrInvalidMonth, "Invalid month"},
	{domain.ErrInvalidYear, "Invalid year"},
	{domain.ErrInvalidMonthsWindow, "Invalid months parameter"},
	{domain.ErrDescriptionTooLong, "Description is too long"},
	{domain.ErrNotesTooLong, "Notes are too long"},
	{domain.ErrTitleTooLong, "Title is too long"},
	{domain.ErrCategoryTooLong, "Category is too long"},
	{domain.ErrInvalidInput, "Invalid input"},
}

// validationMessage returns the 400 message for err, or false when err is not a validation error
func validationMessage(err error) (string, bool) {
	for _, v := range validationErrors {
		if errors.Is(err, v.err) {
			return v.message, true
		}
	}
	return "", false
}
