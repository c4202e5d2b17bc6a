package middleware

import (
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/labstack/echo/v4"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// tooManyRequestsError creates a 429 response in the API error shape
func tooManyRequestsError(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: rateLimitMessage})
}
