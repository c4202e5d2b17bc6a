package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// parseID reads the :id path parameter as a positive int32
func parseID(c echo.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parseLimit falls back to the default page size for absent, non-numeric or non-positive values
func parseLimit(s string) int32 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n <= 0 {
		return domain.DefaultTransactionLimit
	}
	return int32(n)
}

// parseOffset falls back to zero for absent, non-numeric or negative values
func parseOffset(s string) int32 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n < 0 {
		return domain.DefaultTransactionOffset
	}
	return int32(n)
}

// parseOptionalInt returns nil for an empty string
func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptionalDate returns nil for an empty string and ErrInvalidDate for anything but YYYY-MM-DD
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := api.ParseDate(s)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &d.Time, nil
}

// parseTransactionFilters reads type, category, startDate and endDate from the query string
func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, error) {
	filters := &domain.TransactionFilters{}

	if v := c.QueryParam("type"); v != "" {
		t := domain.TransactionType(v)
		if !t.Valid() {
			return nil, domain.ErrInvalidTransactionType
		}
		filters.Type = &t
	}
	if v := c.QueryParam("category"); v != "" {
		filters.Category = &v
	}

	var err error
	if filters.StartDate, err = parseOptionalDate(c.QueryParam("startDate")); err != nil {
		return nil, err
	}
	if filters.EndDate, err = parseOptionalDate(c.QueryParam("endDate")); err != nil {
		return nil, err
	}
	return filters, nil
}

func moneyToDecimal(m *api.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Decimal
	return &d
}
