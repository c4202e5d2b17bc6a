package domain

import (
	"errors"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternalError         = errors.New("internal error")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidDate           = errors.New("invalid date")
	ErrCategoryTooLong       = errors.New("category exceeds maximum length")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrInvalidYear           = errors.New("invalid year")
	ErrInvalidMonthsWindow   = errors.New("invalid months parameter")
	ErrStorageNotConfigured  = errors.New("object storage not configured")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxNotesLength       = 1000
	MaxTitleLength       = 255
	MaxCategoryLength    = 100
)

// MaxAmount is the largest magnitude a NUMERIC(12,2) money column holds
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ExceedsLength reports whether s has more than max characters. Limits count
// characters like the VARCHAR columns they guard, not bytes.
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// AmountOutOfRange reports whether d cannot be stored in a money column
func AmountOutOfRange(d decimal.Decimal) bool {
	return d.Abs().GreaterThan(MaxAmount)
}
