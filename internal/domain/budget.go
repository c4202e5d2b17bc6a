package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID           int32
	Category     string
	MonthlyLimit decimal.Decimal
	SpentAmount  decimal.Decimal
	Month        int
	Year         int
	UserID       *int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertBudgetData is keyed by (category, month, year). SpentAmount is only
// written when the row is first inserted.
type UpsertBudgetData struct {
	Category     string
	MonthlyLimit decimal.Decimal
	SpentAmount  decimal.Decimal
	Month        int
	Year         int
}

const (
	MinBudgetYear = 1900
	MaxBudgetYear = 2100
)

type BudgetRepository interface {
	GetByMonth(ctx context.Context, month, year int) ([]*Budget, error)
	Upsert(ctx context.Context, data *UpsertBudgetData) (*Budget, error)
}
