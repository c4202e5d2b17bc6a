package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period selects the trailing window of an analytics summary
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriod is used when a summary request names no period
const DefaultPeriod = PeriodMonth

// WindowDays returns the trailing window length for p. Unknown periods have
// no window and report false.
func (p Period) WindowDays() (int, bool) {
	switch p {
	case PeriodWeek:
		return 7, true
	case PeriodMonth:
		return 30, true
	case PeriodYear:
		return 365, true
	}
	return 0, false
}

const DefaultTrendMonths = 12

// MaxTrendMonths caps the trend window at a century so its start date stays
// well inside the range PostgreSQL dates can hold
const MaxTrendMonths = 1200

type TypeSummary struct {
	Type             TransactionType
	TransactionCount int64
	TotalAmount      decimal.Decimal
	AvgAmount        decimal.Decimal
}

type CategorySummary struct {
	Category         string
	Type             TransactionType
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

type Summary struct {
	Summary    []*TypeSummary
	Categories []*CategorySummary
	Period     Period
}

type MonthlyTrend struct {
	Month            time.Time
	Type             TransactionType
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

type AnalyticsRepository interface {
	// SummarizeByType aggregates transactions dated on or after since. A nil
	// since aggregates all transactions.
	SummarizeByType(ctx context.Context, since *time.Time) ([]*TypeSummary, error)
	SummarizeByCategory(ctx context.Context, since *time.Time) ([]*CategorySummary, error)
	// MonthlyTrends buckets transactions dated on or after since by calendar month and type
	MonthlyTrends(ctx context.Context, since time.Time) ([]*MonthlyTrend, error)
}
