package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository runs read-only aggregates over the transactions table
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// SummarizeByType returns count, total and average per transaction type
func (r *AnalyticsRepository) SummarizeByType(ctx context.Context, since *time.Time) ([]*domain.TypeSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT type,
		       COUNT(*) AS transaction_count,
		       SUM(amount) AS total_amount,
		       AVG(amount) AS avg_amount
		FROM transactions
		WHERE $1::date IS NULL OR date >= $1::date
		GROUP BY type
		ORDER BY type`,
		toNullablePgDate(since),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize by type: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.TypeSummary, error) {
		var (
			s      domain.TypeSummary
			txType string
			total  pgtype.Numeric
			avg    pgtype.Numeric
		)
		if err := row.Scan(&txType, &s.TransactionCount, &total, &avg); err != nil {
			return nil, err
		}
		s.Type = domain.TransactionType(txType)
		s.TotalAmount = pgNumericToDecimal(total)
		s.AvgAmount = pgNumericToDecimal(avg)
		return &s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan type summaries: %w", err)
	}
	return summaries, nil
}

// SummarizeByCategory returns total and count per (category, type), largest total first
func (r *AnalyticsRepository) SummarizeByCategory(ctx context.Context, since *time.Time) ([]*domain.CategorySummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category,
		       type,
		       SUM(amount) AS total_amount,
		       COUNT(*) AS transaction_count
		FROM transactions
		WHERE $1::date IS NULL OR date >= $1::date
		GROUP BY category, type
		ORDER BY total_amount DESC, category, type`,
		toNullablePgDate(since),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize by category: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.CategorySummary, error) {
		var (
			s      domain.CategorySummary
			txType string
			total  pgtype.Numeric
		)
		if err := row.Scan(&s.Category, &txType, &total, &s.TransactionCount); err != nil {
			return nil, err
		}
		s.Type = domain.TransactionType(txType)
		s.TotalAmount = pgNumericToDecimal(total)
		return &s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan category summaries: %w", err)
	}
	return summaries, nil
}

// MonthlyTrends buckets transactions by calendar month and type, newest month first
func (r *AnalyticsRepository) MonthlyTrends(ctx context.Context, since time.Time) ([]*domain.MonthlyTrend, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DATE_TRUNC('month', date)::date AS month,
		       type,
		       SUM(amount) AS total_amount,
		       COUNT(*) AS transaction_count
		FROM transactions
		WHERE date >= $1
		GROUP BY DATE_TRUNC('month', date), type
		ORDER BY month DESC, type`,
		toPgDate(since),
	)
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}
	trends, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.MonthlyTrend, error) {
		var (
			t      domain.MonthlyTrend
			month  pgtype.Date
			txType string
			total  pgtype.Numeric
		)
		if err := row.Scan(&month, &txType, &total, &t.TransactionCount); err != nil {
			return nil, err
		}
		t.Month = month.Time
		t.Type = domain.TransactionType(txType)
		t.TotalAmount = pgNumericToDecimal(total)
		return &t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan monthly trends: %w", err)
	}
	return trends, nil
}
