package postgres

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, category, monthly_limit, spent_amount, month, year, user_id, created_at, updated_at`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// GetByMonth returns the budgets of one month ordered by category
func (r *BudgetRepository) GetByMonth(ctx context.Context, month, year int) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE month = $1 AND year = $2
		ORDER BY category`,
		month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan budgets: %w", err)
	}
	return budgets, nil
}

// Upsert inserts a budget or, when (category, month, year, user_id) already
// exists, replaces only its monthly limit. spent_amount keeps its stored value.
func (r *BudgetRepository) Upsert(ctx context.Context, data *domain.UpsertBudgetData) (*domain.Budget, error) {
	limit, err := decimalToPgNumeric(data.MonthlyLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly limit: %w", err)
	}
	spent, err := decimalToPgNumeric(data.SpentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid spent amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (category, monthly_limit, spent_amount, month, year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, month, year, user_id)
		DO UPDATE SET monthly_limit = EXCLUDED.monthly_limit, updated_at = CURRENT_TIMESTAMP
		RETURNING `+budgetColumns,
		data.Category, limit, spent, data.Month, data.Year,
	)
	budget, err := scanBudget(row)
	if err != nil {
		return nil, writeError("upsert budget", err)
	}
	return budget, nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b      domain.Budget
		limit  pgtype.Numeric
		spent  pgtype.Numeric
		month  int32
		year   int32
		userID pgtype.Int4
	)
	err := row.Scan(&b.ID, &b.Category, &limit, &spent, &month, &year, &userID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.MonthlyLimit = pgNumericToDecimal(limit)
	b.SpentAmount = pgNumericToDecimal(spent)
	b.Month = int(month)
	b.Year = int(year)
	b.UserID = pgInt4ToInt32Ptr(userID)
	return &b, nil
}
