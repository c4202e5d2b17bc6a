package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const goalColumns = `id, title, description, target_amount, current_amount, target_date, category, status, created_at, updated_at`

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create inserts a goal. current_amount and status take their column defaults.
func (r *GoalRepository) Create(ctx context.Context, data *domain.CreateGoalData) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(data.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (title, description, target_amount, target_date, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+goalColumns,
		data.Title, toPgText(data.Description), target, toNullablePgDate(data.TargetDate), data.Category,
	)
	goal, err := scanGoal(row)
	if err != nil {
		return nil, writeError("insert goal", err)
	}
	return goal, nil
}

// GetAll returns every goal, newest first
func (r *GoalRepository) GetAll(ctx context.Context) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Goal, error) {
		return scanGoal(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan goals: %w", err)
	}
	return goals, nil
}

// AddProgress adds amount to current_amount and completes the goal in the
// same statement, so readers never see an over-target goal still active.
func (r *GoalRepository) AddProgress(ctx context.Context, id int32, amount decimal.Decimal) (*domain.Goal, error) {
	delta, err := decimalToPgNumeric(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE goals
		SET current_amount = current_amount + $1::numeric,
		    status = CASE
		        WHEN current_amount + $1::numeric >= target_amount THEN 'completed'
		        ELSE status
		    END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING `+goalColumns,
		delta, id,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, writeError("add goal progress", err)
	}
	return goal, nil
}

// Update replaces the editable goal fields and recomputes status from the new amounts
func (r *GoalRepository) Update(ctx context.Context, id int32, data *domain.UpdateGoalData) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(data.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(data.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE goals
		SET title = $1,
		    target_amount = $2::numeric,
		    target_date = $3,
		    current_amount = $4::numeric,
		    status = CASE WHEN $4::numeric >= $2::numeric THEN 'completed' ELSE 'active' END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING `+goalColumns,
		data.Title, target, toNullablePgDate(data.TargetDate), current, id,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, writeError("update goal", err)
	}
	return goal, nil
}

// Delete removes a goal and returns its ID
func (r *GoalRepository) Delete(ctx context.Context, id int32) (int32, error) {
	var deletedID int32
	err := r.pool.QueryRow(ctx, `DELETE FROM goals WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrGoalNotFound
		}
		return 0, fmt.Errorf("delete goal: %w", err)
	}
	return deletedID, nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		g           domain.Goal
		description pgtype.Text
		target      pgtype.Numeric
		current     pgtype.Numeric
		targetDate  pgtype.Date
		status      string
	)
	err := row.Scan(
		&g.ID,
		&g.Title,
		&description,
		&target,
		&current,
		&targetDate,
		&g.Category,
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Description = pgTextToStringPtr(description)
	g.TargetAmount = pgNumericToDecimal(target)
	g.CurrentAmount = pgNumericToDecimal(current)
	g.TargetDate = pgDateToTimePtr(targetDate)
	g.Status = domain.GoalStatus(status)
	return &g, nil
}
