package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title exceeds maximum length")
	ErrInvalidTargetAmount = errors.New("target amount must be positive")
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// DefaultGoalCategory is stored when a goal is created without a category
const DefaultGoalCategory = "General"

type Goal struct {
	ID            int32
	Title         string
	Description   *string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Category      string
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StatusFor returns the status a goal must carry for the given amounts.
// A goal is completed exactly when current reaches target.
func StatusFor(current, target decimal.Decimal) GoalStatus {
	if current.GreaterThanOrEqual(target) {
		return GoalStatusCompleted
	}
	return GoalStatusActive
}

// CreateGoalData holds the fields accepted when creating a goal
type CreateGoalData struct {
	Title        string
	Description  *string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Category     string
}

// UpdateGoalData holds the fields replaced by a full goal edit
type UpdateGoalData struct {
	Title         string
	TargetAmount  decimal.Decimal
	TargetDate    *time.Time
	CurrentAmount decimal.Decimal
}

type GoalRepository interface {
	Create(ctx context.Context, data *CreateGoalData) (*Goal, error)
	GetAll(ctx context.Context) ([]*Goal, error)
	// AddProgress adds amount to current_amount and promotes the goal to
	// completed when it reaches its target. It never demotes.
	AddProgress(ctx context.Context, id int32, amount decimal.Decimal) (*Goal, error)
	// Update replaces the editable fields and recomputes status in both directions.
	Update(ctx context.Context, id int32, data *UpdateGoalData) (*Goal, error)
	Delete(ctx context.Context, id int32) (int32, error)
}
