package service

import (
	"context"
	"strings"
	"testing"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoal_Defaults(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewGoalService(repo)
	svc.SetEventPublisher(publisher)

	goal, err := svc.CreateGoal(context.Background(), CreateGoalInput{
		Title:        "  Emergency fund ",
		TargetAmount: decPtr("1000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Emergency fund", goal.Title)
	assert.Equal(t, domain.DefaultGoalCategory, goal.Category)
	assert.Equal(t, domain.GoalStatusActive, goal.Status)
	assert.True(t, goal.CurrentAmount.IsZero())
	assert.Nil(t, goal.TargetDate)
	assert.Equal(t, []string{"goal.created"}, publisher.Types())
}

func TestCreateGoal_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateGoalInput
		wantErr error
	}{
		{"missing title", CreateGoalInput{TargetAmount: decPtr("10")}, domain.ErrMissingRequiredFields},
		{"missing target", CreateGoalInput{Title: "Car"}, domain.ErrMissingRequiredFields},
		{"zero target", CreateGoalInput{Title: "Car", TargetAmount: decPtr("0")}, domain.ErrInvalidTargetAmount},
		{"negative target", CreateGoalInput{Title: "Car", TargetAmount: decPtr("-5")}, domain.ErrInvalidTargetAmount},
		{"title too long", CreateGoalInput{Title: strings.Repeat("t", 256), TargetAmount: decPtr("10")}, domain.ErrTitleTooLong},
		{"multibyte title too long", CreateGoalInput{Title: strings.Repeat("ß", 256), TargetAmount: decPtr("10")}, domain.ErrTitleTooLong},
		{"target beyond column range", CreateGoalInput{Title: "Yacht", TargetAmount: decPtr("1e11")}, domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockGoalRepository()
			svc := NewGoalService(repo)

			_, err := svc.CreateGoal(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.Goals)
		})
	}
}

func TestAddProgress_CompletesAtTarget(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{
		ID:            1,
		Title:         "Laptop",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(90),
		Status:        domain.GoalStatusActive,
	})
	publisher := testutil.NewMockEventPublisher()
	svc := NewGoalService(repo)
	svc.SetEventPublisher(publisher)

	goal, err := svc.AddProgress(context.Background(), 1, decPtr("10"))
	require.NoError(t, err)

	assert.True(t, goal.CurrentAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
	assert.Equal(t, []string{"goal.updated"}, publisher.Types())
}

func TestAddProgress_NeverDemotes(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{
		ID:            1,
		Title:         "Laptop",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(120),
		Status:        domain.GoalStatusCompleted,
	})
	svc := NewGoalService(repo)

	goal, err := svc.AddProgress(context.Background(), 1, decPtr("-50"))
	require.NoError(t, err)

	assert.True(t, goal.CurrentAmount.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
}

func TestAddProgress_Errors(t *testing.T) {
	svc := NewGoalService(testutil.NewMockGoalRepository())

	_, err := svc.AddProgress(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredFields)

	_, err = svc.AddProgress(context.Background(), 42, decPtr("5"))
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	_, err = svc.AddProgress(context.Background(), 1, decPtr("-100000000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateGoal_MultibyteTitleWithinLimit(t *testing.T) {
	svc := NewGoalService(testutil.NewMockGoalRepository())
	title := strings.Repeat("é", 200)

	goal, err := svc.CreateGoal(context.Background(), CreateGoalInput{
		Title:        title,
		TargetAmount: decPtr("10"),
		Category:     strings.Repeat("日", 100),
	})
	require.NoError(t, err)
	assert.Equal(t, title, goal.Title)
}

func TestUpdateGoal_CurrentAmountBeyondColumnRange(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{ID: 1, Title: "Car", TargetAmount: decimal.NewFromInt(10), Status: domain.GoalStatusActive})
	svc := NewGoalService(repo)

	_, err := svc.UpdateGoal(context.Background(), 1, UpdateGoalInput{
		Title:         "Car",
		TargetAmount:  decPtr("10"),
		CurrentAmount: decPtr("100000000000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestUpdateGoal_RecomputesStatusBothWays(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{
		ID:            1,
		Title:         "Laptop",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(100),
		Status:        domain.GoalStatusCompleted,
	})
	svc := NewGoalService(repo)

	goal, err := svc.UpdateGoal(context.Background(), 1, UpdateGoalInput{
		Title:         "Laptop",
		TargetAmount:  decPtr("100"),
		CurrentAmount: decPtr("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusActive, goal.Status, "edit below target reactivates")

	goal, err = svc.UpdateGoal(context.Background(), 1, UpdateGoalInput{
		Title:         "Laptop",
		TargetAmount:  decPtr("40"),
		CurrentAmount: decPtr("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
}

func TestUpdateGoal_AbsentCurrentAmountResetsToZero(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{
		ID:            1,
		Title:         "Laptop",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(30),
		Status:        domain.GoalStatusActive,
	})
	svc := NewGoalService(repo)

	goal, err := svc.UpdateGoal(context.Background(), 1, UpdateGoalInput{Title: "Laptop", TargetAmount: decPtr("100")})
	require.NoError(t, err)
	assert.True(t, goal.CurrentAmount.IsZero())
}

func TestUpdateGoal_NotFound(t *testing.T) {
	svc := NewGoalService(testutil.NewMockGoalRepository())

	_, err := svc.UpdateGoal(context.Background(), 5, UpdateGoalInput{Title: "x", TargetAmount: decPtr("1")})
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestDeleteGoal(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	repo.AddGoal(&domain.Goal{ID: 2, Title: "Trip", TargetAmount: decimal.NewFromInt(10)})
	publisher := testutil.NewMockEventPublisher()
	svc := NewGoalService(repo)
	svc.SetEventPublisher(publisher)

	id, err := svc.DeleteGoal(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), id)

	_, err = svc.DeleteGoal(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	assert.Equal(t, []string{"goal.deleted"}, publisher.Types())
}
