package service

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo       domain.GoalRepository
	eventPublisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *GoalService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Title        string
	Description  *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Category     string
}

// UpdateGoalInput holds the input for a full goal edit. A nil CurrentAmount resets it to zero.
type UpdateGoalInput struct {
	Title         string
	TargetAmount  *decimal.Decimal
	TargetDate    *time.Time
	CurrentAmount *decimal.Decimal
}

// ListGoals returns every goal, newest first
func (s *GoalService) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	return s.goalRepo.GetAll(ctx)
}

// CreateGoal validates input and stores a new active goal
func (s *GoalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	title, err := validateGoalFields(input.Title, input.TargetAmount)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultGoalCategory
	}
	if domain.ExceedsLength(category, domain.MaxCategoryLength) {
		return nil, domain.ErrCategoryTooLong
	}

	created, err := s.goalRepo.Create(ctx, &domain.CreateGoalData{
		Title:        title,
		Description:  input.Description,
		TargetAmount: *input.TargetAmount,
		TargetDate:   input.TargetDate,
		Category:     category,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.GoalCreated(api.NewGoal(created)))
	return created, nil
}

// AddProgress adds amount to a goal's saved total. Any numeric amount is
// accepted; the goal completes once the total reaches its target.
func (s *GoalService) AddProgress(ctx context.Context, id int32, amount *decimal.Decimal) (*domain.Goal, error) {
	if amount == nil {
		return nil, domain.ErrMissingRequiredFields
	}
	if domain.AmountOutOfRange(*amount) {
		return nil, domain.ErrInvalidAmount
	}

	updated, err := s.goalRepo.AddProgress(ctx, id, *amount)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.GoalUpdated(api.NewGoal(updated)))
	return updated, nil
}

// UpdateGoal replaces the editable fields of a goal
func (s *GoalService) UpdateGoal(ctx context.Context, id int32, input UpdateGoalInput) (*domain.Goal, error) {
	title, err := validateGoalFields(input.Title, input.TargetAmount)
	if err != nil {
		return nil, err
	}

	current := decimal.Zero
	if input.CurrentAmount != nil {
		if domain.AmountOutOfRange(*input.CurrentAmount) {
			return nil, domain.ErrInvalidAmount
		}
		current = *input.CurrentAmount
	}

	updated, err := s.goalRepo.Update(ctx, id, &domain.UpdateGoalData{
		Title:         title,
		TargetAmount:  *input.TargetAmount,
		TargetDate:    input.TargetDate,
		CurrentAmount: current,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.GoalUpdated(api.NewGoal(updated)))
	return updated, nil
}

// DeleteGoal removes a goal and returns its ID
func (s *GoalService) DeleteGoal(ctx context.Context, id int32) (int32, error) {
	deletedID, err := s.goalRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.publishEvent(websocket.GoalDeleted(deletedID))
	return deletedID, nil
}

func validateGoalFields(title string, target *decimal.Decimal) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || target == nil {
		return "", domain.ErrMissingRequiredFields
	}
	if domain.ExceedsLength(title, domain.MaxTitleLength) {
		return "", domain.ErrTitleTooLong
	}
	if !target.IsPositive() {
		return "", domain.ErrInvalidTargetAmount
	}
	if domain.AmountOutOfRange(*target) {
		return "", domain.ErrInvalidAmount
	}
	return title, nil
}
