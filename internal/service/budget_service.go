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

// BudgetService handles monthly budget business logic
type BudgetService struct {
	budgetRepo     domain.BudgetRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock replaces the time source used for month defaults
func (s *BudgetService) SetClock(now func() time.Time) {
	s.now = now
}

// BudgetInput holds the input for creating or updating a budget.
// Nil Month and Year default to the current month.
type BudgetInput struct {
	Category     string
	MonthlyLimit *decimal.Decimal
	SpentAmount  *decimal.Decimal
	Month        *int
	Year         *int
}

// ListBudgets returns the budgets of one month. Nil values default to the current month.
func (s *BudgetService) ListBudgets(ctx context.Context, month, year *int) ([]*domain.Budget, error) {
	m, y, err := s.resolveMonth(month, year)
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByMonth(ctx, m, y)
}

// UpsertBudget creates a budget or replaces the monthly limit of an existing one
func (s *BudgetService) UpsertBudget(ctx context.Context, input BudgetInput) (*domain.Budget, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" || input.MonthlyLimit == nil {
		return nil, domain.ErrMissingRequiredFields
	}
	if domain.ExceedsLength(category, domain.MaxCategoryLength) {
		return nil, domain.ErrCategoryTooLong
	}
	if input.MonthlyLimit.IsNegative() || domain.AmountOutOfRange(*input.MonthlyLimit) {
		return nil, domain.ErrInvalidAmount
	}

	spent := decimal.Zero
	if input.SpentAmount != nil {
		if input.SpentAmount.IsNegative() || domain.AmountOutOfRange(*input.SpentAmount) {
			return nil, domain.ErrInvalidAmount
		}
		spent = *input.SpentAmount
	}

	month, year, err := s.resolveMonth(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Upsert(ctx, &domain.UpsertBudgetData{
		Category:     category,
		MonthlyLimit: *input.MonthlyLimit,
		SpentAmount:  spent,
		Month:        month,
		Year:         year,
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.BudgetUpdated(api.NewBudget(budget)))
	}
	return budget, nil
}

func (s *BudgetService) resolveMonth(month, year *int) (int, int, error) {
	now := s.now()
	m, y := int(now.Month()), now.Year()

	if month != nil {
		if *month < 1 || *month > 12 {
			return 0, 0, domain.ErrInvalidMonth
		}
		m = *month
	}
	if year != nil {
		if *year < domain.MinBudgetYear || *year > domain.MaxBudgetYear {
			return 0, 0, domain.ErrInvalidYear
		}
		y = *year
	}
	return m, y, nil
}
