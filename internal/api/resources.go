package api

import (
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Transaction represents a transaction in API responses
type Transaction struct {
	ID            int32     `json:"id"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Amount        Money     `json:"amount"`
	Date          Date      `json:"date"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TransactionRequest is the body of POST /transactions and PUT /transactions/:id.
// Pointer fields distinguish an absent value from a zero one.
type TransactionRequest struct {
	Type          string `json:"type"`
	Description   string `json:"description"`
	Amount        *Money `json:"amount"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// DeleteTransactionResponse is returned by DELETE /transactions/:id
type DeleteTransactionResponse struct {
	Success bool  `json:"success"`
	ID      int32 `json:"id"`
}

// Goal represents a savings goal in API responses
type Goal struct {
	ID            int32     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	TargetAmount  Money     `json:"target_amount"`
	CurrentAmount Money     `json:"current_amount"`
	TargetDate    *Date     `json:"target_date"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateGoalRequest is the body of POST /goals
type CreateGoalRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	TargetAmount *Money  `json:"target_amount"`
	TargetDate   *string `json:"target_date,omitempty"`
	Category     string  `json:"category,omitempty"`
}

// UpdateGoalRequest is the body of PUT /goals/:id
type UpdateGoalRequest struct {
	Title         string  `json:"title"`
	TargetAmount  *Money  `json:"target_amount"`
	TargetDate    *string `json:"target_date,omitempty"`
	CurrentAmount *Money  `json:"current_amount,omitempty"`
}

// GoalProgressRequest is the body of PUT /goals/:id/progress
type GoalProgressRequest struct {
	Amount *Money `json:"amount"`
}

// DeleteGoalResponse is returned by DELETE /goals/:id
type DeleteGoalResponse struct {
	Message string `json:"message"`
	ID      int32  `json:"id"`
}

// Budget represents a monthly category budget in API responses
type Budget struct {
	ID           int32     `json:"id"`
	Category     string    `json:"category"`
	MonthlyLimit Money     `json:"monthly_limit"`
	SpentAmount  Money     `json:"spent_amount"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	UserID       *int32    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BudgetRequest is the body of POST /budgets. Month and year default to the current month.
type BudgetRequest struct {
	Category     string `json:"category"`
	MonthlyLimit *Money `json:"monthly_limit"`
	SpentAmount  *Money `json:"spent_amount,omitempty"`
	Month        *int   `json:"month,omitempty"`
	Year         *int   `json:"year,omitempty"`
}

// Category represents a transaction category in API responses
type Category struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	UserID    *int32    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TypeSummary is one per-type row of an analytics summary
type TypeSummary struct {
	Type             string `json:"type"`
	TransactionCount int64  `json:"transaction_count"`
	TotalAmount      Money  `json:"total_amount"`
	AvgAmount        Money  `json:"avg_amount"`
}

// CategorySummary is one per-(category, type) row of an analytics summary
type CategorySummary struct {
	Category         string `json:"category"`
	Type             string `json:"type"`
	TotalAmount      Money  `json:"total_amount"`
	TransactionCount int64  `json:"transaction_count"`
}

// Summary is returned by GET /analytics/summary
type Summary struct {
	Summary    []TypeSummary     `json:"summary"`
	Categories []CategorySummary `json:"categories"`
	Period     string            `json:"period"`
}

// MonthlyTrend is one (month, type) bucket of GET /analytics/trends
type MonthlyTrend struct {
	Month            Date   `json:"month"`
	Type             string `json:"type"`
	TotalAmount      Money  `json:"total_amount"`
	TransactionCount int64  `json:"transaction_count"`
}

// Export is returned by POST /exports/transactions
type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewTransaction(t *domain.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        NewMoney(t.Amount),
		Date:          NewDate(t.Date),
		Category:      t.Category,
		PaymentMethod: string(t.PaymentMethod),
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func NewTransactions(ts []*domain.Transaction) []Transaction {
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTransaction(t))
	}
	return out
}

func NewGoal(g *domain.Goal) Goal {
	return Goal{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  NewMoney(g.TargetAmount),
		CurrentAmount: NewMoney(g.CurrentAmount),
		TargetDate:    DatePtr(g.TargetDate),
		Category:      g.Category,
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func NewGoals(gs []*domain.Goal) []Goal {
	out := make([]Goal, 0, len(gs))
	for _, g := range gs {
		out = append(out, NewGoal(g))
	}
	return out
}

func NewBudget(b *domain.Budget) Budget {
	return Budget{
		ID:           b.ID,
		Category:     b.Category,
		MonthlyLimit: NewMoney(b.MonthlyLimit),
		SpentAmount:  NewMoney(b.SpentAmount),
		Month:        b.Month,
		Year:         b.Year,
		UserID:       b.UserID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func NewBudgets(bs []*domain.Budget) []Budget {
	out := make([]Budget, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBudget(b))
	}
	return out
}

func NewCategories(cs []*domain.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category{
			ID:        c.ID,
			Name:      c.Name,
			Type:      string(c.Type),
			Icon:      c.Icon,
			UserID:    c.UserID,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func NewSummary(s *domain.Summary) Summary {
	out := Summary{
		Summary:    make([]TypeSummary, 0, len(s.Summary)),
		Categories: make([]CategorySummary, 0, len(s.Categories)),
		Period:     string(s.Period),
	}
	for _, t := range s.Summary {
		out.Summary = append(out.Summary, TypeSummary{
			Type:             string(t.Type),
			TransactionCount: t.TransactionCount,
			TotalAmount:      NewMoney(t.TotalAmount),
			AvgAmount:        NewMoney(t.AvgAmount),
		})
	}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, CategorySummary{
			Category:         c.Category,
			Type:             string(c.Type),
			TotalAmount:      NewMoney(c.TotalAmount),
			TransactionCount: c.TransactionCount,
		})
	}
	return out
}

func NewMonthlyTrends(ts []*domain.MonthlyTrend) []MonthlyTrend {
	out := make([]MonthlyTrend, 0, len(ts))
	for _, t := range ts {
		out = append(out, MonthlyTrend{
			Month:            NewDate(t.Month),
			Type:             string(t.Type),
			TotalAmount:      NewMoney(t.TotalAmount),
			TransactionCount: t.TransactionCount,
		})
	}
	return out
}

func NewExport(e *domain.Export) Export {
	return Export{Key: e.Key, URL: e.URL, Rows: e.Rows, ExpiresAt: e.ExpiresAt}
}
