package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Store owns one State and keeps it in step with the server. Every action
// performs a single request and merges its result only when it succeeds.
type Store struct {
	client *Client
	mu     sync.RWMutex
	state  State
}

// NewStore creates a Store with empty state
func NewStore(client *Client) *Store {
	return &Store{client: client, state: NewState()}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// SetFilter changes the transaction list filter
func (s *Store) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("unknown filter %q", f)
	}
	s.update(func(st *State) { st.Filter = f })
	return nil
}

// Load fetches categories, transactions, goals and analytics concurrently.
// Each part that succeeds is merged; the first failure is returned and the
// failed parts keep their previous values.
func (s *Store) Load(ctx context.Context) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		merges []func(*State)
	)
	collect := func(fn func(*State)) {
		mu.Lock()
		merges = append(merges, fn)
		mu.Unlock()
	}

	g.Go(func() error {
		income, err := s.client.ListCategories(ctx, "income")
		if err != nil {
			return err
		}
		expense, err := s.client.ListCategories(ctx, "expense")
		if err != nil {
			return err
		}
		collect(func(st *State) { st.Categories = Categories{Income: income, Expense: expense} })
		return nil
	})
	g.Go(func() error {
		transactions, err := s.client.ListTransactions(ctx, TransactionQuery{})
		if err != nil {
			return err
		}
		collect(func(st *State) { st.Transactions = transactions })
		return nil
	})
	g.Go(func() error {
		goals, err := s.client.ListGoals(ctx)
		if err != nil {
			return err
		}
		collect(func(st *State) { st.Goals = goals })
		return nil
	})
	g.Go(func() error {
		analytics, err := s.fetchAnalytics(ctx)
		if err != nil {
			return err
		}
		collect(func(st *State) { st.Analytics = analytics })
		return nil
	})

	err := g.Wait()
	s.update(func(st *State) {
		for _, merge := range merges {
			merge(st)
		}
	})
	return err
}

func (s *Store) fetchAnalytics(ctx context.Context) (Analytics, error) {
	var (
		g       errgroup.Group
		summary api.Summary
		trends  []api.MonthlyTrend
	)
	g.Go(func() error {
		var err error
		summary, err = s.client.Summary(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		trends, err = s.client.Trends(ctx, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return Analytics{}, err
	}
	return Analytics{Summary: summary, Trends: trends}, nil
}

// RefreshTransactions reloads the transaction list
func (s *Store) RefreshTransactions(ctx context.Context) error {
	transactions, err := s.client.ListTransactions(ctx, TransactionQuery{})
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Transactions = transactions })
	return nil
}

// RefreshGoals reloads the goal list
func (s *Store) RefreshGoals(ctx context.Context) error {
	goals, err := s.client.ListGoals(ctx)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Goals = goals })
	return nil
}

// RefreshBudgets loads the budgets of one month. Zero values mean the current month.
func (s *Store) RefreshBudgets(ctx context.Context, month, year int) error {
	budgets, err := s.client.ListBudgets(ctx, month, year)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Budgets = budgets })
	return nil
}

// RefreshAnalytics reloads the summary and trends
func (s *Store) RefreshAnalytics(ctx context.Context) error {
	analytics, err := s.fetchAnalytics(ctx)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Analytics = analytics })
	return nil
}

// CreateTransaction stores a transaction and prepends it to the list
func (s *Store) CreateTransaction(ctx context.Context, req api.TransactionRequest) (api.Transaction, error) {
	created, err := s.client.CreateTransaction(ctx, req)
	if err != nil {
		return api.Transaction{}, err
	}
	s.update(func(st *State) {
		st.Transactions = prependOrReplace(st.Transactions, created, transactionID)
	})
	return created, nil
}

// UpdateTransaction replaces a transaction and its entry in the list
func (s *Store) UpdateTransaction(ctx context.Context, id int32, req api.TransactionRequest) (api.Transaction, error) {
	updated, err := s.client.UpdateTransaction(ctx, id, req)
	if err != nil {
		return api.Transaction{}, err
	}
	s.update(func(st *State) {
		st.Transactions = replaceByID(st.Transactions, updated, transactionID)
	})
	return updated, nil
}

// DeleteTransaction deletes a transaction and drops it from the list
func (s *Store) DeleteTransaction(ctx context.Context, id int32) error {
	if _, err := s.client.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Transactions = removeByID(st.Transactions, id, transactionID)
	})
	return nil
}

// CreateGoal stores a goal and prepends it to the list
func (s *Store) CreateGoal(ctx context.Context, req api.CreateGoalRequest) (api.Goal, error) {
	created, err := s.client.CreateGoal(ctx, req)
	if err != nil {
		return api.Goal{}, err
	}
	s.update(func(st *State) {
		st.Goals = prependOrReplace(st.Goals, created, goalID)
	})
	return created, nil
}

// AddGoalProgress adds funds to a goal and replaces its entry
func (s *Store) AddGoalProgress(ctx context.Context, id int32, amount decimal.Decimal) (api.Goal, error) {
	updated, err := s.client.AddGoalProgress(ctx, id, amount)
	if err != nil {
		return api.Goal{}, err
	}
	s.update(func(st *State) {
		st.Goals = replaceByID(st.Goals, updated, goalID)
	})
	return updated, nil
}

// UpdateGoal edits a goal and replaces its entry
func (s *Store) UpdateGoal(ctx context.Context, id int32, req api.UpdateGoalRequest) (api.Goal, error) {
	updated, err := s.client.UpdateGoal(ctx, id, req)
	if err != nil {
		return api.Goal{}, err
	}
	s.update(func(st *State) {
		st.Goals = replaceByID(st.Goals, updated, goalID)
	})
	return updated, nil
}

// DeleteGoal deletes a goal and drops it from the list
func (s *Store) DeleteGoal(ctx context.Context, id int32) error {
	if _, err := s.client.DeleteGoal(ctx, id); err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Goals = removeByID(st.Goals, id, goalID)
	})
	return nil
}

// UpsertBudget sets a monthly limit and merges the returned row
func (s *Store) UpsertBudget(ctx context.Context, req api.BudgetRequest) (api.Budget, error) {
	budget, err := s.client.UpsertBudget(ctx, req)
	if err != nil {
		return api.Budget{}, err
	}
	s.update(func(st *State) {
		st.Budgets = upsertBudget(st.Budgets, budget)
	})
	return budget, nil
}

// upsertBudget replaces by id and appends unknown rows
func upsertBudget(budgets []api.Budget, b api.Budget) []api.Budget {
	if indexOf(budgets, b.ID, budgetID) >= 0 {
		return replaceByID(budgets, b, budgetID)
	}
	return append(append([]api.Budget{}, budgets...), b)
}
