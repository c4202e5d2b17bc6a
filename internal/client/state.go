package client

import "github.com/fintrack/fintrack-backend/internal/api"

// Filter selects which transactions the list view shows
type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// Valid reports whether f is a known filter
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterIncome || f == FilterExpense
}

// Categories holds the global categories split by type
type Categories struct {
	Income  []api.Category
	Expense []api.Category
}

// Analytics is the last fetched analytics snapshot
type Analytics struct {
	Summary api.Summary
	Trends  []api.MonthlyTrend
}

// State is the client's view of the server data plus the current list filter
type State struct {
	Transactions []api.Transaction
	Goals        []api.Goal
	Budgets      []api.Budget
	Categories   Categories
	Filter       Filter
	Analytics    Analytics
}

// NewState returns an empty state showing all transactions
func NewState() State {
	return State{
		Transactions: []api.Transaction{},
		Goals:        []api.Goal{},
		Budgets:      []api.Budget{},
		Categories:   Categories{Income: []api.Category{}, Expense: []api.Category{}},
		Filter:       FilterAll,
		Analytics:    Analytics{Trends: []api.MonthlyTrend{}},
	}
}

// clone copies every slice so callers cannot mutate the store's state
func (s State) clone() State {
	out := s
	out.Transactions = append([]api.Transaction{}, s.Transactions...)
	out.Goals = append([]api.Goal{}, s.Goals...)
	out.Budgets = append([]api.Budget{}, s.Budgets...)
	out.Categories.Income = append([]api.Category{}, s.Categories.Income...)
	out.Categories.Expense = append([]api.Category{}, s.Categories.Expense...)
	out.Analytics.Summary.Summary = append([]api.TypeSummary{}, s.Analytics.Summary.Summary...)
	out.Analytics.Summary.Categories = append([]api.CategorySummary{}, s.Analytics.Summary.Categories...)
	out.Analytics.Trends = append([]api.MonthlyTrend{}, s.Analytics.Trends...)
	return out
}

func prependOrReplace[T any](items []T, item T, id func(T) int32) []T {
	if i := indexOf(items, id(item), id); i >= 0 {
		out := append([]T{}, items...)
		out[i] = item
		return out
	}
	return append([]T{item}, items...)
}

func replaceByID[T any](items []T, item T, id func(T) int32) []T {
	i := indexOf(items, id(item), id)
	if i < 0 {
		return items
	}
	out := append([]T{}, items...)
	out[i] = item
	return out
}

func removeByID[T any](items []T, target int32, id func(T) int32) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

func indexOf[T any](items []T, target int32, id func(T) int32) int {
	for i, it := range items {
		if id(it) == target {
			return i
		}
	}
	return -1
}

func transactionID(t api.Transaction) int32 { return t.ID }
func goalID(g api.Goal) int32               { return g.ID }
func budgetID(b api.Budget) int32           { return b.ID }
