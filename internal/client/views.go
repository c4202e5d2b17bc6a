package client

import (
	"math"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/util"
	"github.com/shopspring/decimal"
)

const seriesMonths = 6

// Totals are the dashboard figures derived from the loaded transactions
type Totals struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	NetBalance   decimal.Decimal
	MonthSavings decimal.Decimal
}

// Summarize totals every loaded transaction. MonthSavings only counts the
// calendar month containing now.
func Summarize(st State, now time.Time) Totals {
	var t Totals
	monthIncome, monthExpense := decimal.Zero, decimal.Zero
	for _, tx := range st.Transactions {
		inMonth := util.SameMonth(tx.Date.Time, now)
		switch tx.Type {
		case "income":
			t.Income = t.Income.Add(tx.Amount.Decimal)
			if inMonth {
				monthIncome = monthIncome.Add(tx.Amount.Decimal)
			}
		case "expense":
			t.Expenses = t.Expenses.Add(tx.Amount.Decimal)
			if inMonth {
				monthExpense = monthExpense.Add(tx.Amount.Decimal)
			}
		}
	}
	t.NetBalance = t.Income.Sub(t.Expenses)
	t.MonthSavings = monthIncome.Sub(monthExpense)
	return t
}

// FilteredTransactions returns the transactions matching the state's filter
func FilteredTransactions(st State) []api.Transaction {
	if st.Filter == "" || st.Filter == FilterAll {
		return append([]api.Transaction{}, st.Transactions...)
	}
	out := []api.Transaction{}
	for _, tx := range st.Transactions {
		if tx.Type == string(st.Filter) {
			out = append(out, tx)
		}
	}
	return out
}

// CategoryTotal is the expense total of one category
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ExpenseByCategory sums expenses per category in order of first appearance
func ExpenseByCategory(st State) []CategoryTotal {
	out := []CategoryTotal{}
	index := map[string]int{}
	for _, tx := range st.Transactions {
		if tx.Type != "expense" {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Amount.Decimal)
	}
	return out
}

// MonthPoint is one month of the income/expense chart
type MonthPoint struct {
	Label    string
	Year     int
	Month    int
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// MonthlySeries buckets transactions into the six calendar months ending
// with the month containing now, oldest first
func MonthlySeries(st State, now time.Time) []MonthPoint {
	points := make([]MonthPoint, seriesMonths)
	year, month := now.Year(), int(now.Month())
	for i := seriesMonths - 1; i >= 0; i-- {
		points[i] = MonthPoint{
			Label:    time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 06"),
			Year:     year,
			Month:    month,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		year, month = util.PreviousMonth(year, month)
	}

	for _, tx := range st.Transactions {
		for i := range points {
			if tx.Date.Year() != points[i].Year || int(tx.Date.Month()) != points[i].Month {
				continue
			}
			switch tx.Type {
			case "income":
				points[i].Income = points[i].Income.Add(tx.Amount.Decimal)
			case "expense":
				points[i].Expenses = points[i].Expenses.Add(tx.Amount.Decimal)
			}
			break
		}
	}
	return points
}

// GoalView is a goal with its derived progress figures
type GoalView struct {
	Goal      api.Goal
	Percent   decimal.Decimal
	Completed bool
	DaysLeft  *int
	Overdue   bool
}

var hundred = decimal.NewFromInt(100)

// GoalProgress derives the progress of every loaded goal
func GoalProgress(st State, now time.Time) []GoalView {
	out := make([]GoalView, 0, len(st.Goals))
	for _, g := range st.Goals {
		view := GoalView{Goal: g, Percent: hundred}
		if g.TargetAmount.IsPositive() {
			view.Percent = decimal.Min(g.CurrentAmount.Div(g.TargetAmount.Decimal).Mul(hundred), hundred)
		}
		view.Completed = view.Percent.GreaterThanOrEqual(hundred)

		if g.TargetDate != nil {
			days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
			view.DaysLeft = &days
			view.Overdue = days <= 0
		}
		out = append(out, view)
	}
	return out
}
