package client

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func tx(id int32, typ, amount, date, category string) api.Transaction {
	d, err := api.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return api.Transaction{ID: id, Type: typ, Amount: *money(amount), Date: d, Category: category}
}

func viewState() State {
	st := NewState()
	st.Transactions = []api.Transaction{
		tx(1, "income", "3000", "2024-03-01", "Salary"),
		tx(2, "expense", "1200", "2024-03-02", "Rent"),
		tx(3, "expense", "80.50", "2024-03-10", "Food"),
		tx(4, "income", "500", "2024-02-20", "Freelance"),
		tx(5, "expense", "40", "2024-02-11", "Food"),
		tx(6, "expense", "10", "2023-09-30", "Food"),
	}
	return st
}

func TestSummarize(t *testing.T) {
	totals := Summarize(viewState(), viewNow)

	assert.Equal(t, "3500", totals.Income.String())
	assert.Equal(t, "1330.5", totals.Expenses.String())
	assert.Equal(t, "2169.5", totals.NetBalance.String())
	assert.Equal(t, "1719.5", totals.MonthSavings.String())
}

func TestSummarize_Empty(t *testing.T) {
	totals := Summarize(NewState(), viewNow)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.NetBalance.IsZero())
	assert.True(t, totals.MonthSavings.IsZero())
}

func TestFilteredTransactions(t *testing.T) {
	st := viewState()

	assert.Len(t, FilteredTransactions(st), 6)

	st.Filter = FilterIncome
	income := FilteredTransactions(st)
	require.Len(t, income, 2)
	assert.Equal(t, int32(1), income[0].ID)
	assert.Equal(t, int32(4), income[1].ID)

	st.Filter = FilterExpense
	assert.Len(t, FilteredTransactions(st), 4)
}

func TestExpenseByCategory(t *testing.T) {
	totals := ExpenseByCategory(viewState())

	require.Len(t, totals, 2)
	assert.Equal(t, "Rent", totals[0].Category)
	assert.Equal(t, "1200", totals[0].Total.String())
	assert.Equal(t, "Food", totals[1].Category)
	assert.Equal(t, "130.5", totals[1].Total.String())
}

func TestMonthlySeries(t *testing.T) {
	series := MonthlySeries(viewState(), viewNow)

	require.Len(t, series, 6)
	labels := make([]string, len(series))
	for i, p := range series {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"Oct 23", "Nov 23", "Dec 23", "Jan 24", "Feb 24", "Mar 24"}, labels)

	assert.Equal(t, "500", series[4].Income.String())
	assert.Equal(t, "40", series[4].Expenses.String())
	assert.Equal(t, "3000", series[5].Income.String())
	assert.Equal(t, "1280.5", series[5].Expenses.String())
	assert.True(t, series[0].Expenses.IsZero(), "September falls outside the window")
}

func TestMonthlySeries_YearBoundary(t *testing.T) {
	series := MonthlySeries(NewState(), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2023, series[0].Year)
	assert.Equal(t, 8, series[0].Month)
	assert.Equal(t, 2024, series[5].Year)
	assert.Equal(t, 1, series[5].Month)
}

func TestGoalProgress(t *testing.T) {
	date := func(s string) *api.Date {
		d, err := api.ParseDate(s)
		require.NoError(t, err)
		return &d
	}

	st := NewState()
	st.Goals = []api.Goal{
		{ID: 1, Title: "Half", TargetAmount: *money("200"), CurrentAmount: *money("100"), TargetDate: date("2024-03-20")},
		{ID: 2, Title: "Over", TargetAmount: *money("100"), CurrentAmount: *money("150")},
		{ID: 3, Title: "Zero target", TargetAmount: *money("0"), CurrentAmount: *money("0")},
		{ID: 4, Title: "Late", TargetAmount: *money("100"), CurrentAmount: *money("10"), TargetDate: date("2024-03-01")},
	}

	views := GoalProgress(st, viewNow)
	require.Len(t, views, 4)

	assert.Equal(t, "50", views[0].Percent.String())
	assert.False(t, views[0].Completed)
	require.NotNil(t, views[0].DaysLeft)
	assert.Equal(t, 5, *views[0].DaysLeft)
	assert.False(t, views[0].Overdue)

	assert.Equal(t, "100", views[1].Percent.String())
	assert.True(t, views[1].Completed)
	assert.Nil(t, views[1].DaysLeft)

	assert.Equal(t, "100", views[2].Percent.String())
	assert.True(t, views[2].Completed)

	assert.Equal(t, "10", views[3].Percent.String())
	require.NotNil(t, views[3].DaysLeft)
	assert.Equal(t, -14, *views[3].DaysLeft)
	assert.True(t, views[3].Overdue)
}
