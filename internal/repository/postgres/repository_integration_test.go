package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, migrates and empties the tables.
// Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(pool))
	_, err = pool.Exec(ctx, `TRUNCATE transactions, goals, budgets RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTransactionRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.TransactionData{
		Type:          domain.TransactionTypeExpense,
		Description:   "Groceries",
		Amount:        decimal.RequireFromString("45.20"),
		Date:          date(2024, time.March, 3),
		Category:      "Food & Groceries",
		PaymentMethod: domain.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "45.2", created.Amount.String())

	_, err = repo.Create(ctx, &domain.TransactionData{
		Type:          domain.TransactionTypeIncome,
		Description:   "Salary",
		Amount:        decimal.NewFromInt(3000),
		Date:          date(2024, time.March, 1),
		Category:      "Salary",
		PaymentMethod: domain.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)

	list, err := repo.List(ctx, nil, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID, "newest date first")

	income := domain.TransactionTypeIncome
	filtered, err := repo.ListAll(ctx, &domain.TransactionFilters{Type: &income})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Salary", filtered[0].Category)

	updated, err := repo.Update(ctx, created.ID, &domain.TransactionData{
		Type:          domain.TransactionTypeExpense,
		Description:   "Groceries (weekly)",
		Amount:        decimal.RequireFromString("50.00"),
		Date:          date(2024, time.March, 4),
		Category:      "Food & Groceries",
		PaymentMethod: domain.PaymentMethodDebitCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries (weekly)", updated.Description)
	assert.True(t, updated.Date.Equal(date(2024, time.March, 4)))

	id, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestGoalRepository_ProgressCompletesGoal(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewGoalRepository(pool)
	ctx := context.Background()

	goal, err := repo.Create(ctx, &domain.CreateGoalData{
		Title:        "Emergency fund",
		TargetAmount: decimal.NewFromInt(1000),
		Category:     domain.DefaultGoalCategory,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusActive, goal.Status)
	assert.True(t, goal.CurrentAmount.IsZero())

	goal, err = repo.AddProgress(ctx, goal.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusActive, goal.Status)

	goal, err = repo.AddProgress(ctx, goal.ID, decimal.NewFromInt(400))
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
	assert.Equal(t, "1000", goal.CurrentAmount.String())

	goal, err = repo.Update(ctx, goal.ID, &domain.UpdateGoalData{
		Title:         "Emergency fund",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusActive, goal.Status, "raising the target reopens the goal")

	_, err = repo.AddProgress(ctx, 99999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestRepositories_AmountOutOfRange(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	tooLarge := decimal.RequireFromString("100000000000")

	_, err := NewTransactionRepository(pool).Create(ctx, &domain.TransactionData{
		Type:          domain.TransactionTypeIncome,
		Description:   "Lottery",
		Amount:        tooLarge,
		Date:          date(2024, time.March, 3),
		Category:      "Other",
		PaymentMethod: domain.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	goals := NewGoalRepository(pool)
	goal, err := goals.Create(ctx, &domain.CreateGoalData{
		Title:        "Island",
		TargetAmount: domain.MaxAmount,
		Category:     domain.DefaultGoalCategory,
	})
	require.NoError(t, err)
	_, err = goals.AddProgress(ctx, goal.ID, domain.MaxAmount)
	require.NoError(t, err)
	_, err = goals.AddProgress(ctx, goal.ID, domain.MaxAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "the running total overflows the column")

	_, err = NewBudgetRepository(pool).Upsert(ctx, &domain.UpsertBudgetData{
		Category:     "Food",
		MonthlyLimit: tooLarge,
		Month:        3,
		Year:         2024,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestBudgetRepository_UpsertKeepsSpentAmount(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewBudgetRepository(pool)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &domain.UpsertBudgetData{
		Category:     "Transport",
		MonthlyLimit: decimal.NewFromInt(200),
		SpentAmount:  decimal.NewFromInt(35),
		Month:        5,
		Year:         2024,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, &domain.UpsertBudgetData{
		Category:     "Transport",
		MonthlyLimit: decimal.NewFromInt(250),
		SpentAmount:  decimal.Zero,
		Month:        5,
		Year:         2024,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "250", second.MonthlyLimit.String())
	assert.Equal(t, "35", second.SpentAmount.String())

	budgets, err := repo.GetByMonth(ctx, 5, 2024)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)

	budgets, err = repo.GetByMonth(ctx, 6, 2024)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestCategoryRepository_GetGlobal(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCategoryRepository(pool)
	ctx := context.Background()

	all, err := repo.GetGlobal(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 12)

	income := domain.TransactionTypeIncome
	incomeOnly, err := repo.GetGlobal(ctx, &income)
	require.NoError(t, err)
	require.Len(t, incomeOnly, 4)
	assert.Equal(t, "Freelance", incomeOnly[0].Name, "ordered by name")
}

func TestAnalyticsRepository_Aggregates(t *testing.T) {
	pool := setupTestDB(t)
	txRepo := NewTransactionRepository(pool)
	repo := NewAnalyticsRepository(pool)
	ctx := context.Background()

	seed := []domain.TransactionData{
		{Type: domain.TransactionTypeIncome, Description: "Pay", Amount: decimal.NewFromInt(3000), Date: date(2024, time.May, 1), Category: "Salary", PaymentMethod: domain.PaymentMethodBankTransfer},
		{Type: domain.TransactionTypeExpense, Description: "Rent", Amount: decimal.NewFromInt(1200), Date: date(2024, time.May, 2), Category: "Housing & Utilities", PaymentMethod: domain.PaymentMethodBankTransfer},
		{Type: domain.TransactionTypeExpense, Description: "Bus", Amount: decimal.NewFromInt(30), Date: date(2024, time.April, 20), Category: "Transport", PaymentMethod: domain.PaymentMethodCash},
	}
	for i := range seed {
		_, err := txRepo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	byType, err := repo.SummarizeByType(ctx, nil)
	require.NoError(t, err)
	require.Len(t, byType, 2)
	assert.Equal(t, domain.TransactionTypeExpense, byType[0].Type)
	assert.Equal(t, int64(2), byType[0].TransactionCount)
	assert.Equal(t, "1230", byType[0].TotalAmount.String())

	since := date(2024, time.May, 1)
	byCategory, err := repo.SummarizeByCategory(ctx, &since)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Salary", byCategory[0].Category, "largest total first")

	trends, err := repo.MonthlyTrends(ctx, date(2024, time.April, 1))
	require.NoError(t, err)
	require.Len(t, trends, 3)
	assert.True(t, trends[0].Month.Equal(date(2024, time.May, 1)))
}
