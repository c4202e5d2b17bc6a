package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause_Empty(t *testing.T) {
	w := &whereClause{}
	assert.Equal(t, "", w.sql())
	assert.Empty(t, w.args)
}

func TestWhereClause_NumbersPlaceholdersInOrder(t *testing.T) {
	w := &whereClause{}
	w.add("type = $%d", "income")
	w.add("category = $%d", "Salary")

	assert.Equal(t, " WHERE type = $1 AND category = $2", w.sql())
	assert.Equal(t, "$3", w.next(int32(10)))
	assert.Equal(t, []any{"income", "Salary", int32(10)}, w.args)
}

func TestTransactionWhere(t *testing.T) {
	income := domain.TransactionTypeIncome
	category := "Salary"
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	w := transactionWhere(&domain.TransactionFilters{
		Type:      &income,
		Category:  &category,
		StartDate: &start,
		EndDate:   &end,
	})

	assert.Equal(t, " WHERE type = $1 AND category = $2 AND date >= $3 AND date <= $4", w.sql())
	require.Len(t, w.args, 4)
	assert.Equal(t, "income", w.args[0])

	assert.Equal(t, "", transactionWhere(nil).sql())
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "0.01", "1250.50", "-42.10", "99999999.99"} {
		d := decimal.RequireFromString(in)
		num, err := decimalToPgNumeric(d)
		require.NoError(t, err)
		assert.True(t, pgNumericToDecimal(num).Equal(d), "value %s", in)
	}
}

func TestNullableConverters(t *testing.T) {
	assert.False(t, toNullablePgDate(nil).Valid)
	assert.Nil(t, pgDateToTimePtr(toNullablePgDate(nil)))
	assert.Nil(t, pgTextToStringPtr(toPgText(nil)))

	s := "note"
	got := pgTextToStringPtr(toPgText(&s))
	require.NotNil(t, got)
	assert.Equal(t, "note", *got)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidInput},
		{"numeric overflow", &pgconn.PgError{Code: "22003"}, domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, writeError("insert transaction", tt.err), tt.want)
		})
	}

	err := writeError("upsert budget", errors.New("connection reset"))
	assert.EqualError(t, err, "upsert budget: connection reset")
	assert.False(t, errors.Is(err, domain.ErrInvalidAmount))
}
