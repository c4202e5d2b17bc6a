package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, type, description, amount, date, category, payment_method, notes, created_at, updated_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction and returns the stored row
func (r *TransactionRepository) Create(ctx context.Context, data *domain.TransactionData) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (type, description, amount, date, category, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		string(data.Type), data.Description, amount, toPgDate(data.Date), data.Category, string(data.PaymentMethod), data.Notes,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, writeError("insert transaction", err)
	}
	return transaction, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return transaction, nil
}

// List returns one page of transactions matching filters, newest first
func (r *TransactionRepository) List(ctx context.Context, filters *domain.TransactionFilters, page domain.Pagination) ([]*domain.Transaction, error) {
	where := transactionWhere(filters)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where.sql() +
		` ORDER BY date DESC, created_at DESC LIMIT ` + where.next(page.Limit) + ` OFFSET ` + where.next(page.Offset)
	return r.query(ctx, query, where.args...)
}

// ListAll returns every transaction matching filters, newest first
func (r *TransactionRepository) ListAll(ctx context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	where := transactionWhere(filters)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where.sql() + ` ORDER BY date DESC, created_at DESC`
	return r.query(ctx, query, where.args...)
}

// Update replaces every mutable field of a transaction
func (r *TransactionRepository) Update(ctx context.Context, id int32, data *domain.TransactionData) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET type = $1, description = $2, amount = $3, date = $4, category = $5,
		    payment_method = $6, notes = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING `+transactionColumns,
		string(data.Type), data.Description, amount, toPgDate(data.Date), data.Category, string(data.PaymentMethod), data.Notes, id,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, writeError("update transaction", err)
	}
	return transaction, nil
}

// Delete removes a transaction and returns its ID
func (r *TransactionRepository) Delete(ctx context.Context, id int32) (int32, error) {
	var deletedID int32
	err := r.pool.QueryRow(ctx, `DELETE FROM transactions WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrTransactionNotFound
		}
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	return deletedID, nil
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	return transactions, nil
}

func transactionWhere(filters *domain.TransactionFilters) *whereClause {
	where := &whereClause{}
	if filters == nil {
		return where
	}
	if filters.Type != nil {
		where.add("type = $%d", string(*filters.Type))
	}
	if filters.Category != nil {
		where.add("category = $%d", *filters.Category)
	}
	if filters.StartDate != nil {
		where.add("date >= $%d", toPgDate(*filters.StartDate))
	}
	if filters.EndDate != nil {
		where.add("date <= $%d", toPgDate(*filters.EndDate))
	}
	return where
}

// Helper functions

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t             domain.Transaction
		txType        string
		paymentMethod string
		amount        pgtype.Numeric
		date          pgtype.Date
	)
	err := row.Scan(
		&t.ID,
		&txType,
		&t.Description,
		&amount,
		&date,
		&t.Category,
		&paymentMethod,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	t.PaymentMethod = domain.PaymentMethod(paymentMethod)
	t.Amount = pgNumericToDecimal(amount)
	t.Date = date.Time
	return &t, nil
}
