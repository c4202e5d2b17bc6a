package postgres

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// GetGlobal returns unowned categories ordered by name
func (r *CategoryRepository) GetGlobal(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	where := &whereClause{conds: []string{"user_id IS NULL"}}
	if categoryType != nil {
		where.add("type = $%d", string(*categoryType))
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name, type, icon, user_id, created_at FROM categories`+where.sql()+` ORDER BY name`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Category, error) {
		var (
			c       domain.Category
			catType string
			userID  pgtype.Int4
		)
		if err := row.Scan(&c.ID, &c.Name, &catType, &c.Icon, &userID, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Type = domain.CategoryType(catType)
		c.UserID = pgInt4ToInt32Ptr(userID)
		return &c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}
