package domain

import (
	"context"
	"time"
)

// CategoryType mirrors TransactionType: a category groups either income or expenses
type CategoryType = TransactionType

type Category struct {
	ID        int32
	Name      string
	Type      CategoryType
	Icon      string
	UserID    *int32
	CreatedAt time.Time
}

type CategoryRepository interface {
	// GetGlobal returns categories without an owner, optionally narrowed by type
	GetGlobal(ctx context.Context, categoryType *CategoryType) ([]*Category, error)
}
