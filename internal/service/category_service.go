package service

import (
	"context"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// CategoryService serves the read-only category catalogue
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns global categories, narrowed by type when categoryType is non-empty
func (s *CategoryService) ListCategories(ctx context.Context, categoryType string) ([]*domain.Category, error) {
	if categoryType == "" {
		return s.categoryRepo.GetGlobal(ctx, nil)
	}

	t := domain.CategoryType(categoryType)
	if !t.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	return s.categoryRepo.GetGlobal(ctx, &t)
}
