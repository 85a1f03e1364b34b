package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creolweb/jobintake/internal/domain"
)

// CategoryRepository handles durable category lookups.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindOrCreateCategory resolves a category name to its durable ID,
// creating the category when absent. Safe under concurrent submissions:
// the name carries a unique index, and a conflicting insert falls back
// to re-reading the winner's row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: category name, e.g. "Portal Job".
// Returns:
//   - string: durable category ID.
//   - error: non-nil if lookup and creation both fail.
func (r *CategoryRepository) FindOrCreateCategory(ctx context.Context, name string) (string, error) {
	var cat domain.Category
	err := r.db.WithContext(ctx).First(&cat, "name = ?", name).Error
	if err == nil {
		return cat.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up category %q: %w", name, err)
	}

	cat = domain.Category{ID: uuid.New().String(), Name: name}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&cat)
	if res.Error != nil {
		return "", fmt.Errorf("failed to create category %q: %w", name, res.Error)
	}

	if res.RowsAffected == 0 {
		// Lost the race; another submission created it first.
		if err := r.db.WithContext(ctx).First(&cat, "name = ?", name).Error; err != nil {
			return "", fmt.Errorf("failed to re-read category %q: %w", name, err)
		}
	}
	return cat.ID, nil
}

// ListCategories returns all categories.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
