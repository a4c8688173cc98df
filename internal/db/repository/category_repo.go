package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	GetCategory(ctx context.Context, id int64) (queries.Category, error)
}

// CategoryRepository provides read-only access to question categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]queries.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	return rows, translate(err)
}

// Get returns ErrNotFound for unknown ids.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (queries.Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	return row, translate(err)
}
