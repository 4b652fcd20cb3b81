package catalog

import (
	"context"
	"errors"

	"github.com/decorabur/decora-api/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)

	GetCategory(ctx context.Context, id uint) (*models.Category, error)

	// DeleteCategoryTree removes the category, its direct children and every
	// product referencing any of them, atomically. Returns
	// ErrCategoryNotFound when the target does not exist.
	DeleteCategoryTree(ctx context.Context, id uint) error
}
