package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbpkg "github.com/decorabur/decora-api/internal/db"
	"github.com/decorabur/decora-api/internal/domain/catalog"
	"github.com/decorabur/decora-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogGormRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// DeleteCategoryTree runs the whole cascade inside one transaction: products
// referencing the doomed categories go first, then the direct children, then
// the target row. Any failure rolls the whole cascade back.
func (r *CatalogGormRepository) DeleteCategoryTree(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Category
		if err := tx.First(&target, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrCategoryNotFound
			}
			return err
		}

		// Target plus direct children; grandchildren are out of scope for
		// the two-level catalog.
		var doomed []uint
		if err := tx.Model(&models.Category{}).
			Where("id = ? OR parent_id = ?", id, id).
			Pluck("id", &doomed).Error; err != nil {
			return err
		}

		var productIDs []uint
		if err := tx.Model(&models.Product{}).
			Where("category_id IN ?", doomed).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}

		if len(productIDs) > 0 {
			// Images are lifecycle-bound to their product; remove them before
			// the products so the embedded backend never sees an orphan even
			// without FK enforcement.
			if err := tx.Where("product_id IN ?", productIDs).
				Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}

			query, args, err := dbpkg.In("DELETE FROM products WHERE category_id IN (?)", doomed)
			if err != nil {
				return err
			}
			if err := tx.Exec(query, args...).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("parent_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}
