package catalog

import (
	"context"
	"errors"

	"github.com/decorabur/decora-api/internal/audit"
	domain "github.com/decorabur/decora-api/internal/domain/catalog"
	"github.com/decorabur/decora-api/internal/httperr"
)

type DeleteCategoryTree struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteCategoryTree(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteCategoryTree {
	return &DeleteCategoryTree{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteCategoryTree) Execute(
	ctx context.Context,
	userID *uint,
	categoryID uint,
) error {

	if err := uc.repo.DeleteCategoryTree(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return httperr.ErrBusiness("category_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "category_cascade_deleted",
		Entity:   "category",
		EntityID: &categoryID,
	})

	return nil
}
