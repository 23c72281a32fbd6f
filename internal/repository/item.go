package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/takeyourtrade/collection-service/internal/domain"
)

// Item defines the interface for collection item persistence. Every
// operation is scoped to the owning user: an item belonging to another
// user is indistinguishable from one that does not exist.
type Item interface {
	Create(ctx context.Context, userID uuid.UUID, item domain.NewItem) (*domain.CollectionItem, error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.CollectionItem, error)
	List(ctx context.Context, userID uuid.UUID, params domain.ListParams) ([]domain.CollectionItem, int, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.CollectionItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}
