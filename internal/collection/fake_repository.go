package collection

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/takeyourtrade/collection-service/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.Item
// for testing. It enables integration-style unit tests without a database.
type FakeRepository struct {
	items map[uuid.UUID]*domain.CollectionItem

	// ForcedErr, when set, is returned by every method.
	ForcedErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{items: make(map[uuid.UUID]*domain.CollectionItem)}
}

func (f *FakeRepository) Create(ctx context.Context, userID uuid.UUID, item domain.NewItem) (*domain.CollectionItem, error) {
	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	now := time.Now().UTC()
	stored := &domain.CollectionItem{
		ID:           uuid.New(),
		UserID:       userID,
		CardID:       item.CardID,
		Quantity:     item.Quantity,
		Condition:    item.Condition,
		Language:     item.Language,
		IsFoil:       item.IsFoil,
		IsSigned:     item.IsSigned,
		IsAltered:    item.IsAltered,
		Notes:        item.Notes,
		Tags:         item.Tags,
		Source:       item.Source,
		CardtraderID: item.CardtraderID,
		AddedAt:      now,
		UpdatedAt:    now,
	}
	f.items[stored.ID] = stored
	copied := *stored
	return &copied, nil
}

func (f *FakeRepository) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.CollectionItem, error) {
	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *FakeRepository) List(ctx context.Context, userID uuid.UUID, params domain.ListParams) ([]domain.CollectionItem, int, error) {
	if f.ForcedErr != nil {
		return nil, 0, f.ForcedErr
	}
	matching := make([]domain.CollectionItem, 0)
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		if params.Filter.Language != nil && item.Language != *params.Filter.Language {
			continue
		}
		if params.Filter.IsFoil != nil && item.IsFoil != *params.Filter.IsFoil {
			continue
		}
		if params.Filter.Source != nil && (item.Source == nil || *item.Source != *params.Filter.Source) {
			continue
		}
		matching = append(matching, *item)
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].AddedAt.After(matching[j].AddedAt)
	})

	total := len(matching)
	if params.Offset >= total {
		return []domain.CollectionItem{}, total, nil
	}
	end := params.Offset + params.Limit
	if end > total {
		end = total
	}
	return matching[params.Offset:end], total, nil
}

func (f *FakeRepository) Update(ctx context.Context, userID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.CollectionItem, error) {
	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return nil, domain.ErrItemNotFound
	}
	patch.Apply(item)
	item.UpdatedAt = time.Now().UTC()
	copied := *item
	return &copied, nil
}

func (f *FakeRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if f.ForcedErr != nil {
		return f.ForcedErr
	}
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return domain.ErrItemNotFound
	}
	delete(f.items, itemID)
	return nil
}
