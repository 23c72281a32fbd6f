package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takeyourtrade/collection-service/internal/domain"
)

func newTestService() (Service, *FakeRepository) {
	repo := NewFakeRepository()
	return NewService(repo), repo
}

func addItems(t *testing.T, svc Service, userID uuid.UUID, n int) []*domain.CollectionItem {
	t.Helper()
	items := make([]*domain.CollectionItem, 0, n)
	for i := 0; i < n; i++ {
		item, err := svc.AddItem(context.Background(), userID, domain.NewItem{
			CardID:    uuid.New(),
			Quantity:  1,
			Condition: "NM",
			Language:  "en",
		})
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func TestAddItem(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	item, err := svc.AddItem(context.Background(), userID, domain.NewItem{
		CardID:    uuid.New(),
		Quantity:  4,
		Condition: "LP",
		Language:  "it",
		Tags:      domain.Tags{"binder"},
	})
	require.NoError(t, err)
	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, "LP", item.Condition)
	assert.Equal(t, "it", item.Language)
	assert.Equal(t, domain.Tags{"binder"}, item.Tags)
}

func TestAddItemNilTagsNormalized(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddItem(context.Background(), uuid.New(), domain.NewItem{
		CardID:    uuid.New(),
		Quantity:  1,
		Condition: "NM",
		Language:  "en",
	})
	require.NoError(t, err)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		item domain.NewItem
	}{
		{"zero quantity", domain.NewItem{CardID: uuid.New(), Quantity: 0, Condition: "NM", Language: "en"}},
		{"negative quantity", domain.NewItem{CardID: uuid.New(), Quantity: -3, Condition: "NM", Language: "en"}},
		{"missing condition", domain.NewItem{CardID: uuid.New(), Quantity: 1, Language: "en"}},
		{"missing language", domain.NewItem{CardID: uuid.New(), Quantity: 1, Condition: "NM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), uuid.New(), tt.item)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetItemScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	created := addItems(t, svc, owner, 1)[0]

	got, err := svc.GetItem(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetItem(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestListItemsLimitBounds(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	addItems(t, svc, userID, 3)

	t.Run("zero limit gets default", func(t *testing.T) {
		page, err := svc.ListItems(context.Background(), userID, domain.ListParams{Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, DefaultPageLimit, page.Limit)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("in-range limit kept", func(t *testing.T) {
		page, err := svc.ListItems(context.Background(), userID, domain.ListParams{Limit: 42})
		require.NoError(t, err)
		assert.Equal(t, 42, page.Limit)
	})

	t.Run("out-of-range limits rejected", func(t *testing.T) {
		for _, limit := range []int{-1, MaxPageLimit + 1, 9999} {
			_, err := svc.ListItems(context.Background(), userID, domain.ListParams{Limit: limit})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "limit %d", limit)
		}
	})
}

func TestListItemsRejectsNegativeOffset(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	addItems(t, svc, userID, 2)

	_, err := svc.ListItems(context.Background(), userID, domain.ListParams{Offset: -10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListItemsPagination(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	addItems(t, svc, userID, 5)

	page, err := svc.ListItems(context.Background(), userID, domain.ListParams{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Items, 1)

	// Offset past the end yields an empty page, not an error.
	page, err = svc.ListItems(context.Background(), userID, domain.ListParams{Limit: 2, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.Total)
}

func TestUpdateItem(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	created := addItems(t, svc, userID, 1)[0]

	quantity := 7
	updated, err := svc.UpdateItem(context.Background(), userID, created.ID, domain.ItemPatch{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestUpdateItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	created := addItems(t, svc, userID, 1)[0]

	zero := 0
	_, err := svc.UpdateItem(context.Background(), userID, created.ID, domain.ItemPatch{Quantity: &zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemEmptyPatchReturnsCurrent(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	created := addItems(t, svc, userID, 1)[0]

	got, err := svc.UpdateItem(context.Background(), userID, created.ID, domain.ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Quantity, got.Quantity)
}

func TestUpdateItemNotOwned(t *testing.T) {
	svc, _ := newTestService()
	created := addItems(t, svc, uuid.New(), 1)[0]

	quantity := 2
	_, err := svc.UpdateItem(context.Background(), uuid.New(), created.ID, domain.ItemPatch{Quantity: &quantity})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	created := addItems(t, svc, userID, 1)[0]

	require.NoError(t, svc.RemoveItem(context.Background(), userID, created.ID))
	assert.ErrorIs(t, svc.RemoveItem(context.Background(), userID, created.ID), domain.ErrItemNotFound)
}

func TestServicePropagatesRepositoryErrors(t *testing.T) {
	svc, repo := newTestService()
	repo.ForcedErr = errors.New("connection reset")

	_, err := svc.AddItem(context.Background(), uuid.New(), domain.NewItem{
		CardID: uuid.New(), Quantity: 1, Condition: "NM", Language: "en",
	})
	require.Error(t, err)

	_, err = svc.ListItems(context.Background(), uuid.New(), domain.ListParams{})
	require.Error(t, err)
}
