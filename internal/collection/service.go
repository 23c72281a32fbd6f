// Package collection implements the business rules on top of the item
// repository: input defaults, pagination bounds and ownership scoping.
package collection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/takeyourtrade/collection-service/internal/domain"
	"github.com/takeyourtrade/collection-service/internal/logger"
	"github.com/takeyourtrade/collection-service/internal/metrics"
	"github.com/takeyourtrade/collection-service/internal/repository"
)

// Pagination bounds for listing items.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Page is one page of a user's collection together with the effective
// pagination window and the total match count.
type Page struct {
	Items  []domain.CollectionItem `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// Service defines the interface for collection operations. Every method
// takes the owning user's id; items of other users are never reachable.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, item domain.NewItem) (*domain.CollectionItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.CollectionItem, error)
	ListItems(ctx context.Context, userID uuid.UUID, params domain.ListParams) (*Page, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.CollectionItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
}

// service implements the Service interface
type service struct {
	repo repository.Item
}

// NewService creates a collection service backed by the given repository.
func NewService(repo repository.Item) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, item domain.NewItem) (*domain.CollectionItem, error) {
	if item.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	if item.Condition == "" {
		return nil, fmt.Errorf("%w: condition is required", domain.ErrInvalidInput)
	}
	if item.Language == "" {
		return nil, fmt.Errorf("%w: language is required", domain.ErrInvalidInput)
	}
	if item.Tags == nil {
		item.Tags = domain.Tags{}
	}

	created, err := s.repo.Create(ctx, userID, item)
	if err != nil {
		return nil, err
	}

	metrics.ItemsAdded.Inc()
	logger.FromContext(ctx).Info("Collection item added",
		"item_id", created.ID, "card_id", created.CardID, "quantity", created.Quantity)
	return created, nil
}

func (s *service) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.CollectionItem, error) {
	return s.repo.GetByID(ctx, userID, itemID)
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID, params domain.ListParams) (*Page, error) {
	params, err := validateListParams(params)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return &Page{
		Items:  items,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}, nil
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.CollectionItem, error) {
	if patch.Quantity != nil && *patch.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	// Nothing to change: hand back the current state.
	if patch.IsEmpty() {
		return s.repo.GetByID(ctx, userID, itemID)
	}

	updated, err := s.repo.Update(ctx, userID, itemID, patch)
	if err != nil {
		return nil, err
	}

	metrics.ItemsUpdated.Inc()
	logger.FromContext(ctx).Info("Collection item updated", "item_id", updated.ID)
	return updated, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return err
	}
	metrics.ItemsRemoved.Inc()
	logger.FromContext(ctx).Info("Collection item removed", "item_id", itemID)
	return nil
}

// validateListParams rejects pagination values outside the allowed window.
// A zero limit means the caller left it unset and gets the default.
func validateListParams(params domain.ListParams) (domain.ListParams, error) {
	if params.Limit == 0 {
		params.Limit = DefaultPageLimit
	}
	if params.Limit < 1 || params.Limit > MaxPageLimit {
		return params, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxPageLimit)
	}
	if params.Offset < 0 {
		return params, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidInput)
	}
	return params, nil
}
