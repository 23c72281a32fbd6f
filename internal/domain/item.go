package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionItem represents one ownership line-item of a card in a user's
// collection. A user may hold multiple line-items for the same card (e.g.
// different conditions), so (user_id, card_id) is indexed but not unique.
type CollectionItem struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	CardID       uuid.UUID  `json:"card_id"`
	Quantity     int        `json:"quantity"`
	Condition    string     `json:"condition"`
	Language     string     `json:"language"`
	IsFoil       bool       `json:"is_foil"`
	IsSigned     bool       `json:"is_signed"`
	IsAltered    bool       `json:"is_altered"`
	Notes        *string    `json:"notes"`
	Tags         Tags       `json:"tags"`
	Source       *string    `json:"source"`
	CardtraderID *int64     `json:"cardtrader_id"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	AddedAt      time.Time  `json:"added_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewItem carries the caller-supplied fields for item creation. The owner,
// id and timestamps are assigned by the repository, never by the caller.
type NewItem struct {
	CardID       uuid.UUID
	Quantity     int
	Condition    string
	Language     string
	IsFoil       bool
	IsSigned     bool
	IsAltered    bool
	Notes        *string
	Tags         Tags
	Source       *string
	CardtraderID *int64
}

// ItemPatch is a partial update: nil fields are left untouched. There is
// deliberately no way to express a change to user_id, id or added_at.
type ItemPatch struct {
	CardID       *uuid.UUID
	Quantity     *int
	Condition    *string
	Language     *string
	IsFoil       *bool
	IsSigned     *bool
	IsAltered    *bool
	Notes        *string
	Tags         *Tags
	Source       *string
	CardtraderID *int64
	LastSyncedAt *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.CardID == nil && p.Quantity == nil && p.Condition == nil &&
		p.Language == nil && p.IsFoil == nil && p.IsSigned == nil &&
		p.IsAltered == nil && p.Notes == nil && p.Tags == nil &&
		p.Source == nil && p.CardtraderID == nil && p.LastSyncedAt == nil
}

// Apply copies the present patch fields onto the item.
func (p ItemPatch) Apply(item *CollectionItem) {
	if p.CardID != nil {
		item.CardID = *p.CardID
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Condition != nil {
		item.Condition = *p.Condition
	}
	if p.Language != nil {
		item.Language = *p.Language
	}
	if p.IsFoil != nil {
		item.IsFoil = *p.IsFoil
	}
	if p.IsSigned != nil {
		item.IsSigned = *p.IsSigned
	}
	if p.IsAltered != nil {
		item.IsAltered = *p.IsAltered
	}
	if p.Notes != nil {
		item.Notes = p.Notes
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.Source != nil {
		item.Source = p.Source
	}
	if p.CardtraderID != nil {
		item.CardtraderID = p.CardtraderID
	}
	if p.LastSyncedAt != nil {
		item.LastSyncedAt = p.LastSyncedAt
	}
}

// ListFilter holds the optional exact-match predicates for listing.
// A nil field imposes no constraint.
type ListFilter struct {
	Language *string
	IsFoil   *bool
	Source   *string
}

// ListParams bounds and filters a listing query.
type ListParams struct {
	Limit  int
	Offset int
	Filter ListFilter
}
