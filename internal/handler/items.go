package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/takeyourtrade/collection-service/internal/auth"
	"github.com/takeyourtrade/collection-service/internal/collection"
	"github.com/takeyourtrade/collection-service/internal/domain"
	"github.com/takeyourtrade/collection-service/internal/logger"
)

// ItemHandler serves the collection item endpoints.
type ItemHandler struct {
	service collection.Service
}

func NewItemHandler(service collection.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

// CreateItemRequest is the body for adding an item to the collection.
type CreateItemRequest struct {
	CardID       string       `json:"card_id" validate:"required,uuid"`
	Quantity     *int         `json:"quantity" validate:"omitempty,min=1"`
	Condition    string       `json:"condition" validate:"required,max=10"`
	Language     string       `json:"language" validate:"required,max=5"`
	IsFoil       bool         `json:"is_foil"`
	IsSigned     bool         `json:"is_signed"`
	IsAltered    bool         `json:"is_altered"`
	Notes        *string      `json:"notes"`
	Tags         *domain.Tags `json:"tags"`
	Source       *string      `json:"source" validate:"omitempty,max=50"`
	CardtraderID *int64       `json:"cardtrader_id"`
}

// UpdateItemRequest is the body for a partial update. Absent fields are
// left untouched.
type UpdateItemRequest struct {
	CardID       *string      `json:"card_id" validate:"omitempty,uuid"`
	Quantity     *int         `json:"quantity" validate:"omitempty,min=1"`
	Condition    *string      `json:"condition" validate:"omitempty,max=10"`
	Language     *string      `json:"language" validate:"omitempty,max=5"`
	IsFoil       *bool        `json:"is_foil"`
	IsSigned     *bool        `json:"is_signed"`
	IsAltered    *bool        `json:"is_altered"`
	Notes        *string      `json:"notes"`
	Tags         *domain.Tags `json:"tags"`
	Source       *string      `json:"source" validate:"omitempty,max=50"`
	CardtraderID *int64       `json:"cardtrader_id"`
	LastSyncedAt *time.Time   `json:"last_synced_at"`
}

// HandleCreateItem adds an item to the authenticated user's collection.
func (h *ItemHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if !decodeAndValidate(w, r, &req, "Create item") {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	var tags domain.Tags
	if req.Tags != nil {
		tags = *req.Tags
	}

	item, err := h.service.AddItem(r.Context(), principal.ID, domain.NewItem{
		CardID:       uuid.MustParse(req.CardID),
		Quantity:     quantity,
		Condition:    req.Condition,
		Language:     req.Language,
		IsFoil:       req.IsFoil,
		IsSigned:     req.IsSigned,
		IsAltered:    req.IsAltered,
		Notes:        req.Notes,
		Tags:         tags,
		Source:       req.Source,
		CardtraderID: req.CardtraderID,
	})
	if err != nil {
		respondServiceError(w, r, "Create item", err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// HandleListItems returns one page of the user's collection.
func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	params, fieldErrs := parseListParams(r)
	if len(fieldErrs) > 0 {
		respondValidationError(w, fieldErrs)
		return
	}

	page, err := h.service.ListItems(r.Context(), principal.ID, params)
	if err != nil {
		respondServiceError(w, r, "List items", err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// HandleGetItem returns a single item owned by the user.
func (h *ItemHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), principal.ID, itemID)
	if err != nil {
		respondServiceError(w, r, "Get item", err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// HandleUpdateItem applies a partial update to an item owned by the user.
func (h *ItemHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if !decodeAndValidate(w, r, &req, "Update item") {
		return
	}

	patch := domain.ItemPatch{
		Quantity:     req.Quantity,
		Condition:    req.Condition,
		Language:     req.Language,
		IsFoil:       req.IsFoil,
		IsSigned:     req.IsSigned,
		IsAltered:    req.IsAltered,
		Notes:        req.Notes,
		Tags:         req.Tags,
		Source:       req.Source,
		CardtraderID: req.CardtraderID,
		LastSyncedAt: req.LastSyncedAt,
	}
	if req.CardID != nil {
		cardID := uuid.MustParse(*req.CardID)
		patch.CardID = &cardID
	}

	item, err := h.service.UpdateItem(r.Context(), principal.ID, itemID, patch)
	if err != nil {
		respondServiceError(w, r, "Update item", err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// HandleDeleteItem removes an item owned by the user.
func (h *ItemHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), principal.ID, itemID); err != nil {
		respondServiceError(w, r, "Delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requirePrincipal extracts the authenticated principal. The auth middleware
// guarantees its presence on protected routes; a miss means a wiring bug.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("Request reached handler without principal")
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthenticatedError)
		return nil, false
	}
	return principal, true
}

// itemIDFromPath parses the {itemID} path parameter. A malformed id is a
// validation failure, not a routing miss.
func itemIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondValidationError(w, map[string]string{"item_id": "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return itemID, true
}

// decodeAndValidate decodes a JSON body and validates it, writing a 422
// response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, actionName string) bool {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn("Failed to decode request body", "action", actionName, "error", err)
		respondValidationError(w, map[string]string{"body": ErrMsgInvalidRequestBody})
		return false
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondValidationError(w, FormatValidationError(err))
		return false
	}

	return true
}

// respondServiceError logs the failure and writes the mapped error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, actionName string, err error) {
	logger.FromContext(r.Context()).Error("Service call failed", "action", actionName, "error", err)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

// parseListParams reads pagination and filter query parameters. Invalid
// values are reported per field rather than silently ignored.
func parseListParams(r *http.Request) (domain.ListParams, map[string]string) {
	params := domain.ListParams{Limit: collection.DefaultPageLimit}
	fieldErrs := make(map[string]string)
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrs["limit"] = "Must be an integer"
		case limit < 1 || limit > collection.MaxPageLimit:
			fieldErrs["limit"] = fmt.Sprintf("Must be between 1 and %d", collection.MaxPageLimit)
		default:
			params.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrs["offset"] = "Must be an integer"
		case offset < 0:
			fieldErrs["offset"] = "Must be at least 0"
		default:
			params.Offset = offset
		}
	}
	if raw := query.Get("language"); raw != "" {
		params.Filter.Language = &raw
	}
	if raw := query.Get("is_foil"); raw != "" {
		isFoil, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrs["is_foil"] = "Must be a boolean"
		} else {
			params.Filter.IsFoil = &isFoil
		}
	}
	if raw := query.Get("source"); raw != "" {
		params.Filter.Source = &raw
	}

	return params, fieldErrs
}
