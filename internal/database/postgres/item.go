package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/takeyourtrade/collection-service/internal/domain"
	"github.com/takeyourtrade/collection-service/internal/logger"
)

const itemColumns = `id, user_id, card_id, quantity, condition, language,
	is_foil, is_signed, is_altered, notes, tags, source,
	cardtrader_id, last_synced_at, added_at, updated_at`

const (
	queryInsertItem = `INSERT INTO collection_items
	(user_id, card_id, quantity, condition, language, is_foil, is_signed,
	 is_altered, notes, tags, source, cardtrader_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + itemColumns

	queryGetItem = `SELECT ` + itemColumns + `
	FROM collection_items WHERE id = $1 AND user_id = $2`

	queryGetItemForUpdate = `SELECT ` + itemColumns + `
	FROM collection_items WHERE id = $1 AND user_id = $2 FOR UPDATE`

	queryUpdateItem = `UPDATE collection_items SET
	card_id = $3, quantity = $4, condition = $5, language = $6,
	is_foil = $7, is_signed = $8, is_altered = $9, notes = $10,
	tags = $11, source = $12, cardtrader_id = $13, last_synced_at = $14,
	updated_at = now()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at`

	queryDeleteItem = `DELETE FROM collection_items WHERE id = $1 AND user_id = $2`
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// ItemRepository implements repository.Item backed by PostgreSQL.
type ItemRepository struct {
	db PgxPool
}

// NewItemRepository creates an item repository on top of the given pool.
func NewItemRepository(db PgxPool) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new line-item owned by userID and returns the stored row.
func (r *ItemRepository) Create(ctx context.Context, userID uuid.UUID, item domain.NewItem) (*domain.CollectionItem, error) {
	tags := item.Tags
	if tags == nil {
		tags = domain.Tags{}
	}

	row := r.db.QueryRow(ctx, queryInsertItem,
		userID, item.CardID, item.Quantity, item.Condition, item.Language,
		item.IsFoil, item.IsSigned, item.IsAltered, item.Notes, tags,
		item.Source, item.CardtraderID)

	stored, err := scanItem(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", ErrMsgDuplicateCardtraderID, err)
		}
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%s: %w", ErrMsgQuantityConstraint, err)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	return stored, nil
}

// GetByID fetches a single item owned by userID.
func (r *ItemRepository) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.CollectionItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, queryGetItem, itemID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return item, nil
}

// List returns one page of the user's items, newest first, together with the
// total count of items matching the filter.
func (r *ItemRepository) List(ctx context.Context, userID uuid.UUID, params domain.ListParams) ([]domain.CollectionItem, int, error) {
	where, args := buildListPredicate(userID, params.Filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM collection_items ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountItems, err)
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM collection_items %s
	ORDER BY added_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		itemColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.db.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items := make([]domain.CollectionItem, 0, params.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, total, nil
}

// Update applies a partial update inside a transaction. The row is locked
// before the patch is applied so concurrent patches serialize cleanly.
func (r *ItemRepository) Update(ctx context.Context, userID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.CollectionItem, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	item, err := scanItem(tx.QueryRow(ctx, queryGetItemForUpdate, itemID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}

	patch.Apply(item)
	if item.Tags == nil {
		item.Tags = domain.Tags{}
	}

	err = tx.QueryRow(ctx, queryUpdateItem,
		itemID, userID, item.CardID, item.Quantity, item.Condition,
		item.Language, item.IsFoil, item.IsSigned, item.IsAltered,
		item.Notes, item.Tags, item.Source, item.CardtraderID,
		item.LastSyncedAt).Scan(&item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", ErrMsgDuplicateCardtraderID, err)
		}
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%s: %w", ErrMsgQuantityConstraint, err)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItem, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return item, nil
}

// Delete removes an item owned by userID.
func (r *ItemRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, queryDeleteItem, itemID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// buildListPredicate assembles the WHERE clause shared by the count and page
// queries. userID is always the first argument.
func buildListPredicate(userID uuid.UUID, filter domain.ListFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Language != nil {
		args = append(args, *filter.Language)
		clauses = append(clauses, fmt.Sprintf("language = $%d", len(args)))
	}
	if filter.IsFoil != nil {
		args = append(args, *filter.IsFoil)
		clauses = append(clauses, fmt.Sprintf("is_foil = $%d", len(args)))
	}
	if filter.Source != nil {
		args = append(args, *filter.Source)
		clauses = append(clauses, fmt.Sprintf("source = $%d", len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanItem(row pgx.Row) (*domain.CollectionItem, error) {
	var item domain.CollectionItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.CardID, &item.Quantity,
		&item.Condition, &item.Language, &item.IsFoil, &item.IsSigned,
		&item.IsAltered, &item.Notes, &item.Tags, &item.Source,
		&item.CardtraderID, &item.LastSyncedAt, &item.AddedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
