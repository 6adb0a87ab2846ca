package persist

import (
	"context"

	"github.com/emberwild/server/internal/world"
)

// ItemRow represents a persisted inventory item.
type ItemRow struct {
	ID     int32
	CharID int32
	ItemID string
	Count  int32
}

type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// LoadByCharID returns all items belonging to a character.
func (r *ItemRepo) LoadByCharID(ctx context.Context, charID int32) ([]ItemRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, char_id, item_id, count
		 FROM character_items WHERE char_id = $1`, charID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(&it.ID, &it.CharID, &it.ItemID, &it.Count); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

// SaveInventory replaces all items for a character (delete + bulk insert).
func (r *ItemRepo) SaveInventory(ctx context.Context, charID int32, inv *world.Inventory) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM character_items WHERE char_id = $1`, charID); err != nil {
		return err
	}

	for _, item := range inv.Items {
		if item.IsEmpty() {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO character_items (char_id, item_id, count) VALUES ($1, $2, $3)`,
			charID, item.ItemID, int32(item.Count),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
