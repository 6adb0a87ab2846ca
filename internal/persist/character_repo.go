package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type CharacterRow struct {
	ID          int32
	AccountName string
	Name        string
	X, Y, Z     float64
	HP          float64
	MaxHP       float64
	Hydration   float64
	Nutrition   float64
}

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

func (r *CharacterRepo) LoadByAccount(ctx context.Context, accountName string) (*CharacterRow, error) {
	row := &CharacterRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, account_name, name, x, y, z, hp, max_hp, hydration, nutrition
		 FROM characters WHERE account_name = $1`, accountName,
	).Scan(
		&row.ID, &row.AccountName, &row.Name,
		&row.X, &row.Y, &row.Z, &row.HP, &row.MaxHP, &row.Hydration, &row.Nutrition,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *CharacterRepo) Create(ctx context.Context, c *CharacterRow) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (account_name, name, x, y, z, hp, max_hp, hydration, nutrition)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		c.AccountName, c.Name, c.X, c.Y, c.Z, c.HP, c.MaxHP, c.Hydration, c.Nutrition,
	).Scan(&c.ID)
}

func (r *CharacterRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM characters WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

// SaveCharacter writes back position, HP, and survival stats.
func (r *CharacterRepo) SaveCharacter(ctx context.Context, c *CharacterRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters
		 SET x = $2, y = $3, z = $4, hp = $5, hydration = $6, nutrition = $7
		 WHERE id = $1`,
		c.ID, c.X, c.Y, c.Z, c.HP, c.Hydration, c.Nutrition,
	)
	return err
}
