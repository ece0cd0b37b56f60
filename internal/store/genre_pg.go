package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"locallibrary/internal/entity"
)

// GenrePG stores genres in PostgreSQL.
type GenrePG struct {
	db *pgxpool.Pool
}

func NewGenrePG(db *pgxpool.Pool) *GenrePG {
	return &GenrePG{db: db}
}

func (r *GenrePG) List(ctx context.Context) ([]entity.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Genre
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GenrePG) GetByID(ctx context.Context, id string) (entity.Genre, error) {
	var g entity.Genre
	err := r.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Genre{}, entity.ErrGenreNotFound
		}
		return entity.Genre{}, err
	}
	return g, nil
}

func (r *GenrePG) GetByName(ctx context.Context, name string) (entity.Genre, error) {
	var g entity.Genre
	err := r.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE name = $1 LIMIT 1`, name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Genre{}, entity.ErrGenreNotFound
		}
		return entity.Genre{}, err
	}
	return g, nil
}

func (r *GenrePG) Insert(ctx context.Context, g *entity.Genre) error {
	g.ID = uuid.NewString()
	_, err := r.db.Exec(ctx, `INSERT INTO genres (id, name) VALUES ($1, $2)`, g.ID, g.Name)
	return err
}

func (r *GenrePG) Update(ctx context.Context, id string, g entity.Genre) error {
	tag, err := r.db.Exec(ctx, `UPDATE genres SET name = $2 WHERE id = $1`, id, g.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrGenreNotFound
	}
	return nil
}

// Delete removes the genre row. A missing id is treated as success.
func (r *GenrePG) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	return err
}

func (r *GenrePG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&n)
	return n, err
}
