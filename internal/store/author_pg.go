package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"locallibrary/internal/entity"
)

// AuthorPG stores authors in PostgreSQL.
type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) List(ctx context.Context) ([]entity.Author, error) {
	const query = `
		SELECT id, first_name, family_name, date_of_birth, date_of_death
		FROM authors
		ORDER BY family_name, first_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Author
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.FamilyName, &a.DateOfBirth, &a.DateOfDeath); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AuthorPG) GetByID(ctx context.Context, id string) (entity.Author, error) {
	const query = `
		SELECT id, first_name, family_name, date_of_birth, date_of_death
		FROM authors
		WHERE id = $1`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.FamilyName, &a.DateOfBirth, &a.DateOfDeath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, entity.ErrAuthorNotFound
		}
		return entity.Author{}, err
	}
	return a, nil
}

func (r *AuthorPG) Insert(ctx context.Context, a *entity.Author) error {
	a.ID = uuid.NewString()
	const query = `
		INSERT INTO authors (id, first_name, family_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, a.ID, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath)
	return err
}

func (r *AuthorPG) Update(ctx context.Context, id string, a entity.Author) error {
	const query = `
		UPDATE authors
		SET first_name = $2, family_name = $3, date_of_birth = $4, date_of_death = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrAuthorNotFound
	}
	return nil
}

// Delete removes the author row. A missing id deletes zero rows and is
// treated as success so the delete flow stays idempotent.
func (r *AuthorPG) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	return err
}

func (r *AuthorPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n)
	return n, err
}
