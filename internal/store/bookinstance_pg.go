package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"locallibrary/internal/entity"
)

// BookInstancePG stores physical book copies in PostgreSQL.
type BookInstancePG struct {
	db *pgxpool.Pool
}

func NewBookInstancePG(db *pgxpool.Pool) *BookInstancePG {
	return &BookInstancePG{db: db}
}

// List returns every copy with the book reference expanded, ordered by
// imprint then id for a stable listing.
func (r *BookInstancePG) List(ctx context.Context) ([]entity.BookInstance, error) {
	const query = `
		SELECT bi.id, bi.book_id, bi.imprint, bi.status, bi.due_back, b.title
		FROM book_instances bi
		JOIN books b ON b.id = bi.book_id
		ORDER BY bi.imprint, bi.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.BookInstance
	for rows.Next() {
		var bi entity.BookInstance
		var b entity.Book
		if err := rows.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &bi.Status, &bi.DueBack, &b.Title); err != nil {
			return nil, err
		}
		b.ID = bi.BookID
		bi.Book = &b
		out = append(out, bi)
	}
	return out, rows.Err()
}

// GetByID returns one copy with the book reference expanded.
func (r *BookInstancePG) GetByID(ctx context.Context, id string) (entity.BookInstance, error) {
	const query = `
		SELECT bi.id, bi.book_id, bi.imprint, bi.status, bi.due_back, b.title
		FROM book_instances bi
		JOIN books b ON b.id = bi.book_id
		WHERE bi.id = $1`
	var bi entity.BookInstance
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(&bi.ID, &bi.BookID, &bi.Imprint, &bi.Status, &bi.DueBack, &b.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.BookInstance{}, entity.ErrBookInstanceNotFound
		}
		return entity.BookInstance{}, err
	}
	b.ID = bi.BookID
	bi.Book = &b
	return bi, nil
}

func (r *BookInstancePG) ListByBook(ctx context.Context, bookID string) ([]entity.BookInstance, error) {
	const query = `
		SELECT id, book_id, imprint, status, due_back
		FROM book_instances
		WHERE book_id = $1
		ORDER BY imprint, id`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.BookInstance
	for rows.Next() {
		var bi entity.BookInstance
		if err := rows.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &bi.Status, &bi.DueBack); err != nil {
			return nil, err
		}
		out = append(out, bi)
	}
	return out, rows.Err()
}

func (r *BookInstancePG) Insert(ctx context.Context, bi *entity.BookInstance) error {
	bi.ID = uuid.NewString()
	const query = `
		INSERT INTO book_instances (id, book_id, imprint, status, due_back)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, bi.ID, bi.BookID, bi.Imprint, bi.Status, bi.DueBack)
	return err
}

func (r *BookInstancePG) Update(ctx context.Context, id string, bi entity.BookInstance) error {
	const query = `
		UPDATE book_instances
		SET book_id = $2, imprint = $3, status = $4, due_back = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, bi.BookID, bi.Imprint, bi.Status, bi.DueBack)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrBookInstanceNotFound
	}
	return nil
}

// Delete removes the copy. A missing id is treated as success.
func (r *BookInstancePG) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM book_instances WHERE id = $1`, id)
	return err
}

func (r *BookInstancePG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM book_instances`).Scan(&n)
	return n, err
}

// CountAvailable counts copies whose status is Available.
func (r *BookInstancePG) CountAvailable(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM book_instances WHERE status = $1`, entity.StatusAvailable).Scan(&n)
	return n, err
}
