package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"locallibrary/internal/entity"
)

// BookPG stores books and their genre references in PostgreSQL.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

// List returns every book with the author reference expanded, ordered by
// title.
func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	const query = `
		SELECT b.id, b.title, b.summary, b.isbn, b.author_id,
		       a.first_name, a.family_name
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.title`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Book
	for rows.Next() {
		var b entity.Book
		var a entity.Author
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID, &a.FirstName, &a.FamilyName); err != nil {
			return nil, err
		}
		a.ID = b.AuthorID
		b.Author = &a
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID returns one book with author and genre references expanded.
func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `
		SELECT b.id, b.title, b.summary, b.isbn, b.author_id,
		       a.first_name, a.family_name, a.date_of_birth, a.date_of_death
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`
	var b entity.Book
	var a entity.Author
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID,
		&a.FirstName, &a.FamilyName, &a.DateOfBirth, &a.DateOfDeath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, entity.ErrBookNotFound
		}
		return entity.Book{}, err
	}
	a.ID = b.AuthorID
	b.Author = &a

	const genreQuery = `
		SELECT g.id, g.name
		FROM genres g
		JOIN book_genres bg ON bg.genre_id = g.id
		WHERE bg.book_id = $1
		ORDER BY g.name`
	rows, err := r.db.Query(ctx, genreQuery, id)
	if err != nil {
		return entity.Book{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return entity.Book{}, err
		}
		b.GenreIDs = append(b.GenreIDs, g.ID)
		b.Genres = append(b.Genres, g)
	}
	return b, rows.Err()
}

// ListByAuthor returns the books referencing an author, projected to
// title and summary.
func (r *BookPG) ListByAuthor(ctx context.Context, authorID string) ([]entity.Book, error) {
	const query = `
		SELECT id, title, summary
		FROM books
		WHERE author_id = $1
		ORDER BY title`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary); err != nil {
			return nil, err
		}
		b.AuthorID = authorID
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByGenre returns the books referencing a genre, projected to title
// and summary.
func (r *BookPG) ListByGenre(ctx context.Context, genreID string) ([]entity.Book, error) {
	const query = `
		SELECT b.id, b.title, b.summary
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		WHERE bg.genre_id = $1
		ORDER BY b.title`
	rows, err := r.db.Query(ctx, query, genreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookPG) Insert(ctx context.Context, b *entity.Book) error {
	b.ID = uuid.NewString()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO books (id, title, summary, isbn, author_id)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, query, b.ID, b.Title, b.Summary, b.ISBN, b.AuthorID); err != nil {
		return err
	}
	for _, genreID := range b.GenreIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, b.ID, genreID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update replaces the book's mutable fields and rewrites its genre
// references, keeping the id.
func (r *BookPG) Update(ctx context.Context, id string, b entity.Book) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		UPDATE books
		SET title = $2, summary = $3, isbn = $4, author_id = $5
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query, id, b.Title, b.Summary, b.ISBN, b.AuthorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrBookNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, id); err != nil {
		return err
	}
	for _, genreID := range b.GenreIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, id, genreID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes the book and its genre references. A missing id is
// treated as success.
func (r *BookPG) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *BookPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
