package usecase

import (
	"context"

	"locallibrary/internal/entity"
)

// AuthorRepository defines the contract for author storage.
type AuthorRepository interface {
	// List returns all authors ordered by family name.
	List(ctx context.Context) ([]entity.Author, error)
	GetByID(ctx context.Context, id string) (entity.Author, error)
	// Insert stores a new author, assigning its id.
	Insert(ctx context.Context, a *entity.Author) error
	// Update replaces the mutable fields of the author with the given id.
	Update(ctx context.Context, id string, a entity.Author) error
	// Delete removes the author with the given id; a missing id is not an error.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookRepository defines the contract for book storage.
type BookRepository interface {
	// List returns all books ordered by title with the author reference expanded.
	List(ctx context.Context) ([]entity.Book, error)
	// GetByID returns one book with author and genre references expanded.
	GetByID(ctx context.Context, id string) (entity.Book, error)
	// ListByAuthor returns the books referencing an author, projected to
	// title and summary.
	ListByAuthor(ctx context.Context, authorID string) ([]entity.Book, error)
	// ListByGenre returns the books referencing a genre, projected to
	// title and summary.
	ListByGenre(ctx context.Context, genreID string) ([]entity.Book, error)
	Insert(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, id string, b entity.Book) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// GenreRepository defines the contract for genre storage.
type GenreRepository interface {
	// List returns all genres ordered by name.
	List(ctx context.Context) ([]entity.Genre, error)
	GetByID(ctx context.Context, id string) (entity.Genre, error)
	// GetByName looks a genre up by exact name; used to deduplicate creates.
	GetByName(ctx context.Context, name string) (entity.Genre, error)
	Insert(ctx context.Context, g *entity.Genre) error
	Update(ctx context.Context, id string, g entity.Genre) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookInstanceRepository defines the contract for book copy storage.
type BookInstanceRepository interface {
	// List returns all copies ordered by imprint with the book reference expanded.
	List(ctx context.Context) ([]entity.BookInstance, error)
	// GetByID returns one copy with the book reference expanded.
	GetByID(ctx context.Context, id string) (entity.BookInstance, error)
	// ListByBook returns the copies of one book.
	ListByBook(ctx context.Context, bookID string) ([]entity.BookInstance, error)
	Insert(ctx context.Context, bi *entity.BookInstance) error
	Update(ctx context.Context, id string, bi entity.BookInstance) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// CountAvailable counts copies whose status is Available.
	CountAvailable(ctx context.Context) (int, error)
}
