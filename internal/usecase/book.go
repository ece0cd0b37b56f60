package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"locallibrary/internal/entity"
)

// BookService orchestrates book reads and mutations.
type BookService struct {
	books     BookRepository
	authors   AuthorRepository
	genres    GenreRepository
	instances BookInstanceRepository
}

// NewBookService creates a new book service.
func NewBookService(books BookRepository, authors AuthorRepository, genres GenreRepository, instances BookInstanceRepository) *BookService {
	return &BookService{books: books, authors: authors, genres: genres, instances: instances}
}

// BookDetail combines a book with its physical copies.
type BookDetail struct {
	Book      entity.Book
	Instances []entity.BookInstance
}

// BookFormData carries the reference lists the book form's selectors need.
type BookFormData struct {
	Authors []entity.Author
	Genres  []entity.Genre
}

// List returns all books ordered by title with authors expanded.
func (s *BookService) List(ctx context.Context) ([]entity.Book, error) {
	return s.books.List(ctx)
}

// Get returns one book with author and genres expanded.
func (s *BookService) Get(ctx context.Context, id string) (entity.Book, error) {
	return s.books.GetByID(ctx, id)
}

// Detail fetches the book (expanded) and its copies concurrently. Returns
// entity.ErrBookNotFound when the book does not exist.
func (s *BookService) Detail(ctx context.Context, id string) (BookDetail, error) {
	var d BookDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.books.GetByID(gctx, id)
		if err != nil {
			return err
		}
		d.Book = b
		return nil
	})
	g.Go(func() error {
		instances, err := s.instances.ListByBook(gctx, id)
		if err != nil {
			return err
		}
		d.Instances = instances
		return nil
	})
	if err := g.Wait(); err != nil {
		return BookDetail{}, err
	}
	return d, nil
}

// FormData fetches the author and genre lists for the book form, both at once.
func (s *BookService) FormData(ctx context.Context) (BookFormData, error) {
	var fd BookFormData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		authors, err := s.authors.List(gctx)
		if err != nil {
			return err
		}
		fd.Authors = authors
		return nil
	})
	g.Go(func() error {
		genres, err := s.genres.List(gctx)
		if err != nil {
			return err
		}
		fd.Genres = genres
		return nil
	})
	if err := g.Wait(); err != nil {
		return BookFormData{}, err
	}
	return fd, nil
}

// Create persists a new book and returns it with its assigned id.
func (s *BookService) Create(ctx context.Context, b entity.Book) (entity.Book, error) {
	if err := s.books.Insert(ctx, &b); err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// Update replaces the book's mutable fields, keeping its identity.
func (s *BookService) Update(ctx context.Context, id string, b entity.Book) error {
	return s.books.Update(ctx, id, b)
}

// Delete removes the book unless copies of it still exist. On refusal it
// returns ErrHasDependents with the book and blocking copies in the
// result; a missing book with no copies deletes as a no-op.
func (s *BookService) Delete(ctx context.Context, id string) (BookDetail, error) {
	var d BookDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.books.GetByID(gctx, id)
		if err != nil && !errors.Is(err, entity.ErrBookNotFound) {
			return err
		}
		d.Book = b
		return nil
	})
	g.Go(func() error {
		instances, err := s.instances.ListByBook(gctx, id)
		if err != nil {
			return err
		}
		d.Instances = instances
		return nil
	})
	if err := g.Wait(); err != nil {
		return BookDetail{}, err
	}
	if len(d.Instances) > 0 {
		return d, ErrHasDependents
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return BookDetail{}, err
	}
	return d, nil
}
