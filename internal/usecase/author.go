package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"locallibrary/internal/entity"
)

// AuthorService orchestrates author reads and mutations.
type AuthorService struct {
	authors AuthorRepository
	books   BookRepository
}

// NewAuthorService creates a new author service.
func NewAuthorService(authors AuthorRepository, books BookRepository) *AuthorService {
	return &AuthorService{authors: authors, books: books}
}

// AuthorDetail combines an author with the books referencing them.
type AuthorDetail struct {
	Author entity.Author
	Books  []entity.Book
}

// List returns all authors ordered by family name.
func (s *AuthorService) List(ctx context.Context) ([]entity.Author, error) {
	return s.authors.List(ctx)
}

// Get returns one author without their books.
func (s *AuthorService) Get(ctx context.Context, id string) (entity.Author, error) {
	return s.authors.GetByID(ctx, id)
}

// Detail fetches the author and their books concurrently. Returns
// entity.ErrAuthorNotFound when the author does not exist.
func (s *AuthorService) Detail(ctx context.Context, id string) (AuthorDetail, error) {
	var d AuthorDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.authors.GetByID(gctx, id)
		if err != nil {
			return err
		}
		d.Author = a
		return nil
	})
	g.Go(func() error {
		books, err := s.books.ListByAuthor(gctx, id)
		if err != nil {
			return err
		}
		d.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return AuthorDetail{}, err
	}
	return d, nil
}

// Create persists a new author and returns it with its assigned id.
func (s *AuthorService) Create(ctx context.Context, a entity.Author) (entity.Author, error) {
	if err := s.authors.Insert(ctx, &a); err != nil {
		return entity.Author{}, err
	}
	return a, nil
}

// Update replaces the author's mutable fields, keeping its identity.
func (s *AuthorService) Update(ctx context.Context, id string, a entity.Author) error {
	return s.authors.Update(ctx, id, a)
}

// Delete removes the author unless books still reference them. On refusal
// it returns ErrHasDependents with the author and blocking books in the
// result; a missing author with no books deletes as a no-op.
func (s *AuthorService) Delete(ctx context.Context, id string) (AuthorDetail, error) {
	var d AuthorDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.authors.GetByID(gctx, id)
		if err != nil && !errors.Is(err, entity.ErrAuthorNotFound) {
			return err
		}
		d.Author = a
		return nil
	})
	g.Go(func() error {
		books, err := s.books.ListByAuthor(gctx, id)
		if err != nil {
			return err
		}
		d.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return AuthorDetail{}, err
	}
	if len(d.Books) > 0 {
		return d, ErrHasDependents
	}
	if err := s.authors.Delete(ctx, id); err != nil {
		return AuthorDetail{}, err
	}
	return d, nil
}
