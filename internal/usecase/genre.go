package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"locallibrary/internal/entity"
)

// GenreService orchestrates genre reads and mutations.
type GenreService struct {
	genres GenreRepository
	books  BookRepository
}

// NewGenreService creates a new genre service.
func NewGenreService(genres GenreRepository, books BookRepository) *GenreService {
	return &GenreService{genres: genres, books: books}
}

// GenreDetail combines a genre with the books referencing it.
type GenreDetail struct {
	Genre entity.Genre
	Books []entity.Book
}

// List returns all genres ordered by name.
func (s *GenreService) List(ctx context.Context) ([]entity.Genre, error) {
	return s.genres.List(ctx)
}

// Get returns one genre without its books.
func (s *GenreService) Get(ctx context.Context, id string) (entity.Genre, error) {
	return s.genres.GetByID(ctx, id)
}

// Detail fetches the genre and its books concurrently. Returns
// entity.ErrGenreNotFound when the genre does not exist.
func (s *GenreService) Detail(ctx context.Context, id string) (GenreDetail, error) {
	var d GenreDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gen, err := s.genres.GetByID(gctx, id)
		if err != nil {
			return err
		}
		d.Genre = gen
		return nil
	})
	g.Go(func() error {
		books, err := s.books.ListByGenre(gctx, id)
		if err != nil {
			return err
		}
		d.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return GenreDetail{}, err
	}
	return d, nil
}

// Create persists a new genre, or returns the existing genre when one
// with the same name is already in the catalog.
func (s *GenreService) Create(ctx context.Context, g entity.Genre) (entity.Genre, error) {
	existing, err := s.genres.GetByName(ctx, g.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrGenreNotFound) {
		return entity.Genre{}, err
	}
	if err := s.genres.Insert(ctx, &g); err != nil {
		return entity.Genre{}, err
	}
	return g, nil
}

// Update replaces the genre's mutable fields, keeping its identity.
func (s *GenreService) Update(ctx context.Context, id string, g entity.Genre) error {
	return s.genres.Update(ctx, id, g)
}

// Delete removes the genre unless books still reference it. On refusal it
// returns ErrHasDependents with the genre and blocking books in the
// result; a missing genre with no books deletes as a no-op.
func (s *GenreService) Delete(ctx context.Context, id string) (GenreDetail, error) {
	var d GenreDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gen, err := s.genres.GetByID(gctx, id)
		if err != nil && !errors.Is(err, entity.ErrGenreNotFound) {
			return err
		}
		d.Genre = gen
		return nil
	})
	g.Go(func() error {
		books, err := s.books.ListByGenre(gctx, id)
		if err != nil {
			return err
		}
		d.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return GenreDetail{}, err
	}
	if len(d.Books) > 0 {
		return d, ErrHasDependents
	}
	if err := s.genres.Delete(ctx, id); err != nil {
		return GenreDetail{}, err
	}
	return d, nil
}
