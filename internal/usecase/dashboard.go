package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the catalog counts for the home page.
type DashboardService struct {
	books     BookRepository
	instances BookInstanceRepository
	authors   AuthorRepository
	genres    GenreRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(books BookRepository, instances BookInstanceRepository, authors AuthorRepository, genres GenreRepository) *DashboardService {
	return &DashboardService{books: books, instances: instances, authors: authors, genres: genres}
}

// Counts holds the five collection totals shown on the home page.
type Counts struct {
	Books              int
	Instances          int
	AvailableInstances int
	Authors            int
	Genres             int
}

// Totals issues the five count queries concurrently and waits for all of
// them. If any query fails the whole aggregate fails; no partial counts
// are returned.
func (s *DashboardService) Totals(ctx context.Context) (Counts, error) {
	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.books.Count(gctx)
		c.Books = n
		return err
	})
	g.Go(func() error {
		n, err := s.instances.Count(gctx)
		c.Instances = n
		return err
	})
	g.Go(func() error {
		n, err := s.instances.CountAvailable(gctx)
		c.AvailableInstances = n
		return err
	})
	g.Go(func() error {
		n, err := s.authors.Count(gctx)
		c.Authors = n
		return err
	})
	g.Go(func() error {
		n, err := s.genres.Count(gctx)
		c.Genres = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return c, nil
}
