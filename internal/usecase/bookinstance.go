package usecase

import (
	"context"

	"locallibrary/internal/entity"
)

// BookInstanceService orchestrates book copy reads and mutations.
type BookInstanceService struct {
	instances BookInstanceRepository
	books     BookRepository
}

// NewBookInstanceService creates a new book instance service.
func NewBookInstanceService(instances BookInstanceRepository, books BookRepository) *BookInstanceService {
	return &BookInstanceService{instances: instances, books: books}
}

// List returns all copies ordered by imprint with books expanded.
func (s *BookInstanceService) List(ctx context.Context) ([]entity.BookInstance, error) {
	return s.instances.List(ctx)
}

// Get returns one copy with its book expanded. Returns
// entity.ErrBookInstanceNotFound when the copy does not exist.
func (s *BookInstanceService) Get(ctx context.Context, id string) (entity.BookInstance, error) {
	return s.instances.GetByID(ctx, id)
}

// BookChoices lists all books for the copy form's selector.
func (s *BookInstanceService) BookChoices(ctx context.Context) ([]entity.Book, error) {
	return s.books.List(ctx)
}

// Create persists a new copy and returns it with its assigned id.
func (s *BookInstanceService) Create(ctx context.Context, bi entity.BookInstance) (entity.BookInstance, error) {
	if err := s.instances.Insert(ctx, &bi); err != nil {
		return entity.BookInstance{}, err
	}
	return bi, nil
}

// Update replaces the copy's mutable fields, keeping its identity.
func (s *BookInstanceService) Update(ctx context.Context, id string, bi entity.BookInstance) error {
	return s.instances.Update(ctx, id, bi)
}

// Delete removes the copy. Copies have no dependents, so this never
// refuses; a missing id deletes as a no-op.
func (s *BookInstanceService) Delete(ctx context.Context, id string) error {
	return s.instances.Delete(ctx, id)
}
