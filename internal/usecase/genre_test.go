package usecase_test

import (
	"context"
	"errors"
	"testing"

	"locallibrary/internal/entity"
	"locallibrary/internal/usecase"
	"locallibrary/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestGenreService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenres := mocks.NewMockGenreRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)

	svc := usecase.NewGenreService(mockGenres, mockBooks)
	ctx := context.Background()

	t.Run("success - new name is inserted", func(t *testing.T) {
		mockGenres.EXPECT().GetByName(ctx, "Fantasy").Return(entity.Genre{}, entity.ErrGenreNotFound)
		mockGenres.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *entity.Genre) error {
			g.ID = "genre-new"
			return nil
		})

		created, err := svc.Create(ctx, entity.Genre{Name: "Fantasy"})

		assert.NoError(t, err)
		assert.Equal(t, "genre-new", created.ID)
		assert.Equal(t, "Fantasy", created.Name)
	})

	t.Run("duplicate name returns the existing genre without inserting", func(t *testing.T) {
		existing := entity.Genre{ID: "genre-1", Name: "Fantasy"}
		mockGenres.EXPECT().GetByName(ctx, "Fantasy").Return(existing, nil)
		// No Insert expectation: nothing new may be stored.

		created, err := svc.Create(ctx, entity.Genre{Name: "Fantasy"})

		assert.NoError(t, err)
		assert.Equal(t, existing, created)
	})

	t.Run("error - lookup failure aborts the create", func(t *testing.T) {
		mockGenres.EXPECT().GetByName(ctx, "Fantasy").Return(entity.Genre{}, errors.New("connection reset"))

		_, err := svc.Create(ctx, entity.Genre{Name: "Fantasy"})

		assert.Error(t, err)
	})
}

func TestGenreService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenres := mocks.NewMockGenreRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)

	svc := usecase.NewGenreService(mockGenres, mockBooks)
	ctx := context.Background()
	genreID := "genre-1"

	t.Run("refused - books still reference the genre", func(t *testing.T) {
		genre := entity.Genre{ID: genreID, Name: "Fantasy"}
		blockers := []entity.Book{{ID: "book-1", Title: "The Name of the Wind"}}
		mockGenres.EXPECT().GetByID(gomock.Any(), genreID).Return(genre, nil)
		mockBooks.EXPECT().ListByGenre(gomock.Any(), genreID).Return(blockers, nil)

		d, err := svc.Delete(ctx, genreID)

		assert.True(t, errors.Is(err, usecase.ErrHasDependents))
		assert.Equal(t, genreID, d.Genre.ID)
		assert.Len(t, d.Books, 1)
	})

	t.Run("success - no dependent books", func(t *testing.T) {
		genre := entity.Genre{ID: genreID, Name: "Fantasy"}
		mockGenres.EXPECT().GetByID(gomock.Any(), genreID).Return(genre, nil)
		mockBooks.EXPECT().ListByGenre(gomock.Any(), genreID).Return([]entity.Book{}, nil)
		mockGenres.EXPECT().Delete(ctx, genreID).Return(nil)

		_, err := svc.Delete(ctx, genreID)

		assert.NoError(t, err)
	})

	t.Run("success - deleting a missing genre is a no-op", func(t *testing.T) {
		mockGenres.EXPECT().GetByID(gomock.Any(), genreID).Return(entity.Genre{}, entity.ErrGenreNotFound)
		mockBooks.EXPECT().ListByGenre(gomock.Any(), genreID).Return([]entity.Book{}, nil)
		mockGenres.EXPECT().Delete(ctx, genreID).Return(nil)

		_, err := svc.Delete(ctx, genreID)

		assert.NoError(t, err)
	})
}
