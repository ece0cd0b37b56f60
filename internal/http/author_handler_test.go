package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"locallibrary/internal/entity"
	"locallibrary/internal/forms"
	"locallibrary/internal/testutil"
	"locallibrary/internal/usecase"
	"locallibrary/internal/usecase/mocks"
	"locallibrary/internal/view"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthorHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthors := mocks.NewMockAuthorRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	render := &testutil.FakeRenderer{}
	handler := NewAuthorHandler(usecase.NewAuthorService(mockAuthors, mockBooks), render, testLogger())

	t.Run("success", func(t *testing.T) {
		authors := []entity.Author{testutil.TestAuthor}
		mockAuthors.EXPECT().List(gomock.Any()).Return(authors, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewGetRequest("/catalog/authors"))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "author_list", page.Name)
		assert.Equal(t, authors, page.Data["author_list"])
	})
}

func TestAuthorHandler_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthors := mocks.NewMockAuthorRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	render := &testutil.FakeRenderer{}
	handler := NewAuthorHandler(usecase.NewAuthorService(mockAuthors, mockBooks), render, testLogger())

	t.Run("success", func(t *testing.T) {
		mockAuthors.EXPECT().GetByID(gomock.Any(), testutil.TestAuthor.ID).Return(testutil.TestAuthor, nil)
		mockBooks.EXPECT().ListByAuthor(gomock.Any(), testutil.TestAuthor.ID).Return([]entity.Book{testutil.TestBook}, nil)

		req := testutil.NewGetRequest("/catalog/author/" + testutil.TestAuthor.ID)
		req.SetPathValue("id", testutil.TestAuthor.ID)
		w := httptest.NewRecorder()

		handler.Detail(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "author_detail", page.Name)
		assert.Equal(t, testutil.TestAuthor, page.Data["author"])
	})

	t.Run("not found", func(t *testing.T) {
		mockAuthors.EXPECT().GetByID(gomock.Any(), "missing").Return(entity.Author{}, entity.ErrAuthorNotFound)
		mockBooks.EXPECT().ListByAuthor(gomock.Any(), "missing").Return([]entity.Book{}, nil).AnyTimes()

		req := testutil.NewGetRequest("/catalog/author/missing")
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Detail(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		page := render.Last()
		assert.Equal(t, "not_found", page.Name)
		assert.Equal(t, "Author not found", page.Data["message"])
	})
}

func TestAuthorHandler_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthors := mocks.NewMockAuthorRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	render := &testutil.FakeRenderer{}
	handler := NewAuthorHandler(usecase.NewAuthorService(mockAuthors, mockBooks), render, testLogger())

	t.Run("success - redirects to the new author", func(t *testing.T) {
		mockAuthors.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *entity.Author) error {
			assert.Equal(t, "John123", a.FirstName)
			assert.Equal(t, "Doe", a.FamilyName)
			assert.Nil(t, a.DateOfDeath)
			a.ID = "author-new"
			return nil
		})

		form := url.Values{}
		form.Set("first_name", "John123")
		form.Set("family_name", " Doe ")
		form.Set("date_of_birth", "1980-01-02")
		w := httptest.NewRecorder()

		handler.CreatePost(w, testutil.NewFormRequest("/catalog/author/create", form))

		testutil.AssertRedirect(t, w, "/catalog/author/author-new")
	})

	t.Run("validation failure re-renders the form, nothing stored", func(t *testing.T) {
		form := url.Values{}
		form.Set("first_name", "John123")
		form.Set("family_name", "")
		w := httptest.NewRecorder()

		handler.CreatePost(w, testutil.NewFormRequest("/catalog/author/create", form))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "author_form", page.Name)
		errs := page.Data["errors"].([]forms.Error)
		assert.Len(t, errs, 1)
		assert.Equal(t, "family_name", errs[0].Field)
		assert.Equal(t, "Family name must be specified.", errs[0].Message)
		echo := page.Data["author"].(view.Data)
		assert.Equal(t, "John123", echo["first_name"])
	})

	t.Run("malformed date reported alongside field errors", func(t *testing.T) {
		form := url.Values{}
		form.Set("first_name", "John")
		form.Set("family_name", "Doe")
		form.Set("date_of_birth", "02/01/1980")
		w := httptest.NewRecorder()

		handler.CreatePost(w, testutil.NewFormRequest("/catalog/author/create", form))

		page := render.Last()
		errs := page.Data["errors"].([]forms.Error)
		assert.Len(t, errs, 1)
		assert.Equal(t, "date_of_birth", errs[0].Field)
		assert.Equal(t, "Invalid date of birth", errs[0].Message)
	})
}

func TestAuthorHandler_DeletePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthors := mocks.NewMockAuthorRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	render := &testutil.FakeRenderer{}
	handler := NewAuthorHandler(usecase.NewAuthorService(mockAuthors, mockBooks), render, testLogger())

	t.Run("refused - re-renders the confirmation with the blockers", func(t *testing.T) {
		blockers := []entity.Book{testutil.TestBook}
		mockAuthors.EXPECT().GetByID(gomock.Any(), testutil.TestAuthor.ID).Return(testutil.TestAuthor, nil)
		mockBooks.EXPECT().ListByAuthor(gomock.Any(), testutil.TestAuthor.ID).Return(blockers, nil)

		form := url.Values{}
		form.Set("authorid", testutil.TestAuthor.ID)
		w := httptest.NewRecorder()

		handler.DeletePost(w, testutil.NewFormRequest("/catalog/author/delete", form))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "author_delete", page.Name)
		assert.Equal(t, blockers, page.Data["author_books"])
	})

	t.Run("success - redirects to the author list", func(t *testing.T) {
		mockAuthors.EXPECT().GetByID(gomock.Any(), testutil.TestAuthor.ID).Return(testutil.TestAuthor, nil)
		mockBooks.EXPECT().ListByAuthor(gomock.Any(), testutil.TestAuthor.ID).Return([]entity.Book{}, nil)
		mockAuthors.EXPECT().Delete(gomock.Any(), testutil.TestAuthor.ID).Return(nil)

		form := url.Values{}
		form.Set("authorid", testutil.TestAuthor.ID)
		w := httptest.NewRecorder()

		handler.DeletePost(w, testutil.NewFormRequest("/catalog/author/delete", form))

		testutil.AssertRedirect(t, w, "/catalog/authors")
	})
}

func TestAuthorHandler_UpdatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthors := mocks.NewMockAuthorRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	render := &testutil.FakeRenderer{}
	handler := NewAuthorHandler(usecase.NewAuthorService(mockAuthors, mockBooks), render, testLogger())

	t.Run("success - id comes from the path, fields from the body", func(t *testing.T) {
		mockAuthors.EXPECT().Update(gomock.Any(), testutil.TestAuthor.ID, gomock.Any()).Return(nil)

		form := url.Values{}
		form.Set("first_name", "Patrick")
		form.Set("family_name", "Rothfuss")
		req := testutil.NewFormRequest("/catalog/author/"+testutil.TestAuthor.ID+"/update", form)
		req.SetPathValue("id", testutil.TestAuthor.ID)
		w := httptest.NewRecorder()

		handler.UpdatePost(w, req)

		testutil.AssertRedirect(t, w, "/catalog/author/"+testutil.TestAuthor.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockAuthors.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(entity.ErrAuthorNotFound)

		form := url.Values{}
		form.Set("first_name", "Patrick")
		form.Set("family_name", "Rothfuss")
		req := testutil.NewFormRequest("/catalog/author/missing/update", form)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.UpdatePost(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
