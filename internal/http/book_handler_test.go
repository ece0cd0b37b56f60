package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"locallibrary/internal/entity"
	"locallibrary/internal/forms"
	"locallibrary/internal/testutil"
	"locallibrary/internal/usecase"
	"locallibrary/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type bookHandlerMocks struct {
	books     *mocks.MockBookRepository
	authors   *mocks.MockAuthorRepository
	genres    *mocks.MockGenreRepository
	instances *mocks.MockBookInstanceRepository
}

func newBookHandler(ctrl *gomock.Controller, render *testutil.FakeRenderer) (*BookHandler, bookHandlerMocks) {
	m := bookHandlerMocks{
		books:     mocks.NewMockBookRepository(ctrl),
		authors:   mocks.NewMockAuthorRepository(ctrl),
		genres:    mocks.NewMockGenreRepository(ctrl),
		instances: mocks.NewMockBookInstanceRepository(ctrl),
	}
	svc := usecase.NewBookService(m.books, m.authors, m.genres, m.instances)
	return NewBookHandler(svc, render, testLogger()), m
}

func TestBookHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	render := &testutil.FakeRenderer{}
	handler, m := newBookHandler(ctrl, render)

	t.Run("success", func(t *testing.T) {
		books := []entity.Book{testutil.TestBook}
		m.books.EXPECT().List(gomock.Any()).Return(books, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewGetRequest("/catalog/books"))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "book_list", page.Name)
		assert.Equal(t, books, page.Data["book_list"])
	})
}

func TestBookHandler_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	render := &testutil.FakeRenderer{}
	handler, m := newBookHandler(ctrl, render)

	t.Run("success - page titled after the book", func(t *testing.T) {
		m.books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
		m.instances.EXPECT().ListByBook(gomock.Any(), testutil.TestBook.ID).Return([]entity.BookInstance{testutil.TestBookInstance}, nil)

		req := testutil.NewGetRequest("/catalog/book/" + testutil.TestBook.ID)
		req.SetPathValue("id", testutil.TestBook.ID)
		w := httptest.NewRecorder()

		handler.Detail(w, req)

		page := render.Last()
		assert.Equal(t, "book_detail", page.Name)
		assert.Equal(t, testutil.TestBook.Title, page.Data["title"])
		assert.Len(t, page.Data["book_instances"], 1)
	})

	t.Run("not found", func(t *testing.T) {
		m.books.EXPECT().GetByID(gomock.Any(), "missing").Return(entity.Book{}, entity.ErrBookNotFound)
		m.instances.EXPECT().ListByBook(gomock.Any(), "missing").Return([]entity.BookInstance{}, nil).AnyTimes()

		req := testutil.NewGetRequest("/catalog/book/missing")
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Detail(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	render := &testutil.FakeRenderer{}
	handler, m := newBookHandler(ctrl, render)

	t.Run("success - redirects to the new book", func(t *testing.T) {
		m.books.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *entity.Book) error {
			assert.Equal(t, "The Name of the Wind", b.Title)
			assert.Equal(t, []string{"g1", "g3"}, b.GenreIDs)
			b.ID = "book-new"
			return nil
		})

		form := url.Values{}
		form.Set("title", "The Name of the Wind")
		form.Set("author", "author-1")
		form.Set("summary", "The tale of Kvothe.")
		form.Set("isbn", "9781473211896")
		form["genre"] = []string{"g1", "g3"}
		w := httptest.NewRecorder()

		handler.CreatePost(w, testutil.NewFormRequest("/catalog/book/create", form))

		testutil.AssertRedirect(t, w, "/catalog/book/book-new")
	})

	t.Run("validation failure re-renders with the selector lists", func(t *testing.T) {
		genres := []entity.Genre{{ID: "g1", Name: "Fantasy"}, {ID: "g2", Name: "Horror"}, {ID: "g3", Name: "Poetry"}}
		m.authors.EXPECT().List(gomock.Any()).Return([]entity.Author{testutil.TestAuthor}, nil)
		m.genres.EXPECT().List(gomock.Any()).Return(genres, nil)

		form := url.Values{}
		form.Set("title", "")
		form.Set("author", "author-1")
		form.Set("summary", "The tale of Kvothe.")
		form.Set("isbn", "9781473211896")
		form["genre"] = []string{"g1", "g3"}
		w := httptest.NewRecorder()

		handler.CreatePost(w, testutil.NewFormRequest("/catalog/book/create", form))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "book_form", page.Name)
		errs := page.Data["errors"].([]forms.Error)
		assert.Len(t, errs, 1)
		assert.Equal(t, "Title must not be empty.", errs[0].Message)

		// Submitted genres stay checked; the others do not.
		opts := page.Data["genres"].([]genreOption)
		assert.Len(t, opts, 3)
		assert.True(t, opts[0].Checked)
		assert.False(t, opts[1].Checked)
		assert.True(t, opts[2].Checked)
	})
}

func TestBookHandler_UpdatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	render := &testutil.FakeRenderer{}
	handler, m := newBookHandler(ctrl, render)

	t.Run("success - replaces the genre set wholesale", func(t *testing.T) {
		m.books.EXPECT().Update(gomock.Any(), testutil.TestBook.ID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, b entity.Book) error {
			assert.Equal(t, []string{"g2"}, b.GenreIDs)
			return nil
		})

		form := url.Values{}
		form.Set("title", "The Name of the Wind")
		form.Set("author", "author-1")
		form.Set("summary", "The tale of Kvothe.")
		form.Set("isbn", "9781473211896")
		form["genre"] = []string{"g2"}
		req := testutil.NewFormRequest("/catalog/book/"+testutil.TestBook.ID+"/update", form)
		req.SetPathValue("id", testutil.TestBook.ID)
		w := httptest.NewRecorder()

		handler.UpdatePost(w, req)

		testutil.AssertRedirect(t, w, "/catalog/book/"+testutil.TestBook.ID)
	})

	t.Run("no genres submitted clears the set", func(t *testing.T) {
		m.books.EXPECT().Update(gomock.Any(), testutil.TestBook.ID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, b entity.Book) error {
			assert.NotNil(t, b.GenreIDs)
			assert.Empty(t, b.GenreIDs)
			return nil
		})

		form := url.Values{}
		form.Set("title", "The Name of the Wind")
		form.Set("author", "author-1")
		form.Set("summary", "The tale of Kvothe.")
		form.Set("isbn", "9781473211896")
		req := testutil.NewFormRequest("/catalog/book/"+testutil.TestBook.ID+"/update", form)
		req.SetPathValue("id", testutil.TestBook.ID)
		w := httptest.NewRecorder()

		handler.UpdatePost(w, req)

		testutil.AssertRedirect(t, w, "/catalog/book/"+testutil.TestBook.ID)
	})
}

func TestBookHandler_DeletePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	render := &testutil.FakeRenderer{}
	handler, m := newBookHandler(ctrl, render)

	t.Run("refused - copies block the delete", func(t *testing.T) {
		copies := []entity.BookInstance{testutil.TestBookInstance}
		m.books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
		m.instances.EXPECT().ListByBook(gomock.Any(), testutil.TestBook.ID).Return(copies, nil)

		form := url.Values{}
		form.Set("bookid", testutil.TestBook.ID)
		w := httptest.NewRecorder()

		handler.DeletePost(w, testutil.NewFormRequest("/catalog/book/delete", form))

		assert.Equal(t, http.StatusOK, w.Code)
		page := render.Last()
		assert.Equal(t, "book_delete", page.Name)
		assert.Equal(t, copies, page.Data["book_instances"])
	})

	t.Run("success - redirects to the book list", func(t *testing.T) {
		m.books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
		m.instances.EXPECT().ListByBook(gomock.Any(), testutil.TestBook.ID).Return([]entity.BookInstance{}, nil)
		m.books.EXPECT().Delete(gomock.Any(), testutil.TestBook.ID).Return(nil)

		form := url.Values{}
		form.Set("bookid", testutil.TestBook.ID)
		w := httptest.NewRecorder()

		handler.DeletePost(w, testutil.NewFormRequest("/catalog/book/delete", form))

		testutil.AssertRedirect(t, w, "/catalog/books")
	})
}
