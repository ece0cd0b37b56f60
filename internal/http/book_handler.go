package http

import (
	"errors"
	"log/slog"
	"net/http"

	"locallibrary/internal/entity"
	"locallibrary/internal/forms"
	"locallibrary/internal/usecase"
	"locallibrary/internal/view"
)

type BookHandler struct {
	base
	svc *usecase.BookService
}

func NewBookHandler(svc *usecase.BookService, render view.Renderer, logger *slog.Logger) *BookHandler {
	return &BookHandler{base: base{render: render, logger: logger}, svc: svc}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_list", view.Data{
		"title":     "Book List",
		"book_list": books,
	})
}

func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookNotFound) {
			h.notFound(w, "Book not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_detail", view.Data{
		"title":          d.Book.Title,
		"book":           d.Book,
		"book_instances": d.Instances,
	})
}

func (h *BookHandler) CreateGet(w http.ResponseWriter, r *http.Request) {
	fd, err := h.svc.FormData(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_form", view.Data{
		"title":   "Create Book",
		"authors": fd.Authors,
		"genres":  genreOptions(fd.Genres, nil),
	})
}

func (h *BookHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.rerenderForm(w, r, "Create Book", f, errs)
		return
	}
	created, err := h.svc.Create(r.Context(), f.entity())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, created.URL(), http.StatusFound)
}

func (h *BookHandler) DeleteGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookNotFound) {
			http.Redirect(w, r, "/catalog/books", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_delete", view.Data{
		"title":          "Delete Book",
		"book":           d.Book,
		"book_instances": d.Instances,
	})
}

// DeletePost reads the book id from the form body; copies of the book
// block the delete.
func (h *BookHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	d, err := h.svc.Delete(r.Context(), r.PostFormValue("bookid"))
	if err != nil {
		if errors.Is(err, usecase.ErrHasDependents) {
			h.render.Render(w, http.StatusOK, "book_delete", view.Data{
				"title":          "Delete Book",
				"book":           d.Book,
				"book_instances": d.Instances,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/catalog/books", http.StatusFound)
}

func (h *BookHandler) UpdateGet(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookNotFound) {
			h.notFound(w, "Book not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	fd, err := h.svc.FormData(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_form", view.Data{
		"title":   "Update Book",
		"authors": fd.Authors,
		"genres":  genreOptions(fd.Genres, b.GenreIDs),
		"book": view.Data{
			"title":   b.Title,
			"author":  b.AuthorID,
			"summary": b.Summary,
			"isbn":    b.ISBN,
		},
	})
}

// UpdatePost keeps the book's identity from the path and replaces the
// mutable fields, including the full genre reference set, from the body.
func (h *BookHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.rerenderForm(w, r, "Update Book", f, errs)
		return
	}
	if err := h.svc.Update(r.Context(), id, f.entity()); err != nil {
		if errors.Is(err, entity.ErrBookNotFound) {
			h.notFound(w, "Book not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, entity.Book{ID: id}.URL(), http.StatusFound)
}

// rerenderForm re-fetches the selector lists and shows the form again
// with the submitted values and the accumulated errors. Nothing is
// persisted on this path.
func (h *BookHandler) rerenderForm(w http.ResponseWriter, r *http.Request, title string, f bookFields, errs []forms.Error) {
	fd, err := h.svc.FormData(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "book_form", view.Data{
		"title":   title,
		"authors": fd.Authors,
		"genres":  genreOptions(fd.Genres, f.genreIDs),
		"book":    f.echo(),
		"errors":  errs,
	})
}

// bookFields holds the trimmed submission of the book form.
type bookFields struct {
	title    string
	author   string
	summary  string
	isbn     string
	genreIDs []string
}

func (f bookFields) entity() entity.Book {
	return entity.Book{
		Title:    forms.Escape(f.title),
		AuthorID: f.author,
		Summary:  forms.Escape(f.summary),
		ISBN:     forms.Escape(f.isbn),
		GenreIDs: f.genreIDs,
	}
}

func (f bookFields) echo() view.Data {
	return view.Data{
		"title":   forms.Escape(f.title),
		"author":  f.author,
		"summary": forms.Escape(f.summary),
		"isbn":    forms.Escape(f.isbn),
	}
}

func (h *BookHandler) parseForm(w http.ResponseWriter, r *http.Request) (bookFields, []forms.Error, bool) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return bookFields{}, nil, false
	}
	f := bookFields{
		title:    forms.Trim(r.PostFormValue("title")),
		author:   forms.Trim(r.PostFormValue("author")),
		summary:  forms.Trim(r.PostFormValue("summary")),
		isbn:     forms.Trim(r.PostFormValue("isbn")),
		genreIDs: forms.NormalizeMulti(r.PostForm["genre"]),
	}
	errs := forms.Check([]forms.Rule{
		{Field: "title", Value: f.title, Constraint: "required", Message: "Title must not be empty."},
		{Field: "author", Value: f.author, Constraint: "required", Message: "Author must not be empty."},
		{Field: "summary", Value: f.summary, Constraint: "required", Message: "Summary must not be empty."},
		{Field: "isbn", Value: f.isbn, Constraint: "required", Message: "ISBN must not be empty."},
	})
	return f, errs, true
}

// genreOption is a genre plus whether the form should show it selected.
type genreOption struct {
	entity.Genre
	Checked bool
}

// genreOptions marks each available genre as checked when the submitted
// (or stored) selection contains it.
func genreOptions(genres []entity.Genre, selected []string) []genreOption {
	opts := make([]genreOption, 0, len(genres))
	for _, g := range genres {
		checked := false
		for _, id := range selected {
			if id == g.ID {
				checked = true
				break
			}
		}
		opts = append(opts, genreOption{Genre: g, Checked: checked})
	}
	return opts
}
