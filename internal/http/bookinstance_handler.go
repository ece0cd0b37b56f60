package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"locallibrary/internal/entity"
	"locallibrary/internal/forms"
	"locallibrary/internal/usecase"
	"locallibrary/internal/view"
)

type BookInstanceHandler struct {
	base
	svc *usecase.BookInstanceService
}

func NewBookInstanceHandler(svc *usecase.BookInstanceService, render view.Renderer, logger *slog.Logger) *BookInstanceHandler {
	return &BookInstanceHandler{base: base{render: render, logger: logger}, svc: svc}
}

func (h *BookInstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	instances, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "bookinstance_list", view.Data{
		"title":             "Book Instance List",
		"bookinstance_list": instances,
	})
}

func (h *BookInstanceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	bi, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookInstanceNotFound) {
			h.notFound(w, "Book copy not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "bookinstance_detail", view.Data{
		"title":        "Copy: " + bi.Book.Title,
		"bookinstance": bi,
	})
}

func (h *BookInstanceHandler) CreateGet(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.BookChoices(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "bookinstance_form", view.Data{
		"title":       "Create BookInstance",
		"book_list":   books,
		"status_list": entity.Statuses,
	})
}

func (h *BookInstanceHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.rerenderForm(w, r, "Create BookInstance", f, errs)
		return
	}
	created, err := h.svc.Create(r.Context(), f.entity())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, created.URL(), http.StatusFound)
}

func (h *BookInstanceHandler) DeleteGet(w http.ResponseWriter, r *http.Request) {
	bi, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookInstanceNotFound) {
			http.Redirect(w, r, "/catalog/bookinstances", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "bookinstance_delete", view.Data{
		"title":        "Delete Book Instance",
		"bookinstance": bi,
	})
}

// DeletePost reads the copy id from the form body. Copies have no
// dependents, so the delete always proceeds.
func (h *BookInstanceHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), r.PostFormValue("bookinstanceid")); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/catalog/bookinstances", http.StatusFound)
}

func (h *BookInstanceHandler) UpdateGet(w http.ResponseWriter, r *http.Request) {
	bi, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrBookInstanceNotFound) {
			h.notFound(w, "Book copy not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	books, err := h.svc.BookChoices(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	due := bi.DueBack
	h.render.Render(w, http.StatusOK, "bookinstance_form", view.Data{
		"title":       "Update BookInstance",
		"book_list":   books,
		"status_list": entity.Statuses,
		"bookinstance": view.Data{
			"book":     bi.BookID,
			"imprint":  bi.Imprint,
			"status":   bi.Status,
			"due_back": due.Format("2006-01-02"),
		},
	})
}

func (h *BookInstanceHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.rerenderForm(w, r, "Update BookInstance", f, errs)
		return
	}
	if err := h.svc.Update(r.Context(), id, f.entity()); err != nil {
		if errors.Is(err, entity.ErrBookInstanceNotFound) {
			h.notFound(w, "Book copy not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, entity.BookInstance{ID: id}.URL(), http.StatusFound)
}

func (h *BookInstanceHandler) rerenderForm(w http.ResponseWriter, r *http.Request, title string, f instanceFields, errs []forms.Error) {
	books, err := h.svc.BookChoices(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "bookinstance_form", view.Data{
		"title":        title,
		"book_list":    books,
		"status_list":  entity.Statuses,
		"bookinstance": f.echo(),
		"errors":       errs,
	})
}

// instanceFields holds the trimmed submission of the copy form.
type instanceFields struct {
	book     string
	imprint  string
	status   string
	dueInput string
	due      *time.Time
}

// entity builds the copy to persist. An omitted due date defaults to the
// time of submission, matching the stored default.
func (f instanceFields) entity() entity.BookInstance {
	due := time.Now()
	if f.due != nil {
		due = *f.due
	}
	return entity.BookInstance{
		BookID:  f.book,
		Imprint: forms.Escape(f.imprint),
		Status:  f.status,
		DueBack: due,
	}
}

func (f instanceFields) echo() view.Data {
	return view.Data{
		"book":     f.book,
		"imprint":  forms.Escape(f.imprint),
		"status":   f.status,
		"due_back": f.dueInput,
	}
}

func (h *BookInstanceHandler) parseForm(w http.ResponseWriter, r *http.Request) (instanceFields, []forms.Error, bool) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return instanceFields{}, nil, false
	}
	f := instanceFields{
		book:     forms.Trim(r.PostFormValue("book")),
		imprint:  forms.Trim(r.PostFormValue("imprint")),
		status:   forms.Trim(r.PostFormValue("status")),
		dueInput: forms.Trim(r.PostFormValue("due_back")),
	}
	errs := forms.Check([]forms.Rule{
		{Field: "book", Value: f.book, Constraint: "required", Message: "Book must be specified"},
		{Field: "imprint", Value: f.imprint, Constraint: "required", Message: "Imprint must be specified"},
		{Field: "status", Value: f.status, Constraint: "required", Message: "Status must be specified"},
		{Field: "status", Value: f.status, Constraint: "omitempty,oneof=Available Maintenance Loaned Reserved", Message: "Invalid status"},
	})
	var ok bool
	if f.due, ok = forms.ParseOptionalDate(f.dueInput); !ok {
		errs = append(errs, forms.Error{Field: "due_back", Message: "Invalid date"})
	}
	return f, errs, true
}
