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

type AuthorHandler struct {
	base
	svc *usecase.AuthorService
}

func NewAuthorHandler(svc *usecase.AuthorService, render view.Renderer, logger *slog.Logger) *AuthorHandler {
	return &AuthorHandler{base: base{render: render, logger: logger}, svc: svc}
}

func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "author_list", view.Data{
		"title":       "Author List",
		"author_list": authors,
	})
}

func (h *AuthorHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			h.notFound(w, "Author not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "author_detail", view.Data{
		"title":        "Author Detail",
		"author":       d.Author,
		"author_books": d.Books,
	})
}

func (h *AuthorHandler) CreateGet(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "author_form", view.Data{
		"title": "Create Author",
	})
}

func (h *AuthorHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.render.Render(w, http.StatusOK, "author_form", view.Data{
			"title":  "Create Author",
			"author": f.echo(),
			"errors": errs,
		})
		return
	}
	created, err := h.svc.Create(r.Context(), f.entity())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, created.URL(), http.StatusFound)
}

func (h *AuthorHandler) DeleteGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			http.Redirect(w, r, "/catalog/authors", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "author_delete", view.Data{
		"title":        "Delete Author",
		"author":       d.Author,
		"author_books": d.Books,
	})
}

// DeletePost reads the author id from the form body, not the path; the
// confirmation form posts the id of the author it displayed.
func (h *AuthorHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	d, err := h.svc.Delete(r.Context(), r.PostFormValue("authorid"))
	if err != nil {
		if errors.Is(err, usecase.ErrHasDependents) {
			h.render.Render(w, http.StatusOK, "author_delete", view.Data{
				"title":        "Delete Author",
				"author":       d.Author,
				"author_books": d.Books,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/catalog/authors", http.StatusFound)
}

func (h *AuthorHandler) UpdateGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			h.notFound(w, "Author not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "author_form", view.Data{
		"title": "Update Author",
		"author": view.Data{
			"first_name":    a.FirstName,
			"family_name":   a.FamilyName,
			"date_of_birth": inputDate(a.DateOfBirth),
			"date_of_death": inputDate(a.DateOfDeath),
		},
	})
}

// UpdatePost keeps the author's identity from the path and replaces the
// mutable fields from the body.
func (h *AuthorHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.render.Render(w, http.StatusOK, "author_form", view.Data{
			"title":  "Update Author",
			"author": f.echo(),
			"errors": errs,
		})
		return
	}
	if err := h.svc.Update(r.Context(), id, f.entity()); err != nil {
		if errors.Is(err, entity.ErrAuthorNotFound) {
			h.notFound(w, "Author not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, entity.Author{ID: id}.URL(), http.StatusFound)
}

// authorFields holds the trimmed submission of the author form along
// with its parsed optional dates.
type authorFields struct {
	firstName  string
	familyName string
	birthInput string
	deathInput string
	birth      *time.Time
	death      *time.Time
}

// entity builds the author to persist, escaping text for safe embedding.
func (f authorFields) entity() entity.Author {
	return entity.Author{
		FirstName:   forms.Escape(f.firstName),
		FamilyName:  forms.Escape(f.familyName),
		DateOfBirth: f.birth,
		DateOfDeath: f.death,
	}
}

// echo returns the submitted values for redisplay on a failed validation.
func (f authorFields) echo() view.Data {
	return view.Data{
		"first_name":    forms.Escape(f.firstName),
		"family_name":   forms.Escape(f.familyName),
		"date_of_birth": f.birthInput,
		"date_of_death": f.deathInput,
	}
}

// parseForm reads and validates the submission. The ok result is false
// only when the body itself was unreadable and a response was already
// written.
func (h *AuthorHandler) parseForm(w http.ResponseWriter, r *http.Request) (authorFields, []forms.Error, bool) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return authorFields{}, nil, false
	}
	f := authorFields{
		firstName:  forms.Trim(r.PostFormValue("first_name")),
		familyName: forms.Trim(r.PostFormValue("family_name")),
		birthInput: forms.Trim(r.PostFormValue("date_of_birth")),
		deathInput: forms.Trim(r.PostFormValue("date_of_death")),
	}
	errs := forms.Check([]forms.Rule{
		{Field: "first_name", Value: f.firstName, Constraint: "required", Message: "First name must be specified."},
		{Field: "first_name", Value: f.firstName, Constraint: "omitempty,alphanum", Message: "First name has non-alphanumeric characters."},
		{Field: "family_name", Value: f.familyName, Constraint: "required", Message: "Family name must be specified."},
		{Field: "family_name", Value: f.familyName, Constraint: "omitempty,alphanum", Message: "Family name has non-alphanumeric characters."},
	})
	var ok bool
	if f.birth, ok = forms.ParseOptionalDate(f.birthInput); !ok {
		errs = append(errs, forms.Error{Field: "date_of_birth", Message: "Invalid date of birth"})
	}
	if f.death, ok = forms.ParseOptionalDate(f.deathInput); !ok {
		errs = append(errs, forms.Error{Field: "date_of_death", Message: "Invalid date of death"})
	}
	return f, errs, true
}
