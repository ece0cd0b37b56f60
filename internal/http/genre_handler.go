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

type GenreHandler struct {
	base
	svc *usecase.GenreService
}

func NewGenreHandler(svc *usecase.GenreService, render view.Renderer, logger *slog.Logger) *GenreHandler {
	return &GenreHandler{base: base{render: render, logger: logger}, svc: svc}
}

func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "genre_list", view.Data{
		"title":      "Genre List",
		"genre_list": genres,
	})
}

func (h *GenreHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrGenreNotFound) {
			h.notFound(w, "Genre not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "genre_detail", view.Data{
		"title":       "Genre Detail",
		"genre":       d.Genre,
		"genre_books": d.Books,
	})
}

func (h *GenreHandler) CreateGet(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "genre_form", view.Data{
		"title": "Create Genre",
	})
}

// CreatePost persists a new genre, or redirects to the existing one when
// a genre with the submitted name is already in the catalog.
func (h *GenreHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	name, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.render.Render(w, http.StatusOK, "genre_form", view.Data{
			"title":  "Create Genre",
			"genre":  view.Data{"name": forms.Escape(name)},
			"errors": errs,
		})
		return
	}
	g, err := h.svc.Create(r.Context(), entity.Genre{Name: forms.Escape(name)})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, g.URL(), http.StatusFound)
}

func (h *GenreHandler) DeleteGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrGenreNotFound) {
			http.Redirect(w, r, "/catalog/genres", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "genre_delete", view.Data{
		"title":       "Delete Genre",
		"genre":       d.Genre,
		"genre_books": d.Books,
	})
}

// DeletePost reads the genre id from the form body; referencing books
// block the delete.
func (h *GenreHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	d, err := h.svc.Delete(r.Context(), r.PostFormValue("genreid"))
	if err != nil {
		if errors.Is(err, usecase.ErrHasDependents) {
			h.render.Render(w, http.StatusOK, "genre_delete", view.Data{
				"title":       "Delete Genre",
				"genre":       d.Genre,
				"genre_books": d.Books,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/catalog/genres", http.StatusFound)
}

func (h *GenreHandler) UpdateGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrGenreNotFound) {
			h.notFound(w, "Genre not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "genre_form", view.Data{
		"title": "Update Genre",
		"genre": view.Data{"name": g.Name},
	})
}

func (h *GenreHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name, errs, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		h.render.Render(w, http.StatusOK, "genre_form", view.Data{
			"title":  "Update Genre",
			"genre":  view.Data{"name": forms.Escape(name)},
			"errors": errs,
		})
		return
	}
	if err := h.svc.Update(r.Context(), id, entity.Genre{Name: forms.Escape(name)}); err != nil {
		if errors.Is(err, entity.ErrGenreNotFound) {
			h.notFound(w, "Genre not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, entity.Genre{ID: id}.URL(), http.StatusFound)
}

func (h *GenreHandler) parseForm(w http.ResponseWriter, r *http.Request) (string, []forms.Error, bool) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return "", nil, false
	}
	name := forms.Trim(r.PostFormValue("name"))
	errs := forms.Check([]forms.Rule{
		{Field: "name", Value: name, Constraint: "required", Message: "Genre name required"},
		{Field: "name", Value: name, Constraint: "omitempty,min=3,max=100", Message: "Genre name must be between 3 and 100 characters"},
	})
	return name, errs, true
}
