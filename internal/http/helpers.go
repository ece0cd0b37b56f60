// Package http contains the catalog's request handlers. Each entity kind
// exposes the same seven actions (list, detail, create, delete and update
// forms and submissions); handlers orchestrate the services, run form
// validation, and emit view-models through the renderer.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"locallibrary/internal/view"
)

// base carries the collaborators every handler needs and the shared
// error responses.
type base struct {
	render view.Renderer
	logger *slog.Logger
}

// serverError logs an infrastructure failure and renders the generic
// failure page. Store failures always land here, unretried.
func (b base) serverError(w http.ResponseWriter, r *http.Request, err error) {
	b.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
	b.render.Render(w, http.StatusInternalServerError, "error", view.Data{
		"title": "Server Error",
	})
}

// notFound renders the dedicated missing-resource page.
func (b base) notFound(w http.ResponseWriter, message string) {
	b.render.Render(w, http.StatusNotFound, "not_found", view.Data{
		"title":   "Not Found",
		"message": message,
	})
}

// badRequest rejects a request whose body could not be parsed at all.
func (b base) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	b.logger.Warn(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
	http.Error(w, "bad request", http.StatusBadRequest)
}

// inputDate renders an optional date for a form's date input.
func inputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
