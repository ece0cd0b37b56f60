package main

import (
	"context"
	"net/http"
	"time"

	apphttp "locallibrary/internal/http"
	"locallibrary/internal/httpx"
)

// routes registers every catalog endpoint. GET actions carry the entity
// id in the path; the delete POSTs read it from the confirmation form's
// body, so their path id is display-only.
func (app *application) routes() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := app.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})
	router.HandleFunc("GET /catalog", app.dashboard.Index)

	registerEntityRoutes(router, "author", "authors", app.authors)
	registerEntityRoutes(router, "book", "books", app.books)
	registerEntityRoutes(router, "genre", "genres", app.genres)
	registerEntityRoutes(router, "bookinstance", "bookinstances", app.instances)

	rateLimiter := httpx.NewRateLimitMiddleware(10, 20)

	// Outermost first: every request gets an id and an access log entry,
	// panics are caught before the limiter and the inner stack run.
	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = rateLimiter.Middleware(handler)
	handler = httpx.RecoveryMiddleware(app.logger)(handler)
	handler = httpx.AccessLogMiddleware(app.logger)(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}

// entityHandler is the seven-action shape every catalog handler exposes.
type entityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	CreateGet(w http.ResponseWriter, r *http.Request)
	CreatePost(w http.ResponseWriter, r *http.Request)
	DeleteGet(w http.ResponseWriter, r *http.Request)
	DeletePost(w http.ResponseWriter, r *http.Request)
	UpdateGet(w http.ResponseWriter, r *http.Request)
	UpdatePost(w http.ResponseWriter, r *http.Request)
}

var _ entityHandler = (*apphttp.AuthorHandler)(nil)

func registerEntityRoutes(router *http.ServeMux, singular, plural string, h entityHandler) {
	router.HandleFunc("GET /catalog/"+plural, h.List)
	router.HandleFunc("GET /catalog/"+singular+"/create", h.CreateGet)
	router.HandleFunc("POST /catalog/"+singular+"/create", h.CreatePost)
	router.HandleFunc("GET /catalog/"+singular+"/{id}", h.Detail)
	router.HandleFunc("GET /catalog/"+singular+"/{id}/delete", h.DeleteGet)
	router.HandleFunc("POST /catalog/"+singular+"/{id}/delete", h.DeletePost)
	router.HandleFunc("GET /catalog/"+singular+"/{id}/update", h.UpdateGet)
	router.HandleFunc("POST /catalog/"+singular+"/{id}/update", h.UpdatePost)
}
