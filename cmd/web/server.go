package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "locallibrary/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// application holds the wired handlers and shared infrastructure for the
// catalog server.
type application struct {
	addr   string
	logger *slog.Logger
	db     *pgxpool.Pool

	dashboard *apphttp.DashboardHandler
	authors   *apphttp.AuthorHandler
	books     *apphttp.BookHandler
	genres    *apphttp.GenreHandler
	instances *apphttp.BookInstanceHandler
}

// serve starts the HTTP server and blocks until SIGINT or SIGTERM, then
// gives in-flight requests 20 seconds to finish before stopping.
func (app *application) serve() error {
	httpServer := &http.Server{
		Addr:         app.addr,
		Handler:      app.routes(),
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		app.logger.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(ctx)
	}()

	app.logger.Info("starting server", slog.String("address", httpServer.Addr))

	err := httpServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped", slog.String("address", httpServer.Addr))
	return nil
}
