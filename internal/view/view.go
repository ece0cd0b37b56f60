// Package view hands controller output to the rendering layer. Handlers
// build a Data view-model and name the page; how the page is produced is
// the renderer's business.
package view

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
)

// Data is the view-model passed to a template. Every page carries at
// least a "title" key; form pages add the field values to echo back and
// an "errors" key holding []forms.Error when validation failed.
type Data map[string]any

// Renderer renders a named page with its view-model.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data Data)
}

// TemplateRenderer renders pages with html/template. Text fields in the
// view-model are already escaped by the forms package; templates treat
// them as pre-sanitized.
type TemplateRenderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewTemplateRenderer parses every template under glob (e.g.
// "templates/*.tmpl") once at startup.
func NewTemplateRenderer(glob string, logger *slog.Logger) (*TemplateRenderer, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t, logger: logger}, nil
}

// Render executes the named template. The page is buffered so a template
// fault cannot leave a half-written body behind a 200 header.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data Data) {
	var buf bytes.Buffer
	if err := tr.templates.ExecuteTemplate(&buf, name, data); err != nil {
		tr.logger.Error("render failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
