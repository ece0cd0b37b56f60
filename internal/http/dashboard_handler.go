package http

import (
	"log/slog"
	"net/http"

	"locallibrary/internal/usecase"
	"locallibrary/internal/view"
)

type DashboardHandler struct {
	base
	svc *usecase.DashboardService
}

func NewDashboardHandler(svc *usecase.DashboardService, render view.Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{render: render, logger: logger}, svc: svc}
}

// Index shows the home page with the five collection counts. A failure
// in any count fails the whole page; no partial dashboard is rendered.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Totals(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "index", view.Data{
		"title": "Local Library Home",
		"data":  counts,
	})
}
