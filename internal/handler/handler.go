package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/health-widget/internal/render"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

type WidgetHandler struct {
	logger  *slog.Logger
	widget  *widget.Widget
	refresh time.Duration
}

// NewWidgetHandler serves w. Pages reload themselves every refresh.
func NewWidgetHandler(logger *slog.Logger, w *widget.Widget, refresh time.Duration) *WidgetHandler {
	return &WidgetHandler{
		logger:  logger,
		widget:  w,
		refresh: refresh,
	}
}

// Page renders the standalone HTML page.
func (h *WidgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.writeHTML(w, r, func(out io.Writer, view widget.View) error {
		return render.HTMLPage(out, view, h.refresh)
	})
}

// Fragment renders the widget markup alone.
func (h *WidgetHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	h.writeHTML(w, r, render.HTMLFragment)
}

// State serves the current view as JSON.
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	view := h.widget.View()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.logger.Error("Failed to encode widget state", slog.String("error", err.Error()))
	}
}

func (h *WidgetHandler) writeHTML(w http.ResponseWriter, r *http.Request, fn func(io.Writer, widget.View) error) {
	var buf bytes.Buffer
	if err := fn(&buf, h.widget.View()); err != nil {
		h.logger.Error("Failed to render widget",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		http.Error(w, "failed to render widget", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
