// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dropout-cube/dashboard"
	"github.com/danielhkuo/dropout-cube/middleware"
)

type DashboardHandler struct {
	fetcher dashboard.Fetcher
}

func NewDashboardHandler(fetcher dashboard.Fetcher) *DashboardHandler {
	return &DashboardHandler{fetcher: fetcher}
}

// Page handles GET /{path}
// Renders the navigation and the view's chart, or the 404 placeholder
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	var (
		page   dashboard.Page
		status = http.StatusOK
	)

	// The index shows navigation only
	if view, ok := dashboard.Lookup(r.URL.Path); ok {
		fig := view.Figure(r.Context(), h.fetcher)
		page.View = view
		page.Figure = &fig
	} else if r.URL.Path != "/" {
		page.NotFound = true
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := dashboard.RenderPage(&buf, page); err != nil {
		slog.Error("page render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Figure handles GET /figures/{view}
// Returns the Plotly figure document for a view
func (h *DashboardHandler) Figure(w http.ResponseWriter, r *http.Request) {
	view, ok := dashboard.Lookup(r.PathValue("view"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown view")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view.Figure(r.Context(), h.fetcher))
}

// Snapshot handles GET /snapshots/{view}
// Returns a PNG of the view projected onto region and students
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	view, ok := dashboard.Lookup(r.PathValue("view"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown view")
		return
	}

	var buf bytes.Buffer
	// A failed fetch yields no points and renders an empty frame
	if err := dashboard.WriteSnapshot(&buf, view.Title, view.Load(r.Context(), h.fetcher)); err != nil {
		slog.Error("snapshot render failed", "view", view.Name(), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error rendering snapshot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
