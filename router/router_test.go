// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/dropout-cube/cliparse"
	"github.com/danielhkuo/dropout-cube/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	db := testutil.SetupTestDB(t)

	mux, err := NewRouter(db, testutil.GetTestConfig())
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return mux
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "dropout-cube API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		path           string
		expectedStatus int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/cube_sales", http.StatusOK},
		{"/cube_rollup", http.StatusOK},
		{"/cube_drilldown_region?region_id=5", http.StatusOK},
		{"/cube_rollup_region?year=2024", http.StatusOK},
		{"/cube_slice?year=2024", http.StatusOK},
		{"/cube_drilldown_time?year=2024", http.StatusOK},
		{"/cube_drilldown_region", http.StatusBadRequest},
		{"/cube_sideways", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d for %s, got %d", tc.expectedStatus, tc.path, w.Code)
			}
		})
	}
}

func TestRequestIDOnCubeRoutes(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/cube_sales", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("Expected request ID to be echoed, got '%s'", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got '%s'", ct)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	// Every route is read-only
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"POST", "/cube_sales"},
		{"PUT", "/cube_slice"},
		{"DELETE", "/cube_rollup"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestNewRouterRejectsInvalidConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	cfg.FactLayout = "packed"
	if _, err := NewRouter(db, cfg); err == nil {
		t.Error("Expected error for packed layout on SQLite")
	}

	if _, err := NewRouter(db, cliparse.Config{DatabaseType: "oracle"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

type staticFetcher [][]any

func (f staticFetcher) Fetch(context.Context, string, url.Values) [][]any { return f }

func TestDashboardRouter(t *testing.T) {
	mux := NewDashboardRouter(staticFetcher{{"Chennai", "2024-03", "Standard 8", json.Number("12")}})

	testCases := []struct {
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "Cube Student Data belonging to Chennai"},
		{"/cube_drilldown_time", http.StatusOK, "Plotly.newPlot"},
		{"/figures/cube_drilldown_time", http.StatusOK, `"type":"scatter3d"`},
		{"/figures/unknown", http.StatusNotFound, "Unknown view"},
		{"/snapshots/cube_drilldown_time", http.StatusOK, "PNG"},
		{"/no_such_page", http.StatusNotFound, "404"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.expectedBody) {
				t.Errorf("Expected body to contain %q", tc.expectedBody)
			}
		})
	}
}
