// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/dropout-cube/cliparse"
	"github.com/danielhkuo/dropout-cube/dashboard"
	"github.com/danielhkuo/dropout-cube/handlers"
	"github.com/danielhkuo/dropout-cube/metrics"
	"github.com/danielhkuo/dropout-cube/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// Initialize handlers
	cubeHandler, err := handlers.NewCubeHandler(db, cfg)
	if err != nil {
		return nil, err
	}

	registerHealth(mux)

	// Cube queries
	mux.HandleFunc("GET /cube_sales", middleware.WithLogging(cubeHandler.CubeSales))
	mux.HandleFunc("GET /cube_rollup", middleware.WithLogging(cubeHandler.CubeRollup))
	mux.HandleFunc("GET /cube_drilldown_region", middleware.WithLogging(cubeHandler.CubeDrilldownRegion))
	mux.HandleFunc("GET /cube_rollup_region", middleware.WithLogging(cubeHandler.CubeRollupRegion))
	mux.HandleFunc("GET /cube_slice", middleware.WithLogging(cubeHandler.CubeSlice))
	mux.HandleFunc("GET /cube_drilldown_time", middleware.WithLogging(cubeHandler.CubeDrilldownTime))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dropout-cube API v1"))
	})

	return mux, nil
}

func NewDashboardRouter(fetcher dashboard.Fetcher) *http.ServeMux {
	mux := http.NewServeMux()

	dashboardHandler := handlers.NewDashboardHandler(fetcher)

	registerHealth(mux)

	mux.HandleFunc("GET /figures/{view}", middleware.WithLogging(dashboardHandler.Figure))
	mux.HandleFunc("GET /snapshots/{view}", middleware.WithLogging(dashboardHandler.Snapshot))

	// Every other path is a page, unknown ones render the 404 placeholder
	mux.HandleFunc("GET /", middleware.WithLogging(dashboardHandler.Page))

	return mux
}

func registerHealth(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())
}
