// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/dropout-cube/cliparse"
	"github.com/danielhkuo/dropout-cube/cube"
	"github.com/danielhkuo/dropout-cube/metrics"
	"github.com/danielhkuo/dropout-cube/middleware"
	"github.com/danielhkuo/dropout-cube/models"
)

const msgConnectionError = "Database connection error"

type CubeHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	builder cube.Builder
}

func NewCubeHandler(db *sql.DB, cfg cliparse.Config) (*CubeHandler, error) {
	dialect, err := cube.DialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}
	source, err := cube.SourceFor(cfg.FactLayout)
	if err != nil {
		return nil, err
	}
	builder, err := cube.NewBuilder(dialect, source)
	if err != nil {
		return nil, err
	}
	return &CubeHandler{db: db, cfg: cfg, builder: builder}, nil
}

// CubeSales handles GET /cube_sales
// Returns every fact with its region, time and standard labels
func (h *CubeHandler) CubeSales(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, models.OpCubeSales, "Error fetching cube sales data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.Facts(ctx, cube.SliceFilter{})
			return models.Table(rows), err
		})
}

// CubeRollup handles GET /cube_rollup
// Returns CUBE(region, year, standard) with summed students
func (h *CubeHandler) CubeRollup(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, models.OpCubeRollup, "Error fetching cube rollup data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.Cube(ctx)
			return models.Table(rows), err
		})
}

// CubeDrilldownRegion handles GET /cube_drilldown_region?region_id=
// Returns facts for the region and all of its descendants
func (h *CubeHandler) CubeDrilldownRegion(w http.ResponseWriter, r *http.Request) {
	regionID, ok := h.requiredInt(w, r, models.OpDrilldownRegion, "region_id")
	if !ok {
		return
	}

	h.run(w, r, models.OpDrilldownRegion, "Error fetching cube drilldown data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.RegionFacts(ctx, int64(regionID))
			return models.Table(rows), err
		})
}

// CubeRollupRegion handles GET /cube_rollup_region?year=
// Returns ROLLUP(region, month, standard) restricted to one year
func (h *CubeHandler) CubeRollupRegion(w http.ResponseWriter, r *http.Request) {
	year, ok := h.requiredInt(w, r, models.OpRollupRegion, "year")
	if !ok {
		return
	}

	h.run(w, r, models.OpRollupRegion, "Error fetching cube rollup data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.RegionRollup(ctx, year)
			return models.Table(rows), err
		})
}

// CubeSlice handles GET /cube_slice?region_name=&year=&standard_name=
// Every parameter is optional; present ones are ANDed together
func (h *CubeHandler) CubeSlice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter cube.SliceFilter
	if v := q.Get("region_name"); v != "" {
		filter.RegionName = &v
	}
	if v := q.Get("standard_name"); v != "" {
		filter.StandardName = &v
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(w, models.OpSlice, "year must be an integer")
			return
		}
		filter.Year = &year
	}

	h.run(w, r, models.OpSlice, "Error fetching cube slice data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.Facts(ctx, filter)
			return models.Table(rows), err
		})
}

// CubeDrilldownTime handles GET /cube_drilldown_time?year=
// Returns monthly totals per region and standard for one year
func (h *CubeHandler) CubeDrilldownTime(w http.ResponseWriter, r *http.Request) {
	year, ok := h.requiredInt(w, r, models.OpDrilldownTime, "year")
	if !ok {
		return
	}

	h.run(w, r, models.OpDrilldownTime, "Error fetching cube drilldown time data",
		func(ctx context.Context, s *cube.Store) ([][]any, error) {
			rows, err := s.Periods(ctx, year)
			return models.Table(rows), err
		})
}

// run takes a dedicated connection for the request, runs query against it
// and writes the table. The connection is closed before returning.
func (h *CubeHandler) run(w http.ResponseWriter, r *http.Request, op, failMessage string,
	query func(ctx context.Context, s *cube.Store) ([][]any, error)) {
	ctx := r.Context()

	conn, err := h.db.Conn(ctx)
	if err != nil {
		slog.Error("database connection failed", "operation", op, "error", err)
		metrics.CubeRequests.WithLabelValues(op, metrics.OutcomeConnError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgConnectionError)
		return
	}
	defer conn.Close()

	start := time.Now()
	table, err := query(ctx, cube.NewStore(conn, h.builder))
	metrics.ObserveQuery(op, start)

	if errors.Is(err, cube.ErrRegionCycle) {
		slog.Warn("cyclic region hierarchy", "operation", op, "error", err)
		h.badRequest(w, op, "Region hierarchy contains a cycle")
		return
	}
	if err != nil {
		slog.Error("query failed", "operation", op, "error", err)
		metrics.CubeRequests.WithLabelValues(op, metrics.OutcomeQueryError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, failMessage)
		return
	}

	metrics.CubeRequests.WithLabelValues(op, metrics.OutcomeOK).Inc()
	middleware.JSONResponse(w, http.StatusOK, table)
}

// requiredInt reads a mandatory integer query parameter, writing a 400 if it
// is missing or malformed.
func (h *CubeHandler) requiredInt(w http.ResponseWriter, r *http.Request, op, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		h.badRequest(w, op, "Missing "+name+" parameter")
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		h.badRequest(w, op, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func (h *CubeHandler) badRequest(w http.ResponseWriter, op, message string) {
	metrics.CubeRequests.WithLabelValues(op, metrics.OutcomeBadRequest).Inc()
	middleware.ErrorResponse(w, http.StatusBadRequest, message)
}
