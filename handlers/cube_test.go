// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/dropout-cube/models"
	"github.com/danielhkuo/dropout-cube/testutil"
)

func newTestHandler(t *testing.T, db *sql.DB) *CubeHandler {
	t.Helper()
	h, err := NewCubeHandler(db, testutil.GetTestConfig())
	if err != nil {
		t.Fatalf("NewCubeHandler: %v", err)
	}
	return h
}

func serve(handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("GET", path, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func sumColumn(table [][]any, col int) float64 {
	var total float64
	for _, row := range table {
		total += row[col].(float64)
	}
	return total
}

func TestCubeSales(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	w := serve(handler.CubeSales, "/cube_sales")
	testutil.AssertStatus(t, w, http.StatusOK)

	table := testutil.DecodeTable(t, w)
	if len(table) != 11 {
		t.Fatalf("Expected 11 fact rows, got %d", len(table))
	}
	for _, row := range table {
		if len(row) != 6 {
			t.Fatalf("Expected rows of width 6, got %v", row)
		}
	}

	first := table[0]
	if first[0] != "Chennai" || first[1] != 2023.0 || first[2] != 6.0 || first[3] != 15.0 ||
		first[4] != "Standard 12" || first[5] != 7.0 {
		t.Errorf("Unexpected first row: %v", first)
	}

	if total := sumColumn(table, 5); total != 77 {
		t.Errorf("Expected 77 students in total, got %v", total)
	}
}

func TestCubeRollup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	w := serve(handler.CubeRollup, "/cube_rollup")
	testutil.AssertStatus(t, w, http.StatusOK)

	table := testutil.DecodeTable(t, w)
	if len(table) == 0 {
		t.Fatal("Expected cube rows")
	}

	regions := map[any]bool{models.AllRegions: true}
	for _, name := range []string{"India", "North India", "South India", "East India", "Tamil Nadu",
		"Chennai", "Coimbatore", "Kerala", "Delhi", "Kolkata"} {
		regions[name] = true
	}
	years := map[any]bool{models.AllYears: true, 2023.0: true, 2024.0: true}
	standards := map[any]bool{models.AllStandards: true, "Standard 8": true, "Standard 10": true, "Standard 12": true}

	standardTotals := map[string]float64{}
	for _, row := range table {
		if len(row) != 4 {
			t.Fatalf("Expected rows of width 4, got %v", row)
		}
		if !regions[row[0]] {
			t.Errorf("Unexpected region value %v", row[0])
		}
		if !years[row[1]] {
			t.Errorf("Unexpected year value %v", row[1])
		}
		if !standards[row[2]] {
			t.Errorf("Unexpected standard value %v", row[2])
		}
		if row[0] == models.AllRegions && row[1] == models.AllYears && row[2] != models.AllStandards {
			standardTotals[row[2].(string)] = row[3].(float64)
		}
	}

	last := table[len(table)-1]
	if last[0] != models.AllRegions || last[1] != models.AllYears || last[2] != models.AllStandards || last[3] != 77.0 {
		t.Errorf("Expected grand total row last, got %v", last)
	}

	expected := map[string]float64{"Standard 8": 40, "Standard 10": 21, "Standard 12": 16}
	for name, want := range expected {
		if standardTotals[name] != want {
			t.Errorf("Expected %s subtotal %v, got %v", name, want, standardTotals[name])
		}
	}
}

func TestCubeDrilldownRegion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	tests := []struct {
		name            string
		path            string
		expectedStatus  int
		expectedRows    int
		expectedRegions map[string]bool
		expectedError   string
	}{
		{
			name:            "state includes itself and its cities",
			path:            "/cube_drilldown_region?region_id=5",
			expectedStatus:  http.StatusOK,
			expectedRows:    7,
			expectedRegions: map[string]bool{"Tamil Nadu": true, "Chennai": true, "Coimbatore": true},
		},
		{
			name:            "leaf region",
			path:            "/cube_drilldown_region?region_id=6",
			expectedStatus:  http.StatusOK,
			expectedRows:    4,
			expectedRegions: map[string]bool{"Chennai": true},
		},
		{
			name:           "root covers every fact",
			path:           "/cube_drilldown_region?region_id=1",
			expectedStatus: http.StatusOK,
			expectedRows:   11,
		},
		{
			name:           "unknown region",
			path:           "/cube_drilldown_region?region_id=999",
			expectedStatus: http.StatusOK,
			expectedRows:   0,
		},
		{
			name:           "missing region_id",
			path:           "/cube_drilldown_region",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing region_id parameter",
		},
		{
			name:           "non-integer region_id",
			path:           "/cube_drilldown_region?region_id=abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "region_id must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler.CubeDrilldownRegion, tt.path)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedError != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Error != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, resp.Error)
				}
				return
			}

			table := testutil.DecodeTable(t, w)
			if len(table) != tt.expectedRows {
				t.Fatalf("Expected %d rows, got %d", tt.expectedRows, len(table))
			}
			if tt.expectedRegions == nil {
				return
			}
			seen := map[string]bool{}
			for _, row := range table {
				region := row[0].(string)
				if !tt.expectedRegions[region] {
					t.Errorf("Unexpected region %s in drill-down", region)
				}
				seen[region] = true
			}
			if len(seen) != len(tt.expectedRegions) {
				t.Errorf("Expected regions %v, saw %v", tt.expectedRegions, seen)
			}
		})
	}
}

func TestCubeDrilldownRegion_Cycle(t *testing.T) {
	tests := []struct {
		name   string
		insert func(t *testing.T, db *sql.DB) int
	}{
		{"two regions parent each other", testutil.AddCyclicRegions},
		{"region is its own parent", testutil.AddSelfParentedRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			regionID := tt.insert(t, db)
			handler := newTestHandler(t, db)

			w := serve(handler.CubeDrilldownRegion, "/cube_drilldown_region?region_id="+strconv.Itoa(regionID))
			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != "Region hierarchy contains a cycle" {
				t.Errorf("Unexpected error message: %s", resp.Error)
			}

			// The rest of the hierarchy is unaffected
			w = serve(handler.CubeDrilldownRegion, "/cube_drilldown_region?region_id=5")
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}
}

func TestCubeRollupRegion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	t.Run("rollup for 2024", func(t *testing.T) {
		w := serve(handler.CubeRollupRegion, "/cube_rollup_region?year=2024")
		testutil.AssertStatus(t, w, http.StatusOK)

		table := testutil.DecodeTable(t, w)
		if len(table) != 24 {
			t.Fatalf("Expected 24 rollup rows, got %d", len(table))
		}

		last := table[len(table)-1]
		if last[0] != models.AllRegions || last[1] != models.AllMonths || last[2] != models.AllStandards || last[3] != 68.0 {
			t.Errorf("Expected grand total row last, got %v", last)
		}

		var chennai []any
		for _, row := range table {
			// Rollup never omits region while keeping month or standard
			if row[0] == models.AllRegions && (row[1] != models.AllMonths || row[2] != models.AllStandards) {
				t.Errorf("Unexpected rollup grouping %v", row)
			}
			if row[0] == "Chennai" && row[1] == models.AllMonths {
				chennai = row
			}
		}
		if chennai == nil || chennai[2] != models.AllStandards || chennai[3] != 25.0 {
			t.Errorf("Expected Chennai subtotal of 25, got %v", chennai)
		}
	})

	t.Run("year without facts yields only the grand total", func(t *testing.T) {
		w := serve(handler.CubeRollupRegion, "/cube_rollup_region?year=1999")
		testutil.AssertStatus(t, w, http.StatusOK)

		table := testutil.DecodeTable(t, w)
		if len(table) != 1 || table[0][3] != 0.0 {
			t.Errorf("Expected a single zero grand total, got %v", table)
		}
	})

	t.Run("missing year", func(t *testing.T) {
		w := serve(handler.CubeRollupRegion, "/cube_rollup_region")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestCubeSlice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	t.Run("no parameters equals cube_sales", func(t *testing.T) {
		slice := serve(handler.CubeSlice, "/cube_slice")
		sales := serve(handler.CubeSales, "/cube_sales")
		testutil.AssertStatus(t, slice, http.StatusOK)

		if slice.Body.String() != sales.Body.String() {
			t.Errorf("Expected unfiltered slice to equal cube_sales.\nslice: %s\nsales: %s",
				slice.Body.String(), sales.Body.String())
		}
	})

	tests := []struct {
		name         string
		path         string
		expectedRows int
		check        func(t *testing.T, row []any)
	}{
		{
			name:         "region and year",
			path:         "/cube_slice?region_name=Chennai&year=2024",
			expectedRows: 3,
			check: func(t *testing.T, row []any) {
				if row[0] != "Chennai" || row[1] != 2024.0 {
					t.Errorf("Row outside slice: %v", row)
				}
			},
		},
		{
			name:         "standard only",
			path:         "/cube_slice?standard_name=Standard+10",
			expectedRows: 3,
			check: func(t *testing.T, row []any) {
				if row[4] != "Standard 10" {
					t.Errorf("Row outside slice: %v", row)
				}
			},
		},
		{
			name:         "all three",
			path:         "/cube_slice?region_name=Delhi&year=2023&standard_name=Standard+8",
			expectedRows: 1,
		},
		{
			name:         "empty parameter is ignored",
			path:         "/cube_slice?region_name=&year=2023",
			expectedRows: 2,
		},
		{
			name:         "no match",
			path:         "/cube_slice?region_name=Atlantis",
			expectedRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler.CubeSlice, tt.path)
			testutil.AssertStatus(t, w, http.StatusOK)

			table := testutil.DecodeTable(t, w)
			if len(table) != tt.expectedRows {
				t.Fatalf("Expected %d rows, got %d: %v", tt.expectedRows, len(table), table)
			}
			if tt.check != nil {
				for _, row := range table {
					tt.check(t, row)
				}
			}
		})
	}

	t.Run("non-integer year", func(t *testing.T) {
		w := serve(handler.CubeSlice, "/cube_slice?year=twenty")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestCubeDrilldownTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	w := serve(handler.CubeDrilldownTime, "/cube_drilldown_time?year=2024")
	testutil.AssertStatus(t, w, http.StatusOK)

	table := testutil.DecodeTable(t, w)
	if len(table) != 9 {
		t.Fatalf("Expected 9 monthly rows, got %d", len(table))
	}
	first := table[0]
	if first[0] != "Chennai" || first[1] != "2024-03" || first[2] != "Standard 10" || first[3] != 8.0 {
		t.Errorf("Unexpected first row: %v", first)
	}
	if total := sumColumn(table, 3); total != 68 {
		t.Errorf("Expected 68 students in 2024, got %v", total)
	}
}

func TestRequiredParametersSkipDatabase(t *testing.T) {
	db, conn := testutil.NewStubDB()
	defer db.Close()
	handler := newTestHandler(t, db)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
	}{
		{"drilldown without region_id", handler.CubeDrilldownRegion, "/cube_drilldown_region"},
		{"drilldown with bad region_id", handler.CubeDrilldownRegion, "/cube_drilldown_region?region_id=x"},
		{"rollup without year", handler.CubeRollupRegion, "/cube_rollup_region"},
		{"time drilldown without year", handler.CubeDrilldownTime, "/cube_drilldown_time"},
		{"slice with bad year", handler.CubeSlice, "/cube_slice?year=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.handler, tt.path)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	if conn.Calls() != 0 {
		t.Errorf("Expected no database calls, got %d opens and queries %v", conn.Opens, conn.Queries)
	}
}

func TestConnectionFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	defer db.Close()
	conn.FailOpen = true
	handler := newTestHandler(t, db)

	paths := map[string]http.HandlerFunc{
		"/cube_sales":                        handler.CubeSales,
		"/cube_rollup":                       handler.CubeRollup,
		"/cube_drilldown_region?region_id=5": handler.CubeDrilldownRegion,
		"/cube_rollup_region?year=2024":      handler.CubeRollupRegion,
		"/cube_slice":                        handler.CubeSlice,
		"/cube_drilldown_time?year=2024":     handler.CubeDrilldownTime,
	}

	for path, h := range paths {
		t.Run(path, func(t *testing.T) {
			w := serve(h, path)
			testutil.AssertStatus(t, w, http.StatusInternalServerError)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != "Database connection error" {
				t.Errorf("Expected connection error message, got '%s'", resp.Error)
			}
		})
	}

	if len(conn.Queries) != 0 {
		t.Errorf("Expected no queries without a connection, got %v", conn.Queries)
	}
}

func TestQueryFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	defer db.Close()
	conn.FailQuery = true
	handler := newTestHandler(t, db)

	tests := []struct {
		path    string
		handler http.HandlerFunc
		message string
	}{
		{"/cube_sales", handler.CubeSales, "Error fetching cube sales data"},
		{"/cube_rollup", handler.CubeRollup, "Error fetching cube rollup data"},
		{"/cube_drilldown_region?region_id=5", handler.CubeDrilldownRegion, "Error fetching cube drilldown data"},
		{"/cube_rollup_region?year=2024", handler.CubeRollupRegion, "Error fetching cube rollup data"},
		{"/cube_slice?region_name=Chennai", handler.CubeSlice, "Error fetching cube slice data"},
		{"/cube_drilldown_time?year=2024", handler.CubeDrilldownTime, "Error fetching cube drilldown time data"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(tt.handler, tt.path)
			testutil.AssertStatus(t, w, http.StatusInternalServerError)

			if strings.Contains(w.Body.String(), "relation") {
				t.Errorf("Query error cause leaked to client: %s", w.Body.String())
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != tt.message {
				t.Errorf("Expected '%s', got '%s'", tt.message, resp.Error)
			}
		})
	}
}

func TestStubSucceedsWithEmptyTable(t *testing.T) {
	db, conn := testutil.NewStubDB()
	defer db.Close()
	handler := newTestHandler(t, db)

	w := serve(handler.CubeSales, "/cube_sales")
	testutil.AssertStatus(t, w, http.StatusOK)

	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
	if conn.Opens != 1 || len(conn.Queries) != 1 {
		t.Errorf("Expected one connection and one query, got %d opens and %d queries", conn.Opens, len(conn.Queries))
	}
}
