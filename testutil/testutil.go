// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/dropout-cube/cliparse"
	"github.com/danielhkuo/dropout-cube/db"
)

// SetupTestDB creates a fresh SQLite database with the schema and sample data.
// The database lives in a file so every new connection sees the same data.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cube.db")
	conn, err := db.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedSample(conn); err != nil {
		t.Fatalf("Failed to seed sample data: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  "file:test.db",
		DatabaseType: "sqlite",
		FactLayout:   "named",
	}
}

// AddCyclicRegions inserts two regions that are each other's parent and
// returns the ID of the first.
func AddCyclicRegions(t *testing.T, conn *sql.DB) int {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO region_dim (region_id, region_name, parent_region_id) VALUES
			(20, 'Loop A', 21),
			(21, 'Loop B', 20)
	`)
	if err != nil {
		t.Fatalf("Failed to create cyclic regions: %v", err)
	}

	return 20
}

// AddSelfParentedRegion inserts a region that is its own parent and returns
// its ID.
func AddSelfParentedRegion(t *testing.T, conn *sql.DB) int {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO region_dim (region_id, region_name, parent_region_id) VALUES
			(30, 'Loopback', 30)
	`)
	if err != nil {
		t.Fatalf("Failed to create self-parented region: %v", err)
	}

	return 30
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// DecodeTable decodes an array-of-arrays response
func DecodeTable(t *testing.T, w *httptest.ResponseRecorder) [][]any {
	t.Helper()
	var table [][]any
	AssertJSON(t, w, &table)
	return table
}
