// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/dropout-cube/testutil"
)

// TestConcurrentCubeRequests verifies that simultaneous requests against the
// same database all succeed and see the same data
func TestConcurrentCubeRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	want := serve(handler.CubeRollup, "/cube_rollup").Body.String()

	numRequests := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup
	bodies := make([]string, numRequests)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := httptest.NewRequest("GET", "/cube_rollup", nil)
			w := httptest.NewRecorder()
			handler.CubeRollup(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
			bodies[idx] = w.Body.String()
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRequests {
		t.Errorf("Expected %d successful requests, got %d", numRequests, successCount.Load())
	}
	for i, body := range bodies {
		if body != want {
			t.Errorf("Request %d returned a different table", i)
		}
	}
}

// TestConnectionPerRequest verifies that every request opens its own
// connection and that connections are not reused between requests
func TestConnectionPerRequest(t *testing.T) {
	db, conn := testutil.NewStubDB()
	defer db.Close()
	handler := newTestHandler(t, db)

	numRequests := 8
	var wg sync.WaitGroup
	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serve(handler.CubeSlice, "/cube_slice?region_name=Chennai")
		}()
	}
	wg.Wait()

	// Sequential requests must not reuse a released connection either
	serve(handler.CubeSales, "/cube_sales")
	serve(handler.CubeSales, "/cube_sales")

	if conn.Opens != numRequests+2 {
		t.Errorf("Expected %d connections, got %d", numRequests+2, conn.Opens)
	}
	if len(conn.Queries) != numRequests+2 {
		t.Errorf("Expected %d queries, got %d", numRequests+2, len(conn.Queries))
	}
}
