// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /cube_sales", middleware.WithLogging(handler))

Logs request start (request_id, method, path, query, remote) and
completion (status, duration_ms). The request ID is taken from the
X-Request-ID header or generated, and echoed back in the response.

# CORS Middleware

Let a browser call the API directly:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET and OPTIONS. The API is read-only.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, models.Table(rows))
	middleware.ErrorResponse(w, http.StatusBadRequest, "Missing year parameter")

Error bodies have a single key: {"error": "..."}.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
