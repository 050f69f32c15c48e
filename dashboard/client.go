// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/dropout-cube/metrics"
)

// Fetcher retrieves a cube endpoint as an array of rows.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) [][]any
}

// Client fetches tables from the cube API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API at baseURL. A nil httpClient uses
// http.DefaultClient, which has no timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch issues GET <base>/<endpoint>?<params>. Any failure is logged and
// yields an empty table; numbers decode as json.Number.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) [][]any {
	rows, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		outcome := metrics.OutcomeFetchError
		if isDecodeError(err) {
			outcome = metrics.OutcomeDecodeError
		}
		slog.Error("fetch failed", "endpoint", endpoint, "params", params.Encode(), "error", err)
		metrics.DashboardFetches.WithLabelValues(endpoint, outcome).Inc()
		return [][]any{}
	}
	metrics.DashboardFetches.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()
	return rows
}

type decodeError struct{ err error }

func (e decodeError) Error() string { return "failed to decode response: " + e.err.Error() }
func (e decodeError) Unwrap() error { return e.err }

func isDecodeError(err error) bool {
	var de decodeError
	return errors.As(err, &de)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([][]any, error) {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var rows [][]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, decodeError{err}
	}
	if rows == nil {
		rows = [][]any{}
	}
	return rows, nil
}
