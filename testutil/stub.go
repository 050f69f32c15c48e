// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

var stubSeq atomic.Int64

// StubConn records what a handler asked of the database.
type StubConn struct {
	mu      sync.Mutex
	Opens   int
	Queries []string

	FailOpen  bool
	FailQuery bool
}

// NewStubDB registers a sql.DB backed by a recording stub driver.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{}
	name := fmt.Sprintf("cubestub%d", stubSeq.Add(1))
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	db.SetMaxIdleConns(0)
	return db, conn
}

// Calls returns the number of connections opened plus queries issued.
func (c *StubConn) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Opens + len(c.Queries)
}

type stubDriver struct {
	conn *StubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	d.conn.mu.Lock()
	defer d.conn.mu.Unlock()
	d.conn.Opens++
	if d.conn.FailOpen {
		return nil, errors.New("stub: connection refused")
	}
	return d.conn, nil
}

// Prepare implements driver.Conn.
func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) { return nil, errors.New("stub: read-only") }

// QueryContext implements driver.QueryerContext. Successful queries return no rows.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Queries = append(c.Queries, query)
	if c.FailQuery {
		return nil, errors.New("stub: relation \"student_dropout_fact\" does not exist")
	}
	return &stubRows{}, nil
}

type stubRows struct{}

func (r *stubRows) Columns() []string         { return nil }
func (r *stubRows) Close() error              { return nil }
func (r *stubRows) Next([]driver.Value) error { return io.EOF }
