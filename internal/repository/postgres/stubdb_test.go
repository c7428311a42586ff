package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
)

// stubRows replays canned driver values under a fixed column list.
type stubRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

// stubConn records every issued query and answers with the canned rows.
type stubConn struct {
	queries []string
	rows    *stubRows
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, query)
	if c.rows == nil {
		return &stubRows{}, nil
	}
	return c.rows, nil
}

type stubConnector struct {
	conn *stubConn
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }

func (c *stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

// newStubDB wires the stub connection behind an sqlx handle with
// postgres bind semantics.
func newStubDB(conn *stubConn) *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(&stubConnector{conn: conn}), "postgres")
}

// splitColumns turns a select-list constant into its column names so
// canned rows stay aligned with the real queries.
func splitColumns(list string) []string {
	raw := strings.Split(list, ",")
	out := make([]string, 0, len(raw))
	for _, col := range raw {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		out = append(out, col)
	}
	return out
}
