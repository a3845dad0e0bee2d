package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"caseline/internal/platform/store/sqlite"
)

// ErrNoRows is returned by Row.Scan on either SQL backend when nothing matched
var ErrNoRows = errors.New("store: no rows in result set")

// stdQuerier is what both *sql.DB and *sql.Tx offer
type stdQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type stdRunner struct{ q stdQuerier }

func (s stdRunner) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return resultTag{n: n}, nil
}

func (s stdRunner) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rs, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &stdRows{r: rs}, nil
}

func (s stdRunner) QueryRow(ctx context.Context, query string, args ...any) Row {
	return stdRow{r: s.q.QueryRowContext(ctx, query, args...)}
}

// sqliteAdapter implements TxRunner over the embedded database
type sqliteAdapter struct {
	stdRunner
	db *sqlite.DB
}

func newSQLiteAdapter(db *sqlite.DB) *sqliteAdapter {
	return &sqliteAdapter{stdRunner: stdRunner{q: db.DB}, db: db}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(stdRunner{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type stdRow struct{ r *sql.Row }

func (x stdRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

type stdRows struct {
	r    *sql.Rows
	cols []string
}

func (x *stdRows) Next() bool            { return x.r.Next() }
func (x *stdRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *stdRows) Err() error            { return x.r.Err() }
func (x *stdRows) Close()                { _ = x.r.Close() }
func (x *stdRows) Columns() []string {
	if x.cols == nil {
		x.cols, _ = x.r.Columns()
	}
	return x.cols
}

type resultTag struct{ n int64 }

func (t resultTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t resultTag) RowsAffected() int64 { return t.n }
