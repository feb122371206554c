// Package sqlitedb is an embedded SQLite implementation of db.Store, used for
// local development and tests that should not need a Postgres server.
package sqlitedb

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// Store implements db.Store on top of database/sql and modernc.org/sqlite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ db.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the database at dsn. Use ":memory:" for a
// throwaway database.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}
	return New(conn, opts...), nil
}

// New wraps an existing handle. The caller is responsible for the schema.
func New(conn *sql.DB, opts ...Option) *Store {
	s := &Store{db: conn, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying handle.
func (s *Store) Close() {
	_ = s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "failed to apply sqlite schema")
	}
	return nil
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// dialect renders shared queries with "?" placeholders. SQLite LIKE is
// case-insensitive for ASCII.
var dialect = db.Dialect{
	Placeholder: func(int) string { return "?" },
	Like:        "LIKE",
}

func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended result codes are not always enabled.
		return strings.Contains(se.Error(), "UNIQUE constraint failed")
	}
	return false
}

func collect[T any](rows *sql.Rows, scan func(db.RowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}
	return out, nil
}
