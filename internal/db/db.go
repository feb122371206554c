// Package db provides PostgreSQL storage for users, profiles, postings and applications.
package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors shared by every Store implementation.
var (
	// ErrNotFound is returned when a single-row read or update matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")
	// ErrSeekerNotFound is returned by CreateApplication when the applicant's
	// profile is gone. It matches ErrNotFound.
	ErrSeekerNotFound = errors.Wrap(ErrNotFound, "job seeker profile not found")
)

// Pool sizing for Connect.
const (
	defaultMaxConns = 10
	defaultMinConns = 1
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// Connect establishes a connection pool to the database and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database url")
	}
	cfg.MaxConns = defaultMaxConns
	cfg.MinConns = defaultMinConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// notFound maps pgx.ErrNoRows to ErrNotFound and wraps anything else.
func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
