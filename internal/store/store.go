// Package store provides Postgres persistence for parsed dashboard records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

var (
	globalDB     *sql.DB
	globalDBErr  error
	globalDBOnce sync.Once
)

// DB returns the shared database connection pool built from DATABASE_URL.
func DB() (*sql.DB, error) {
	globalDBOnce.Do(func() {
		dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if dbURL == "" {
			globalDBErr = errors.New("DATABASE_URL is not set")
			return
		}

		db, err := sql.Open("postgres", dbURL)
		if err != nil {
			globalDBErr = err
			return
		}

		if err := db.Ping(); err != nil {
			_ = db.Close()
			globalDBErr = err
			return
		}

		globalDB = db
	})

	return globalDB, globalDBErr
}

// Querier is an interface for database query execution.
// *sql.DB, *sql.Conn, and *sql.Tx all implement this interface.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
