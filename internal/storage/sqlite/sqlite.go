// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite runs inside the process. There is no network, no separate
// server, and no installation beyond the driver. With the default
// ":memory:" data source it behaves like the memory backend, but every
// integrity rule is also backed by the schema (UNIQUE, REFERENCES).
//
// The schema is dropped and recreated by New, so a file path gives no
// durability across restarts.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; we never call anything from it directly except its error
// codes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Compile-time check that *SQLite satisfies storage.Storage.
var _ storage.Storage = (*SQLite)(nil)

// SQLite is the database-backed store.
//
// Db is limited to a single connection: a ":memory:" database exists per
// connection, and one connection also serialises every transaction, so
// the check-then-write steps inside a transaction never interleave.
type SQLite struct {
	Db *sql.DB

	nowFn func() time.Time
	newID func() uuid.UUID
}

// DATETIME columns make go-sqlite3 convert time.Time in both directions.
const schema = `
	DROP TABLE IF EXISTS assignments;
	DROP TABLE IF EXISTS courses;
	DROP TABLE IF EXISTS person_addresses;
	DROP TABLE IF EXISTS persons;
	DROP TABLE IF EXISTS addresses;

	CREATE TABLE addresses (
		id          TEXT     PRIMARY KEY,
		street      TEXT     NOT NULL,
		city        TEXT     NOT NULL,
		state       TEXT     NOT NULL,
		postal_code TEXT     NOT NULL,
		country     TEXT     NOT NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	);

	CREATE TABLE persons (
		id         TEXT     PRIMARY KEY,
		uni        TEXT,
		first_name TEXT,
		last_name  TEXT,
		email      TEXT,
		phone      TEXT,
		birth_date TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE person_addresses (
		person_id   TEXT    NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		id          TEXT    NOT NULL,
		street      TEXT    NOT NULL,
		city        TEXT    NOT NULL,
		state       TEXT    NOT NULL,
		postal_code TEXT    NOT NULL,
		country     TEXT    NOT NULL,
		PRIMARY KEY (person_id, position)
	);

	CREATE TABLE courses (
		id         TEXT     PRIMARY KEY,
		code       TEXT     NOT NULL,
		title      TEXT     NOT NULL,
		instructor TEXT     NOT NULL,
		semester   TEXT     NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (code, semester)
	);

	CREATE TABLE assignments (
		id         TEXT     PRIMARY KEY,
		course_id  TEXT     NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title      TEXT     NOT NULL,
		due_date   TEXT,
		points     INTEGER,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// New opens the database named by cfg.Storage.Path and recreates the
// schema.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.Storage.Path)
}

// Open is New for callers without a *config.Config, such as tests.
func Open(path string) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet; it only validates the
	// driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", withForeignKeys(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create schema: %w", err)
	}

	return &SQLite{
		Db:    db,
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: types.NewID,
	}, nil
}

func withForeignKeys(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Close releases the connection. For ":memory:" this discards every record.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx, so the row helpers
// work inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// inTx runs fn in a transaction and commits only if fn returns nil.
//
// fn must use tx, never s.Db: the pool has one connection and the
// transaction is holding it.
//
// The transaction itself ignores ctx cancellation. database/sql discards
// the connection of a transaction whose context is done, and with
// ":memory:" that connection is the whole database. Statements run by fn
// still observe ctx and fail, which rolls the transaction back.
func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.Db.BeginTx(context.WithoutCancel(ctx), nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", translate(err))
	}
	return nil
}

// touch returns the new updated_at for a record last touched at prev.
func (s *SQLite) touch(prev time.Time) time.Time {
	now := s.nowFn()
	if now.Before(prev) {
		return prev
	}
	return now
}

// translate maps constraint violations the explicit checks should already
// have caught onto the storage sentinels, so a missed check still yields
// the right status.
func translate(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return fmt.Errorf("%w: %w", storage.ErrConflict, err)
	case sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %w", storage.ErrDuplicateID, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %w", storage.ErrBadReference, err)
	}
	return err
}

// exists reports whether query (a SELECT 1 ... LIMIT 1) returns a row.
func exists(ctx context.Context, q queryer, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// where accumulates "col = ?" clauses for the list filters. A nil value
// adds nothing.
type where struct {
	clauses []string
	args    []any
}

func (w *where) eq(column string, v *string) {
	if v == nil {
		return
	}
	w.add(column+" = ?", *v)
}

func (w *where) add(clause string, arg any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
