// sqlite_ops.go provides SQLite connection management and low-level
// operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection
// pooling, driver registration) from business logic. This is the only file
// that imports the SQLite driver, making it easier to swap implementations
// if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers while the FS handler or CLI holds a write
// transaction open - critical since the FUSE transport dispatches reads
// from many kernel threads while a single command thread applies mutations.
// foreign_keys is enabled because, unlike a single flat table, tagfs's
// schema has real parent/child relationships (taggings -> paths, tags) that
// benefit from the engine enforcing referential integrity rather than the
// application doing so by convention.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
		`PRAGMA foreign_keys=ON`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call
// multiple times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers that need direct access.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction, handling
// Begin/Commit/Rollback automatically. This is what makes
// apply_edit_script's all-or-nothing guarantee cheap to implement:
// ApplyEditScript runs every block's statements (through the same upsert
// and lookup helpers AddTag and RemoveTag use) inside one Tx.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner is the Scan method shared by sql.Row and sql.Rows. No function in
// this package takes it; scanTags and scanPaths take *sql.Rows directly.
type scanner interface {
	Scan(dest ...any) error
}

func scanNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
