// schema.go defines the SQLite database schema and provides schema execution
// helpers.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes like 001_, 002_). This
// approach makes each table's schema self-contained and reviewable, and
// produces cleaner git diffs when schema changes.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested path, tag, or stored query does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a name that is already taken. SQLiteStore
	// never returns it: SaveQuery overwrites an existing stored query of
	// the same name.
	ErrAlreadyExists = errors.New("already exists")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order. The dir parameter specifies the directory within the
// embed.FS to read from.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
