// Package log provides centralised audit logging for tagfs operations.
// Logs are stored in ~/.tagfs/log/tagfs-log.db and track CLI commands and
// mount-lifetime mutations across tag stores.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("cmd:tag", "tag").
//		Author(cmd.Author()).
//		Path(p).
//		Tag(t).
//		Write(err)
//
//	log.Event("cmd:query", "query").
//		Author(cmd.Author()).
//		Expression(expr).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "cmd:{command}" for CLI
// commands. Examples: "cmd:tag", "cmd:untag", "cmd:mount".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "cmd:tag", "cmd:mount"
	Author string // who performed the action
	Action string // verb: tag, untag, query, mount, save-query, etc.
	Path   string // input: tagged path this operation affects
	Tag    string // input: tag text this operation affects

	// Output fields - populated after operation succeeds
	Expression string // output: query expression evaluated or stored
	ResultSize int    // output: number of paths matched or blocks applied

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated, conventionally
// "cmd:{command}" (e.g., "cmd:tag", "cmd:mount").
//
// The action describes what operation was performed:
//   - "tag", "untag", "query", "edit", "mount", "save-query", "delete-query"
//
// Example:
//
//	log.Event("cmd:tag", "tag").Author(cmd.Author()).Path(p).Tag(t).Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the tagged path this operation affects.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Tag sets the tag text this operation affects.
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Expression sets the query expression evaluated or stored by this
// operation (output).
func (b *Builder) Expression(expr string) *Builder {
	b.entry.Expression = expr
	return b
}

// ResultSize sets the number of paths matched or blocks applied (output).
func (b *Builder) ResultSize(n int) *Builder {
	b.entry.ResultSize = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetStore sets the tag-store identifier for subsequent log entries.
// The path should be the absolute path to the store's database file.
func SetStore(path string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.store = hash(path)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
