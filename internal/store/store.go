// Package store defines the tag-store types and the Store interface.
// Implementations handle the actual database operations while consumers
// (the query builder, the FS handler, the tagging API) depend only on this
// interface, enabling testing and alternative backends.
package store

import (
	"context"

	"github.com/jamesblissett/tagfs/internal/editscript"
)

// Path is an absolute host-filesystem path tracked by the tag store. The
// store treats Text as an opaque identifier, never as a filesystem
// reference - it is never opened, stat'd, or walked by this package.
type Path struct {
	ID   int64
	Text string
}

// Tag is either a bare tag (Text has no '=') or a keyed tag (key=value). Equal
// tags collapse to a single row, enforced by the tags.text UNIQUE
// constraint on the tag's canonical string form.
type Tag struct {
	ID   int64
	Text string // canonical form: "name" or "key=value"
}

// StoredQuery is a named, persisted DSL expression.
type StoredQuery struct {
	Name       string
	Expression string
}

// Store is the persistence interface for paths, tags, taggings, and stored
// queries. All mutating methods execute inside a single transaction and are
// idempotent where the spec requires it (AddTag, RemoveTag).
type Store interface {
	Init() error
	Close() error

	// AddTag upserts path, upserts tag, upserts the tagging. Idempotent.
	AddTag(ctx context.Context, path, tag string) error
	// RemoveTag deletes the tagging if present. Idempotent. If the path
	// loses its last tag, the path row is purged.
	RemoveTag(ctx context.Context, path, tag string) error
	// ListTags returns a path's tags, ordered ascending by tag text.
	ListTags(ctx context.Context, path string) ([]Tag, error)
	// ListPaths returns the paths carrying a tag, ordered ascending by
	// path text.
	ListPaths(ctx context.Context, tag string) ([]Path, error)
	// AllTags returns every distinct tag in the store, ordered.
	AllTags(ctx context.Context) ([]Tag, error)
	// AllKeys returns every distinct key from keyed tags, ordered.
	AllKeys(ctx context.Context) ([]string, error)
	// ValuesForKey returns every distinct value seen for a given key,
	// ordered.
	ValuesForKey(ctx context.Context, key string) ([]string, error)

	// SaveQuery creates or overwrites a stored query.
	SaveQuery(ctx context.Context, name, expression string) error
	// LoadQuery returns a stored query by name, or ErrNotFound.
	LoadQuery(ctx context.Context, name string) (StoredQuery, error)
	// DeleteQuery removes a stored query by name, or ErrNotFound.
	DeleteQuery(ctx context.Context, name string) error
	// ListQueries returns all stored queries, ordered by name.
	ListQueries(ctx context.Context) ([]StoredQuery, error)

	// PathIDsMatching evaluates a tag against the store and returns the
	// ids of paths carrying it, for use by the query builder. caseFold,
	// when true, matches tag text case-insensitively.
	PathIDsMatching(ctx context.Context, tagText string, caseFold bool) ([]int64, error)
	// AllTaggedPathIDs returns the ids of every path that has at least
	// one tag - the universe an empty expression or a `not` resolves
	// against.
	AllTaggedPathIDs(ctx context.Context) ([]int64, error)
	// PathsByID resolves path ids back to Path rows, ordered ascending
	// by path text.
	PathsByID(ctx context.Context, ids []int64) ([]Path, error)

	// ApplyEditScript applies every block of an edit script in one
	// transaction: each block's tag list is the complete declared set
	// for that path, so the store diffs it against the path's current
	// tags and applies only the delta.
	ApplyEditScript(ctx context.Context, script *editscript.Script) error
}
