// Package entry defines the synthetic filesystem entries the FS handler
// synthesizes - a tagged-variant enumeration (one Go type with a Kind
// discriminator and a set of fields used only by some kinds), rather than a
// type hierarchy, since the FUSE transport and the handler both need to
// switch on "what is this" far more often than they need virtual dispatch.
package entry

import "fmt"

// Kind discriminates the shape of synthetic filesystem entry.
type Kind int

const (
	// KindRoot is the mount's single root directory, inode 1.
	KindRoot Kind = iota
	// KindQueryRoot is the query-construction root ("/?" by default).
	KindQueryRoot
	// KindQueryNode is a query-construction directory part way through
	// an expression: the path segments traversed so far, joined, form
	// a (possibly partial) DSL expression.
	KindQueryNode
	// KindResultSentinel is the fixed-name child of a query node whose
	// readdir materializes the expression's result set.
	KindResultSentinel
	// KindResultSymlink is one materialized result: a symlink whose
	// target is the original absolute host path.
	KindResultSymlink
	// KindTagProjection is a materialized result's "<basename>.tags"
	// companion file.
	KindTagProjection
	// KindTagBrowserRoot is the direct tag browser ("/tags" by default).
	KindTagBrowserRoot
	// KindTagBrowserDir is one tag's directory under the tag browser,
	// listing every path carrying that tag.
	KindTagBrowserDir
	// KindStoredQueryRoot is the stored-query index ("/@" by default).
	KindStoredQueryRoot
	// KindStoredQueryDir is one stored query's directory, behaving like
	// a permanently-materialized query node.
	KindStoredQueryDir
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindQueryRoot:
		return "query-root"
	case KindQueryNode:
		return "query-node"
	case KindResultSentinel:
		return "result-sentinel"
	case KindResultSymlink:
		return "result-symlink"
	case KindTagProjection:
		return "tag-projection"
	case KindTagBrowserRoot:
		return "tag-browser-root"
	case KindTagBrowserDir:
		return "tag-browser-dir"
	case KindStoredQueryRoot:
		return "stored-query-root"
	case KindStoredQueryDir:
		return "stored-query-dir"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is a synthetic filesystem entry. Only the fields relevant to Kind
// are meaningful; the zero value of the rest is ignored.
//
//   - KindQueryNode, KindResultSentinel: Words holds the path segments
//     traversed so far under the query root.
//   - KindResultSymlink, KindTagProjection: Words is the owning query
//     node's segments; PathID names the materialized result.
//   - KindTagBrowserDir: Tag is the tag's canonical text.
//   - KindStoredQueryDir: Name is the stored query's name.
type Entry struct {
	Kind   Kind
	Words  []string
	PathID int64
	Tag    string
	Name   string
}

// Key returns a canonical string uniquely identifying the entry's identity,
// the input to inode hashing. Two Entry values describing the same logical
// node produce the same key; the Kind prefix keeps kinds from colliding
// even when their other fields happen to coincide (e.g. a tag named "noir"
// and a stored query named "noir").
func (e Entry) Key() string {
	return fmt.Sprintf("%s|%q|%d|%s|%s", e.Kind, e.Words, e.PathID, e.Tag, e.Name)
}
