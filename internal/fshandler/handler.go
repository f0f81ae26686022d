package fshandler

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/jamesblissett/tagfs/internal/entry"
	"github.com/jamesblissett/tagfs/internal/query"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/validate"
)

// Handler implements the filesystem operation set (lookup, getattr,
// readdir, read, readlink) as pure functions of a store.Store, an
// entry.Registry, and an inode, independent of any transport. It is
// read-only: tag mutation happens through internal/tagging, which calls
// Invalidate afterwards.
type Handler struct {
	Store    store.Store
	Registry *entry.Registry
	Names    Names
	CaseFold bool

	cache *resultCache
}

// New returns a Handler with an empty registry and result cache, rooted at
// entry.RootIno.
func New(s store.Store, names Names, caseFold bool) *Handler {
	return &Handler{
		Store:    s,
		Registry: entry.NewRegistry(),
		Names:    names,
		CaseFold: caseFold,
		cache:    newResultCache(),
	}
}

// Invalidate discards cached inode allocations and materialized query
// results. Called after every tag-store mutation.
func (h *Handler) Invalidate() {
	h.Registry.Invalidate()
	h.cache.clear()
}

func (h *Handler) alloc(e entry.Entry) (entry.Ino, entry.Entry, error) {
	return h.Registry.Allocate(e), e, nil
}

// DirEntry is one child returned by ReadDir.
type DirEntry struct {
	Name string
	Ino  entry.Ino
	Ent  entry.Entry
}

// Lookup resolves name under the directory represented by parentIno.
func (h *Handler) Lookup(ctx context.Context, parentIno entry.Ino, name string) (entry.Ino, entry.Entry, error) {
	parent, ok := h.Registry.Lookup(parentIno)
	if !ok {
		return 0, entry.Entry{}, ErrNotExist
	}

	switch parent.Kind {
	case entry.KindRoot:
		switch name {
		case h.Names.QueryRoot:
			return h.alloc(entry.Entry{Kind: entry.KindQueryRoot})
		case h.Names.StoredQueryRoot:
			return h.alloc(entry.Entry{Kind: entry.KindStoredQueryRoot})
		case h.Names.TagBrowserRoot:
			return h.alloc(entry.Entry{Kind: entry.KindTagBrowserRoot})
		default:
			return 0, entry.Entry{}, ErrNotExist
		}

	case entry.KindQueryRoot:
		return h.lookupQueryChild(nil, name)

	case entry.KindQueryNode:
		return h.lookupQueryChild(parent.Words, name)

	case entry.KindResultSentinel, entry.KindStoredQueryDir, entry.KindTagBrowserDir:
		return h.lookupResult(ctx, parent, name)

	case entry.KindStoredQueryRoot:
		if _, err := h.Store.LoadQuery(ctx, name); err != nil {
			return 0, entry.Entry{}, ErrNotExist
		}
		return h.alloc(entry.Entry{Kind: entry.KindStoredQueryDir, Name: name})

	case entry.KindTagBrowserRoot:
		exists, err := h.tagExists(ctx, name)
		if err != nil {
			return 0, entry.Entry{}, err
		}
		if !exists {
			return 0, entry.Entry{}, ErrNotExist
		}
		return h.alloc(entry.Entry{Kind: entry.KindTagBrowserDir, Tag: name})

	default:
		return 0, entry.Entry{}, ErrNotDir
	}
}

// lookupQueryChild extends a (possibly empty) query-construction prefix.
// The new segment is validated lexically only - whether it yields a
// well-formed expression is decided lazily when the sentinel is read.
func (h *Handler) lookupQueryChild(words []string, name string) (entry.Ino, entry.Entry, error) {
	if name == h.Names.Sentinel {
		return h.alloc(entry.Entry{Kind: entry.KindResultSentinel, Words: appendWord(words, nil)})
	}
	if !validSegment(name) {
		return 0, entry.Entry{}, ErrNotExist
	}
	return h.alloc(entry.Entry{Kind: entry.KindQueryNode, Words: appendWord(words, &name)})
}

func appendWord(words []string, extra *string) []string {
	n := len(words)
	if extra != nil {
		n++
	}
	next := make([]string, n)
	copy(next, words)
	if extra != nil {
		next[len(words)] = *extra
	}
	return next
}

func validSegment(name string) bool {
	for _, op := range operators {
		if name == op {
			return true
		}
	}
	_, err := validate.Tag(name)
	return err == nil
}

// lookupResult resolves name against a materialized result set: either
// "<basename>" (the result symlink) or "<basename>.tags" (its projection).
func (h *Handler) lookupResult(ctx context.Context, parent entry.Entry, name string) (entry.Ino, entry.Entry, error) {
	paths, err := h.materialize(ctx, parent)
	if err != nil {
		return 0, entry.Entry{}, err
	}
	for _, p := range paths {
		base := path.Base(p.Text)
		switch name {
		case base:
			return h.alloc(childOf(parent, entry.KindResultSymlink, p.ID))
		case base + ".tags":
			return h.alloc(childOf(parent, entry.KindTagProjection, p.ID))
		}
	}
	return 0, entry.Entry{}, ErrNotExist
}

func childOf(parent entry.Entry, kind entry.Kind, pathID int64) entry.Entry {
	return entry.Entry{Kind: kind, Words: parent.Words, Tag: parent.Tag, Name: parent.Name, PathID: pathID}
}

func (h *Handler) tagExists(ctx context.Context, text string) (bool, error) {
	tags, err := h.Store.AllTags(ctx)
	if err != nil {
		return false, fmt.Errorf("check tag existence: %w", err)
	}
	for _, t := range tags {
		if t.Text == text {
			return true, nil
		}
	}
	return false, nil
}

// GetAttr returns the entry registered at ino.
func (h *Handler) GetAttr(_ context.Context, ino entry.Ino) (entry.Entry, error) {
	e, ok := h.Registry.Lookup(ino)
	if !ok {
		return entry.Entry{}, ErrNotExist
	}
	return e, nil
}

// ReadDir enumerates the children of the directory represented by ino.
func (h *Handler) ReadDir(ctx context.Context, ino entry.Ino) ([]DirEntry, error) {
	e, ok := h.Registry.Lookup(ino)
	if !ok {
		return nil, ErrNotExist
	}

	switch e.Kind {
	case entry.KindRoot:
		return h.readdirNamed(map[string]entry.Entry{
			h.Names.QueryRoot:       {Kind: entry.KindQueryRoot},
			h.Names.StoredQueryRoot: {Kind: entry.KindStoredQueryRoot},
			h.Names.TagBrowserRoot:  {Kind: entry.KindTagBrowserRoot},
		}), nil

	case entry.KindQueryRoot:
		return h.readdirQueryNode(ctx, nil)

	case entry.KindQueryNode:
		return h.readdirQueryNode(ctx, e.Words)

	case entry.KindResultSentinel, entry.KindStoredQueryDir, entry.KindTagBrowserDir:
		return h.readdirResults(ctx, e)

	case entry.KindStoredQueryRoot:
		queries, err := h.Store.ListQueries(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stored queries: %w", err)
		}
		named := make(map[string]entry.Entry, len(queries))
		for _, q := range queries {
			named[q.Name] = entry.Entry{Kind: entry.KindStoredQueryDir, Name: q.Name}
		}
		return h.readdirNamed(named), nil

	case entry.KindTagBrowserRoot:
		tags, err := h.Store.AllTags(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		named := make(map[string]entry.Entry, len(tags))
		for _, t := range tags {
			named[t.Text] = entry.Entry{Kind: entry.KindTagBrowserDir, Tag: t.Text}
		}
		return h.readdirNamed(named), nil

	default:
		return nil, ErrNotDir
	}
}

func (h *Handler) readdirNamed(named map[string]entry.Entry) []DirEntry {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]DirEntry, 0, len(named))
	for _, name := range names {
		ino, e, _ := h.alloc(named[name])
		entries = append(entries, DirEntry{Name: name, Ino: ino, Ent: e})
	}
	return entries
}

// readdirQueryNode lists: every operator suggestion, every tag in the
// store (the chosen resolution for "either is acceptable" - not only tags
// that would yield a non-empty result), and the result sentinel.
func (h *Handler) readdirQueryNode(ctx context.Context, words []string) ([]DirEntry, error) {
	tags, err := h.Store.AllTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags for query node: %w", err)
	}

	var entries []DirEntry
	add := func(name string, e entry.Entry) {
		if h.Names.MaxSuggestions > 0 && len(entries) >= h.Names.MaxSuggestions {
			return
		}
		ino, ent, _ := h.alloc(e)
		entries = append(entries, DirEntry{Name: name, Ino: ino, Ent: ent})
	}

	for _, op := range operators {
		add(op, entry.Entry{Kind: entry.KindQueryNode, Words: appendWord(words, &op)})
	}
	for _, t := range tags {
		text := t.Text
		add(text, entry.Entry{Kind: entry.KindQueryNode, Words: appendWord(words, &text)})
	}

	sentinelIno, sentinelEnt, _ := h.alloc(entry.Entry{Kind: entry.KindResultSentinel, Words: appendWord(words, nil)})
	entries = append(entries, DirEntry{Name: h.Names.Sentinel, Ino: sentinelIno, Ent: sentinelEnt})
	return entries, nil
}

// readdirResults lists each materialized path as a symlink plus its
// ".tags" projection sibling.
func (h *Handler) readdirResults(ctx context.Context, e entry.Entry) ([]DirEntry, error) {
	paths, err := h.materialize(ctx, e)
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, 0, 2*len(paths))
	for _, p := range paths {
		base := path.Base(p.Text)

		symIno, symEnt, _ := h.alloc(childOf(e, entry.KindResultSymlink, p.ID))
		entries = append(entries, DirEntry{Name: base, Ino: symIno, Ent: symEnt})

		tagIno, tagEnt, _ := h.alloc(childOf(e, entry.KindTagProjection, p.ID))
		entries = append(entries, DirEntry{Name: base + ".tags", Ino: tagIno, Ent: tagEnt})
	}
	return entries, nil
}

// materialize evaluates the expression a result-bearing entry (result
// sentinel, stored-query directory, or tag-browser directory) represents,
// caching the rows for subsequent reads until the next Invalidate.
func (h *Handler) materialize(ctx context.Context, e entry.Entry) ([]store.Path, error) {
	key := e.Key()
	if rows, ok := h.cache.get(key); ok {
		return rows, nil
	}

	var rows []store.Path
	switch e.Kind {
	case entry.KindResultSentinel:
		expr, err := query.ParseWords(e.Words)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		rows, err = query.Eval(ctx, h.Store, expr, h.CaseFold)
		if err != nil {
			return nil, err
		}

	case entry.KindStoredQueryDir:
		sq, err := h.Store.LoadQuery(ctx, e.Name)
		if err != nil {
			return nil, err
		}
		expr, err := query.Parse(sq.Expression)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		rows, err = query.Eval(ctx, h.Store, expr, h.CaseFold)
		if err != nil {
			return nil, err
		}

	case entry.KindTagBrowserDir:
		var err error
		rows, err = h.Store.ListPaths(ctx, e.Tag)
		if err != nil {
			return nil, err
		}

	default:
		return nil, ErrNotDir
	}

	h.cache.set(key, rows)
	return rows, nil
}

// Read returns the tag-projection content for ino, sliced by offset/size.
// Valid only for KindTagProjection entries.
func (h *Handler) Read(ctx context.Context, ino entry.Ino, offset int64, size int) ([]byte, error) {
	e, ok := h.Registry.Lookup(ino)
	if !ok {
		return nil, ErrNotExist
	}
	if e.Kind != entry.KindTagProjection {
		return nil, ErrNotReadable
	}

	data, err := h.projectionContent(ctx, e.PathID)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset >= int64(len(data)) {
		return nil, nil
	}
	end := offset + int64(size)
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[offset:end], nil
}

func (h *Handler) projectionContent(ctx context.Context, pathID int64) ([]byte, error) {
	paths, err := h.Store.PathsByID(ctx, []int64{pathID})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNotExist
	}

	tags, err := h.Store.ListTags(ctx, paths[0].Text)
	if err != nil {
		return nil, err
	}

	var content string
	for _, t := range tags {
		content += t.Text + "\n"
	}
	return []byte(content), nil
}

// ReadLink returns the absolute host path a result symlink targets. Valid
// only for KindResultSymlink entries.
func (h *Handler) ReadLink(ctx context.Context, ino entry.Ino) (string, error) {
	e, ok := h.Registry.Lookup(ino)
	if !ok {
		return "", ErrNotExist
	}
	if e.Kind != entry.KindResultSymlink {
		return "", ErrNotReadable
	}

	paths, err := h.Store.PathsByID(ctx, []int64{e.PathID})
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", ErrNotExist
	}
	return paths[0].Text, nil
}
