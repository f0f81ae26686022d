package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jamesblissett/tagfs/internal/editscript"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tagfs.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err, "opening store")
	require.NoError(t, s.Init(), "initialising schema")

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddTagIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/film/Heat (1995)", "genre=crime"))
	require.NoError(t, s.AddTag(ctx, "/film/Heat (1995)", "genre=crime"))

	tags, err := s.ListTags(ctx, "/film/Heat (1995)")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "genre=crime", tags[0].Text)
}

func TestRemoveLastTagPurgesPath(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "x"))
	require.NoError(t, s.RemoveTag(ctx, "/a", "x"))

	tags, err := s.ListTags(ctx, "/a")
	require.NoError(t, err)
	assert.Empty(t, tags)

	ids, err := s.AllTaggedPathIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveTagIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.RemoveTag(ctx, "/never/tagged", "x"))
}

func TestListPathsOrdering(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/b", "shared"))
	require.NoError(t, s.AddTag(ctx, "/a", "shared"))

	paths, err := s.ListPaths(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "/a", paths[0].Text)
	assert.Equal(t, "/b", paths[1].Text)
}

func TestEqualTagsCollapseToOneRow(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "genre=crime"))
	require.NoError(t, s.AddTag(ctx, "/b", "genre=crime"))

	tags, err := s.AllTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
}

func TestAllKeysAndValuesForKey(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "genre=crime"))
	require.NoError(t, s.AddTag(ctx, "/b", "genre=family"))
	require.NoError(t, s.AddTag(ctx, "/c", "director=Mann"))
	require.NoError(t, s.AddTag(ctx, "/d", "crime")) // bare, not keyed

	keys, err := s.AllKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"director", "genre"}, keys)

	values, err := s.ValuesForKey(ctx, "genre")
	require.NoError(t, err)
	assert.Equal(t, []string{"crime", "family"}, values)
}

func TestValuesForKeyIgnoresUnderscoreWildcard(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "my_key=1"))
	require.NoError(t, s.AddTag(ctx, "/b", "myXkey=2"))

	values, err := s.ValuesForKey(ctx, "my_key")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, values)
}

func TestStoredQueryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.SaveQuery(ctx, "crime-films", "genre=crime"))

	q, err := s.LoadQuery(ctx, "crime-films")
	require.NoError(t, err)
	assert.Equal(t, "genre=crime", q.Expression)

	require.NoError(t, s.SaveQuery(ctx, "crime-films", "genre=crime and not director=Mann"))
	q, err = s.LoadQuery(ctx, "crime-films")
	require.NoError(t, err)
	assert.Equal(t, "genre=crime and not director=Mann", q.Expression)

	require.NoError(t, s.DeleteQuery(ctx, "crime-films"))
	_, err = s.LoadQuery(ctx, "crime-films")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteQuery(ctx, "no-such-query")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyEditScriptAddsRemovesAndPurges(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "stale"))
	require.NoError(t, s.AddTag(ctx, "/keep", "x"))

	script := &editscript.Script{Blocks: []editscript.Block{
		{Path: "/a", Tags: []string{"genre=crime"}}, // drops "stale", adds "genre=crime"
		{Path: "/new", Tags: []string{"fresh"}},
		{Path: "/to-empty"}, // no tags: never existed, applying should be a no-op
	}}
	require.NoError(t, s.ApplyEditScript(ctx, script))

	tags, err := s.ListTags(ctx, "/a")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "genre=crime", tags[0].Text)

	tags, err = s.ListTags(ctx, "/new")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "fresh", tags[0].Text)

	tags, err = s.ListTags(ctx, "/keep")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "x", tags[0].Text)

	tags, err = s.ListTags(ctx, "/to-empty")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestApplyEditScriptEmptyingBlockPurges(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "x"))

	script := &editscript.Script{Blocks: []editscript.Block{
		{Path: "/a"}, // declares zero tags: strips all, purges the path
	}}
	require.NoError(t, s.ApplyEditScript(ctx, script))

	ids, err := s.AllTaggedPathIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPathIDsMatchingCaseFold(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.AddTag(ctx, "/a", "Genre=Crime"))

	ids, err := s.PathIDsMatching(ctx, "genre=crime", true)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	ids, err = s.PathIDsMatching(ctx, "genre=crime", false)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
