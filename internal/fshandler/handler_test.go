package fshandler_test

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/jamesblissett/tagfs/internal/entry"
	"github.com/jamesblissett/tagfs/internal/fshandler"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*fshandler.Handler, store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "tagfs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { _ = s.Close() })

	return fshandler.New(s, fshandler.DefaultNames(), false), s
}

func seed(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.AddTag(ctx, "/film/Heat (1995)", "genre=crime"))
	require.NoError(t, s.AddTag(ctx, "/film/Heat (1995)", "director=Mann"))
	require.NoError(t, s.AddTag(ctx, "/film/The Departed (2006)", "genre=crime"))
	require.NoError(t, s.AddTag(ctx, "/film/Paddington (2014)", "genre=family"))
}

// Scenario: lookup "?" under root, then "genre=crime" under the query
// root, then "=" under the resulting query node, then readdir the
// sentinel and expect the two crime films as symlink+.tags pairs.
func TestScenarioBuildQueryAndMaterialize(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	queryRootIno, _, err := h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)

	nodeIno, nodeEnt, err := h.Lookup(ctx, queryRootIno, "genre=crime")
	require.NoError(t, err)
	assert.Equal(t, entry.KindQueryNode, nodeEnt.Kind)

	sentinelIno, sentinelEnt, err := h.Lookup(ctx, nodeIno, "=")
	require.NoError(t, err)
	assert.Equal(t, entry.KindResultSentinel, sentinelEnt.Kind)

	children, err := h.ReadDir(ctx, sentinelIno)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, c := range children {
		names[c.Name] = true
	}
	assert.True(t, names["Heat (1995).tags"])
	assert.True(t, names["Heat (1995)"])
	assert.True(t, names["The Departed (2006)"])
	assert.False(t, names["Paddington (2014)"])
}

func TestReadLinkReturnsOriginalPath(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	queryRootIno, _, err := h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)
	nodeIno, _, err := h.Lookup(ctx, queryRootIno, "genre=family")
	require.NoError(t, err)
	sentinelIno, _, err := h.Lookup(ctx, nodeIno, "=")
	require.NoError(t, err)

	symIno, symEnt, err := h.Lookup(ctx, sentinelIno, "Paddington (2014)")
	require.NoError(t, err)
	assert.Equal(t, entry.KindResultSymlink, symEnt.Kind)

	target, err := h.ReadLink(ctx, symIno)
	require.NoError(t, err)
	assert.Equal(t, "/film/Paddington (2014)", target)
}

func TestReadTagProjection(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	queryRootIno, _, err := h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)
	nodeIno, _, err := h.Lookup(ctx, queryRootIno, "genre=crime")
	require.NoError(t, err)
	sentinelIno, _, err := h.Lookup(ctx, nodeIno, "=")
	require.NoError(t, err)

	tagsIno, tagsEnt, err := h.Lookup(ctx, sentinelIno, "Heat (1995).tags")
	require.NoError(t, err)
	assert.Equal(t, entry.KindTagProjection, tagsEnt.Kind)

	data, err := h.Read(ctx, tagsIno, 0, 4096)
	require.NoError(t, err)
	assert.Equal(t, "director=Mann\ngenre=crime\n", string(data))
}

func TestTagBrowser(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	tagsRootIno, _, err := h.Lookup(ctx, entry.RootIno, "tags")
	require.NoError(t, err)

	dirIno, dirEnt, err := h.Lookup(ctx, tagsRootIno, "genre=crime")
	require.NoError(t, err)
	assert.Equal(t, entry.KindTagBrowserDir, dirEnt.Kind)

	children, err := h.ReadDir(ctx, dirIno)
	require.NoError(t, err)
	assert.Len(t, children, 4) // two films x (symlink + .tags)

	_, _, err = h.Lookup(ctx, tagsRootIno, "no-such-tag")
	assert.ErrorIs(t, err, fshandler.ErrNotExist)
}

func TestStoredQueryDirectory(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)
	require.NoError(t, s.SaveQuery(ctx, "crime-films", "genre=crime"))

	rootIno, _, err := h.Lookup(ctx, entry.RootIno, "@")
	require.NoError(t, err)

	dirIno, dirEnt, err := h.Lookup(ctx, rootIno, "crime-films")
	require.NoError(t, err)
	assert.Equal(t, entry.KindStoredQueryDir, dirEnt.Kind)

	children, err := h.ReadDir(ctx, dirIno)
	require.NoError(t, err)
	assert.Len(t, children, 4)
}

func TestMalformedExpressionMapsToENOENT(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	queryRootIno, _, err := h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)
	n1, _, err := h.Lookup(ctx, queryRootIno, "genre=crime")
	require.NoError(t, err)
	n2, _, err := h.Lookup(ctx, n1, "and")
	require.NoError(t, err)
	n3, _, err := h.Lookup(ctx, n2, "and")
	require.NoError(t, err)
	sentinelIno, _, err := h.Lookup(ctx, n3, "=")
	require.NoError(t, err)

	_, err = h.ReadDir(ctx, sentinelIno)
	require.Error(t, err)
	assert.ErrorIs(t, err, fshandler.ErrInvalidExpression)
	assert.Equal(t, syscall.ENOENT, fshandler.Errno(err))
}

func TestInvalidateClearsMaterializedCache(t *testing.T) {
	ctx := context.Background()
	h, s := setupHandler(t)
	seed(t, s)

	queryRootIno, _, err := h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)
	nodeIno, _, err := h.Lookup(ctx, queryRootIno, "genre=crime")
	require.NoError(t, err)
	sentinelIno, _, err := h.Lookup(ctx, nodeIno, "=")
	require.NoError(t, err)

	children, err := h.ReadDir(ctx, sentinelIno)
	require.NoError(t, err)
	assert.Len(t, children, 4) // two films

	require.NoError(t, s.AddTag(ctx, "/film/The Shawshank Redemption (1994)", "genre=crime"))
	h.Invalidate()

	// re-walk: invalidate discarded the old inode allocations too.
	queryRootIno, _, err = h.Lookup(ctx, entry.RootIno, "?")
	require.NoError(t, err)
	nodeIno, _, err = h.Lookup(ctx, queryRootIno, "genre=crime")
	require.NoError(t, err)
	sentinelIno, _, err = h.Lookup(ctx, nodeIno, "=")
	require.NoError(t, err)

	children, err = h.ReadDir(ctx, sentinelIno)
	require.NoError(t, err)
	assert.Len(t, children, 6) // three films now
}
