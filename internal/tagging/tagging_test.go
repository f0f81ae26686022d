package tagging_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jamesblissett/tagfs/internal/editscript"
	"github.com/jamesblissett/tagfs/internal/fshandler"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/tagging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*tagging.Service, *fshandler.Handler) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "tagfs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { _ = s.Close() })

	h := fshandler.New(s, fshandler.DefaultNames(), false)
	return tagging.New(s, h), h
}

func TestTagAndUntag(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.Tag(ctx, "/film/Heat (1995)", "genre=crime"))
	require.NoError(t, svc.Tag(ctx, "/film/Heat (1995)", "genre=crime")) // idempotent

	tags, err := svc.Store.ListTags(ctx, "/film/Heat (1995)")
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, svc.Untag(ctx, "/film/Heat (1995)", "genre=crime"))
	tags, err = svc.Store.ListTags(ctx, "/film/Heat (1995)")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRejectsInvalidPath(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.Tag(ctx, "relative/path", "genre=crime")
	assert.Error(t, err)
}

func TestTagRejectsInvalidTag(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.Tag(ctx, "/film/Heat (1995)", "genre/crime")
	assert.Error(t, err)
}

func TestApplyInvalidatesHandler(t *testing.T) {
	ctx := context.Background()
	svc, h := setupService(t)

	require.NoError(t, svc.Tag(ctx, "/film/Heat (1995)", "genre=crime"))

	// populate the handler's cache
	rootIno, _, err := h.Lookup(ctx, 1, "tags")
	require.NoError(t, err)
	_, err = h.ReadDir(ctx, rootIno)
	require.NoError(t, err)

	script := &editscript.Script{Blocks: []editscript.Block{
		{Path: "/film/Heat (1995)", Tags: []string{"genre=crime", "director=Mann"}},
	}}
	require.NoError(t, svc.Apply(ctx, script))

	// the handler's registry was reset: the tag browser's inode is gone
	_, err = h.ReadDir(ctx, rootIno)
	assert.ErrorIs(t, err, fshandler.ErrNotExist)

	tags, err := svc.Store.ListTags(ctx, "/film/Heat (1995)")
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestSaveQueryRejectsMalformedExpression(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.SaveQuery(ctx, "bad", "and and")
	assert.ErrorIs(t, err, fshandler.ErrInvalidExpression)
}

func TestSaveAndRunQuery(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.Tag(ctx, "/film/Heat (1995)", "genre=crime"))
	require.NoError(t, svc.Tag(ctx, "/film/Paddington (2014)", "genre=family"))
	require.NoError(t, svc.SaveQuery(ctx, "crime-films", "genre=crime"))

	rows, err := svc.Query(ctx, "genre=crime", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/film/Heat (1995)", rows[0].Text)

	require.NoError(t, svc.DeleteQuery(ctx, "crime-films"))
	_, err = svc.Store.LoadQuery(ctx, "crime-films")
	assert.Error(t, err)
}
