package editscript_test

import (
	"strings"
	"testing"

	"github.com/jamesblissett/tagfs/internal/editscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	input := `# a comment, ignored
/film/Heat (1995)
    genre=crime
    director=Michael Mann

/film/Paddington (2014)
    genre=family
`
	script, err := editscript.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, script.Blocks, 2)

	assert.Equal(t, "/film/Heat (1995)", script.Blocks[0].Path)
	assert.Equal(t, []string{"genre=crime", "director=Michael Mann"}, script.Blocks[0].Tags)

	assert.Equal(t, "/film/Paddington (2014)", script.Blocks[1].Path)
	assert.Equal(t, []string{"genre=family"}, script.Blocks[1].Tags)
}

func TestParseNoTrailingBlankStillFlushes(t *testing.T) {
	script, err := editscript.Parse(strings.NewReader("/a\n    x\n"))
	require.NoError(t, err)
	require.Len(t, script.Blocks, 1)
	assert.Equal(t, []string{"x"}, script.Blocks[0].Tags)
}

func TestParseEmptyScript(t *testing.T) {
	script, err := editscript.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, script.Blocks)
}

func TestParsePathWithNoTags(t *testing.T) {
	script, err := editscript.Parse(strings.NewReader("/a\n\n/b\n    x\n"))
	require.NoError(t, err)
	require.Len(t, script.Blocks, 2)
	assert.Empty(t, script.Blocks[0].Tags)
	assert.Equal(t, "/a", script.Blocks[0].Path)
}

func TestParseMalformedPath(t *testing.T) {
	_, err := editscript.Parse(strings.NewReader("not-absolute\n    x\n"))
	assert.ErrorIs(t, err, editscript.ErrMalformedPath)
}

func TestParseOrphanTag(t *testing.T) {
	_, err := editscript.Parse(strings.NewReader("    x\n"))
	assert.ErrorIs(t, err, editscript.ErrOrphanTag)
}

func TestParseDuplicateTagInBlock(t *testing.T) {
	_, err := editscript.Parse(strings.NewReader("/a\n    genre=crime\n    genre=crime\n"))
	assert.ErrorIs(t, err, editscript.ErrDuplicateTagInBlock)
}

func TestParseCommentInsideBlock(t *testing.T) {
	script, err := editscript.Parse(strings.NewReader("/a\n    genre=crime\n    # a note\n    director=Mann\n"))
	require.NoError(t, err)
	require.Len(t, script.Blocks, 1)
	assert.Equal(t, []string{"genre=crime", "director=Mann"}, script.Blocks[0].Tags)
}

func TestRoundTrip(t *testing.T) {
	original := &editscript.Script{Blocks: []editscript.Block{
		{Path: "/film/Heat (1995)", Tags: []string{"genre=crime", "director=Michael Mann"}},
		{Path: "/film/Paddington (2014)", Tags: []string{"genre=family"}},
		{Path: "/untagged-on-purpose"},
	}}

	reparsed, err := editscript.Parse(strings.NewReader(editscript.Dump(original)))
	require.NoError(t, err)
	assert.Equal(t, original.Blocks, reparsed.Blocks)
}
