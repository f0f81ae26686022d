package config_test

import (
	"testing"

	"github.com/jamesblissett/tagfs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c config.Config
	assert.Equal(t, config.DefaultMaxPath, c.MaxPath())
	assert.Equal(t, config.DefaultMaxTag, c.MaxTag())
	assert.False(t, c.CaseFold())
}

func TestSetAndGetRoundTrip(t *testing.T) {
	var c config.Config
	require.NoError(t, c.Set("limits.max_tag", "512"))
	require.NoError(t, c.Set("case_sensitive", "false"))

	v, err := c.Get("limits.max_tag")
	require.NoError(t, err)
	assert.Equal(t, "512", v)
	assert.True(t, c.CaseFold())
}

func TestSetUnknownKey(t *testing.T) {
	var c config.Config
	err := c.Set("nonsense", "1")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestSetInvalidValue(t *testing.T) {
	var c config.Config
	err := c.Set("limits.max_tag", "not-a-number")
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestValidateRejectsOutOfRangeLimit(t *testing.T) {
	n := 0
	c := config.Config{Limits: config.Limits{MaxTag: &n}}
	err := c.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestIsValidKey(t *testing.T) {
	assert.True(t, config.IsValidKey("limits.max_path"))
	assert.False(t, config.IsValidKey("sync.files"))
}
