package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".andocheck"), dir)

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".andocheck", "config.yml"), path)
	assert.True(t, filepath.IsAbs(path))
}

func TestProjectConfigPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".andocheck.yml", ProjectConfigPath())
}
