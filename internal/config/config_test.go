package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	assert.Equal(t, "alice", NewSession("alice").Profile)
	assert.Equal(t, DefaultProfile, NewSession("").Profile)
	assert.Equal(t, DefaultProfile, NewSession("   ").Profile)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/db", ExpandPath("/tmp/db"))
	assert.Equal(t, "", ExpandPath(""))

	t.Setenv("DINDIN_TEST_DIR", "/var/data")
	assert.Equal(t, "/var/data/dindin.db", ExpandPath("$DINDIN_TEST_DIR/dindin.db"))
}

func TestDefaultDatabasePath(t *testing.T) {
	path := DefaultDatabasePath()
	assert.Contains(t, path, filepath.Join(".local", "share", "dindin"))
	assert.False(t, filepath.IsAbs("~"), "tilde must be expanded")
	assert.True(t, filepath.IsAbs(path))
}
