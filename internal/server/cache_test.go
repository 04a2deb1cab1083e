package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_ReusesParsedSession(t *testing.T) {
	path := writeSession(t)
	c := NewSessionCache(time.Minute)

	h1, err := c.Load(path)
	require.NoError(t, err)
	require.NoError(t, h1.Seek(1))

	h2, err := c.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, h1, h2)
	assert.Equal(t, h1.Session(), h2.Session())
	assert.Equal(t, 1, c.Len())
}

func TestSessionCache_FileChangeReloads(t *testing.T) {
	path := writeSession(t)
	c := NewSessionCache(time.Hour)
	_, err := c.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("app: org.example.chat\nframes: []\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	h, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "org.example.chat", h.Session().App)
}

func TestSessionCache_Disabled(t *testing.T) {
	c := NewSessionCache(0)
	_, err := c.Load(writeSession(t))
	require.NoError(t, err)
	assert.Zero(t, c.Len())

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSessionCache_DropsBrokenAndMissingFiles(t *testing.T) {
	c := NewSessionCache(time.Hour)
	broken, gone := writeSession(t), writeSession(t)
	_, err := c.Load(broken)
	require.NoError(t, err)
	_, err = c.Load(gone)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	require.NoError(t, os.WriteFile(broken, []byte("frames: [unterminated\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(broken, later, later))
	_, err = c.Load(broken)
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, os.Remove(gone))
	_, err = c.Load(gone)
	assert.Error(t, err)
	assert.Zero(t, c.Len())
}
