package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, VillagerFile), []byte("speed: 100\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, VillagerFile, name)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for villager.yaml")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "failed to watch")
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("a/villager.yaml"))
	assert.True(t, isConfigFile("GAME.JSON"))
	assert.True(t, isConfigFile("x.yml"))
	assert.False(t, isConfigFile("villager.yaml~"))
	assert.False(t, isConfigFile("notes.txt"))
}
