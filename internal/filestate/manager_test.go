package filestate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/internal/store"
)

func TestManager_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	m := NewManager(path)
	assert.Equal(t, path, m.GetStateFilePath())

	state, err := m.LoadState()
	require.NoError(t, err)
	assert.Empty(t, state)

	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	want := CacheState{
		"sentiment|key|hash": store.CachedInsight{Text: "1. Sentimen positif dominan", Model: "m", CreatedAt: created, ExpiresAt: created.Add(time.Hour)},
	}
	require.NoError(t, m.SaveState(want))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	got, err := m.LoadState()
	require.NoError(t, err)
	require.Contains(t, got, "sentiment|key|hash")
	assert.Equal(t, want["sentiment|key|hash"].Text, got["sentiment|key|hash"].Text)
	assert.True(t, created.Equal(got["sentiment|key|hash"].CreatedAt))
}

func TestManager_LoadEmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	state, err := NewManager(empty).LoadState()
	require.NoError(t, err)
	assert.Empty(t, state)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0600))
	_, err = NewManager(corrupt).LoadState()
	assert.Error(t, err)
}

