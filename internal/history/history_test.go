package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(Build{
		ConfigPath: "book.toml",
		OutputDir:  "dist",
		Chapters:   2,
		Duration:   120 * time.Millisecond,
		Status:     "success",
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Record(Build{
		ConfigPath: "book.toml",
		OutputDir:  "dist",
		Chapters:   2,
		Duration:   80 * time.Millisecond,
		Status:     "failed",
		CreatedAt:  time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	}))

	builds, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	// Newest first; ids were generated.
	assert.Equal(t, "failed", builds[0].Status)
	assert.Equal(t, "success", builds[1].Status)
	assert.NotEmpty(t, builds[0].ID)
	assert.Equal(t, 120*time.Millisecond, builds[1].Duration)
	assert.Equal(t, 2, builds[0].Chapters)
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(Build{ConfigPath: "a", OutputDir: "b", Status: "success"}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	builds, err := store.Recent(10)
	require.NoError(t, err)
	assert.Len(t, builds, 1)
}
