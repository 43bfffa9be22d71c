package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shoplistbot/list"
)

func TestMaybeReloadPicksUpOutOfBandEdit(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "")
	}))

	// Simulate a hand edit: different content, different mtime.
	edited := `{"categories":{"Аптека":{"emoji":"💊","items":[]}}}`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	s.maybeReload(context.Background())

	s.View(func(d *list.Document) {
		_, ok := d.Category("Аптека")
		assert.True(t, ok)
		_, ok = d.Category("Продукты")
		assert.False(t, ok)
	})
}

func TestMaybeReloadIgnoresOwnSave(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "")
	}))

	// Fingerprint matches the last save, so nothing is re-read.
	s.maybeReload(context.Background())

	s.View(func(d *list.Document) {
		assert.Equal(t, 1, d.Len())
	})
}

func TestMaybeReloadKeepsDocumentOnBrokenFile(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "")
	}))

	require.NoError(t, os.WriteFile(path, []byte("{half-edit"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	s.maybeReload(context.Background())

	s.View(func(d *list.Document) {
		_, ok := d.Category("Продукты")
		assert.True(t, ok, "broken file must not replace the good document")
	})
}

func TestWatchLifecycle(t *testing.T) {
	s, err := Open(testPath(t))
	require.NoError(t, err)

	require.NoError(t, s.Watch(context.Background()))
	assert.Error(t, s.Watch(context.Background()), "double watch must be rejected")

	s.Close()
	// Close is idempotent once stopped.
	s.Close()

	require.NoError(t, s.Watch(context.Background()))
	s.Close()
}
