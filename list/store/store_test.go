package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shoplistbot/list"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "shopping_data.json")
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(testPath(t))
	require.NoError(t, err)

	s.View(func(d *list.Document) {
		assert.Equal(t, 0, d.Len())
	})
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(context.Background(), func(d *list.Document) error {
		if err := d.AddCategory("Продукты", "🥦"); err != nil {
			return err
		}
		_, err := d.AddItems("Продукты", []string{"Milk", "Bread"})
		return err
	})
	require.NoError(t, err)

	// A fresh store over the same file sees the committed state.
	reopened, err := Open(path)
	require.NoError(t, err)
	reopened.View(func(d *list.Document) {
		c, ok := d.Category("Продукты")
		require.True(t, ok)
		assert.Equal(t, "🥦", c.Emoji)
		require.Len(t, c.Items, 2)
		assert.Equal(t, "Milk", c.Items[0].Name)
	})
}

func TestSavedFileIsIndentedWithTrailingNewline(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "🥦")
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Contains(t, text, "\n  \"categories\"")
	// Emoji stays literal in the file.
	assert.Contains(t, text, "🥦")
}

func TestUpdateFnErrorSkipsSave(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("  ", "")
	})
	assert.ErrorIs(t, err, list.ErrValidation)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for a failed mutation")
}

func TestUpdateWriteFailureKeepsMutation(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(sub, 0o755))
	path := filepath.Join(sub, "shopping_data.json")

	s, err := Open(path)
	require.NoError(t, err)

	// Removing the parent directory makes the temp-file write fail.
	require.NoError(t, os.RemoveAll(sub))

	err = s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "")
	})
	assert.ErrorIs(t, err, ErrPersistence)

	s.View(func(d *list.Document) {
		_, ok := d.Category("Продукты")
		assert.True(t, ok, "mutation must survive in memory")
	})
}

func TestConcurrentUpdatesAllLand(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), func(d *list.Document) error {
		return d.AddCategory("Продукты", "")
	}))

	const writers = 8
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			done <- s.Update(context.Background(), func(d *list.Document) error {
				_, err := d.AddItems("Продукты", []string{"Milk"})
				return err
			})
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	s.View(func(d *list.Document) {
		c, _ := d.Category("Продукты")
		assert.Len(t, c.Items, writers)
	})
}
