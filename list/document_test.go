package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategory(t *testing.T) {
	d := NewDocument()

	require.NoError(t, d.AddCategory("Продукты", "🥦"))
	require.NoError(t, d.AddCategory("Аптека", ""))

	assert.Equal(t, 2, d.Len())
	c, ok := d.Category("Продукты")
	require.True(t, ok)
	assert.Equal(t, "🥦", c.Emoji)

	err := d.AddCategory("Продукты", "🛒")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
	// The original emoji survives the rejected duplicate.
	c, _ = d.Category("Продукты")
	assert.Equal(t, "🥦", c.Emoji)

	assert.ErrorIs(t, d.AddCategory("   ", ""), ErrValidation)
	assert.Equal(t, 2, d.Len())
}

func TestCategoryLookupIsCaseSensitive(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Produce", ""))

	_, ok := d.Category("produce")
	assert.False(t, ok)
}

func TestAddItemsSkipsEmptyNames(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", ""))

	added, err := d.AddItems("Продукты", []string{"  ", "Milk", "", "Bread "})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	c, _ := d.Category("Продукты")
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Milk", c.Items[0].Name)
	assert.Equal(t, "Bread", c.Items[1].Name)
	assert.False(t, c.Items[0].Acquired)

	added, err = d.AddItems("Продукты", []string{" ", ""})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	_, err = d.AddItems("нет такой", []string{"Milk"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemsKeepsDuplicates(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", ""))

	added, err := d.AddItems("Продукты", []string{"Milk", "Milk"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	c, _ := d.Category("Продукты")
	require.Len(t, c.Items, 2)

	// Toggling one copy leaves the other untouched.
	state, err := d.ToggleItem("Продукты", 1)
	require.NoError(t, err)
	assert.True(t, state)
	assert.False(t, c.Items[0].Acquired)
	assert.True(t, c.Items[1].Acquired)
}

func TestToggleItem(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", ""))
	_, err := d.AddItems("Продукты", []string{"Milk"})
	require.NoError(t, err)

	state, err := d.ToggleItem("Продукты", 0)
	require.NoError(t, err)
	assert.True(t, state)

	state, err = d.ToggleItem("Продукты", 0)
	require.NoError(t, err)
	assert.False(t, state)

	_, err = d.ToggleItem("Продукты", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.ToggleItem("Продукты", -1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.ToggleItem("Аптека", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItemShiftsIndexes(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", ""))
	_, err := d.AddItems("Продукты", []string{"Milk", "Bread", "Eggs"})
	require.NoError(t, err)

	removed, err := d.RemoveItem("Продукты", 1)
	require.NoError(t, err)
	assert.Equal(t, "Bread", removed.Name)

	c, _ := d.Category("Продукты")
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Milk", c.Items[0].Name)
	assert.Equal(t, "Eggs", c.Items[1].Name)

	_, err = d.RemoveItem("Продукты", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetEmoji(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", ""))

	require.NoError(t, d.SetEmoji("Продукты", "🛒"))
	c, _ := d.Category("Продукты")
	assert.Equal(t, "🛒", c.Emoji)

	assert.ErrorIs(t, d.SetEmoji("Аптека", "💊"), ErrNotFound)
}

func TestRemoveCategoryPreservesOrder(t *testing.T) {
	d := NewDocument()
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, d.AddCategory(name, ""))
	}

	require.NoError(t, d.RemoveCategory("B"))

	cats := d.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "A", cats[0].Name)
	assert.Equal(t, "C", cats[1].Name)

	assert.ErrorIs(t, d.RemoveCategory("B"), ErrNotFound)
}

func TestClearAll(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", "🥦"))
	_, err := d.AddItems("Продукты", []string{"Milk"})
	require.NoError(t, err)

	d.ClearAll()
	assert.Equal(t, 0, d.Len())

	// Clearing an empty document stays a no-op.
	d.ClearAll()
	assert.Equal(t, 0, d.Len())
}
