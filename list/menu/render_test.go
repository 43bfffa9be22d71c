package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shoplistbot/list"
)

func buildDoc(t *testing.T) *list.Document {
	t.Helper()
	d := list.NewDocument()
	require.NoError(t, d.AddCategory("Продукты", "🥦"))
	require.NoError(t, d.AddCategory("Аптека", ""))
	_, err := d.AddItems("Продукты", []string{"Milk", "Bread"})
	require.NoError(t, err)
	_, err = d.ToggleItem("Продукты", 1)
	require.NoError(t, err)
	return d
}

func TestMain(t *testing.T) {
	v := Main()
	assert.Equal(t, "Главное меню:", v.Text)
	require.Len(t, v.Actions, 3)
	assert.Equal(t, ShowCategories{}, v.Actions[0][0].Do)
	assert.Equal(t, AddCategory{}, v.Actions[1][0].Do)
	assert.Equal(t, ClearAll{}, v.Actions[2][0].Do)
}

func TestCategoryListEmpty(t *testing.T) {
	v := CategoryList(list.NewDocument())
	assert.Equal(t, "📭 Пока нет категорий. Добавьте первую.", v.Text)
	// Empty state still offers the main menu actions.
	require.Len(t, v.Actions, 3)
}

func TestCategoryListOrderAndLabels(t *testing.T) {
	v := CategoryList(buildDoc(t))

	require.Len(t, v.Actions, 3) // two categories + back row
	assert.Equal(t, "🥦 Продукты", v.Actions[0][0].Label)
	assert.Equal(t, OpenCategory{Name: "Продукты"}, v.Actions[0][0].Do)
	// Missing emoji renders as a placeholder but is not persisted.
	assert.Equal(t, "• Аптека", v.Actions[1][0].Label)
	assert.Equal(t, MainMenu{}, v.Actions[2][0].Do)
}

func TestCategoryViewRows(t *testing.T) {
	v := CategoryView(buildDoc(t), "Продукты")

	assert.Equal(t, "📦 🥦 Продукты", v.Text)
	require.Len(t, v.Actions, 6) // 2 item rows + 4 action rows

	assert.Equal(t, "🛒 Milk", v.Actions[0][0].Label)
	assert.Equal(t, Toggle{Name: "Продукты", Index: 0}, v.Actions[0][0].Do)
	assert.Equal(t, Delete{Name: "Продукты", Index: 0}, v.Actions[0][1].Do)

	assert.Equal(t, "✅ Bread", v.Actions[1][0].Label)
	assert.Equal(t, Toggle{Name: "Продукты", Index: 1}, v.Actions[1][0].Do)

	assert.Equal(t, AddItems{Name: "Продукты"}, v.Actions[2][0].Do)
	assert.Equal(t, ChangeEmoji{Name: "Продукты"}, v.Actions[3][0].Do)
	assert.Equal(t, RemoveCategory{Name: "Продукты"}, v.Actions[4][0].Do)
	assert.Equal(t, ShowCategories{}, v.Actions[5][0].Do)
}

func TestCategoryViewMissingCategory(t *testing.T) {
	d := buildDoc(t)
	v := CategoryView(d, "Напитки")

	assert.Equal(t, "⚠ Категория не найдена.", v.Text)
	// Falls back to the surviving category list for navigation.
	require.Len(t, v.Actions, 3)
	assert.Equal(t, OpenCategory{Name: "Продукты"}, v.Actions[0][0].Do)
}

func TestRenderersDoNotMutate(t *testing.T) {
	d := buildDoc(t)
	before := d.Len()

	_ = CategoryList(d)
	_ = CategoryView(d, "Продукты")
	_ = CategoryView(d, "нет такой")

	assert.Equal(t, before, d.Len())
	c, _ := d.Category("Продукты")
	assert.Len(t, c.Items, 2)
}
