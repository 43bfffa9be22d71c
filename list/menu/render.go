package menu

import (
	"fmt"

	"github.com/m3rciful/shoplistbot/list"
)

// placeholderEmoji stands in for categories saved without a label. It is a
// display default only; the persisted emoji stays empty.
const placeholderEmoji = "•"

// Main renders the top-level menu.
func Main() View {
	return View{
		Text: "Главное меню:",
		Actions: [][]Button{
			{{Label: "📂 Категории", Do: ShowCategories{}}},
			{{Label: "➕ Добавить категорию", Do: AddCategory{}}},
			{{Label: "🧹 Очистить всё", Do: ClearAll{}}},
		},
	}
}

// CategoryList renders one button per category in document order. An empty
// document gets an explanatory empty state instead of a bare back button.
func CategoryList(d *list.Document) View {
	if d.Len() == 0 {
		v := Main()
		v.Text = "📭 Пока нет категорий. Добавьте первую."
		return v
	}
	rows := make([][]Button, 0, d.Len()+1)
	for _, c := range d.Categories() {
		rows = append(rows, []Button{{
			Label: categoryLabel(c),
			Do:    OpenCategory{Name: c.Name},
		}})
	}
	rows = append(rows, []Button{{Label: "⬅ Главное меню", Do: MainMenu{}}})
	return View{Text: "📂 Категории:", Actions: rows}
}

// CategoryView renders the items of one category, a toggle and a delete
// button per row, in document order. A vanished category (deleted by the
// other user while this menu was on screen) renders as an error view with
// navigation back to the surviving categories.
func CategoryView(d *list.Document, name string) View {
	c, ok := d.Category(name)
	if !ok {
		v := CategoryList(d)
		v.Text = "⚠ Категория не найдена."
		return v
	}

	rows := make([][]Button, 0, len(c.Items)+4)
	for i, it := range c.Items {
		mark := "🛒"
		if it.Acquired {
			mark = "✅"
		}
		rows = append(rows, []Button{
			{Label: mark + " " + it.Name, Do: Toggle{Name: c.Name, Index: i}},
			{Label: "🗑", Do: Delete{Name: c.Name, Index: i}},
		})
	}
	rows = append(rows,
		[]Button{{Label: "➕ Добавить товары (через запятую)", Do: AddItems{Name: c.Name}}},
		[]Button{{Label: "🎨 Изменить эмодзи", Do: ChangeEmoji{Name: c.Name}}},
		[]Button{{Label: "🗑 Удалить категорию", Do: RemoveCategory{Name: c.Name}}},
		[]Button{{Label: "⬅ К списку категорий", Do: ShowCategories{}}},
	)
	return View{
		Text:    fmt.Sprintf("📦 %s %s", emojiOrPlaceholder(c.Emoji), c.Name),
		Actions: rows,
	}
}

func categoryLabel(c *list.Category) string {
	return emojiOrPlaceholder(c.Emoji) + " " + c.Name
}

func emojiOrPlaceholder(emoji string) string {
	if emoji == "" {
		return placeholderEmoji
	}
	return emoji
}
