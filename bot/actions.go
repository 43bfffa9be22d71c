// Package bot adapts the shopping list dispatcher to the Telegram
// transport: callback wire encoding, keyboards, handlers, and peer
// notifications.
package bot

import (
	"fmt"

	"github.com/m3rciful/shoplistbot/core/telegram/callbacks"
	"github.com/m3rciful/shoplistbot/list/menu"
)

// Callback uniques. Every inline button carries one of these plus an
// optional payload; uniques are stable wire identifiers, do not rename.
const (
	cbMainMenu       = "main_menu"
	cbShowCategories = "show_categories"
	cbAddCategory    = "add_category"
	cbClearAll       = "clear_all"
	cbOpenCategory   = "open_cat"
	cbAddItems       = "add_items"
	cbSetEmoji       = "set_emoji"
	cbDeleteCategory = "del_cat"
	cbToggleItem     = "toggle"
	cbDeleteItem     = "del"
)

// uniques lists every callback key the bot registers.
var uniques = []string{
	cbMainMenu,
	cbShowCategories,
	cbAddCategory,
	cbClearAll,
	cbOpenCategory,
	cbAddItems,
	cbSetEmoji,
	cbDeleteCategory,
	cbToggleItem,
	cbDeleteItem,
}

// encodeAction maps a menu action to its callback unique and payload.
// Category names are percent-encoded so '|' and unicode survive the
// callback data format.
func encodeAction(a menu.Action) (unique, payload string) {
	switch v := a.(type) {
	case menu.MainMenu:
		return cbMainMenu, ""
	case menu.ShowCategories:
		return cbShowCategories, ""
	case menu.AddCategory:
		return cbAddCategory, ""
	case menu.ClearAll:
		return cbClearAll, ""
	case menu.OpenCategory:
		return cbOpenCategory, callbacks.EncodeName(v.Name)
	case menu.AddItems:
		return cbAddItems, callbacks.EncodeName(v.Name)
	case menu.ChangeEmoji:
		return cbSetEmoji, callbacks.EncodeName(v.Name)
	case menu.RemoveCategory:
		return cbDeleteCategory, callbacks.EncodeName(v.Name)
	case menu.Toggle:
		return cbToggleItem, fmt.Sprintf("%s|%d", callbacks.EncodeName(v.Name), v.Index)
	case menu.Delete:
		return cbDeleteItem, fmt.Sprintf("%s|%d", callbacks.EncodeName(v.Name), v.Index)
	default:
		return "", ""
	}
}

// decodeAction maps a callback unique and payload back to a menu action.
// Undecodable input becomes menu.Unknown so the dispatcher can answer with
// its unknown-action view instead of the transport guessing.
func decodeAction(unique, payload string) menu.Action {
	switch unique {
	case cbMainMenu:
		return menu.MainMenu{}
	case cbShowCategories:
		return menu.ShowCategories{}
	case cbAddCategory:
		return menu.AddCategory{}
	case cbClearAll:
		return menu.ClearAll{}
	case cbOpenCategory, cbAddItems, cbSetEmoji, cbDeleteCategory:
		name, err := callbacks.DecodeName(payload)
		if err != nil {
			return menu.Unknown{Token: unique + "|" + payload}
		}
		switch unique {
		case cbOpenCategory:
			return menu.OpenCategory{Name: name}
		case cbAddItems:
			return menu.AddItems{Name: name}
		case cbSetEmoji:
			return menu.ChangeEmoji{Name: name}
		default:
			return menu.RemoveCategory{Name: name}
		}
	case cbToggleItem, cbDeleteItem:
		name, index, err := callbacks.DecodeNameIndex(payload)
		if err != nil {
			return menu.Unknown{Token: unique + "|" + payload}
		}
		if unique == cbToggleItem {
			return menu.Toggle{Name: name, Index: index}
		}
		return menu.Delete{Name: name, Index: index}
	default:
		return menu.Unknown{Token: unique}
	}
}
