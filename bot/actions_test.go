package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shoplistbot/list/menu"
)

func TestActionRoundTrip(t *testing.T) {
	actions := []menu.Action{
		menu.MainMenu{},
		menu.ShowCategories{},
		menu.AddCategory{},
		menu.ClearAll{},
		menu.OpenCategory{Name: "Продукты"},
		menu.AddItems{Name: "with space"},
		menu.ChangeEmoji{Name: "🥦 уже с эмодзи"},
		menu.RemoveCategory{Name: "a|b|c"},
		menu.Toggle{Name: "Продукты", Index: 0},
		menu.Toggle{Name: "x|y", Index: 12},
		menu.Delete{Name: "Аптека", Index: 3},
	}

	for _, a := range actions {
		unique, payload := encodeAction(a)
		require.NotEmpty(t, unique, "action %#v must encode", a)
		got := decodeAction(unique, payload)
		assert.Equal(t, a, got, "round trip for %#v", a)
	}
}

func TestEncodePayloadHasNoRawSeparatorInName(t *testing.T) {
	_, payload := encodeAction(menu.Toggle{Name: "a|b", Index: 7})
	// Exactly one '|': the name/index separator. The name's own pipe must
	// be escaped or the index parse would pick the wrong split point.
	assert.Equal(t, "a%7Cb|7", payload)
}

func TestDecodeUnknownUnique(t *testing.T) {
	got := decodeAction("bogus", "whatever")
	assert.Equal(t, menu.Unknown{Token: "bogus"}, got)
}

func TestDecodeMalformedPayload(t *testing.T) {
	for _, tc := range []struct {
		unique  string
		payload string
	}{
		{cbOpenCategory, "%zz"},      // broken percent encoding
		{cbToggleItem, "noindex"},    // missing separator
		{cbToggleItem, "name|notan"}, // non-numeric index
		{cbDeleteItem, "%zz|3"},      // broken name escape
	} {
		got := decodeAction(tc.unique, tc.payload)
		_, isUnknown := got.(menu.Unknown)
		assert.True(t, isUnknown, "unique=%s payload=%s decoded to %#v", tc.unique, tc.payload, got)
	}
}

func TestViewMarkup(t *testing.T) {
	v := menu.View{
		Text: "test",
		Actions: [][]menu.Button{
			{{Label: "🛒 Milk", Do: menu.Toggle{Name: "Продукты", Index: 0}}, {Label: "🗑", Do: menu.Delete{Name: "Продукты", Index: 0}}},
			{{Label: "⬅ Главное меню", Do: menu.MainMenu{}}},
		},
	}

	markup := viewMarkup(v)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "🛒 Milk", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "toggle", markup.InlineKeyboard[0][0].Unique)
	require.Len(t, markup.InlineKeyboard[1], 1)
}

func TestViewMarkupNoButtons(t *testing.T) {
	assert.Nil(t, viewMarkup(menu.View{Text: "plain"}))
}
