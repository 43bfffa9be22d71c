package list

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalShape(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("Продукты", "🥦"))
	_, err := d.AddItems("Продукты", []string{"Milk"})
	require.NoError(t, err)
	_, err = d.ToggleItem("Продукты", 0)
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	want := `{"categories":{"Продукты":{"emoji":"🥦","items":[{"name":"Milk","bought":true}]}}}`
	assert.Equal(t, want, string(data))
}

func TestMarshalEmptyDocument(t *testing.T) {
	data, err := json.Marshal(NewDocument())
	require.NoError(t, err)
	assert.Equal(t, `{"categories":{}}`, string(data))
}

func TestRoundTripPreservesOrder(t *testing.T) {
	d := NewDocument()
	for _, name := range []string{"Выпечка", "Аптека", "Produce", "01-срочно"} {
		require.NoError(t, d.AddCategory(name, ""))
	}
	_, err := d.AddItems("Аптека", []string{"Аспирин", "Пластырь"})
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	restored := NewDocument()
	require.NoError(t, json.Unmarshal(data, restored))

	require.Equal(t, d.Len(), restored.Len())
	for i, c := range d.Categories() {
		got := restored.Categories()[i]
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, c.Emoji, got.Emoji)
		assert.Equal(t, c.Items, got.Items)
	}
}

func TestUnmarshalKeepsFileOrder(t *testing.T) {
	raw := `{"categories":{"B":{"emoji":"","items":[]},"A":{"emoji":"🛒","items":[{"name":"Milk","bought":false}]}}}`

	d := NewDocument()
	require.NoError(t, json.Unmarshal([]byte(raw), d))

	cats := d.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "B", cats[0].Name)
	assert.Equal(t, "A", cats[1].Name)
	require.Len(t, cats[1].Items, 1)
	assert.Equal(t, "Milk", cats[1].Items[0].Name)
}

func TestUnmarshalDuplicateKeyKeepsFirstPosition(t *testing.T) {
	raw := `{"categories":{"A":{"emoji":"1","items":[]},"B":{"emoji":"","items":[]},"A":{"emoji":"2","items":[]}}}`

	d := NewDocument()
	require.NoError(t, json.Unmarshal([]byte(raw), d))

	cats := d.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "A", cats[0].Name)
	assert.Equal(t, "2", cats[0].Emoji)
	assert.Equal(t, "B", cats[1].Name)
}

func TestUnmarshalSkipsUnknownTopLevelKeys(t *testing.T) {
	raw := `{"version":3,"categories":{"A":{"emoji":"","items":[]}}}`

	d := NewDocument()
	require.NoError(t, json.Unmarshal([]byte(raw), d))
	assert.Equal(t, 1, d.Len())
}

func TestUnmarshalRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{
		``,
		`[]`,
		`{"categories":[]}`,
		`{"categories":{"A":`,
		`not json at all`,
	} {
		d := NewDocument()
		assert.Error(t, json.Unmarshal([]byte(raw), d), "input: %s", raw)
	}
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.AddCategory("<Спец> & символы", ""))

	// Direct MarshalJSON call: json.Marshal would re-escape '<' and '&'
	// in the marshaler's output.
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"<Спец> & символы"`)
}
