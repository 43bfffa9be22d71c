package list

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The persisted layout is shared with the pre-existing data files:
//
//	{"categories": {<name>: {"emoji": "🥦", "items": [{"name": "Milk", "bought": false}]}}}
//
// Object key order carries the user-imposed category order, so the codec is
// hand-rolled on the json token stream instead of a Go map.

type itemJSON struct {
	Name   string `json:"name"`
	Bought bool   `json:"bought"`
}

type categoryJSON struct {
	Emoji string     `json:"emoji"`
	Items []itemJSON `json:"items"`
}

// MarshalJSON encodes the document compactly, preserving category order and
// leaving non-ASCII characters unescaped so the file stays human-diffable.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"categories":{`)
	for i, c := range d.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, c.Name)
		buf.WriteString(`:{"emoji":`)
		writeJSONString(&buf, c.Emoji)
		buf.WriteString(`,"items":[`)
		for j, it := range c.Items {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"name":`)
			writeJSONString(&buf, it.Name)
			buf.WriteString(`,"bought":`)
			if it.Acquired {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
			buf.WriteByte('}')
		}
		buf.WriteString(`]}`)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the persisted layout keeping the category order of
// the file. A duplicate category key keeps its first position and takes the
// last body, matching how loose JSON tooling treats repeated keys.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("document: %w", err)
	}

	var categories []*Category
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("document: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("document: unexpected token %v", keyTok)
		}
		if key != "categories" {
			// Unknown top-level keys are skipped, not rejected.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("document: %w", err)
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("document: categories: %w", err)
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("document: categories: %w", err)
			}
			name, ok := nameTok.(string)
			if !ok {
				return fmt.Errorf("document: categories: unexpected key %v", nameTok)
			}
			var body categoryJSON
			if err := dec.Decode(&body); err != nil {
				return fmt.Errorf("document: category %q: %w", name, err)
			}
			cat := &Category{Name: name, Emoji: body.Emoji}
			for _, it := range body.Items {
				cat.Items = append(cat.Items, Item{Name: it.Name, Acquired: it.Bought})
			}
			replaced := false
			for i, existing := range categories {
				if existing.Name == name {
					categories[i] = cat
					replaced = true
					break
				}
			}
			if !replaced {
				categories = append(categories, cat)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("document: categories: %w", err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("document: %w", err)
	}

	d.categories = categories
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// writeJSONString encodes s without HTML escaping; emoji and Cyrillic stay
// literal in the persisted file.
func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // string encoding cannot fail
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
}
