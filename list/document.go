// Package list implements the shared shopping list document: an ordered
// collection of emoji-labelled categories holding positionally addressed
// items. The document is a plain in-memory value; ownership and locking
// belong to the store.
package list

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound reports a missing category or an out-of-range item index.
	ErrNotFound = errors.New("list: not found")
	// ErrDuplicateCategory reports a category name collision on creation.
	ErrDuplicateCategory = errors.New("list: category already exists")
	// ErrValidation reports input that is empty after trimming.
	ErrValidation = errors.New("list: empty input")
)

// Item is a purchasable entry. Its position inside the category is its
// address; duplicate names are allowed and never collapse.
type Item struct {
	Name     string
	Acquired bool
}

// Category groups items under a unique, case-sensitive name.
type Category struct {
	Name  string
	Emoji string
	Items []Item
}

// Document is the whole shopping list. Category order is insertion order
// and doubles as display order; it is never sorted.
type Document struct {
	categories []*Category
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Categories returns categories in insertion order. Callers must treat the
// result as read-only.
func (d *Document) Categories() []*Category {
	return d.categories
}

// Len reports the number of categories.
func (d *Document) Len() int {
	return len(d.categories)
}

// Category looks up a category by exact name.
func (d *Document) Category(name string) (*Category, bool) {
	if i := d.index(name); i >= 0 {
		return d.categories[i], true
	}
	return nil, false
}

func (d *Document) index(name string) int {
	for i, c := range d.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AddCategory appends a new category. The name must be non-empty after
// trimming and unique within the document.
func (d *Document) AddCategory(name, emoji string) error {
	if strings.TrimSpace(name) == "" {
		return ErrValidation
	}
	if d.index(name) >= 0 {
		return ErrDuplicateCategory
	}
	d.categories = append(d.categories, &Category{Name: name, Emoji: emoji})
	return nil
}

// RemoveCategory deletes a category and all of its items.
func (d *Document) RemoveCategory(name string) error {
	i := d.index(name)
	if i < 0 {
		return ErrNotFound
	}
	d.categories = append(d.categories[:i], d.categories[i+1:]...)
	return nil
}

// SetEmoji replaces the emoji label of an existing category.
func (d *Document) SetEmoji(name, emoji string) error {
	c, ok := d.Category(name)
	if !ok {
		return ErrNotFound
	}
	c.Emoji = emoji
	return nil
}

// AddItems appends each non-empty trimmed name as an unacquired item and
// returns the number added. Input that trims away entirely is a no-op
// returning 0, not an error.
func (d *Document) AddItems(category string, names []string) (int, error) {
	c, ok := d.Category(category)
	if !ok {
		return 0, ErrNotFound
	}
	added := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		c.Items = append(c.Items, Item{Name: name})
		added++
	}
	return added, nil
}

// ToggleItem flips the acquired flag of the item at index and returns the
// new state. A stale index (category changed since the caller rendered it)
// fails ErrNotFound instead of touching a shifted item.
func (d *Document) ToggleItem(category string, index int) (bool, error) {
	c, ok := d.Category(category)
	if !ok {
		return false, ErrNotFound
	}
	if index < 0 || index >= len(c.Items) {
		return false, ErrNotFound
	}
	c.Items[index].Acquired = !c.Items[index].Acquired
	return c.Items[index].Acquired, nil
}

// RemoveItem deletes the item at index and returns it.
func (d *Document) RemoveItem(category string, index int) (Item, error) {
	c, ok := d.Category(category)
	if !ok {
		return Item{}, ErrNotFound
	}
	if index < 0 || index >= len(c.Items) {
		return Item{}, ErrNotFound
	}
	removed := c.Items[index]
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return removed, nil
}

// ClearAll empties the document.
func (d *Document) ClearAll() {
	d.categories = nil
}
