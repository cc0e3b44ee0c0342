// Package feed holds the client-side feed: an append-only buffer of items,
// a cursor over it, and the controller that moves the cursor in response to
// keyboard, wheel and touch input.
package feed

import "github.com/glabrego/wikiscroll/internal/content"

// Buffer is an ordered, append-only sequence of items with a cursor.
// Position, not identifier, is the navigation key.
type Buffer struct {
	items  []content.Item
	cursor int
}

func NewBuffer(items ...content.Item) *Buffer {
	b := &Buffer{}
	b.Append(items...)
	return b
}

// Append adds items to the tail in arrival order. Existing entries keep
// their positions and duplicates are kept.
func (b *Buffer) Append(items ...content.Item) {
	b.items = append(b.items, items...)
}

func (b *Buffer) Len() int {
	return len(b.items)
}

func (b *Buffer) Cursor() int {
	return b.cursor
}

// At returns the item at i, valid only for 0 <= i < Len().
func (b *Buffer) At(i int) (content.Item, bool) {
	if i < 0 || i >= len(b.items) {
		return content.Item{}, false
	}
	return b.items[i], true
}

func (b *Buffer) Current() (content.Item, bool) {
	return b.At(b.cursor)
}

// Items returns a copy of the buffered items.
func (b *Buffer) Items() []content.Item {
	return append([]content.Item(nil), b.items...)
}

// Update replaces the fields of every entry with the given identifier
// without moving any of them.
func (b *Buffer) Update(id int64, fn func(*content.Item)) int {
	n := 0
	for i := range b.items {
		if b.items[i].ID == id {
			fn(&b.items[i])
			n++
		}
	}
	return n
}

// CanAdvance reports whether a forward move stays inside the buffer.
func (b *Buffer) CanAdvance() bool {
	return b.cursor < len(b.items)-1
}

func (b *Buffer) CanRetreat() bool {
	return b.cursor > 0
}

// moveTo sets the cursor, rejecting positions outside the buffer.
func (b *Buffer) moveTo(i int) bool {
	if i < 0 || i >= len(b.items) {
		return false
	}
	b.cursor = i
	return true
}

// NearTail reports whether the cursor is within distance positions of the
// last item.
func (b *Buffer) NearTail(distance int) bool {
	return len(b.items) > 0 && b.cursor >= len(b.items)-distance
}
