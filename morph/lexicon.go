package morph

import "fmt"

// Lexicon is the root dictionary: items in insertion order, unique by ID.
// It is not synchronized; the Engine guards it.
type Lexicon struct {
	items []*DictionaryItem
	byID  map[string]*DictionaryItem
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{byID: make(map[string]*DictionaryItem)}
}

// Insert adds item. It fails with ErrDuplicateItem if an item with the
// same ID exists.
func (l *Lexicon) Insert(item *DictionaryItem) error {
	if item == nil {
		return fmt.Errorf("%w: nil dictionary item", ErrInvalidInput)
	}
	id := item.ID()
	if _, ok := l.byID[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, id)
	}
	l.byID[id] = item
	l.items = append(l.items, item)
	return nil
}

// Lookup returns the item with the given ID.
func (l *Lexicon) Lookup(id string) (*DictionaryItem, bool) {
	item, ok := l.byID[id]
	return item, ok
}

// Contains reports whether an item with the same ID as item is present.
func (l *Lexicon) Contains(item *DictionaryItem) bool {
	_, ok := l.byID[item.ID()]
	return ok
}

// Items returns a copy of the items in insertion order.
func (l *Lexicon) Items() []*DictionaryItem {
	out := make([]*DictionaryItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Lexicon) Len() int { return len(l.items) }
