package playlist

import (
	"sync"

	"github.com/TelemTobi/PlayKit/entities"
)

// Store owns the ordered item sequence and the current index. It never
// touches renderers itself; the buffer window manager observes index and
// item changes and reacts.
type Store struct {
	sync.RWMutex

	items        []entities.Item
	currentIndex int
	animated     bool
}

// NewStore creates a store positioned at initialIndex. An out-of-bounds
// initial index falls back to 0 when items are non-empty; with an empty
// list the index is kept as given so callers may set items later.
func NewStore(items []entities.Item, initialIndex int) *Store {
	store := &Store{
		items:        append([]entities.Item(nil), items...),
		currentIndex: initialIndex,
	}

	if len(store.items) > 0 && !store.indexInBounds(initialIndex) {
		store.currentIndex = 0
	}

	return store
}

// SetItems replaces the sequence. The current index is kept if still valid
// for the new items and reset to 0 otherwise.
func (store *Store) SetItems(items []entities.Item) {
	store.Lock()
	defer store.Unlock()

	store.items = append([]entities.Item(nil), items...)

	if !store.indexInBounds(store.currentIndex) {
		store.currentIndex = 0
	}
}

// AdvanceToNext moves one step forward, clamped at the last item. Returns
// true if the index changed.
func (store *Store) AdvanceToNext() bool {
	store.Lock()
	defer store.Unlock()

	if len(store.items) == 0 || store.currentIndex+1 >= len(store.items) {
		return false
	}

	store.currentIndex += 1
	store.animated = true
	return true
}

// MoveToPrevious moves one step back, clamped at 0. Returns true if the
// index changed.
func (store *Store) MoveToPrevious() bool {
	store.Lock()
	defer store.Unlock()

	if store.currentIndex <= 0 || len(store.items) == 0 {
		return false
	}

	store.currentIndex -= 1
	store.animated = true
	return true
}

// SetCurrentIndex jumps to index. Out-of-bounds requests and requests for
// the current index are no-ops. The animated flag is recorded as a hint
// for the presentation layer only.
func (store *Store) SetCurrentIndex(index int, animated bool) bool {
	store.Lock()
	defer store.Unlock()

	if index == store.currentIndex || !store.indexInBounds(index) {
		return false
	}

	store.currentIndex = index
	store.animated = animated
	return true
}

func (store *Store) CurrentIndex() int {
	store.RLock()
	defer store.RUnlock()
	return store.currentIndex
}

func (store *Store) Count() int {
	store.RLock()
	defer store.RUnlock()
	return len(store.items)
}

func (store *Store) Items() []entities.Item {
	store.RLock()
	defer store.RUnlock()
	return append([]entities.Item(nil), store.items...)
}

// ItemAt returns the item at index, or nil when out of bounds.
func (store *Store) ItemAt(index int) entities.Item {
	store.RLock()
	defer store.RUnlock()

	if !store.indexInBounds(index) {
		return nil
	}

	return store.items[index]
}

// CurrentItem returns the item under the playhead.
func (store *Store) CurrentItem() (entities.Item, error) {
	store.RLock()
	defer store.RUnlock()

	if len(store.items) == 0 {
		return nil, entities.ErrorPlaylistEmpty
	}

	return store.items[store.currentIndex], nil
}

// IsAtLastIndex reports whether the playhead sits on the final item.
func (store *Store) IsAtLastIndex() bool {
	store.RLock()
	defer store.RUnlock()
	return len(store.items) > 0 && store.currentIndex == len(store.items)-1
}

// RangedItems returns the window of items [currentIndex-backward,
// currentIndex+forward]. Positions outside the playlist map to nil.
func (store *Store) RangedItems(backward int, forward int) []entities.Item {
	store.RLock()
	defer store.RUnlock()

	window := make([]entities.Item, backward+forward+1)

	for offset := -backward; offset <= forward; offset += 1 {
		index := store.currentIndex + offset

		if index >= 0 && index < len(store.items) {
			window[offset+backward] = store.items[index]
		}
	}

	return window
}

// AnimationHint reports whether the last index transition asked for an
// animated presentation.
func (store *Store) AnimationHint() bool {
	store.RLock()
	defer store.RUnlock()
	return store.animated
}

func (store *Store) indexInBounds(index int) bool {
	return index >= 0 && index < len(store.items)
}
