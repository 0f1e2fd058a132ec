// Package history keeps undo/redo snapshots of the ocean.
package history

import "github.com/example/squidpad/internal/ocean"

// maxEntries bounds how far back undo can reach.
const maxEntries = 100

// History is a bounded stack of ocean snapshots with a cursor. Pushing
// while the cursor sits in the past discards the abandoned future.
type History struct {
	entries []*ocean.Ocean
	cursor  int
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Push records a snapshot and moves the cursor to it. The first push also
// seeds an empty ocean underneath it, so the very first edit can be
// undone. The caller keeps ownership of value's live state; pass a clone.
func (h *History) Push(value *ocean.Ocean) {
	if len(h.entries) == 0 {
		h.entries = append(h.entries, ocean.New())
	} else {
		h.entries = h.entries[:h.cursor+1]
	}

	for len(h.entries) >= maxEntries {
		h.entries = h.entries[1:]
		h.cursor--
	}

	h.entries = append(h.entries, value)
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns a clone of that snapshot, or ok
// false when there is nothing earlier.
func (h *History) Undo() (*ocean.Ocean, bool) {
	if h.cursor == 0 || len(h.entries) == 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps the cursor forward again, or reports ok false at the newest
// snapshot.
func (h *History) Redo() (*ocean.Ocean, bool) {
	if h.cursor+1 >= len(h.entries) {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}
