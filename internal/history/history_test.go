package history

import (
	"testing"

	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/squid"

	"honnef.co/go/curve"
)

func oceanWith(n int) *ocean.Ocean {
	o := ocean.New()
	for i := 0; i < n; i++ {
		o.Insert(squid.NewCircle(curve.Pt(float64(i), 0), 1, colors.White()))
	}
	return o
}

func count(o *ocean.Ocean) int {
	return len(o.Lowest())
}

func TestFirstPushSeedsEmptySnapshot(t *testing.T) {
	h := New()
	h.Push(oceanWith(1))

	got, ok := h.Undo()
	if !ok {
		t.Fatal("the very first edit should be undoable")
	}
	if count(got) != 0 {
		t.Errorf("undo past the first edit has %d squids, want 0", count(got))
	}
}

func TestUndoRedoWalk(t *testing.T) {
	h := New()
	h.Push(oceanWith(1))
	h.Push(oceanWith(2))
	h.Push(oceanWith(3))

	if _, ok := h.Redo(); ok {
		t.Error("redo at the newest snapshot should fail")
	}

	got, ok := h.Undo()
	if !ok || count(got) != 2 {
		t.Fatalf("first undo: ok=%v squids=%d, want 2", ok, count(got))
	}
	got, ok = h.Undo()
	if !ok || count(got) != 1 {
		t.Fatalf("second undo: ok=%v squids=%d, want 1", ok, count(got))
	}

	got, ok = h.Redo()
	if !ok || count(got) != 2 {
		t.Fatalf("redo: ok=%v squids=%d, want 2", ok, count(got))
	}
	got, ok = h.Redo()
	if !ok || count(got) != 3 {
		t.Fatalf("second redo: ok=%v squids=%d, want 3", ok, count(got))
	}
}

func TestUndoBottomsOut(t *testing.T) {
	h := New()
	if _, ok := h.Undo(); ok {
		t.Error("undo on an empty history should fail")
	}

	h.Push(oceanWith(1))
	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Error("undo past the seeded empty snapshot should fail")
	}
}

func TestPushDiscardsAbandonedFuture(t *testing.T) {
	h := New()
	h.Push(oceanWith(1))
	h.Push(oceanWith(2))
	h.Push(oceanWith(3))
	h.Undo()
	h.Undo()

	h.Push(oceanWith(9))

	if _, ok := h.Redo(); ok {
		t.Error("redo into the discarded future should fail")
	}
	got, ok := h.Undo()
	if !ok || count(got) != 1 {
		t.Errorf("undo after branching: ok=%v squids=%d, want 1", ok, count(got))
	}
}

func TestOldestEntriesEvicted(t *testing.T) {
	h := New()
	for i := 1; i <= 150; i++ {
		h.Push(oceanWith(i))
	}

	// Walk back as far as possible.
	steps := 0
	last := -1
	for {
		got, ok := h.Undo()
		if !ok {
			break
		}
		steps++
		last = count(got)
	}
	if steps != 99 {
		t.Errorf("undo depth = %d, want 99", steps)
	}
	if last != 51 {
		t.Errorf("oldest reachable snapshot has %d squids, want 51", last)
	}
}

func TestReturnedSnapshotsAreClones(t *testing.T) {
	h := New()
	h.Push(oceanWith(1))
	h.Push(oceanWith(2))

	got, _ := h.Undo()
	got.Insert(squid.NewCircle(curve.Pt(0, 0), 1, colors.White()))

	// Redo then undo again: the stored snapshot must be unaffected.
	h.Redo()
	got, _ = h.Undo()
	if count(got) != 1 {
		t.Errorf("stored snapshot has %d squids, want 1", count(got))
	}
}
