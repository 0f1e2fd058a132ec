package app

import (
	"math"
	"testing"

	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/operation"
	"github.com/example/squidpad/internal/squid"

	"golang.org/x/mobile/event/mouse"
	"honnef.co/go/curve"
)

func newTestEditor() *Editor {
	return NewEditor(curve.Vec2{X: 100, Y: 100}, interaction.DefaultOptions())
}

func TestDoCaptureMovesSelection(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	b := ed.Insert(squid.NewCircle(curve.Pt(50, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	ed.DoCapture(interaction.MoveSelected{Delta: curve.Vec2{X: 3, Y: 4}})

	moved, _ := ed.Ocean().Get(a)
	if got := moved.(*squid.Circle).Data().Position.Reveal(); got.X != 3 || got.Y != 4 {
		t.Errorf("selected squid position = %v, want (3, 4)", got)
	}
	still, _ := ed.Ocean().Get(b)
	if got := still.(*squid.Circle).Data().Position.Reveal(); got.X != 50 || got.Y != 0 {
		t.Errorf("unselected squid position = %v, want (50, 0)", got)
	}
}

func TestDoCaptureSkipsLimbSelections(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	limb := squid.Ref{Slot: 0, Generation: 1}
	ed.AddSelection(squid.Selection{Squid: a, Limb: &limb})

	ed.DoCapture(interaction.MoveSelected{Delta: curve.Vec2{X: 3, Y: 0}})

	s, _ := ed.Ocean().Get(a)
	if got := s.(*squid.Circle).Data().Position.Reveal(); got.X != 0 || got.Y != 0 {
		t.Errorf("limb-only selection moved the squid to %v", got)
	}
}

func TestStopDragRecordsGestureInHistory(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	ed.DoCapture(interaction.MoveSelected{Delta: curve.Vec2{X: 10, Y: 0}})
	ed.StopDrag(mouse.ButtonLeft)

	if !ed.Undo() {
		t.Fatalf("no history entry after completed gesture")
	}
	s, ok := ed.Ocean().Get(a)
	if !ok {
		t.Fatalf("squid missing after undo")
	}
	if got := s.Center(); got.X != 0 || got.Y != 0 {
		t.Errorf("undone center = %v, want (0, 0)", got)
	}

	if !ed.Redo() {
		t.Fatalf("redo unavailable")
	}
	s, _ = ed.Ocean().Get(a)
	if got := s.Center(); got.X != 10 || got.Y != 0 {
		t.Errorf("redone center = %v, want (10, 0)", got)
	}
}

func TestStopDragClearsSnapResidue(t *testing.T) {
	opts := interaction.DefaultOptions()
	opts.RotationSnapping = 1.0
	ed := NewEditor(curve.Vec2{X: 100, Y: 100}, opts)
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	// 0.4 rad stays below the snap step, so nothing is applied yet.
	ed.DoCapture(interaction.RotateSelected{DeltaTheta: 0.4})
	ed.StopDrag(mouse.ButtonLeft)
	ed.DoCapture(interaction.RotateSelected{DeltaTheta: 0.4})

	s, _ := ed.Ocean().Get(a)
	if got := s.(*squid.Circle).Data().VirtualRotation; got != 0 {
		t.Errorf("rotation after a released gesture = %v, want 0 (residue cleared on release)", got)
	}
}

func TestDeleteSelectedClearsAndUndoes(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	ed.DeleteSelected()

	if _, ok := ed.Ocean().Get(a); ok {
		t.Fatalf("squid still present after delete")
	}
	if len(ed.Selections()) != 0 {
		t.Errorf("selections not cleared by delete")
	}

	if !ed.Undo() {
		t.Fatalf("delete left no history entry")
	}
	if _, ok := ed.Ocean().Get(a); !ok {
		t.Errorf("undo did not restore the deleted squid")
	}
}

func TestDuplicateSelectedMovesSelectionToCopies(t *testing.T) {
	ed := newTestEditor()
	opts := ed.Options()
	opts.DuplicationOffset = curve.Vec2{X: 7, Y: -7}
	ed.SetOptions(opts)

	a := ed.Insert(squid.NewCircle(curve.Pt(1, 2), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	ed.DuplicateSelected()

	sels := ed.Selections()
	if len(sels) != 1 {
		t.Fatalf("selection count = %d, want 1", len(sels))
	}
	if sels[0].Squid == a {
		t.Fatalf("selection still points at the original")
	}
	dup, ok := ed.Ocean().Get(sels[0].Squid)
	if !ok {
		t.Fatalf("duplicated squid missing")
	}
	if got := dup.Center(); got.X != 8 || got.Y != -5 {
		t.Errorf("duplicate center = %v, want (8, -5)", got)
	}
	if original, _ := ed.Ocean().Get(a); original.Center().X != 1 {
		t.Errorf("original moved by duplication")
	}
}

func TestUndoPrunesDanglingSelections(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	if !ed.Undo() {
		t.Fatalf("insert left no history entry")
	}
	if len(ed.Selections()) != 0 {
		t.Errorf("selections survived undo past the squid's creation")
	}
}

func TestInitiateRotateArmsOperation(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})

	// Window is 100x100 at zoom 1, so world (10, 0) sits at screen (60, 50).
	ed.SetMouse(curve.Pt(60, 50))
	ed.Initiate(squid.InitiateRotate{})

	op, ok := ed.Operation().(*operation.Rotate)
	if !ok {
		t.Fatalf("operation = %T, want *operation.Rotate", ed.Operation())
	}
	if op.Point.X != 50 || op.Point.Y != 50 {
		t.Errorf("rotate point = %v, want (50, 50)", op.Point)
	}
	if math.Abs(op.Rotation-(-math.Pi/2)) > 1e-9 {
		t.Errorf("initial rotation = %v, want -pi/2", op.Rotation)
	}
}

func TestInitiateScaleUsesClosestCenter(t *testing.T) {
	ed := newTestEditor()
	near := ed.Insert(squid.NewCircle(curve.Pt(5, 0), 5, colors.White()))
	far := ed.Insert(squid.NewCircle(curve.Pt(40, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: near})
	ed.AddSelection(squid.Selection{Squid: far})

	// World (10, 0) is screen (60, 50).
	ed.SetMouse(curve.Pt(60, 50))
	ed.Initiate(squid.InitiateScale{})

	op, ok := ed.Operation().(*operation.Scale)
	if !ok {
		t.Fatalf("operation = %T, want *operation.Scale", ed.Operation())
	}
	if op.Origin.X != 5 || op.Origin.Y != 0 {
		t.Errorf("scale origin = %v, want the closest center (5, 0)", op.Origin)
	}
	if op.Point.X != 10 || op.Point.Y != 0 {
		t.Errorf("scale point = %v, want the mouse world position (10, 0)", op.Point)
	}
}

func TestStopDragDropsOperation(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})
	ed.SetMouse(curve.Pt(60, 50))
	ed.Initiate(squid.InitiateRotate{})

	ed.StopDrag(mouse.ButtonLeft)

	if ed.Operation() != nil {
		t.Errorf("operation still armed after drag stopped")
	}
}

func TestGroupCenterAveragesSelection(t *testing.T) {
	ed := newTestEditor()
	a := ed.Insert(squid.NewCircle(curve.Pt(0, 0), 5, colors.White()))
	b := ed.Insert(squid.NewCircle(curve.Pt(10, 20), 5, colors.White()))
	ed.AddSelection(squid.Selection{Squid: a})
	ed.AddSelection(squid.Selection{Squid: b})

	center, ok := ed.GroupCenter()
	if !ok {
		t.Fatalf("group center unavailable")
	}
	if center.X != 5 || center.Y != 10 {
		t.Errorf("group center = %v, want (5, 10)", center)
	}

	ed.ClearSelections()
	if _, ok := ed.GroupCenter(); ok {
		t.Errorf("group center reported for empty selection")
	}
}

func TestCollectiveFlagIsConsumed(t *testing.T) {
	ed := newTestEditor()
	if ed.TakeCollectiveFlag() {
		t.Errorf("flag set before toggling")
	}
	ed.ToggleCollectiveFlag()
	if !ed.TakeCollectiveFlag() {
		t.Errorf("flag not set after toggle")
	}
	if ed.TakeCollectiveFlag() {
		t.Errorf("flag survived being taken")
	}
}

func TestMenuEntryHitTest(t *testing.T) {
	anchor := curve.Pt(100, 100)

	if idx, ok := menuEntryAt(anchor, curve.Pt(110, 105)); !ok || menuEntries[idx] != "Duplicate" {
		t.Errorf("top entry hit = (%d, %v), want Duplicate", idx, ok)
	}
	if idx, ok := menuEntryAt(anchor, curve.Pt(110, 130)); !ok || menuEntries[idx] != "Delete" {
		t.Errorf("second entry hit = (%d, %v), want Delete", idx, ok)
	}
	if _, ok := menuEntryAt(anchor, curve.Pt(90, 105)); ok {
		t.Errorf("click left of the menu reported a hit")
	}
	if _, ok := menuEntryAt(anchor, curve.Pt(110, 100+2*menuEntryHeight+5)); ok {
		t.Errorf("click below the menu reported a hit")
	}
}

func TestScrollZoomKeepsMousePointFixed(t *testing.T) {
	ed := newTestEditor()
	ed.SetMouse(curve.Pt(75, 50))
	before := ed.RealCamera().Unapply(curve.Pt(75, 50))

	ed.Scroll(500)

	after := ed.RealCamera()
	if after.Zoom <= 1 {
		t.Fatalf("zoom = %v, want > 1 after scrolling in", after.Zoom)
	}
	under := after.Unapply(curve.Pt(75, 50))
	if math.Abs(under.X-before.X) > 1e-9 || math.Abs(under.Y-before.Y) > 1e-9 {
		t.Errorf("world point under mouse moved from %v to %v", before, under)
	}
}
