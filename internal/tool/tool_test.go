package tool

import (
	"math"
	"testing"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/operation"
	"github.com/example/squidpad/internal/squid"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

type fakeEditor struct {
	cam         camera.Camera
	camLocation curve.Point
	inserted    []squid.Squid
	selections  []squid.Selection
	preloaded   *colors.Color
	marked      []squid.Ref
	preclicked  bool
	selResult   ocean.TrySelectResult
	selCapture  interaction.Capture
	op          operation.Operation
	shift       bool
	collective  bool
	initiated   []squid.Initiation
	mouseWorld  curve.Point
	groupCenter curve.Point
	hasGroup    bool
	menu        bool
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{
		cam:       camera.Camera{Zoom: 1},
		selResult: ocean.Discard{},
	}
}

func (e *fakeEditor) AnimatedCamera() camera.Camera    { return e.cam }
func (e *fakeEditor) RealCamera() camera.Camera        { return e.cam }
func (e *fakeEditor) SetCameraLocation(p curve.Point)  { e.camLocation = p }
func (e *fakeEditor) BrushColor() colors.Color         { return colors.White() }
func (e *fakeEditor) Preclick()                        { e.preclicked = true }
func (e *fakeEditor) ClearSelections()                 { e.selections = nil }
func (e *fakeEditor) AddSelection(sel squid.Selection) { e.selections = append(e.selections, sel) }
func (e *fakeEditor) PreloadColor(c colors.Color)      { e.preloaded = &c }
func (e *fakeEditor) MarkSelected(ref squid.Ref)       { e.marked = append(e.marked, ref) }
func (e *fakeEditor) ShiftHeld() bool                  { return e.shift }
func (e *fakeEditor) Operation() operation.Operation   { return e.op }
func (e *fakeEditor) MouseWorld() curve.Point          { return e.mouseWorld }
func (e *fakeEditor) ToggleCollectiveFlag()            { e.collective = !e.collective }

func (e *fakeEditor) Insert(s squid.Squid) squid.Ref {
	e.inserted = append(e.inserted, s)
	return squid.Ref{Slot: len(e.inserted) - 1, Generation: 1}
}

func (e *fakeEditor) TrySelect(curve.Point) ocean.TrySelectResult {
	return e.selResult
}

func (e *fakeEditor) InteractWithSelections(interaction.Interaction) interaction.Capture {
	if e.selCapture == nil {
		return interaction.Miss{}
	}
	return e.selCapture
}

func (e *fakeEditor) OpenContextMenu(curve.Point) bool {
	return e.menu
}

func (e *fakeEditor) Initiate(init squid.Initiation) {
	e.initiated = append(e.initiated, init)
}

func (e *fakeEditor) GroupCenter() (curve.Point, bool) {
	return e.groupCenter, e.hasGroup
}

func (e *fakeEditor) TakeCollectiveFlag() bool {
	was := e.collective
	e.collective = false
	return was
}

func TestPanDragMovesCameraOpposite(t *testing.T) {
	ed := newFakeEditor()
	ed.cam = camera.Camera{Position: curve.Pt(10, 10), Zoom: 2}

	var pan Pan
	got := pan.Interact(interaction.Drag{Delta: curve.Vec(4, -6)}, ed)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("pan drag returned %T, want AllowDrag", got)
	}
	// A 2x zoom halves the world-space travel.
	want := curve.Pt(8, 13)
	if ed.camLocation.Distance(want) > 1e-9 {
		t.Errorf("camera location = %v, want %v", ed.camLocation, want)
	}
}

func TestCreateToolsInsertAtWorldPosition(t *testing.T) {
	ed := newFakeEditor()
	ed.cam = camera.Camera{Position: curve.Pt(100, 100), Zoom: 1}

	circle := &Circle{Radius: 30}
	got := circle.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(20, 20)}, ed)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("create click returned %T, want AllowDrag", got)
	}
	if len(ed.inserted) != 1 {
		t.Fatalf("inserted %d squids, want 1", len(ed.inserted))
	}
	if got := ed.inserted[0].Center(); got.Distance(curve.Pt(120, 120)) > 1e-9 {
		t.Errorf("inserted at %v, want (120, 120)", got)
	}

	if got := circle.Interact(interaction.Click{Button: mouse.ButtonRight}, ed); got != interaction.Capture(interaction.Miss{}) {
		t.Errorf("right click returned %T, want Miss", got)
	}
	if got := circle.Interact(interaction.Drag{}, ed); got != interaction.Capture(interaction.Miss{}) {
		t.Errorf("drag returned %T, want Miss", got)
	}
}

func TestPointerClickDiscardClearsSelections(t *testing.T) {
	ed := newFakeEditor()
	ed.selections = []squid.Selection{{Squid: squid.Ref{Slot: 1, Generation: 1}}}
	ed.selResult = ocean.Discard{}

	var pointer Pointer
	got := pointer.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(0, 0)}, ed)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("click returned %T, want AllowDrag", got)
	}
	if !ed.preclicked {
		t.Error("click must fire preclick first")
	}
	if len(ed.selections) != 0 {
		t.Error("discard should clear selections")
	}
}

func TestPointerClickAdoptsNewSelection(t *testing.T) {
	ed := newFakeEditor()
	ed.selections = []squid.Selection{{Squid: squid.Ref{Slot: 1, Generation: 1}}}
	red := colors.FromHex("#ff0000")
	hit := squid.Selection{Squid: squid.Ref{Slot: 5, Generation: 2}}
	ed.selResult = ocean.NewSelection{Selection: squid.NewSelection{Selection: hit, Color: &red}}

	var pointer Pointer
	pointer.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(0, 0)}, ed)

	if len(ed.selections) != 1 || ed.selections[0] != hit {
		t.Errorf("selections = %+v, want just the hit", ed.selections)
	}
	if ed.preloaded == nil || *ed.preloaded != red {
		t.Error("the hit squid's color should reach the picker")
	}
	if len(ed.marked) != 1 || ed.marked[0] != hit.Squid {
		t.Error("the hit squid should be marked selected")
	}

	// Shift-click keeps the previous selection.
	ed.selections = []squid.Selection{{Squid: squid.Ref{Slot: 1, Generation: 1}}}
	ed.shift = true
	pointer.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(0, 0)}, ed)
	if len(ed.selections) != 2 {
		t.Errorf("shift-click selections = %d, want 2", len(ed.selections))
	}
}

func TestPointerPrefersExistingSelectionInteraction(t *testing.T) {
	ed := newFakeEditor()
	ed.selResult = ocean.Preserve{}
	ed.selCapture = interaction.MoveSelected{Delta: curve.Vec(1, 0)}

	var pointer Pointer
	got := pointer.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(0, 0)}, ed)
	if _, ok := got.(interaction.MoveSelected); !ok {
		t.Errorf("click returned %T, want the selection's capture", got)
	}
}

func TestPointerRotateOperationDrag(t *testing.T) {
	ed := newFakeEditor()
	// As if the gesture started with the mouse due right of the center.
	op := &operation.Rotate{Point: curve.Pt(0, 0), Rotation: -math.Pi / 2}
	ed.op = op

	var pointer Pointer
	got := pointer.Interact(interaction.Drag{Current: curve.Pt(0, -10)}, ed)
	rot, ok := got.(interaction.RotateSelected)
	if !ok {
		t.Fatalf("drag returned %T, want RotateSelected", got)
	}
	if math.Abs(rot.DeltaTheta-math.Pi/2) > 1e-9 {
		t.Errorf("delta = %v, want pi/2", rot.DeltaTheta)
	}
	if math.Abs(op.Rotation) > 1e-9 {
		t.Errorf("accumulated rotation = %v, want 0", op.Rotation)
	}

	// A second drag to the same spot adds nothing.
	got = pointer.Interact(interaction.Drag{Current: curve.Pt(0, -10)}, ed)
	if rot := got.(interaction.RotateSelected); math.Abs(rot.DeltaTheta) > 1e-9 {
		t.Errorf("repeated drag delta = %v, want 0", rot.DeltaTheta)
	}
}

func TestPointerScaleOperationDrag(t *testing.T) {
	ed := newFakeEditor()
	ed.op = &operation.Scale{Origin: curve.Pt(0, 0), Point: curve.Pt(2, 0)}

	var pointer Pointer
	got := pointer.Interact(interaction.Drag{Current: curve.Pt(6, 0)}, ed)
	sc, ok := got.(interaction.ScaleSelected)
	if !ok {
		t.Fatalf("drag returned %T, want ScaleSelected", got)
	}
	if math.Abs(sc.TotalFactor-3) > 1e-9 {
		t.Errorf("factor = %v, want 3", sc.TotalFactor)
	}
}

func TestPointerHotkeys(t *testing.T) {
	ed := newFakeEditor()
	var pointer Pointer

	got := pointer.Interact(interaction.KeyPress{Code: key.CodeG}, ed)
	if _, ok := got.(interaction.NoDrag); !ok {
		t.Fatalf("G returned %T, want NoDrag", got)
	}
	if len(ed.initiated) != 1 {
		t.Fatalf("initiated %d gestures, want 1", len(ed.initiated))
	}
	if _, ok := ed.initiated[0].(squid.InitiateTranslate); !ok {
		t.Errorf("G initiated %T, want InitiateTranslate", ed.initiated[0])
	}

	// C arms the collective flag; the next G becomes a spread.
	pointer.Interact(interaction.KeyPress{Code: key.CodeC}, ed)
	ed.hasGroup = true
	ed.groupCenter = curve.Pt(7, 7)
	ed.mouseWorld = curve.Pt(9, 9)
	pointer.Interact(interaction.KeyPress{Code: key.CodeG}, ed)
	spread, ok := ed.initiated[len(ed.initiated)-1].(squid.InitiateSpread)
	if !ok {
		t.Fatalf("collective G initiated %T, want InitiateSpread", ed.initiated[len(ed.initiated)-1])
	}
	if spread.Center != curve.Pt(7, 7) || spread.Point != curve.Pt(9, 9) {
		t.Errorf("spread initiation = %+v", spread)
	}
	if ed.collective {
		t.Error("the collective flag should be consumed")
	}

	if got := pointer.Interact(interaction.KeyPress{Code: key.CodeZ}, ed); got != interaction.Capture(interaction.Miss{}) {
		t.Errorf("unbound key returned %T, want Miss", got)
	}
}

func TestToolboxSelection(t *testing.T) {
	tb := NewToolbox()
	if tb.Current().Name() != "Pointer" {
		t.Errorf("default tool = %q, want Pointer", tb.Current().Name())
	}
	tb.Select(1)
	if tb.Current().Name() != "Pan" {
		t.Errorf("tool after Select(1) = %q, want Pan", tb.Current().Name())
	}
	tb.Select(99)
	if tb.Current().Name() != "Pan" {
		t.Error("out-of-range Select should be ignored")
	}
}
