package squid

import (
	"math"
	"testing"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/smooth"

	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

var testCam = camera.Camera{Zoom: 1}

func TestDuplicateOffsetsAndRests(t *testing.T) {
	c := NewCircle(curve.Pt(10, 10), 5, colors.White())

	dup, ok := c.Duplicate(curve.Vec(3, 3)).(*Circle)
	if !ok {
		t.Fatal("duplicating a circle should yield a circle")
	}

	data := dup.Data()
	if got := data.Position.Reveal(); got != curve.Pt(13, 13) {
		t.Errorf("duplicate position = %v, want (13, 13)", got)
	}
	if data.Radius != 5 {
		t.Errorf("duplicate radius = %v, want 5", data.Radius)
	}
	if got := dup.AnimatedData().Position.Reveal(); got != curve.Pt(13, 13) {
		t.Errorf("duplicate should be at rest, animated position = %v", got)
	}

	_, origSeq := c.Created()
	_, dupSeq := dup.Created()
	if dupSeq <= origSeq {
		t.Errorf("duplicate sequence %d should come after original %d", dupSeq, origSeq)
	}
}

func TestCircleHitTest(t *testing.T) {
	c := NewCircle(curve.Pt(0, 0), 10, colors.White())

	if !c.IsPointOver(curve.Pt(5, 5), testCam) {
		t.Error("point inside circle should hit")
	}
	if c.IsPointOver(curve.Pt(10, 0), testCam) {
		t.Error("point exactly on the rim should miss")
	}
	if c.IsPointOver(curve.Pt(20, 0), testCam) {
		t.Error("point outside circle should hit nothing")
	}
}

func TestCircleTrySelectCarriesColor(t *testing.T) {
	color := colors.FromHex("#ff0000")
	c := NewCircle(curve.Pt(0, 0), 10, color)
	self := Ref{Slot: 2, Generation: 7}

	sel, ok := c.TrySelect(curve.Pt(1, 1), testCam, self)
	if !ok {
		t.Fatal("click inside should select")
	}
	if sel.Selection.Squid != self {
		t.Errorf("selection ref = %+v, want %+v", sel.Selection.Squid, self)
	}
	if sel.Color == nil || *sel.Color != color {
		t.Errorf("selection color = %v, want %v", sel.Color, color)
	}

	if _, ok := c.TrySelect(curve.Pt(30, 30), testCam, self); ok {
		t.Error("click outside should not select")
	}
}

func TestCircleScaleRotateGesture(t *testing.T) {
	c := NewCircle(curve.Pt(10, 10), 5, colors.White())

	// The handle starts at bearing zero, just off the rim.
	handle := c.RotateHandle(testCam)
	if handle.Distance(curve.Pt(15, 10)) > 1e-9 {
		t.Fatalf("rotate handle = %v, want (15, 10)", handle)
	}

	c.Interact(interaction.PreClick{}, testCam)
	got := c.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: handle}, testCam)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("click on handle returned %T, want AllowDrag", got)
	}

	// Dragging the handle out to (30, 10) grows the radius without any
	// batch capture.
	got = c.Interact(interaction.Drag{Current: curve.Pt(30, 10)}, testCam)
	if _, ok := got.(interaction.Miss); !ok {
		t.Fatalf("handle drag returned %T, want Miss", got)
	}
	if r := c.Data().Radius; math.Abs(r-20) > 1e-9 {
		t.Errorf("radius after drag = %v, want 20", r)
	}

	c.Interact(interaction.MouseRelease{Button: mouse.ButtonLeft}, testCam)
}

func TestCircleBodyDragRequestsBatchMove(t *testing.T) {
	c := NewCircle(curve.Pt(0, 0), 10, colors.White())

	c.Interact(interaction.PreClick{}, testCam)
	got := c.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(1, 1)}, testCam)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("body click returned %T, want AllowDrag", got)
	}

	got = c.Interact(interaction.Drag{Delta: curve.Vec(4, -2)}, testCam)
	mv, ok := got.(interaction.MoveSelected)
	if !ok {
		t.Fatalf("body drag returned %T, want MoveSelected", got)
	}
	if mv.Delta != curve.Vec(4, -2) {
		t.Errorf("move delta = %v, want (4, -2)", mv.Delta)
	}

	// PreClick clears the transient grab.
	c.Interact(interaction.PreClick{}, testCam)
	got = c.Interact(interaction.Drag{Delta: curve.Vec(1, 1)}, testCam)
	if _, ok := got.(interaction.Miss); !ok {
		t.Errorf("drag after PreClick returned %T, want Miss", got)
	}
}

func TestTranslateSnapsThroughAccumulator(t *testing.T) {
	c := NewCircle(curve.Pt(0, 0), 10, colors.White())
	c.Select()
	opts := interaction.Options{TranslationSnapping: 10}

	c.Translate(curve.Vec(4, 0), opts)
	if got := c.Data().Position.Reveal(); got != curve.Pt(0, 0) {
		t.Errorf("sub-threshold translate moved the shape to %v", got)
	}
	c.Translate(curve.Vec(4, 0), opts)
	if got := c.Data().Position.Reveal(); got != curve.Pt(10, 0) {
		t.Errorf("accumulated translate = %v, want (10, 0)", got)
	}
}

func TestScaleFromInitiatedSize(t *testing.T) {
	c := NewCircle(curve.Pt(0, 0), 6, colors.White())
	c.Initiate(InitiateScale{})

	c.Scale(2, interaction.Options{})
	if got := c.Data().Radius; got != 12 {
		t.Errorf("radius = %v, want 12", got)
	}
	// The factor is total, not incremental.
	c.Scale(3, interaction.Options{})
	if got := c.Data().Radius; got != 18 {
		t.Errorf("radius = %v, want 18", got)
	}
}

func TestDilateScalesAndMoves(t *testing.T) {
	c := NewCircle(curve.Pt(4, 0), 2, colors.White())
	c.Initiate(InitiateDilate{Point: curve.Pt(2, 0), Center: curve.Pt(0, 0)})

	c.Dilate(curve.Pt(6, 0), interaction.Options{})
	data := c.Data()
	if got := data.Position.Reveal(); got.Distance(curve.Pt(12, 0)) > 1e-9 {
		t.Errorf("position = %v, want (12, 0)", got)
	}
	if math.Abs(data.Radius-6) > 1e-9 {
		t.Errorf("radius = %v, want 6", data.Radius)
	}
}

func TestRevolveOrbitsWithArcAnimation(t *testing.T) {
	c := NewCircle(curve.Pt(10, 0), 2, colors.White())
	c.Initiate(InitiateRevolve{Point: curve.Pt(10, 0), Center: curve.Pt(0, 0)})

	c.Revolve(curve.Pt(0, -10), interaction.Options{})
	data := c.Data()
	if got := data.Position.Reveal(); got.Distance(curve.Pt(0, -10)) > 1e-9 {
		t.Errorf("position = %v, want (0, -10)", got)
	}
	if data.Position.Mode != smooth.Arc {
		t.Errorf("position mode = %v, want arc travel", data.Position.Mode)
	}
	if math.Abs(data.VirtualRotation-math.Pi/2) > 1e-9 {
		t.Errorf("virtual rotation = %v, want pi/2", data.VirtualRotation)
	}
}

func TestRectCornerDragScalesAboutOppositeCorner(t *testing.T) {
	r := NewRect(curve.Pt(0, 0), curve.Vec(4, 2), 0, colors.White(), 0)

	r.Interact(interaction.PreClick{}, testCam)
	got := r.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(2, 1)}, testCam)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("corner click returned %T, want AllowDrag", got)
	}

	r.Interact(interaction.Drag{Current: curve.Pt(4, 3)}, testCam)
	data := r.Data()
	if got := data.Position.Reveal(); got.Distance(curve.Pt(1, 1)) > 1e-9 {
		t.Errorf("position = %v, want (1, 1)", got)
	}
	if data.Size.Sub(curve.Vec(6, 4)).Hypot() > 1e-9 {
		t.Errorf("size = %v, want (6, 4)", data.Size)
	}
}

func TestRectHitTestIncludesBoundary(t *testing.T) {
	r := NewRect(curve.Pt(0, 0), curve.Vec(2, 2), 0, colors.White(), 0)

	if !r.IsPointOver(curve.Pt(0, 0), testCam) {
		t.Error("center should hit")
	}
	if !r.IsPointOver(curve.Pt(1, 0), testCam) {
		t.Error("edge point should count as inside")
	}
	if r.IsPointOver(curve.Pt(2, 2), testCam) {
		t.Error("outside point should miss")
	}
}

func TestRectRotateHandleTrailsWidth(t *testing.T) {
	r := NewRect(curve.Pt(0, 0), curve.Vec(4, 2), 0, colors.White(), 0)
	if got := r.RotateHandle(testCam); got.Distance(curve.Pt(26, 0)) > 1e-9 {
		t.Errorf("rotate handle = %v, want (26, 0)", got)
	}
}

func TestTriVertexDragRecentersAndFoldsRotation(t *testing.T) {
	tri := NewTri([3]curve.Point{curve.Pt(0, 0), curve.Pt(60, 0), curve.Pt(0, 60)}, 0, colors.White())

	tri.Interact(interaction.PreClick{}, testCam)
	got := tri.Interact(interaction.Click{Button: mouse.ButtonLeft, Position: curve.Pt(60, 0)}, testCam)
	if _, ok := got.(interaction.AllowDrag); !ok {
		t.Fatalf("vertex click returned %T, want AllowDrag", got)
	}

	// Rotate mid-gesture so the drag has a rotation to fold away.
	tri.Rotate(math.Pi/2, interaction.Options{})
	if got := tri.Data().Rotation; math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("rotation = %v, want pi/2", got)
	}

	// Drag the grabbed vertex to where it already sits on screen: the
	// stored geometry re-bases to rotation zero without moving anything.
	tri.Interact(interaction.Drag{Current: curve.Pt(0, -20)}, testCam)

	data := tri.Data()
	if data.Rotation != 0 {
		t.Errorf("rotation after fold = %v, want exactly 0", data.Rotation)
	}
	if got := tri.AnimatedData().Rotation; got != 0 {
		t.Errorf("animated rotation after fold = %v, want exactly 0 (no wrap-around travel)", got)
	}
	if got := data.Position.Reveal(); got.Distance(curve.Pt(20, 20)) > 1e-9 {
		t.Errorf("position = %v, want (20, 20)", got)
	}

	want := [3]curve.Point{curve.Pt(-20, 20), curve.Pt(-20, -40), curve.Pt(40, 20)}
	for i, p := range data.P {
		if p.Reveal().Distance(want[i]) > 1e-9 {
			t.Errorf("vertex %d = %v, want %v", i, p.Reveal(), want[i])
		}
	}
}

func TestTriHitTest(t *testing.T) {
	tri := NewTri([3]curve.Point{curve.Pt(0, 0), curve.Pt(4, 0), curve.Pt(0, 4)}, 0, colors.White())

	if !tri.IsPointOver(curve.Pt(1, 1), testCam) {
		t.Error("interior point should hit")
	}
	if tri.IsPointOver(curve.Pt(5, 5), testCam) {
		t.Error("exterior point should miss")
	}
}

func TestDefaultNames(t *testing.T) {
	shapes := []Squid{
		NewCircle(curve.Pt(0, 0), 1, colors.White()),
		NewRect(curve.Pt(0, 0), curve.Vec(1, 1), 0, colors.White(), 0),
		NewTri([3]curve.Point{curve.Pt(0, 0), curve.Pt(1, 0), curve.Pt(0, 1)}, 0, colors.White()),
	}
	want := []string{"Unnamed Circle", "Unnamed Rect", "Unnamed Tri"}
	for i, s := range shapes {
		if s.Name() != want[i] {
			t.Errorf("name = %q, want %q", s.Name(), want[i])
		}
		s.SetName("renamed")
		if s.Name() != "renamed" {
			t.Errorf("name after SetName = %q", s.Name())
		}
	}
}

func TestCreationOrderIsTotal(t *testing.T) {
	a := NewCircle(curve.Pt(0, 0), 1, colors.White())
	b := NewCircle(curve.Pt(0, 0), 1, colors.White())
	_, aSeq := a.Created()
	_, bSeq := b.Created()
	if bSeq <= aSeq {
		t.Errorf("sequence numbers must strictly increase: %d then %d", aSeq, bSeq)
	}
}
