// Package app owns the editor state and the window loop around it. All
// state lives on the event loop goroutine; the painter only ever sees
// immutable snapshots.
package app

import (
	"math"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/history"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/operation"
	"github.com/example/squidpad/internal/smooth"
	"github.com/example/squidpad/internal/squid"
	"github.com/example/squidpad/internal/tool"

	"golang.org/x/mobile/event/mouse"
	"honnef.co/go/curve"
)

// scrollRange divides raw wheel deltas into zoom factors.
const scrollRange = 1000.0

// Editor is the mutable core of the application: the ocean of squids, the
// selection, the camera, and whatever gesture is in flight. It satisfies
// tool.Editor so the canvas tools can drive it.
type Editor struct {
	ocean      *ocean.Ocean
	history    *history.History
	selections []squid.Selection
	camera     *smooth.Smooth[camera.Camera]
	toolbox    *tool.Toolbox
	brush      colors.Color
	options    interaction.Options

	mouse      curve.Point
	shiftHeld  bool
	op         operation.Operation
	collective bool
	menu       *squid.ContextMenu

	// gesturePending marks that an armed operation should close with a
	// history entry when the drag stops.
	gesturePending bool
}

// NewEditor returns an editor over an empty ocean. The window size seeds
// the camera's screen mapping.
func NewEditor(window curve.Vec2, opts interaction.Options) *Editor {
	e := &Editor{
		ocean:   ocean.New(),
		history: history.New(),
		camera:  smooth.New(camera.Identity(window), 0),
		toolbox: tool.NewToolbox(),
		brush:   colors.White(),
		options: opts,
	}
	return e
}

// Ocean exposes the live scene for rendering and export.
func (e *Editor) Ocean() *ocean.Ocean { return e.ocean }

// Toolbox exposes the tool set for the ribbon.
func (e *Editor) Toolbox() *tool.Toolbox { return e.toolbox }

// Selections returns the current selection list.
func (e *Editor) Selections() []squid.Selection { return e.selections }

// Options returns the active interaction options.
func (e *Editor) Options() interaction.Options { return e.options }

// SetOptions replaces the interaction options, usually from configuration.
func (e *Editor) SetOptions(opts interaction.Options) { e.options = opts }

// SetMouse records the latest pointer position in screen space.
func (e *Editor) SetMouse(p curve.Point) { e.mouse = p }

// Mouse returns the latest pointer position in screen space.
func (e *Editor) Mouse() curve.Point { return e.mouse }

// SetShiftHeld tracks the shift modifier between events.
func (e *Editor) SetShiftHeld(held bool) { e.shiftHeld = held }

// SetWindow resizes the camera's screen mapping without animating.
func (e *Editor) SetWindow(window curve.Vec2) {
	e.camera.MutateBoth(func(c *camera.Camera) { c.Window = window })
}

// AnimatedCamera is the eased camera for this moment.
func (e *Editor) AnimatedCamera() camera.Camera { return e.camera.Animated() }

// RealCamera is the camera's animation target.
func (e *Editor) RealCamera() camera.Camera { return e.camera.Real() }

// SetCameraLocation retargets the camera focus, animating toward it.
func (e *Editor) SetCameraLocation(p curve.Point) { camera.SetLocation(e.camera, p) }

// ZoomIn steps the camera zoom up around the window center.
func (e *Editor) ZoomIn() { camera.ZoomIn(e.camera) }

// ZoomOut steps the camera zoom down around the window center.
func (e *Editor) ZoomOut() { camera.ZoomOut(e.camera) }

// Scroll zooms around the point under the mouse. Positive deltas zoom in.
func (e *Editor) Scroll(delta float64) {
	var factor float64
	switch {
	case delta > 0:
		factor = 1 + delta/scrollRange
	case delta < 0:
		factor = 1 / (1 - delta/scrollRange)
	default:
		return
	}
	center := e.camera.Real().Unapply(e.mouse)
	camera.ZoomPoint(e.camera, factor, center)
}

// BrushColor is the color newly created squids take.
func (e *Editor) BrushColor() colors.Color { return e.brush }

// SetBrushColor sets the creation color.
func (e *Editor) SetBrushColor(c colors.Color) { e.brush = c }

// PreloadColor adopts a freshly selected squid's color as the brush color.
func (e *Editor) PreloadColor(c colors.Color) { e.brush = c }

// Insert adds a squid to the scene and records a history entry.
func (e *Editor) Insert(s squid.Squid) squid.Ref {
	e.PruneSelections()
	ref := e.ocean.Insert(s)
	e.PushHistory()
	return ref
}

// Preclick resets per-gesture state on every squid before a click is
// dispatched, whether or not it ends up claiming the click.
func (e *Editor) Preclick() {
	cam := e.AnimatedCamera()
	for _, ref := range e.ocean.Highest() {
		if s, ok := e.ocean.Get(ref); ok {
			s.Interact(interaction.PreClick{}, cam)
		}
	}
}

// TrySelect resolves what a click at the given screen position should do to
// the selection.
func (e *Editor) TrySelect(screen curve.Point) ocean.TrySelectResult {
	return e.ocean.TrySelect(screen, e.AnimatedCamera(), e.selections)
}

// InteractWithSelections offers an event to every selected squid from the
// top down; the first to claim it wins.
func (e *Editor) InteractWithSelections(ev interaction.Interaction) interaction.Capture {
	cam := e.AnimatedCamera()
	for _, ref := range e.ocean.Highest() {
		if !squid.SelectionsContain(e.selections, ref) {
			continue
		}
		if s, ok := e.ocean.Get(ref); ok {
			if capture := s.Interact(ev, cam); capture.Claimed() {
				return capture
			}
		}
	}
	return interaction.Miss{}
}

// ClearSelections drops the whole selection.
func (e *Editor) ClearSelections() { e.selections = nil }

// AddSelection appends to the selection.
func (e *Editor) AddSelection(sel squid.Selection) {
	e.selections = append(e.selections, sel)
}

// MarkSelected tells a squid it has just been grabbed.
func (e *Editor) MarkSelected(ref squid.Ref) {
	if s, ok := e.ocean.Get(ref); ok {
		s.Select()
	}
}

// SelectedRefs lists the selected squids, skipping limb-only selections.
func (e *Editor) SelectedRefs() []squid.Ref {
	refs := make([]squid.Ref, 0, len(e.selections))
	for _, sel := range e.selections {
		if sel.Limb == nil {
			refs = append(refs, sel.Squid)
		}
	}
	return refs
}

// PruneSelections drops selections whose squid no longer exists.
func (e *Editor) PruneSelections() {
	kept := e.selections[:0]
	for _, sel := range e.selections {
		if _, ok := e.ocean.Get(sel.Squid); ok {
			kept = append(kept, sel)
		}
	}
	e.selections = kept
}

// ShiftHeld reports whether shift was down at the last key event.
func (e *Editor) ShiftHeld() bool { return e.shiftHeld }

// Operation returns the armed keyboard-initiated transform, or nil.
func (e *Editor) Operation() operation.Operation { return e.op }

// TakeCollectiveFlag consumes the act-as-group flag.
func (e *Editor) TakeCollectiveFlag() bool {
	was := e.collective
	e.collective = false
	return was
}

// ToggleCollectiveFlag flips the act-as-group flag for the next operation.
func (e *Editor) ToggleCollectiveFlag() { e.collective = !e.collective }

// CollectiveFlag reports the act-as-group flag without consuming it.
func (e *Editor) CollectiveFlag() bool { return e.collective }

// Initiate arms a gesture on the editor and on every selected squid.
func (e *Editor) Initiate(initiation squid.Initiation) {
	e.gesturePending = true

	switch initiation := initiation.(type) {
	case squid.InitiateTranslate:
		e.op = nil
	case squid.InitiateRotate:
		position := e.MouseWorld()
		if center, ok := e.closestSelectionCenter(position); ok {
			point := e.AnimatedCamera().Apply(center)
			rotation := math.Atan2(center.Y-position.Y, position.X-center.X) - math.Pi/2
			e.op = &operation.Rotate{Point: point, Rotation: rotation}
		}
	case squid.InitiateScale:
		point := e.MouseWorld()
		if origin, ok := e.closestSelectionCenter(point); ok {
			e.op = &operation.Scale{Point: point, Origin: origin}
		}
	case squid.InitiateSpread:
		e.op = &operation.Spread{Point: initiation.Point, Origin: initiation.Center}
	case squid.InitiateRevolve:
		e.op = &operation.Revolve{Point: initiation.Point, Origin: initiation.Center}
	case squid.InitiateDilate:
		e.op = &operation.Dilate{Point: initiation.Point, Origin: initiation.Center}
	}

	for _, ref := range e.SelectedRefs() {
		if s, ok := e.ocean.Get(ref); ok {
			s.Initiate(initiation)
		}
	}
}

func (e *Editor) closestSelectionCenter(position curve.Point) (curve.Point, bool) {
	least := math.Inf(1)
	var closest curve.Point
	var found bool
	for _, ref := range e.SelectedRefs() {
		if s, ok := e.ocean.Get(ref); ok {
			center := s.Center()
			if d := position.Distance(center); d < least {
				least = d
				closest = center
				found = true
			}
		}
	}
	return closest, found
}

// GroupCenter averages the selected squids' centers.
func (e *Editor) GroupCenter() (curve.Point, bool) {
	refs := e.SelectedRefs()
	var sum curve.Vec2
	var count int
	for _, ref := range refs {
		if s, ok := e.ocean.Get(ref); ok {
			sum = sum.Add(curve.Vec2(s.Center()))
			count++
		}
	}
	if count == 0 {
		return curve.Point{}, false
	}
	return curve.Point(sum.Mul(1 / float64(count))), true
}

// MouseWorld is the pointer position mapped into world space.
func (e *Editor) MouseWorld() curve.Point {
	return e.AnimatedCamera().Unapply(e.mouse)
}

// DoCapture applies a batch-edit capture to every selected squid. Squids
// that vanished since selection are skipped. Other captures are inert here;
// the window loop reads them for drag control.
func (e *Editor) DoCapture(capture interaction.Capture) {
	apply := func(fn func(squid.Squid)) {
		for _, ref := range e.SelectedRefs() {
			if s, ok := e.ocean.Get(ref); ok {
				fn(s)
			}
		}
		e.gesturePending = true
	}

	switch capture := capture.(type) {
	case interaction.MoveSelected:
		apply(func(s squid.Squid) { s.Translate(capture.Delta, e.options) })
	case interaction.RotateSelected:
		apply(func(s squid.Squid) { s.Rotate(capture.DeltaTheta, e.options) })
	case interaction.ScaleSelected:
		apply(func(s squid.Squid) { s.Scale(capture.TotalFactor, e.options) })
	case interaction.SpreadSelected:
		apply(func(s squid.Squid) { s.Spread(capture.Current, e.options) })
	case interaction.RevolveSelected:
		apply(func(s squid.Squid) { s.Revolve(capture.Current, e.options) })
	case interaction.DilateSelected:
		apply(func(s squid.Squid) { s.Dilate(capture.Current, e.options) })
	}
}

// StopDrag ends the active gesture: squids get a MouseRelease carrying the
// released button, the armed operation is dropped, and a completed gesture
// lands in history.
func (e *Editor) StopDrag(button mouse.Button) {
	cam := e.AnimatedCamera()
	for _, ref := range e.ocean.Highest() {
		if s, ok := e.ocean.Get(ref); ok {
			s.Interact(interaction.MouseRelease{Button: button, Position: e.mouse}, cam)
		}
	}
	e.op = nil
	if e.gesturePending {
		e.gesturePending = false
		e.PushHistory()
	}
}

// OpenContextMenu asks the scene for a context menu at the given screen
// position and keeps it if one is found.
func (e *Editor) OpenContextMenu(screen curve.Point) bool {
	menu, ok := e.ocean.TryContextMenu(screen, e.AnimatedCamera())
	if !ok {
		return false
	}
	e.menu = &menu
	return true
}

// ContextMenu returns the open context menu, or nil.
func (e *Editor) ContextMenu() *squid.ContextMenu { return e.menu }

// CloseContextMenu dismisses the open context menu.
func (e *Editor) CloseContextMenu() { e.menu = nil }

// DeleteSelected removes every selected squid and records history.
func (e *Editor) DeleteSelected() {
	refs := e.SelectedRefs()
	if len(refs) == 0 {
		return
	}
	for _, ref := range refs {
		e.ocean.Remove(ref)
	}
	e.ClearSelections()
	e.PushHistory()
}

// DuplicateSelected copies every selected squid with the configured offset
// and moves the selection to the copies.
func (e *Editor) DuplicateSelected() {
	offset := e.options.DuplicationOffset
	var created []squid.Ref
	for _, ref := range e.SelectedRefs() {
		if s, ok := e.ocean.Get(ref); ok {
			created = append(created, e.ocean.Insert(s.Duplicate(offset)))
		}
	}
	if len(created) == 0 {
		return
	}
	e.ClearSelections()
	for _, ref := range created {
		e.AddSelection(squid.Selection{Squid: ref})
	}
	e.PushHistory()
}

// PushHistory snapshots the scene.
func (e *Editor) PushHistory() {
	e.history.Push(e.ocean.Clone())
}

// Undo steps back to the previous snapshot. Selections referring to squids
// absent there are pruned.
func (e *Editor) Undo() bool {
	previous, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.ocean = previous
	e.PruneSelections()
	return true
}

// Redo steps forward to an undone snapshot.
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.ocean = next
	e.PruneSelections()
	return true
}
