// Package squid defines the shapes a document is made of. Each squid owns
// an eased snapshot of its geometry, answers hit tests, and runs the
// gesture state machines that turn pointer events into edits.
package squid

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"

	"honnef.co/go/curve"
)

// HandleRadius is the on-screen radius of interaction handles. Hit tests
// accept clicks within twice this distance.
const HandleRadius = 8.0

// rotateHandleMargin is how far beyond a shape's silhouette its rotate
// handle sits.
const rotateHandleMargin = 24.0

// Ref is a stable handle to a squid slot in an ocean. A ref stays
// meaningless after its squid is removed; it never aliases a newer squid.
type Ref struct {
	Slot       int
	Generation uint64
}

// Selection points at a selected squid, and optionally at one of its
// sub-parts.
type Selection struct {
	Squid Ref
	Limb  *Ref
}

// NewSelection is a freshly hit squid together with display info the
// selector wants to surface, like the color to preload into the picker.
type NewSelection struct {
	Selection Selection
	Color     *colors.Color
}

// Initiation names the gesture an outer dispatcher asks a squid to arm
// itself for.
type Initiation interface {
	initiation()
}

// InitiateTranslate arms a move gesture.
type InitiateTranslate struct{}

// InitiateRotate arms a rotate gesture.
type InitiateRotate struct{}

// InitiateScale arms a scale gesture, capturing the current size as the
// scale-from reference.
type InitiateScale struct{}

// InitiateSpread arms a spread gesture away from Center, grabbed at Point.
type InitiateSpread struct {
	Point  curve.Point
	Center curve.Point
}

// InitiateRevolve arms a revolve gesture around Center, grabbed at Point.
type InitiateRevolve struct {
	Point  curve.Point
	Center curve.Point
}

// InitiateDilate arms a dilate gesture away from Center, grabbed at Point.
type InitiateDilate struct {
	Point  curve.Point
	Center curve.Point
}

func (InitiateTranslate) initiation() {}
func (InitiateRotate) initiation()    {}
func (InitiateScale) initiation()     {}
func (InitiateSpread) initiation()    {}
func (InitiateRevolve) initiation()   {}
func (InitiateDilate) initiation()    {}

// Squid is the contract every shape implements. Concrete types are *Circle,
// *Rect, and *Tri; renderers and exporters switch on them for geometry.
type Squid interface {
	// Created orders squids by creation. The paired sequence number breaks
	// clock ties, so the order is total.
	Created() (time.Time, uint64)

	Name() string
	SetName(string)

	// Center is the animated world-space center.
	Center() curve.Point
	Color() colors.Color
	SetColor(colors.Color)

	// Interact offers one event to the squid while it is selected.
	Interact(ev interaction.Interaction, cam camera.Camera) interaction.Capture
	IsPointOver(screen curve.Point, cam camera.Camera) bool
	TrySelect(screen curve.Point, cam camera.Camera, self Ref) (NewSelection, bool)

	// SelectionPoints are the screen-space handle markers drawn while
	// selected.
	SelectionPoints(cam camera.Camera) []curve.Point
	// OpaqueHandles are the world-space handles that keep priority over
	// selecting whatever is underneath them.
	OpaqueHandles() []curve.Point

	// Select marks the squid as grabbed for moving.
	Select()
	Initiate(Initiation)

	Translate(worldDelta curve.Vec2, opts interaction.Options)
	Rotate(deltaTheta float64, opts interaction.Options)
	Scale(totalFactor float64, opts interaction.Options)
	Spread(current curve.Point, opts interaction.Options)
	Revolve(current curve.Point, opts interaction.Options)
	Dilate(current curve.Point, opts interaction.Options)

	// TryContextMenu reports the context menu for a right-click, if the
	// click lands on the squid.
	TryContextMenu(screen curve.Point, cam camera.Camera, self Ref) (ContextMenu, bool)

	// Duplicate copies the authoritative snapshot, offset, with animation
	// at rest. The copy gets a fresh identity and no name.
	Duplicate(offset curve.Vec2) Squid

	// Clone copies the squid exactly, identity included, with animation
	// at rest. History snapshots are built from clones.
	Clone() Squid
}

// ContextMenu anchors a right-click menu to the squid it was opened on.
// The menu's entries belong to the outer UI layer.
type ContextMenu struct {
	Target   Ref
	Position curve.Point
}

// SelectionsContain reports whether ref is one of the selected squids.
func SelectionsContain(selections []Selection, ref Ref) bool {
	for _, sel := range selections {
		if sel.Squid == ref {
			return true
		}
	}
	return false
}

var sequence atomic.Uint64

// meta is the identity every shape carries.
type meta struct {
	name    string
	created time.Time
	seq     uint64
}

func newMeta() meta {
	return meta{created: time.Now(), seq: sequence.Add(1)}
}

func (m *meta) Created() (time.Time, uint64) {
	return m.created, m.seq
}

func (m *meta) SetName(name string) {
	m.name = name
}

// identityCamera maps world space to itself, for handle positions that are
// wanted in world coordinates.
var identityCamera = camera.Camera{Zoom: 1}

// rotateHandlePosition places a rotate handle at distance d from position
// along bearing rotation. Positive rotations move the handle
// counter-clockwise on screen, hence the negated y.
func rotateHandlePosition(position curve.Point, rotation, d float64, cam camera.Camera) curve.Point {
	world := position.Translate(curve.Vec(math.Cos(rotation), -math.Sin(rotation)).Mul(d))
	return cam.Apply(world)
}

func withinHandle(screen, handle curve.Point) bool {
	return screen.Distance(handle) <= HandleRadius*2
}
