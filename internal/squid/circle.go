package squid

import (
	"github.com/example/squidpad/internal/accum"
	"github.com/example/squidpad/internal/behavior"
	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/smooth"

	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

// CircleData is a circle's authoritative geometry snapshot. VirtualRotation
// only moves the rotate handle; the circle itself is rotation invariant.
type CircleData struct {
	Position        smooth.Pos
	Radius          float64
	Color           colors.Color
	VirtualRotation float64
}

// Lerp blends every field except the color, which jumps.
func (d CircleData) Lerp(other CircleData, t float64) CircleData {
	return CircleData{
		Position:        d.Position.Lerp(other.Position, t),
		Radius:          d.Radius + (other.Radius-d.Radius)*t,
		Color:           other.Color,
		VirtualRotation: d.VirtualRotation + (other.VirtualRotation-d.VirtualRotation)*t,
	}
}

// Circle is a squid with a center and a radius. Dragging its rotate handle
// re-radii-es and virtually rotates it in a single combined gesture.
type Circle struct {
	meta
	data *smooth.Smooth[CircleData]

	translate     behavior.Translate
	rotationAccum accum.Scalar
	scaleRotating bool
	prescale      float64
	spread        behavior.Spread
	revolve       behavior.Revolve
	dilate        behavior.Dilate
}

// NewCircle creates a circle at rest.
func NewCircle(position curve.Point, radius float64, color colors.Color) *Circle {
	return NewCircleFromData(CircleData{
		Position: smooth.At(position),
		Radius:   radius,
		Color:    color,
	})
}

// NewCircleFromData creates a circle from an existing snapshot, with a
// fresh creation time and animation at rest.
func NewCircleFromData(data CircleData) *Circle {
	return &Circle{
		meta:     newMeta(),
		data:     smooth.New(data, 0),
		prescale: data.Radius,
	}
}

func (c *Circle) Name() string {
	if c.meta.name != "" {
		return c.meta.name
	}
	return "Unnamed Circle"
}

// Data returns the authoritative snapshot.
func (c *Circle) Data() CircleData {
	return c.data.Real()
}

// AnimatedData returns the eased snapshot for this moment.
func (c *Circle) AnimatedData() CircleData {
	return c.data.Animated()
}

func (c *Circle) Center() curve.Point {
	return c.data.Animated().Position.Reveal()
}

func (c *Circle) Color() colors.Color {
	return c.data.Real().Color
}

func (c *Circle) SetColor(color colors.Color) {
	data := c.data.Real()
	data.Color = color
	c.data.Set(data)
}

// RotateHandle is the screen position of the combined scale/rotate handle.
func (c *Circle) RotateHandle(cam camera.Camera) curve.Point {
	data := c.data.Animated()
	return rotateHandlePosition(data.Position.Reveal(), data.VirtualRotation, data.Radius, cam)
}

func (c *Circle) IsPointOver(screen curve.Point, cam camera.Camera) bool {
	real := c.data.Real()
	world := cam.Unapply(screen)
	return real.Position.Reveal().Distance(world) < real.Radius
}

func (c *Circle) TrySelect(screen curve.Point, cam camera.Camera, self Ref) (NewSelection, bool) {
	if !c.IsPointOver(screen, cam) {
		return NewSelection{}, false
	}
	color := c.data.Real().Color
	return NewSelection{
		Selection: Selection{Squid: self},
		Color:     &color,
	}, true
}

func (c *Circle) SelectionPoints(cam camera.Camera) []curve.Point {
	return []curve.Point{
		cam.Apply(c.data.Animated().Position.Reveal()),
		c.RotateHandle(cam),
	}
}

func (c *Circle) OpaqueHandles() []curve.Point {
	return []curve.Point{c.RotateHandle(identityCamera)}
}

func (c *Circle) Select() {
	c.translate.Moving = true
}

func (c *Circle) Interact(ev interaction.Interaction, cam camera.Camera) interaction.Capture {
	switch ev := ev.(type) {
	case interaction.PreClick:
		c.translate.Moving = false
		c.scaleRotating = false
	case interaction.Click:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		if withinHandle(ev.Position, c.RotateHandle(cam)) {
			c.scaleRotating = true
			return interaction.AllowDrag{}
		}
		if c.IsPointOver(ev.Position, cam) {
			c.translate.Moving = true
			return interaction.AllowDrag{}
		}
	case interaction.Drag:
		if c.scaleRotating {
			// Scaling and rotating at once is particular to this circle,
			// so it never becomes a batch capture.
			c.repositionRadius(ev.Current, cam)
		} else if c.translate.Moving {
			return interaction.MoveSelected{Delta: cam.UnapplyToVector(ev.Delta)}
		}
	case interaction.MouseRelease:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		c.scaleRotating = false
		c.translate.Accumulator.Clear()
		c.rotationAccum.Clear()
	}
	return interaction.Miss{}
}

func (c *Circle) repositionRadius(mouse curve.Point, cam camera.Camera) {
	real := c.data.Real()
	target := cam.Unapply(mouse)

	data := real
	data.VirtualRotation += behavior.DeltaRotation(real.Position.Reveal(), real.VirtualRotation, mouse, c.rotationAccum.Residue(), cam)
	data.Radius = real.Position.Reveal().Distance(target)
	c.data.Set(data)
}

func (c *Circle) Initiate(initiation Initiation) {
	switch init := initiation.(type) {
	case InitiateTranslate:
		c.translate.Moving = true
	case InitiateRotate:
	case InitiateScale:
		c.prescale = c.data.Real().Radius
	case InitiateSpread:
		c.spread = behavior.Spread{
			Point:  init.Point,
			Origin: init.Center,
			Start:  c.data.Real().Position.Reveal(),
		}
	case InitiateRevolve:
		c.revolve.Set(init.Center, c.data.Real().Position.Reveal(), init.Point)
	case InitiateDilate:
		c.prescale = c.data.Real().Radius
		c.dilate = behavior.Dilate{
			Point:  init.Point,
			Origin: init.Center,
			Start:  c.data.Real().Position.Reveal(),
		}
	}
}

func (c *Circle) Translate(worldDelta curve.Vec2, opts interaction.Options) {
	delta := c.translate.Express(worldDelta, opts)
	if delta == (curve.Vec2{}) {
		return
	}
	data := c.data.Real()
	data.Position = smooth.LinearTo(data.Position.Reveal().Translate(delta))
	c.data.Set(data)
}

func (c *Circle) Rotate(deltaTheta float64, opts interaction.Options) {
	delta, ok := c.rotationAccum.Accumulate(deltaTheta, opts.RotationSnapping)
	if !ok {
		return
	}
	data := c.data.Real()
	data.VirtualRotation += delta
	c.data.Set(data)
}

func (c *Circle) Scale(totalFactor float64, _ interaction.Options) {
	data := c.data.Real()
	data.Radius = c.prescale * totalFactor
	c.data.Set(data)
}

func (c *Circle) Spread(current curve.Point, _ interaction.Options) {
	data := c.data.Real()
	data.Position = smooth.LinearTo(c.spread.Express(current))
	c.data.Set(data)
}

func (c *Circle) Revolve(current curve.Point, opts interaction.Options) {
	expr, ok := c.revolve.Express(current, opts)
	if !ok {
		return
	}
	data := c.data.Real()
	data.Position = smooth.ArcTo(expr.Center(), expr.Origin)
	data.VirtualRotation += expr.DeltaObjectRotation
	c.data.Set(data)
}

func (c *Circle) Dilate(current curve.Point, _ interaction.Options) {
	expr := c.dilate.Express(current)
	data := c.data.Real()
	data.Position = smooth.LinearTo(expr.Position)
	data.Radius = c.prescale * expr.TotalFactor
	c.data.Set(data)
}

func (c *Circle) TryContextMenu(screen curve.Point, cam camera.Camera, self Ref) (ContextMenu, bool) {
	if !c.IsPointOver(screen, cam) {
		return ContextMenu{}, false
	}
	return ContextMenu{Target: self, Position: screen}, true
}

func (c *Circle) Duplicate(offset curve.Vec2) Squid {
	data := c.data.Real()
	data.Position = smooth.At(data.Position.Reveal().Translate(offset))
	return NewCircleFromData(data)
}

func (c *Circle) Clone() Squid {
	data := c.data.Real()
	data.Position = smooth.At(data.Position.Reveal())
	clone := NewCircleFromData(data)
	clone.meta = c.meta
	return clone
}
