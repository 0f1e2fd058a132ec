package squid

import (
	"math"

	"github.com/example/squidpad/internal/accum"
	"github.com/example/squidpad/internal/behavior"
	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/smooth"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

// RectData is a rectangle's authoritative geometry snapshot. Size
// components may go negative while a corner is dragged through its
// opposite; Radii rounds the corners.
type RectData struct {
	Position smooth.Pos
	Size     curve.Vec2
	Rotation float64
	Color    colors.Color
	Radii    float64
}

// Lerp blends every field except the color, which jumps.
func (d RectData) Lerp(other RectData, t float64) RectData {
	return RectData{
		Position: d.Position.Lerp(other.Position, t),
		Size:     d.Size.Lerp(other.Size, t),
		Rotation: d.Rotation + (other.Rotation-d.Rotation)*t,
		Color:    other.Color,
		Radii:    d.Radii + (other.Radii-d.Radii)*t,
	}
}

// corner indexes the four corner handles in the order produced by
// relativeCorners.
type corner int

const (
	cornerXY corner = iota
	cornerZeroY
	cornerXZero
	cornerZeroZero
)

func (c corner) opposite() corner {
	switch c {
	case cornerXY:
		return cornerZeroZero
	case cornerZeroY:
		return cornerXZero
	case cornerXZero:
		return cornerZeroY
	default:
		return cornerXY
	}
}

// signs returns which size components flip when this corner leads a scale
// gesture.
func (c corner) signs() curve.Vec2 {
	switch c {
	case cornerZeroZero:
		return curve.Vec(1, 1)
	case cornerXZero:
		return curve.Vec(-1, 1)
	case cornerZeroY:
		return curve.Vec(1, -1)
	default:
		return curve.Vec(-1, -1)
	}
}

// Rect is a squid with a center, an oriented size, and rounded corners.
type Rect struct {
	meta
	data *smooth.Smooth[RectData]

	movingCorner   *corner
	oppositeCorner curve.Point

	translate     behavior.Translate
	rotating      bool
	rotationAccum accum.Scalar
	prescale      curve.Vec2
	spread        behavior.Spread
	revolve       behavior.Revolve
	dilate        behavior.Dilate
}

// NewRect creates a rectangle at rest.
func NewRect(position curve.Point, size curve.Vec2, rotation float64, color colors.Color, radii float64) *Rect {
	return NewRectFromData(RectData{
		Position: smooth.At(position),
		Size:     size,
		Rotation: rotation,
		Color:    color,
		Radii:    math.Abs(radii),
	})
}

// NewRectFromData creates a rectangle from an existing snapshot, with a
// fresh creation time and animation at rest.
func NewRectFromData(data RectData) *Rect {
	return &Rect{
		meta:     newMeta(),
		data:     smooth.New(data, 0),
		prescale: data.Size,
	}
}

func (r *Rect) Name() string {
	if r.meta.name != "" {
		return r.meta.name
	}
	return "Unnamed Rect"
}

// Data returns the authoritative snapshot.
func (r *Rect) Data() RectData {
	return r.data.Real()
}

// AnimatedData returns the eased snapshot for this moment.
func (r *Rect) AnimatedData() RectData {
	return r.data.Animated()
}

func (r *Rect) Center() curve.Point {
	return r.data.Animated().Position.Reveal()
}

func (r *Rect) Color() colors.Color {
	return r.data.Real().Color
}

func (r *Rect) SetColor(color colors.Color) {
	data := r.data.Real()
	data.Color = color
	r.data.Set(data)
}

// RotateHandle is the screen position of the rotate handle, which trails
// the rectangle's width. A negative width parks it on the far side.
func (r *Rect) RotateHandle(cam camera.Camera) curve.Point {
	data := r.data.Animated()
	w := data.Size.X
	d := w*0.5 + rotateHandleMargin*sign(w)
	return rotateHandlePosition(data.Position.Reveal(), data.Rotation, d, cam)
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// RelativeCorners are the four corner offsets from the center, rotated with
// the rectangle, in handle-index order.
func (r *Rect) RelativeCorners() [4]curve.Vec2 {
	data := r.data.Animated()
	var out [4]curve.Vec2
	for i, s := range [4]curve.Vec2{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}} {
		v := curve.Vec(s.X*data.Size.X/2, s.Y*data.Size.Y/2)
		out[i] = geom.Rotate(v, -data.Rotation)
	}
	return out
}

// WorldCorners are the corner positions in world space.
func (r *Rect) WorldCorners() [4]curve.Point {
	position := r.data.Animated().Position.Reveal()
	var out [4]curve.Point
	for i, v := range r.RelativeCorners() {
		out[i] = position.Translate(v)
	}
	return out
}

func (r *Rect) screenCorners(cam camera.Camera) [4]curve.Point {
	corners := r.WorldCorners()
	for i := range corners {
		corners[i] = cam.Apply(corners[i])
	}
	return corners
}

func (r *Rect) IsPointOver(screen curve.Point, cam camera.Camera) bool {
	world := cam.Unapply(screen)
	c := r.WorldCorners()
	return geom.InsideQuad(c[0], c[1], c[2], c[3], world)
}

func (r *Rect) TrySelect(screen curve.Point, cam camera.Camera, self Ref) (NewSelection, bool) {
	if !r.IsPointOver(screen, cam) {
		return NewSelection{}, false
	}
	color := r.data.Real().Color
	return NewSelection{
		Selection: Selection{Squid: self},
		Color:     &color,
	}, true
}

func (r *Rect) SelectionPoints(cam camera.Camera) []curve.Point {
	points := []curve.Point{
		cam.Apply(r.data.Animated().Position.Reveal()),
		r.RotateHandle(cam),
	}
	for _, c := range r.screenCorners(cam) {
		points = append(points, c)
	}
	return points
}

func (r *Rect) OpaqueHandles() []curve.Point {
	handles := make([]curve.Point, 0, 5)
	for _, c := range r.WorldCorners() {
		handles = append(handles, c)
	}
	return append(handles, r.RotateHandle(identityCamera))
}

func (r *Rect) Select() {
	r.translate.Moving = true
}

func (r *Rect) Interact(ev interaction.Interaction, cam camera.Camera) interaction.Capture {
	switch ev := ev.(type) {
	case interaction.PreClick:
		r.translate.Moving = false
		r.rotating = false
		r.movingCorner = nil
	case interaction.Click:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		for i, screenCorner := range r.screenCorners(cam) {
			if withinHandle(ev.Position, screenCorner) {
				grabbed := corner(i)
				r.movingCorner = &grabbed
				r.oppositeCorner = r.WorldCorners()[grabbed.opposite()]
				return interaction.AllowDrag{}
			}
		}
		if withinHandle(ev.Position, r.RotateHandle(cam)) {
			r.rotating = true
			return interaction.AllowDrag{}
		}
		if r.IsPointOver(ev.Position, cam) {
			r.translate.Moving = true
			return interaction.AllowDrag{}
		}
	case interaction.Drag:
		if r.movingCorner != nil {
			fromCenter := ev.Modifiers&key.ModAlt != 0
			r.repositionCorner(fromCenter, ev.Current, cam)
		} else if r.rotating {
			// With a negative width the rotate handle leads the shape's
			// actual angle by pi, so the reported delta compensates.
			var compensation float64
			if r.data.Animated().Size.X < 0 {
				compensation = math.Pi
			}
			real := r.data.Real()
			return interaction.RotateSelected{
				DeltaTheta: compensation + behavior.DeltaRotation(real.Position.Reveal(), real.Rotation, ev.Current, r.rotationAccum.Residue(), cam),
			}
		} else if r.translate.Moving {
			return interaction.MoveSelected{Delta: cam.UnapplyToVector(ev.Delta)}
		}
	case interaction.MouseRelease:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		r.rotating = false
		r.movingCorner = nil
		r.translate.Accumulator.Clear()
		r.rotationAccum.Clear()
	}
	return interaction.Miss{}
}

func (r *Rect) repositionCorner(fromCenter bool, mouse curve.Point, cam camera.Camera) {
	if r.movingCorner == nil {
		return
	}
	real := r.data.Real()
	world := cam.Unapply(mouse)

	if fromCenter {
		abs := geom.Rotate(real.Position.Reveal().Sub(world), real.Rotation).Mul(2)
		signs := r.movingCorner.signs()

		data := real
		data.Size = curve.Vec(abs.X*signs.X, abs.Y*signs.Y)
		r.data.Set(data)
		return
	}

	pivot := r.oppositeCorner
	frame := geom.Rotate(pivot.Sub(world), real.Rotation)
	signs := r.movingCorner.signs()

	data := real
	data.Position = smooth.LinearTo(world.Midpoint(pivot))
	data.Size = curve.Vec(frame.X*signs.X, frame.Y*signs.Y)
	r.data.Set(data)
}

func (r *Rect) Initiate(initiation Initiation) {
	switch init := initiation.(type) {
	case InitiateTranslate:
		r.translate.Moving = true
	case InitiateRotate:
	case InitiateScale:
		r.prescale = r.data.Real().Size
	case InitiateSpread:
		r.spread = behavior.Spread{
			Point:  init.Point,
			Origin: init.Center,
			Start:  r.data.Real().Position.Reveal(),
		}
	case InitiateRevolve:
		r.revolve.Set(init.Center, r.data.Real().Position.Reveal(), init.Point)
	case InitiateDilate:
		r.prescale = r.data.Real().Size
		r.dilate = behavior.Dilate{
			Point:  init.Point,
			Origin: init.Center,
			Start:  r.data.Real().Position.Reveal(),
		}
	}
}

func (r *Rect) Translate(worldDelta curve.Vec2, opts interaction.Options) {
	delta := r.translate.Express(worldDelta, opts)
	if delta == (curve.Vec2{}) {
		return
	}
	data := r.data.Real()
	data.Position = smooth.LinearTo(data.Position.Reveal().Translate(delta))
	r.data.Set(data)
}

func (r *Rect) Rotate(deltaTheta float64, opts interaction.Options) {
	delta, ok := r.rotationAccum.Accumulate(deltaTheta, opts.RotationSnapping)
	if !ok {
		return
	}
	data := r.data.Real()
	data.Rotation += delta
	r.data.Set(data)
}

func (r *Rect) Scale(totalFactor float64, _ interaction.Options) {
	data := r.data.Real()
	data.Size = r.prescale.Mul(totalFactor)
	r.data.Set(data)
}

func (r *Rect) Spread(current curve.Point, _ interaction.Options) {
	data := r.data.Real()
	data.Position = smooth.LinearTo(r.spread.Express(current))
	r.data.Set(data)
}

func (r *Rect) Revolve(current curve.Point, opts interaction.Options) {
	expr, ok := r.revolve.Express(current, opts)
	if !ok {
		return
	}
	data := r.data.Real()
	data.Position = smooth.ArcTo(expr.Center(), expr.Origin)
	data.Rotation += expr.DeltaObjectRotation
	r.data.Set(data)
}

func (r *Rect) Dilate(current curve.Point, _ interaction.Options) {
	expr := r.dilate.Express(current)
	data := r.data.Real()
	data.Position = smooth.LinearTo(expr.Position)
	data.Size = r.prescale.Mul(expr.TotalFactor)
	r.data.Set(data)
}

func (r *Rect) TryContextMenu(screen curve.Point, cam camera.Camera, self Ref) (ContextMenu, bool) {
	if !r.IsPointOver(screen, cam) {
		return ContextMenu{}, false
	}
	return ContextMenu{Target: self, Position: screen}, true
}

func (r *Rect) Duplicate(offset curve.Vec2) Squid {
	data := r.data.Real()
	data.Position = smooth.At(data.Position.Reveal().Translate(offset))
	return NewRectFromData(data)
}

func (r *Rect) Clone() Squid {
	data := r.data.Real()
	data.Position = smooth.At(data.Position.Reveal())
	clone := NewRectFromData(data)
	clone.meta = r.meta
	return clone
}
