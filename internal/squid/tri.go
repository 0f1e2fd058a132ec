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

	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

// TriData is a triangle's authoritative geometry snapshot. P holds the
// vertex offsets from the center; the center itself is kept at the
// centroid by vertex edits.
type TriData struct {
	P        [3]smooth.Pos
	Position smooth.Pos
	Rotation float64
	Color    colors.Color
}

// Lerp blends every field except the color, which jumps.
func (d TriData) Lerp(other TriData, t float64) TriData {
	out := TriData{
		Position: d.Position.Lerp(other.Position, t),
		Rotation: d.Rotation + (other.Rotation-d.Rotation)*t,
		Color:    other.Color,
	}
	for i := range d.P {
		out.P[i] = d.P[i].Lerp(other.P[i], t)
	}
	return out
}

// Tri is a squid with three draggable vertices. Vertex edits fold any
// accumulated rotation into a handle-only virtual rotation so the stored
// vertex offsets stay rotation free.
type Tri struct {
	meta
	data *smooth.Smooth[TriData]

	movingPoint *int

	translate       behavior.Translate
	rotating        bool
	rotationAccum   accum.Scalar
	virtualRotation float64
	prescale        [3]curve.Vec2
	spread          behavior.Spread
	revolve         behavior.Revolve
	dilate          behavior.Dilate
}

// NewTri creates a triangle at rest from three world-space vertices,
// centered on their centroid.
func NewTri(points [3]curve.Point, rotation float64, color colors.Color) *Tri {
	position := geom.TriangleCentroid(points[0], points[1], points[2])
	var p [3]smooth.Pos
	for i, point := range points {
		p[i] = smooth.At(curve.Point(point.Sub(position)))
	}
	return NewTriFromData(TriData{
		P:        p,
		Position: smooth.At(position),
		Rotation: rotation,
		Color:    color,
	})
}

// NewTriFromData creates a triangle from an existing snapshot, with a
// fresh creation time and animation at rest.
func NewTriFromData(data TriData) *Tri {
	tri := &Tri{
		meta: newMeta(),
		data: smooth.New(data, 0),
	}
	for i, p := range data.P {
		tri.prescale[i] = curve.Vec2(p.Reveal())
	}
	return tri
}

func (tr *Tri) Name() string {
	if tr.meta.name != "" {
		return tr.meta.name
	}
	return "Unnamed Tri"
}

// Data returns the authoritative snapshot.
func (tr *Tri) Data() TriData {
	return tr.data.Real()
}

// AnimatedData returns the eased snapshot for this moment.
func (tr *Tri) AnimatedData() TriData {
	return tr.data.Animated()
}

func (tr *Tri) Center() curve.Point {
	return tr.data.Animated().Position.Reveal()
}

func (tr *Tri) Color() colors.Color {
	return tr.data.Real().Color
}

func (tr *Tri) SetColor(color colors.Color) {
	data := tr.data.Real()
	data.Color = color
	tr.data.Set(data)
}

// AnimatedScreenPoints are the three vertices on screen, rotation applied.
func (tr *Tri) AnimatedScreenPoints(cam camera.Camera) [3]curve.Point {
	data := tr.data.Animated()
	position := data.Position.Reveal()
	var out [3]curve.Point
	for i, p := range data.P {
		v := geom.Rotate(curve.Vec2(p.Reveal()), -data.Rotation)
		out[i] = cam.Apply(position.Translate(v))
	}
	return out
}

// RotateHandle is the screen position of the rotate handle, nudged past
// whichever vertex currently points along the handle bearing.
func (tr *Tri) RotateHandle(cam camera.Camera) curve.Point {
	data := tr.data.Animated()
	position := data.Position.Reveal()
	rotation := data.Rotation + tr.virtualRotation

	maxDistance := 0.0
	for _, p := range data.P {
		maxDistance = math.Max(maxDistance, curve.Vec2(p.Reveal()).Hypot())
	}
	firstTry := position.Translate(curve.Vec(math.Cos(rotation), -math.Sin(rotation)).Mul(maxDistance + rotateHandleMargin))

	world := tr.AnimatedScreenPoints(identityCamera)
	trueDistance := geom.DistanceToTriangle(firstTry, world[0], world[1], world[2])
	finalDistance := (maxDistance - trueDistance) + 2*rotateHandleMargin

	return rotateHandlePosition(position, rotation, finalDistance, cam)
}

func (tr *Tri) IsPointOver(screen curve.Point, cam camera.Camera) bool {
	world := cam.Unapply(screen)
	real := tr.data.Real()
	position := real.Position.Reveal()

	var p [3]curve.Point
	for i, point := range real.P {
		p[i] = position.Translate(geom.Rotate(curve.Vec2(point.Reveal()), -real.Rotation))
	}
	return geom.InsideTriangle(world, p[0], p[1], p[2])
}

func (tr *Tri) TrySelect(screen curve.Point, cam camera.Camera, self Ref) (NewSelection, bool) {
	if !tr.IsPointOver(screen, cam) {
		return NewSelection{}, false
	}
	color := tr.data.Real().Color
	return NewSelection{
		Selection: Selection{Squid: self},
		Color:     &color,
	}, true
}

func (tr *Tri) SelectionPoints(cam camera.Camera) []curve.Point {
	points := []curve.Point{
		cam.Apply(tr.data.Animated().Position.Reveal()),
		tr.RotateHandle(cam),
	}
	for _, p := range tr.AnimatedScreenPoints(cam) {
		points = append(points, p)
	}
	return points
}

func (tr *Tri) OpaqueHandles() []curve.Point {
	data := tr.data.Animated()
	position := data.Position.Reveal()

	handles := make([]curve.Point, 0, 4)
	for _, p := range data.P {
		handles = append(handles, position.Translate(curve.Vec2(p.Reveal())))
	}
	return append(handles, tr.RotateHandle(identityCamera))
}

func (tr *Tri) Select() {
	tr.translate.Moving = true
}

func (tr *Tri) Interact(ev interaction.Interaction, cam camera.Camera) interaction.Capture {
	switch ev := ev.(type) {
	case interaction.PreClick:
		tr.translate.Moving = false
		tr.rotating = false
		tr.movingPoint = nil
	case interaction.Click:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		for i, vertex := range tr.AnimatedScreenPoints(cam) {
			if withinHandle(ev.Position, vertex) {
				grabbed := i
				tr.movingPoint = &grabbed
				return interaction.AllowDrag{}
			}
		}
		if withinHandle(ev.Position, tr.RotateHandle(cam)) {
			tr.rotating = true
			return interaction.AllowDrag{}
		}
		if tr.IsPointOver(ev.Position, cam) {
			tr.translate.Moving = true
			return interaction.AllowDrag{}
		}
	case interaction.Drag:
		if tr.movingPoint != nil {
			tr.repositionPoint(ev.Current, cam)
		} else if tr.rotating {
			real := tr.data.Real()
			return interaction.RotateSelected{
				DeltaTheta: behavior.DeltaRotation(real.Position.Reveal(), real.Rotation+tr.virtualRotation, ev.Current, tr.rotationAccum.Residue(), cam),
			}
		} else if tr.translate.Moving {
			return interaction.MoveSelected{Delta: cam.UnapplyToVector(ev.Delta)}
		}
	case interaction.MouseRelease:
		if ev.Button != mouse.ButtonLeft {
			break
		}
		tr.rotating = false
		tr.movingPoint = nil
		tr.translate.Accumulator.Clear()
		tr.rotationAccum.Clear()
	}
	return interaction.Miss{}
}

// repositionPoint moves the grabbed vertex to the mouse, re-centers the
// triangle on its new centroid, and folds the accumulated rotation into the
// handle-only virtual rotation. Both animation endpoints are overwritten so
// zeroing the rotation cannot animate the long way around.
func (tr *Tri) repositionPoint(mouse curve.Point, cam camera.Camera) {
	if tr.movingPoint == nil {
		return
	}
	real := tr.data.Real()
	position := real.Position.Reveal()

	var p [3]curve.Vec2
	for i, point := range real.P {
		p[i] = geom.Rotate(curve.Vec2(point.Reveal()), -real.Rotation)
	}

	world := cam.Unapply(mouse)
	p[*tr.movingPoint] = world.Sub(position)

	deltaCenter := curve.Vec2(geom.TriangleCentroid(
		curve.Point(p[0]),
		curve.Point(p[1]),
		curve.Point(p[2]),
	))
	newPosition := position.Translate(deltaCenter)
	for i := range p {
		p[i] = p[i].Sub(deltaCenter)
	}

	tr.virtualRotation += real.Rotation

	tr.data.MutateBoth(func(data *TriData) {
		for i := range p {
			data.P[i] = smooth.LinearTo(curve.Point(p[i]))
		}
		data.Position = smooth.LinearTo(newPosition)
		data.Rotation = 0
	})
}

func (tr *Tri) Initiate(initiation Initiation) {
	switch init := initiation.(type) {
	case InitiateTranslate:
		tr.translate.Moving = true
		tr.movingPoint = nil
	case InitiateRotate:
	case InitiateScale:
		real := tr.data.Real()
		for i, p := range real.P {
			tr.prescale[i] = curve.Vec2(p.Reveal())
		}
	case InitiateSpread:
		tr.spread = behavior.Spread{
			Point:  init.Point,
			Origin: init.Center,
			Start:  tr.data.Real().Position.Reveal(),
		}
	case InitiateRevolve:
		tr.revolve.Set(init.Center, tr.data.Real().Position.Reveal(), init.Point)
	case InitiateDilate:
		real := tr.data.Real()
		for i, p := range real.P {
			tr.prescale[i] = curve.Vec2(p.Reveal())
		}
		tr.dilate = behavior.Dilate{
			Point:  init.Point,
			Origin: init.Center,
			Start:  real.Position.Reveal(),
		}
	}
}

func (tr *Tri) Translate(worldDelta curve.Vec2, opts interaction.Options) {
	delta := tr.translate.Express(worldDelta, opts)
	if delta == (curve.Vec2{}) {
		return
	}
	data := tr.data.Real()
	data.Position = smooth.LinearTo(data.Position.Reveal().Translate(delta))
	tr.data.Set(data)
}

func (tr *Tri) Rotate(deltaTheta float64, opts interaction.Options) {
	delta, ok := tr.rotationAccum.Accumulate(deltaTheta, opts.RotationSnapping)
	if !ok {
		return
	}
	data := tr.data.Real()
	data.Rotation += delta
	tr.data.Set(data)
}

func (tr *Tri) Scale(totalFactor float64, _ interaction.Options) {
	data := tr.data.Real()
	for i, axis := range tr.prescale {
		data.P[i] = smooth.LinearTo(curve.Point(axis.Mul(totalFactor)))
	}
	tr.data.Set(data)
}

func (tr *Tri) Spread(current curve.Point, _ interaction.Options) {
	data := tr.data.Real()
	data.Position = smooth.LinearTo(tr.spread.Express(current))
	tr.data.Set(data)
}

func (tr *Tri) Revolve(current curve.Point, opts interaction.Options) {
	expr, ok := tr.revolve.Express(current, opts)
	if !ok {
		return
	}
	data := tr.data.Real()
	data.Position = smooth.ArcTo(expr.Center(), expr.Origin)
	data.Rotation += expr.DeltaObjectRotation
	tr.data.Set(data)
}

func (tr *Tri) Dilate(current curve.Point, _ interaction.Options) {
	expr := tr.dilate.Express(current)
	data := tr.data.Real()
	data.Position = smooth.LinearTo(expr.Position)
	for i, axis := range tr.prescale {
		data.P[i] = smooth.LinearTo(curve.Point(axis.Mul(expr.TotalFactor)))
	}
	tr.data.Set(data)
}

func (tr *Tri) TryContextMenu(screen curve.Point, cam camera.Camera, self Ref) (ContextMenu, bool) {
	if !tr.IsPointOver(screen, cam) {
		return ContextMenu{}, false
	}
	return ContextMenu{Target: self, Position: screen}, true
}

func (tr *Tri) Duplicate(offset curve.Vec2) Squid {
	data := tr.data.Real()
	data.Position = smooth.At(data.Position.Reveal().Translate(offset))
	for i, p := range data.P {
		data.P[i] = smooth.At(p.Reveal())
	}
	return NewTriFromData(data)
}

func (tr *Tri) Clone() Squid {
	data := tr.data.Real()
	data.Position = smooth.At(data.Position.Reveal())
	for i, p := range data.P {
		data.P[i] = smooth.At(p.Reveal())
	}
	clone := NewTriFromData(data)
	clone.meta = tr.meta
	return clone
}
