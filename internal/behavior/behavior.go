// Package behavior holds the gesture state machines shared by every shape:
// translating, rotating about the own center, and the three origin-relative
// gestures spread, revolve, and dilate. Shapes embed these and feed them
// cursor positions; the behaviors answer with deltas or absolute placements.
package behavior

import (
	"math"

	"github.com/example/squidpad/internal/accum"
	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/interaction"

	"honnef.co/go/curve"
)

// Translate accumulates raw drag deltas and releases them in grid-snapped
// steps.
type Translate struct {
	Moving      bool
	Accumulator accum.Vec
}

// Express feeds a raw world-space drag delta through the accumulator and
// returns the snapped movement to apply, which is zero while the
// accumulator is still below the snapping step.
func (t *Translate) Express(rawDelta curve.Vec2, options interaction.Options) curve.Vec2 {
	delta, ok := t.Accumulator.Accumulate(rawDelta, options.TranslationSnapping)
	if !ok {
		return curve.Vec2{}
	}
	return delta
}

// DeltaRotation answers how far a shape should rotate so that its rotate
// handle points at the mouse. The shape's center is in world space, the
// mouse in screen space. Screen space grows downward, so the on-screen
// bearing is negated to recover the counter-clockwise rotation.
func DeltaRotation(center curve.Point, existingRotation float64, mouse curve.Point, rotationResidue float64, cam camera.Camera) float64 {
	screenCenter := cam.Apply(center)

	oldRotation := existingRotation + rotationResidue
	newRotation := -math.Atan2(mouse.Y-screenCenter.Y, mouse.X-screenCenter.X)

	return geom.AngleDifference(oldRotation, newRotation)
}

// Spread pushes a shape along the ray from a gesture origin through the
// shape's start position. The cursor's distance from the origin, relative
// to where the grab began, scales the shape's distance along that ray.
type Spread struct {
	Origin curve.Point
	Start  curve.Point
	Point  curve.Point
}

// Express returns the shape's new absolute position for the given cursor
// position.
func (s *Spread) Express(current curve.Point) curve.Point {
	angle := math.Atan2(s.Start.Y-s.Origin.Y, s.Start.X-s.Origin.X)
	factor := geom.DivOrZero(current.Distance(s.Origin), s.Point.Distance(s.Origin))
	newDistance := factor * s.Start.Distance(s.Origin)
	return s.Origin.Translate(curve.Vec(math.Cos(angle), math.Sin(angle)).Mul(newDistance))
}

// Dilate is Spread plus a uniform scale: the shape both moves along the ray
// and grows or shrinks by the same factor.
type Dilate struct {
	Origin curve.Point
	Start  curve.Point
	Point  curve.Point
}

// DilateExpression is the outcome of a dilate step.
type DilateExpression struct {
	Position    curve.Point
	TotalFactor float64
}

// Express returns the shape's new absolute position and the total scale
// factor for the given cursor position.
func (d *Dilate) Express(current curve.Point) DilateExpression {
	angle := math.Atan2(d.Start.Y-d.Origin.Y, d.Start.X-d.Origin.X)
	factor := geom.DivOrZero(current.Distance(d.Origin), d.Point.Distance(d.Origin))
	newDistance := factor * d.Start.Distance(d.Origin)
	return DilateExpression{
		Position:    d.Origin.Translate(curve.Vec(math.Cos(angle), math.Sin(angle)).Mul(newDistance)),
		TotalFactor: factor,
	}
}

// Revolve orbits a shape around a gesture origin, tracking how far the
// cursor has swung around it, with the rotation snapped through an
// accumulator.
type Revolve struct {
	revolving   bool
	origin      curve.Point
	start       curve.Point
	point       curve.Point
	accumulator accum.Scalar
	rotation    float64
}

// RevolveExpression is the outcome of a revolve step.
type RevolveExpression struct {
	OriginRotation      float64
	Origin              curve.Point
	Start               curve.Point
	DeltaObjectRotation float64
}

// Center returns where the shape's center lands after rotating the start
// position around the origin by the accumulated amount. Positive rotations
// are counter-clockwise, so the bearing decreases.
func (e RevolveExpression) Center() curve.Point {
	distance := e.Origin.Distance(e.Start)
	objectAngle := e.Start.Sub(e.Origin).Angle() - e.OriginRotation
	return e.Origin.Translate(curve.Vec(math.Cos(objectAngle), math.Sin(objectAngle)).Mul(distance))
}

// Set arms the behavior for a new gesture: origin to orbit, the shape's
// start position, and the cursor position the grab began at.
func (r *Revolve) Set(origin, start, point curve.Point) {
	r.accumulator.Clear()
	r.origin = origin
	r.start = start
	r.point = point
	r.revolving = true
	r.rotation = 0
}

// Unset disarms the behavior; Express returns nothing until the next Set.
func (r *Revolve) Unset() {
	r.revolving = false
}

// Express advances the orbit for the given cursor position. It returns
// false while the behavior is disarmed.
func (r *Revolve) Express(current curve.Point, options interaction.Options) (RevolveExpression, bool) {
	if !r.revolving {
		return RevolveExpression{}, false
	}

	mu0 := r.point.Sub(r.origin).Angle()
	mu1 := current.Sub(r.origin).Angle()
	totalDelta := mu0 - mu1

	raw := geom.AngleDifference(r.rotation+r.accumulator.Residue(), totalDelta)
	delta, ok := r.accumulator.Accumulate(raw, options.RotationSnapping)
	if !ok {
		delta = 0
	}

	r.rotation += delta

	return RevolveExpression{
		OriginRotation:      r.rotation,
		Origin:              r.origin,
		Start:               r.start,
		DeltaObjectRotation: delta,
	}, true
}
