package smooth

import (
	"math"

	"honnef.co/go/curve"
)

// PathMode selects how a Pos travels from its previous position to the next
// one when animated.
type PathMode int

const (
	// FromRest places the value immediately, with no travel. It is also the
	// mode every animation step resolves to, so a freshly computed blend
	// never re-animates.
	FromRest PathMode = iota
	// Linear travels in a straight line.
	Linear
	// Arc travels along the circle centered at Origin that the previous
	// position lies on. Both endpoints are assumed to sit roughly on that
	// circle.
	Arc
)

// Pos is a point paired with the path it should take when animated toward.
// It implements Lerper so it can live inside a Smooth.
type Pos struct {
	Point  curve.Point
	Mode   PathMode
	Origin curve.Point
}

// At returns a Pos that appears at p without traveling.
func At(p curve.Point) Pos {
	return Pos{Point: p, Mode: FromRest}
}

// LinearTo returns a Pos that travels to p in a straight line.
func LinearTo(p curve.Point) Pos {
	return Pos{Point: p, Mode: Linear}
}

// ArcTo returns a Pos that travels to p along the circle centered at origin.
func ArcTo(p, origin curve.Point) Pos {
	return Pos{Point: p, Mode: Arc, Origin: origin}
}

// Reveal returns the carried point regardless of mode.
func (p Pos) Reveal() curve.Point {
	return p.Point
}

// Lerp blends from p toward other by t. The travel path is chosen by the
// destination's mode; the result is always at rest.
func (p Pos) Lerp(other Pos, t float64) Pos {
	switch other.Mode {
	case Linear:
		return At(p.Reveal().Lerp(other.Point, t))
	case Arc:
		return At(arcLerp(p.Reveal(), other.Point, other.Origin, t))
	default:
		return At(other.Point)
	}
}

func arcLerp(from, to, origin curve.Point, t float64) curve.Point {
	radius := from.Sub(origin).Hypot()
	alpha := bearing(from.Sub(origin))
	beta := bearing(to.Sub(origin))
	// Travel the short way around, never the long way.
	diff := math.Mod(beta-alpha+3*math.Pi, 2*math.Pi) - math.Pi
	angle := alpha + diff*t
	return origin.Translate(curve.Vec(math.Cos(angle), math.Sin(angle)).Mul(radius))
}

func bearing(v curve.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// Float is a float64 with a Lerp method so plain scalars (angles, radii,
// side lengths) can live inside a Smooth.
type Float float64

func (f Float) Lerp(other Float, t float64) Float {
	return f + (other-f)*Float(t)
}
