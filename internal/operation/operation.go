// Package operation names the keyboard-initiated transform a drag is
// currently feeding. An operation lives on the editor from initiation
// until the drag stops.
package operation

import "honnef.co/go/curve"

// Operation is one of *Rotate, *Scale, *Spread, *Revolve, *Dilate.
type Operation interface {
	operation()
}

// Rotate turns the selection to follow the mouse bearing around Point,
// which is in screen space. Rotation tracks the accumulated bearing so
// each drag step yields only the change.
type Rotate struct {
	Point    curve.Point
	Rotation float64
}

// Scale grows the selection by the ratio of the mouse's distance from
// Origin to the initial grab distance. Both points are in world space.
type Scale struct {
	Point  curve.Point
	Origin curve.Point
}

// Spread pushes each selected squid away from Origin.
type Spread struct {
	Point  curve.Point
	Origin curve.Point
}

// Revolve orbits each selected squid around Origin.
type Revolve struct {
	Point  curve.Point
	Origin curve.Point
}

// Dilate scales each selected squid and its distance to Origin together.
type Dilate struct {
	Point  curve.Point
	Origin curve.Point
}

func (*Rotate) operation()  {}
func (*Scale) operation()   {}
func (*Spread) operation()  {}
func (*Revolve) operation() {}
func (*Dilate) operation()  {}
