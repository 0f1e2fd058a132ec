// Package accum buffers sub-threshold gesture deltas and emits only
// threshold-aligned increments, so drags can snap to grid spacings or
// rotation steps without losing the fractional remainder between events.
package accum

import (
	"math"

	"honnef.co/go/curve"
)

// quantize rounds sum to the nearest multiple of threshold, rounding halves
// away from the accumulated direction's floor (the +0.5*threshold then
// floor-division rule).
func quantize(sum, threshold float64) float64 {
	return math.Floor((sum+0.5*threshold)/threshold) * threshold
}

// Scalar accumulates float64 deltas. The zero value is ready to use. It is
// used for rotation angles and any other one-dimensional snapped quantity.
type Scalar struct {
	residue float64
}

// Accumulate adds delta to the running residue and reports the
// threshold-aligned amount to apply now, if any.
//
// With threshold > 0 the emitted value is always an exact multiple of
// threshold and the retained residue stays strictly below threshold in
// magnitude. A zero-valued emission is suppressed (ok == false) and leaves
// the residue to keep growing. With threshold <= 0 snapping is disabled and
// every delta passes through verbatim.
func (a *Scalar) Accumulate(delta, threshold float64) (float64, bool) {
	a.residue += delta

	var emit float64
	if threshold > 0 {
		emit = quantize(a.residue, threshold)
	} else {
		emit = delta
	}

	if emit == 0 {
		return 0, false
	}
	a.residue -= emit
	return emit, true
}

// Clear discards any buffered residue.
func (a *Scalar) Clear() {
	a.residue = 0
}

// Residue returns the buffered, not-yet-emitted remainder.
func (a *Scalar) Residue() float64 {
	return a.residue
}

// Vec accumulates 2D vector deltas, quantizing each axis independently
// against the same threshold. The zero value is ready to use.
type Vec struct {
	residue curve.Vec2
}

// Accumulate behaves like Scalar.Accumulate per axis. The emission is
// suppressed only when both axes round to zero.
func (a *Vec) Accumulate(delta curve.Vec2, threshold float64) (curve.Vec2, bool) {
	a.residue = a.residue.Add(delta)

	var emit curve.Vec2
	if threshold > 0 {
		emit = curve.Vec2{
			X: quantize(a.residue.X, threshold),
			Y: quantize(a.residue.Y, threshold),
		}
	} else {
		emit = delta
	}

	if emit == (curve.Vec2{}) {
		return curve.Vec2{}, false
	}
	a.residue = a.residue.Sub(emit)
	return emit, true
}

// Clear discards any buffered residue.
func (a *Vec) Clear() {
	a.residue = curve.Vec2{}
}

// Residue returns the buffered, not-yet-emitted remainder.
func (a *Vec) Residue() curve.Vec2 {
	return a.residue
}
