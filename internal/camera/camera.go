// Package camera maps between world space and screen space. The camera is a
// plain value; animated panning and zooming comes from storing it inside a
// smooth.Smooth and re-targeting it.
package camera

import (
	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/smooth"

	"honnef.co/go/curve"
)

// Camera describes a viewport: a world-space focus position, a zoom factor,
// and the window size in pixels.
type Camera struct {
	Position curve.Point
	Zoom     float64
	Window   curve.Vec2
}

// Identity returns a camera at the world origin with no zoom applied.
func Identity(window curve.Vec2) Camera {
	return Camera{Zoom: 1, Window: window}
}

// Apply maps a world-space point to screen space. Zooming is anchored at
// the window center.
func (c Camera) Apply(p curve.Point) curve.Point {
	v := p.Sub(c.Position).Mul(c.Zoom)
	return curve.Point{
		X: v.X + 0.5*c.Window.X*(1-c.Zoom),
		Y: v.Y + 0.5*c.Window.Y*(1-c.Zoom),
	}
}

// Unapply maps a screen-space point back to world space.
func (c Camera) Unapply(p curve.Point) curve.Point {
	x := geom.DivOrZero(p.X-0.5*c.Window.X*(1-c.Zoom), c.Zoom)
	y := geom.DivOrZero(p.Y-0.5*c.Window.Y*(1-c.Zoom), c.Zoom)
	return curve.Pt(x+c.Position.X, y+c.Position.Y)
}

// ApplyToVector maps a world-space direction to screen space. Translations
// do not apply to directions, only the zoom does.
func (c Camera) ApplyToVector(v curve.Vec2) curve.Vec2 {
	return v.Mul(c.Zoom)
}

// UnapplyToVector maps a screen-space direction back to world space.
func (c Camera) UnapplyToVector(v curve.Vec2) curve.Vec2 {
	return curve.Vec(geom.DivOrZero(v.X, c.Zoom), geom.DivOrZero(v.Y, c.Zoom))
}

// ApplyToScale maps a world-space size or distance to screen space.
func (c Camera) ApplyToScale(s float64) float64 {
	return s * c.Zoom
}

// UnapplyToScale maps a screen-space size or distance back to world space.
func (c Camera) UnapplyToScale(s float64) float64 {
	return geom.DivOrZero(s, c.Zoom)
}

// WithPosition returns a copy of the camera focused at position.
func (c Camera) WithPosition(position curve.Point) Camera {
	c.Position = position
	return c
}

// WithZoom returns a copy of the camera at the given zoom.
func (c Camera) WithZoom(zoom float64) Camera {
	c.Zoom = zoom
	return c
}

// View returns the world-space rectangle the camera covers, as its top-left
// and bottom-right corners.
func (c Camera) View() (curve.Point, curve.Point) {
	half := c.Window.Mul(0.5 / c.Zoom)
	return c.Position.Translate(half.Negate()), c.Position.Translate(half)
}

// ViewToComponents inverts View: given the window size and a world-space
// view rectangle, it recovers the camera position and zoom. The zoom is
// taken from the horizontal extent alone.
func ViewToComponents(window curve.Vec2, topLeft, bottomRight curve.Point) (curve.Point, float64) {
	size := bottomRight.Sub(topLeft)
	position := topLeft.Translate(size.Mul(0.5))
	zoom := geom.DivOrZero(window.X, size.X)
	return position, zoom
}

// Lerp interpolates position and zoom; the window size always jumps to the
// destination's.
func (c Camera) Lerp(other Camera, t float64) Camera {
	return Camera{
		Position: c.Position.Lerp(other.Position, t),
		Zoom:     c.Zoom + (other.Zoom-c.Zoom)*t,
		Window:   other.Window,
	}
}

// SetLocation re-targets a smoothed camera's position, keeping the
// animation based at whatever is on screen.
func SetLocation(s *smooth.Smooth[Camera], location curve.Point) {
	s.Set(s.Animated().WithPosition(location))
}

// ZoomFactor multiplies a smoothed camera's zoom, anchored at the camera's
// focus position.
func ZoomFactor(s *smooth.Smooth[Camera], factor float64) {
	ZoomPoint(s, factor, s.Real().Position)
}

// ZoomPoint multiplies a smoothed camera's zoom while keeping the given
// world-space point fixed on screen.
func ZoomPoint(s *smooth.Smooth[Camera], factor float64, point curve.Point) {
	cam := s.Real()
	topLeft, bottomRight := cam.View()
	size := bottomRight.Sub(topLeft)

	rx := geom.DivOrZero(point.X-topLeft.X, size.X)
	ry := geom.DivOrZero(point.Y-topLeft.Y, size.Y)

	newSize := size.Mul(1 / factor)
	newTopLeft := curve.Pt(point.X-rx*newSize.X, point.Y-ry*newSize.Y)
	newBottomRight := newTopLeft.Translate(newSize)

	position, zoom := ViewToComponents(cam.Window, newTopLeft, newBottomRight)
	s.Set(Camera{Position: position, Zoom: zoom, Window: cam.Window})
}

// ZoomStep is the per-keypress zoom multiplier.
const ZoomStep = 1.2

// ZoomIn steps a smoothed camera's zoom up by one notch.
func ZoomIn(s *smooth.Smooth[Camera]) {
	ZoomFactor(s, ZoomStep)
}

// ZoomOut steps a smoothed camera's zoom down by one notch.
func ZoomOut(s *smooth.Smooth[Camera]) {
	ZoomFactor(s, 1/ZoomStep)
}
