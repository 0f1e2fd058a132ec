package interaction

import "honnef.co/go/curve"

// Capture is an element's verdict on an event. Miss lets the event continue
// to lower-priority elements; every other verdict claims it.
type Capture interface {
	capture()
	// Claimed reports whether the event was consumed.
	Claimed() bool
}

// Miss declines the event.
type Miss struct{}

// AllowDrag claims the event and asks for a drag gesture to begin.
type AllowDrag struct{}

// NoDrag claims the event and suppresses any drag gesture.
type NoDrag struct{}

// TakeFocus claims the event and requests keyboard focus.
type TakeFocus struct{}

// MoveSelected asks for every selected shape to be moved by a world-space
// delta.
type MoveSelected struct {
	Delta curve.Vec2
}

// RotateSelected asks for every selected shape to be rotated in place.
type RotateSelected struct {
	DeltaTheta float64
}

// ScaleSelected asks for every selected shape to be scaled in place.
type ScaleSelected struct {
	TotalFactor float64
}

// SpreadSelected asks for every selected shape to be pushed away from or
// pulled toward the gesture origin, tracking the cursor.
type SpreadSelected struct {
	Current curve.Point
}

// RevolveSelected asks for every selected shape to orbit the gesture
// origin, tracking the cursor.
type RevolveSelected struct {
	Current curve.Point
}

// DilateSelected asks for every selected shape to be spread and scaled
// together, tracking the cursor.
type DilateSelected struct {
	Current curve.Point
}

func (Miss) capture()           {}
func (AllowDrag) capture()      {}
func (NoDrag) capture()         {}
func (TakeFocus) capture()      {}
func (MoveSelected) capture()   {}
func (RotateSelected) capture() {}
func (ScaleSelected) capture()  {}
func (SpreadSelected) capture() {}
func (RevolveSelected) capture() {}
func (DilateSelected) capture() {}

func (Miss) Claimed() bool           { return false }
func (AllowDrag) Claimed() bool      { return true }
func (NoDrag) Claimed() bool         { return true }
func (TakeFocus) Claimed() bool      { return true }
func (MoveSelected) Claimed() bool   { return true }
func (RotateSelected) Claimed() bool { return true }
func (ScaleSelected) Claimed() bool  { return true }
func (SpreadSelected) Claimed() bool { return true }
func (RevolveSelected) Claimed() bool { return true }
func (DilateSelected) Claimed() bool  { return true }

// Handler is anything that can respond to an event.
type Handler func(Interaction) Capture

// First asks each handler in order and returns the first verdict that
// claims the event. Handlers after the claiming one are never invoked.
func First(event Interaction, handlers ...Handler) Capture {
	for _, h := range handlers {
		if c := h(event); c.Claimed() {
			return c
		}
	}
	return Miss{}
}
