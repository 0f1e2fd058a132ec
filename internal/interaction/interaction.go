// Package interaction defines the events fed into interactive elements and
// the capture verdicts they answer with. Elements are asked in priority
// order; the first element to claim an event stops the walk.
package interaction

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

// Interaction is a single input event. Implementations are the event
// structs below and nothing else.
type Interaction interface {
	interaction()
}

// PreClick is delivered to every element before a click is dispatched, so
// transient per-gesture state can be cleared regardless of who ends up
// claiming the click.
type PreClick struct{}

// Click is a button press at a screen position.
type Click struct {
	Button   mouse.Button
	Position curve.Point
}

// Drag is pointer motion while a button is held.
type Drag struct {
	Delta     curve.Vec2
	Start     curve.Point
	Current   curve.Point
	Modifiers key.Modifiers
}

// MouseRelease ends a drag or click at a screen position.
type MouseRelease struct {
	Button   mouse.Button
	Position curve.Point
}

// KeyPress is a key going down.
type KeyPress struct {
	Code      key.Code
	Modifiers key.Modifiers
}

func (PreClick) interaction()     {}
func (Click) interaction()        {}
func (Drag) interaction()         {}
func (MouseRelease) interaction() {}
func (KeyPress) interaction()     {}
