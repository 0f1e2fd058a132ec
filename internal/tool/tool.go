// Package tool holds the canvas tools. Exactly one tool is active at a
// time; every input event the selected squids decline is offered to it.
package tool

import (
	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/operation"
	"github.com/example/squidpad/internal/squid"

	"honnef.co/go/curve"
)

// Editor is the surface tools drive. The application state implements it.
type Editor interface {
	AnimatedCamera() camera.Camera
	RealCamera() camera.Camera
	SetCameraLocation(curve.Point)
	BrushColor() colors.Color
	Insert(squid.Squid) squid.Ref

	Preclick()
	TrySelect(screen curve.Point) ocean.TrySelectResult
	InteractWithSelections(interaction.Interaction) interaction.Capture
	ClearSelections()
	AddSelection(squid.Selection)
	PreloadColor(colors.Color)
	MarkSelected(squid.Ref)
	OpenContextMenu(screen curve.Point) bool
	ShiftHeld() bool

	Operation() operation.Operation
	Initiate(squid.Initiation)
	GroupCenter() (curve.Point, bool)
	MouseWorld() curve.Point
	TakeCollectiveFlag() bool
	ToggleCollectiveFlag()
}

// Tool consumes an interaction and reports whether it claimed it.
type Tool interface {
	Name() string
	Interact(ev interaction.Interaction, ed Editor) interaction.Capture
}

// Toolbox is the ordered set of tools with one active.
type Toolbox struct {
	tools   []Tool
	current int
}

// NewToolbox returns a toolbox with the standard tools, pointer active.
func NewToolbox() *Toolbox {
	return &Toolbox{
		tools: []Tool{
			&Pointer{},
			&Pan{},
			&Circle{Radius: 50},
			&Rect{Width: 100, Height: 75},
			&Tri{},
		},
	}
}

func (tb *Toolbox) Tools() []Tool {
	return tb.tools
}

// Current returns the active tool.
func (tb *Toolbox) Current() Tool {
	return tb.tools[tb.current]
}

// Select activates the i'th tool. Out-of-range indexes are ignored.
func (tb *Toolbox) Select(i int) {
	if i >= 0 && i < len(tb.tools) {
		tb.current = i
	}
}
