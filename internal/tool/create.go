package tool

import (
	"math"

	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/squid"

	"golang.org/x/mobile/event/mouse"

	"honnef.co/go/curve"
)

// minShapeSize keeps freshly placed shapes big enough to grab.
const minShapeSize = 4.0

// Circle places circles where the user clicks.
type Circle struct {
	Radius float64
}

func (*Circle) Name() string { return "Circle" }

func (c *Circle) Interact(ev interaction.Interaction, ed Editor) interaction.Capture {
	click, ok := ev.(interaction.Click)
	if !ok || click.Button != mouse.ButtonLeft {
		return interaction.Miss{}
	}
	world := ed.AnimatedCamera().Unapply(click.Position)
	ed.Insert(squid.NewCircle(world, math.Max(c.Radius, minShapeSize), ed.BrushColor()))
	return interaction.AllowDrag{}
}

// Rect places rectangles where the user clicks.
type Rect struct {
	Width    float64
	Height   float64
	Rotation float64 // Radians
	Radii    float64
}

func (*Rect) Name() string { return "Rect" }

func (r *Rect) Interact(ev interaction.Interaction, ed Editor) interaction.Capture {
	click, ok := ev.(interaction.Click)
	if !ok || click.Button != mouse.ButtonLeft {
		return interaction.Miss{}
	}
	world := ed.AnimatedCamera().Unapply(click.Position)
	size := curve.Vec(math.Max(r.Width, minShapeSize), math.Max(r.Height, minShapeSize))
	ed.Insert(squid.NewRect(world, size, r.Rotation, ed.BrushColor(), r.Radii))
	return interaction.AllowDrag{}
}

// Tri places triangles where the user clicks, vertices spread around the
// click point.
type Tri struct {
	Rotation float64 // Radians
}

func (*Tri) Name() string { return "Tri" }

func (t *Tri) Interact(ev interaction.Interaction, ed Editor) interaction.Capture {
	click, ok := ev.(interaction.Click)
	if !ok || click.Button != mouse.ButtonLeft {
		return interaction.Miss{}
	}
	world := ed.AnimatedCamera().Unapply(click.Position)
	points := [3]curve.Point{
		world.Translate(curve.Vec(0, -50)),
		world.Translate(curve.Vec(50, 50)),
		world.Translate(curve.Vec(-50, 50)),
	}
	ed.Insert(squid.NewTri(points, t.Rotation, ed.BrushColor()))
	return interaction.AllowDrag{}
}
