package tool

import (
	"github.com/example/squidpad/internal/interaction"
)

// Pan drags the canvas itself.
type Pan struct{}

func (*Pan) Name() string { return "Pan" }

func (p *Pan) Interact(ev interaction.Interaction, ed Editor) interaction.Capture {
	switch ev := ev.(type) {
	case interaction.Drag:
		// Bring the drag vector into world space and move the real camera
		// the opposite way, as if the canvas itself were being dragged.
		real := ed.RealCamera()
		ed.SetCameraLocation(real.Position.Translate(real.UnapplyToVector(ev.Delta).Negate()))
		return interaction.AllowDrag{}
	case interaction.Click:
		return interaction.AllowDrag{}
	}
	return interaction.Miss{}
}
