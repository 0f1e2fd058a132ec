package tool

import (
	"math"

	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/operation"
	"github.com/example/squidpad/internal/squid"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Pointer selects and transforms squids. It is the default tool.
type Pointer struct{}

func (*Pointer) Name() string { return "Pointer" }

func (p *Pointer) Interact(ev interaction.Interaction, ed Editor) interaction.Capture {
	switch ev := ev.(type) {
	case interaction.Click:
		ed.Preclick()

		result := ed.TrySelect(ev.Position)

		// If we wouldn't be selecting anything new, prefer to interact
		// with existing selection over re-selecting/un-selecting
		if _, isNew := result.(ocean.NewSelection); !isNew {
			if capture := ed.InteractWithSelections(ev); capture.Claimed() {
				return capture
			}
		}

		switch result := result.(type) {
		case ocean.NewSelection:
			// Clear existing selection unless holding shift
			if !ed.ShiftHeld() {
				ed.ClearSelections()
			}
			ed.AddSelection(result.Selection.Selection)
			if result.Selection.Color != nil {
				ed.PreloadColor(*result.Selection.Color)
			}
			ed.MarkSelected(result.Selection.Selection.Squid)
		case ocean.Preserve:
		case ocean.Discard:
			ed.ClearSelections()
		}

		if ev.Button == mouse.ButtonRight && ed.OpenContextMenu(ev.Position) {
			return interaction.NoDrag{}
		}
		return interaction.AllowDrag{}

	case interaction.Drag:
		switch op := ed.Operation().(type) {
		case *operation.Rotate:
			bearing := math.Atan2(op.Point.Y-ev.Current.Y, ev.Current.X-op.Point.X)
			delta := geom.AngleDifference(op.Rotation, bearing-math.Pi/2)
			op.Rotation += delta
			return interaction.RotateSelected{DeltaTheta: delta}
		case *operation.Scale:
			d0 := op.Origin.Distance(op.Point)
			world := ed.AnimatedCamera().Unapply(ev.Current)
			return interaction.ScaleSelected{TotalFactor: geom.DivOrZero(op.Origin.Distance(world), d0)}
		case *operation.Spread:
			return interaction.SpreadSelected{Current: ed.AnimatedCamera().Unapply(ev.Current)}
		case *operation.Revolve:
			return interaction.RevolveSelected{Current: ed.AnimatedCamera().Unapply(ev.Current)}
		case *operation.Dilate:
			return interaction.DilateSelected{Current: ed.AnimatedCamera().Unapply(ev.Current)}
		}
		if capture := ed.InteractWithSelections(ev); capture.Claimed() {
			return capture
		}
		return interaction.AllowDrag{}

	case interaction.KeyPress:
		if capture := ed.InteractWithSelections(ev); capture.Claimed() {
			return capture
		}
		return p.handleHotkey(ev.Code, ed)

	default:
		if capture := ed.InteractWithSelections(ev); capture.Claimed() {
			return capture
		}
		return interaction.AllowDrag{}
	}
}

func (p *Pointer) handleHotkey(code key.Code, ed Editor) interaction.Capture {
	switch code {
	case key.CodeG:
		if ed.TakeCollectiveFlag() {
			if center, ok := ed.GroupCenter(); ok {
				ed.Initiate(squid.InitiateSpread{Point: ed.MouseWorld(), Center: center})
			}
		} else {
			ed.Initiate(squid.InitiateTranslate{})
		}
		return interaction.NoDrag{}
	case key.CodeR:
		if ed.TakeCollectiveFlag() {
			if center, ok := ed.GroupCenter(); ok {
				ed.Initiate(squid.InitiateRevolve{Point: ed.MouseWorld(), Center: center})
			}
		} else {
			ed.Initiate(squid.InitiateRotate{})
		}
		return interaction.NoDrag{}
	case key.CodeS:
		if ed.TakeCollectiveFlag() {
			if center, ok := ed.GroupCenter(); ok {
				ed.Initiate(squid.InitiateDilate{Point: ed.MouseWorld(), Center: center})
			}
		} else {
			ed.Initiate(squid.InitiateScale{})
		}
		return interaction.NoDrag{}
	case key.CodeC:
		ed.ToggleCollectiveFlag()
		return interaction.NoDrag{}
	}
	return interaction.Miss{}
}
