package interaction

import "honnef.co/go/curve"

// Options tune how gestures are applied to the selection.
type Options struct {
	// TranslationSnapping quantizes movement to a world-space grid step.
	// Values at or below zero disable snapping.
	TranslationSnapping float64
	// RotationSnapping quantizes rotation to an angle step in radians.
	// Values at or below zero disable snapping.
	RotationSnapping float64
	// DuplicationOffset displaces duplicated shapes from their source.
	DuplicationOffset curve.Vec2
	// TreatSelectionAsGroup makes multi-shape gestures act about the
	// selection as a whole rather than per shape.
	TreatSelectionAsGroup bool
}

// DefaultOptions returns the options applied before any configuration is
// loaded.
func DefaultOptions() Options {
	return Options{
		TranslationSnapping: 1.0,
	}
}
