package scheme

import (
	"github.com/example/squidpad/internal/colors"
)

// Scheme defines the color palette for the editor UI and canvas.
type Scheme struct {
	Name string

	// Canvas
	Background colors.Color // Infinite canvas behind the squids

	// Ribbon & status line
	LightRibbon colors.Color
	DarkRibbon  colors.Color

	// Accents
	Foreground           colors.Color // Selection indicators, handles
	DarkForeground       colors.Color // Pressed handles
	ReallyDarkForeground colors.Color

	// Text input & feedback
	Input colors.Color
	Error colors.Color
}

// Default returns the hardcoded dark scheme (fallback).
func Default() *Scheme {
	return &Scheme{
		Name:                 "Default",
		Background:           colors.FromHex("#2c2f33"),
		LightRibbon:          colors.FromHex("#2f3136"),
		DarkRibbon:           colors.FromHex("#23272a"),
		Foreground:           colors.FromHex("#7289da"),
		DarkForeground:       colors.FromHex("#5772d3"),
		ReallyDarkForeground: colors.FromHex("#3d5ccc"),
		Input:                colors.FromHex("#40444b"),
		Error:                colors.FromHex("#ed2326"),
	}
}
