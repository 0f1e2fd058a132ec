package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/scheme"

	"honnef.co/go/curve"
)

// Snap holds gesture snapping settings.
type Snap struct {
	Translation     float64 // World units; 0 disables
	RotationDegrees float64 // Degrees; 0 disables
}

// Duplicate holds where duplicated squids land relative to the original.
type Duplicate struct {
	OffsetX float64
	OffsetY float64
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Scheme    string
	ExportDir string
	Snap      Snap
	Duplicate Duplicate
	Notify    Notify
	Schemes   map[string]*scheme.Scheme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Scheme: "", // Default to empty to allow fallback to Default
		Snap: Snap{
			Translation: 1,
		},
		Notify: Notify{
			Save:   false,
			Export: false,
			Copy:   false,
		},
		Schemes: make(map[string]*scheme.Scheme),
	}
}

// Options converts the snapping and duplication settings into the options
// value gestures consume.
func (c *Config) Options() interaction.Options {
	return interaction.Options{
		TranslationSnapping: c.Snap.Translation,
		RotationSnapping:    c.Snap.RotationDegrees * math.Pi / 180,
		DuplicationOffset:   curve.Vec(c.Duplicate.OffsetX, c.Duplicate.OffsetY),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Scheme != "" {
		fmt.Fprintf(&sb, "scheme = %s\n", c.Scheme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	// Snap section
	sb.WriteString("[snap]\n")
	fmt.Fprintf(&sb, "translation = %v\n", c.Snap.Translation)
	fmt.Fprintf(&sb, "rotation_degrees = %v\n", c.Snap.RotationDegrees)
	sb.WriteString("\n")

	// Duplicate section
	sb.WriteString("[duplicate]\n")
	fmt.Fprintf(&sb, "offset_x = %v\n", c.Duplicate.OffsetX)
	fmt.Fprintf(&sb, "offset_y = %v\n", c.Duplicate.OffsetY)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Scheme sections
	// Sort keys for deterministic output
	var schemeNames []string
	for name := range c.Schemes {
		schemeNames = append(schemeNames, name)
	}
	sort.Strings(schemeNames)

	for _, name := range schemeNames {
		s := c.Schemes[name]
		fmt.Fprintf(&sb, "[scheme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", s.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(s.Background))
		fmt.Fprintf(&sb, "LightRibbon: %s\n", toHex(s.LightRibbon))
		fmt.Fprintf(&sb, "DarkRibbon: %s\n", toHex(s.DarkRibbon))
		fmt.Fprintf(&sb, "Foreground: %s\n", toHex(s.Foreground))
		fmt.Fprintf(&sb, "DarkForeground: %s\n", toHex(s.DarkForeground))
		fmt.Fprintf(&sb, "ReallyDarkForeground: %s\n", toHex(s.ReallyDarkForeground))
		fmt.Fprintf(&sb, "Input: %s\n", toHex(s.Input))
		fmt.Fprintf(&sb, "Error: %s\n", toHex(s.Error))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c colors.Color) string {
	rgba := c.NRGBA()
	if rgba.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", rgba.R, rgba.G, rgba.B, rgba.A)
}
