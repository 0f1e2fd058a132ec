package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"honnef.co/go/curve"

	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/export"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/squid"
)

// renderCmd rasterizes a scene file without opening a window. A scene is a
// plain text file with one shape per line:
//
//	circle X Y RADIUS [#color]
//	rect X Y WIDTH HEIGHT ROTATION [#color]
//	tri X1 Y1 X2 Y2 X3 Y3 [#color]
//
// Blank lines and lines starting with '#' are skipped.
type renderCmd struct {
	*root
	fs        *flag.FlagSet
	file      string
	output    string
	svg       bool
	width     float64
	height    float64
	colorSpec string
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "scene file to render (defaults to stdin)")
	fs.StringVar(&c.output, "output", "", "output file path")
	fs.BoolVar(&c.svg, "svg", false, "write an SVG document instead of a PNG")
	fs.Float64Var(&c.width, "width", 1280, "viewport width in world units")
	fs.Float64Var(&c.height, "height", 720, "viewport height in world units")
	fs.StringVar(&c.colorSpec, "color", "#ffffff", "fill color for shapes without one")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" {
		return nil, fmt.Errorf("output file is required, pass -output")
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("viewport must be positive, got %vx%v", c.width, c.height)
	}
	return c, nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Run() error {
	fallback, ok := sceneColor(c.colorSpec)
	if !ok {
		return fmt.Errorf("invalid color %q", c.colorSpec)
	}

	in := io.Reader(os.Stdin)
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			return fmt.Errorf("failed to open scene %s: %w", c.file, err)
		}
		defer f.Close()
		in = f
	}

	squids, err := parseScene(in, fallback)
	if err != nil {
		return err
	}

	o := ocean.New()
	for _, s := range squids {
		o.Insert(s)
	}

	// The viewport is centered on the world origin, matching a fresh
	// editor window before any panning.
	view := export.Viewport{
		Origin: curve.Pt(-c.width/2, -c.height/2),
		Size:   curve.Vec(c.width, c.height),
	}

	out, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.output, err)
	}

	if c.svg || strings.EqualFold(filepath.Ext(c.output), ".svg") {
		if err := export.WriteSVG(out, o, view); err != nil {
			out.Close()
			return fmt.Errorf("failed to write %s: %w", c.output, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.output, err)
		}
		c.root.notifyExport(c.output, nil)
		return nil
	}

	img := export.Render(o, view, c.activeScheme.Background)
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", c.output, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.output, err)
	}
	c.root.notifyExport(c.output, img)
	return nil
}

func parseScene(r io.Reader, fallback colors.Color) ([]squid.Squid, error) {
	var squids []squid.Squid
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		kind := strings.ToLower(fields[0])
		rest := fields[1:]

		color := fallback
		if len(rest) > 0 && strings.HasPrefix(rest[len(rest)-1], "#") {
			spec := rest[len(rest)-1]
			parsed, ok := sceneColor(spec)
			if !ok {
				return nil, fmt.Errorf("line %d: invalid color %q", line, spec)
			}
			color = parsed
			rest = rest[:len(rest)-1]
		}

		switch kind {
		case "circle":
			v, err := expectFloats(rest, 3, kind, line)
			if err != nil {
				return nil, err
			}
			squids = append(squids, squid.NewCircle(curve.Pt(v[0], v[1]), v[2], color))
		case "rect":
			v, err := expectFloats(rest, 5, kind, line)
			if err != nil {
				return nil, err
			}
			squids = append(squids, squid.NewRect(curve.Pt(v[0], v[1]), curve.Vec(v[2], v[3]), v[4], color, 0))
		case "tri":
			v, err := expectFloats(rest, 6, kind, line)
			if err != nil {
				return nil, err
			}
			points := [3]curve.Point{
				curve.Pt(v[0], v[1]),
				curve.Pt(v[2], v[3]),
				curve.Pt(v[4], v[5]),
			}
			squids = append(squids, squid.NewTri(points, 0, color))
		default:
			return nil, fmt.Errorf("line %d: unknown shape %q", line, kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return squids, nil
}

func expectFloats(fields []string, n int, shape string, line int) ([]float64, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("line %d: %s takes %d values, got %d", line, shape, n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", line, f)
		}
		out[i] = v
	}
	return out, nil
}

// sceneColor parses a hex color, keeping the transparent black spellings
// apart from parse failures.
func sceneColor(spec string) (colors.Color, bool) {
	col := colors.FromHex(spec)
	if col == (colors.Color{}) {
		switch strings.ToLower(spec) {
		case "#0000", "#00000000":
		default:
			return colors.Color{}, false
		}
	}
	return col, true
}
