// Package export renders a document to SVG or PNG. Squids are walked
// bottom of the stack first so later squids draw on top, and geometry is
// taken from authoritative snapshots so an export mid-animation captures
// where things are going, not where they appear.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/ocean"
	"github.com/example/squidpad/internal/squid"

	"honnef.co/go/curve"
)

// Viewport is the world-space window an export shows.
type Viewport struct {
	Origin curve.Point // Top-left corner
	Size   curve.Vec2
}

// WriteSVG writes the document as an SVG image.
func WriteSVG(w io.Writer, o *ocean.Ocean, view Viewport) error {
	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\">\n",
		num(view.Origin.X), num(view.Origin.Y), num(view.Size.X), num(view.Size.Y)); err != nil {
		return err
	}

	for _, ref := range o.Lowest() {
		s, ok := o.Get(ref)
		if !ok {
			continue
		}
		if err := writeElement(w, s); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}

func writeElement(w io.Writer, s squid.Squid) error {
	switch s := s.(type) {
	case *squid.Circle:
		data := s.Data()
		center := data.Position.Reveal()
		_, err := fmt.Fprintf(w, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\"/>\n",
			num(center.X), num(center.Y), num(data.Radius), fill(data.Color))
		return err
	case *squid.Rect:
		return writePolygon(w, rectOutline(s), s.Color())
	case *squid.Tri:
		return writePolygon(w, triOutline(s), s.Color())
	}
	return nil
}

func writePolygon(w io.Writer, points []curve.Point, color colors.Color) error {
	if _, err := io.WriteString(w, "  <polygon points=\""); err != nil {
		return err
	}
	for i, p := range points {
		sep := " "
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s%s,%s", sep, num(p.X), num(p.Y)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\" fill=\"%s\"/>\n", fill(color))
	return err
}

// rectOutline walks the corners in perimeter order.
func rectOutline(r *squid.Rect) []curve.Point {
	data := r.Data()
	center := data.Position.Reveal()
	half := data.Size.Mul(0.5)
	outline := make([]curve.Point, 0, 4)
	for _, corner := range []curve.Vec2{
		{X: half.X, Y: half.Y},
		{X: -half.X, Y: half.Y},
		{X: -half.X, Y: -half.Y},
		{X: half.X, Y: -half.Y},
	} {
		outline = append(outline, center.Translate(geom.Rotate(corner, -data.Rotation)))
	}
	return outline
}

func triOutline(t *squid.Tri) []curve.Point {
	data := t.Data()
	center := data.Position.Reveal()
	outline := make([]curve.Point, 0, 3)
	for _, p := range data.P {
		outline = append(outline, center.Translate(geom.Rotate(curve.Vec2(p.Reveal()), -data.Rotation)))
	}
	return outline
}

func fill(c colors.Color) string {
	rgba := c.NRGBA()
	if rgba.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, rgba.A)
}

// num trims trailing zeros so coordinates stay readable.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// identity maps world space to itself for the per-pixel hit tests.
var identity = camera.Camera{Zoom: 1}

// Render rasterizes the document into an image, one world unit per pixel.
func Render(o *ocean.Ocean, view Viewport, background colors.Color) *image.NRGBA {
	width := int(math.Ceil(view.Size.X))
	height := int(math.Ceil(view.Size.Y))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	bg := background.NRGBA()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}

	for _, ref := range o.Lowest() {
		s, ok := o.Get(ref)
		if !ok {
			continue
		}
		rasterize(img, s, view)
	}

	return img
}

// WritePNG rasterizes the document and encodes it as PNG.
func WritePNG(w io.Writer, o *ocean.Ocean, view Viewport, background colors.Color) error {
	return png.Encode(w, Render(o, view, background))
}

func rasterize(img *image.NRGBA, s squid.Squid, view Viewport) {
	bounds := worldBounds(s)
	color := s.Color()

	minX := int(math.Floor(bounds.MinX() - view.Origin.X))
	minY := int(math.Floor(bounds.MinY() - view.Origin.Y))
	maxX := int(math.Ceil(bounds.MaxX() - view.Origin.X))
	maxY := int(math.Ceil(bounds.MaxY() - view.Origin.Y))

	size := img.Bounds()
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > size.Max.X {
		maxX = size.Max.X
	}
	if maxY > size.Max.Y {
		maxY = size.Max.Y
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			world := view.Origin.Translate(curve.Vec(float64(x)+0.5, float64(y)+0.5))
			if s.IsPointOver(world, identity) {
				blend(img, x, y, color)
			}
		}
	}
}

// worldBounds is a loose world-space bounding box around the squid.
func worldBounds(s squid.Squid) curve.Rect {
	switch s := s.(type) {
	case *squid.Circle:
		data := s.Data()
		center := data.Position.Reveal()
		return curve.Rect{
			X0: center.X - data.Radius, Y0: center.Y - data.Radius,
			X1: center.X + data.Radius, Y1: center.Y + data.Radius,
		}
	case *squid.Rect:
		return pointBounds(rectOutline(s))
	case *squid.Tri:
		return pointBounds(triOutline(s))
	}
	return curve.Rect{}
}

func pointBounds(points []curve.Point) curve.Rect {
	r := curve.Rect{
		X0: math.Inf(1), Y0: math.Inf(1),
		X1: math.Inf(-1), Y1: math.Inf(-1),
	}
	for _, p := range points {
		r.X0 = math.Min(r.X0, p.X)
		r.Y0 = math.Min(r.Y0, p.Y)
		r.X1 = math.Max(r.X1, p.X)
		r.Y1 = math.Max(r.Y1, p.Y)
	}
	return r
}

func blend(img *image.NRGBA, x, y int, c colors.Color) {
	if c.A >= 1 {
		img.SetNRGBA(x, y, c.NRGBA())
		return
	}
	dst := img.NRGBAAt(x, y)
	a := c.A
	img.SetNRGBA(x, y, colors.New(
		c.R*a+float64(dst.R)/255*(1-a),
		c.G*a+float64(dst.G)/255*(1-a),
		c.B*a+float64(dst.B)/255*(1-a),
		a+float64(dst.A)/255*(1-a),
	).NRGBA())
}
