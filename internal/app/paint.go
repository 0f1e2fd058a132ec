package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/geom"
	"github.com/example/squidpad/internal/scheme"
	"github.com/example/squidpad/internal/squid"

	"honnef.co/go/curve"
)

const (
	toolbarWidth     = 88
	toolButtonHeight = 24
	ribbonHeight     = 24
	handleSize       = 5

	menuWidth       = 110
	menuEntryHeight = 22
)

var menuEntries = []string{"Duplicate", "Delete"}

type shapeKind int

const (
	circleKind shapeKind = iota
	quadKind
	triKind
)

// drawShape is one squid flattened into eased world-space geometry. The
// painter never touches live squids.
type drawShape struct {
	kind   shapeKind
	center curve.Point
	radius float64
	quad   [4]curve.Point
	tri    [3]curve.Point
	color  colors.Color
}

type menuSnapshot struct {
	position curve.Point
}

// paintState is everything one frame needs, detached from the editor so
// painting can be cancelled and retried without data races.
type paintState struct {
	width, height int
	cam           camera.Camera
	scheme        *scheme.Scheme
	shapes        []drawShape
	handles       []curve.Point
	toolNames     []string
	currentTool   int
	brush         colors.Color
	collective    bool
	zoom          float64
	message       string
	menu          *menuSnapshot
}

var identityCamera = camera.Camera{Zoom: 1}

func snapshotFrame(ed *Editor, sc *scheme.Scheme, width, height int, message string) paintState {
	cam := ed.AnimatedCamera()

	var shapes []drawShape
	for _, ref := range ed.Ocean().Lowest() {
		s, ok := ed.Ocean().Get(ref)
		if !ok {
			continue
		}
		shapes = append(shapes, flatten(s))
	}

	var handles []curve.Point
	for _, ref := range ed.Ocean().Lowest() {
		if !squid.SelectionsContain(ed.Selections(), ref) {
			continue
		}
		if s, ok := ed.Ocean().Get(ref); ok {
			handles = append(handles, s.SelectionPoints(cam)...)
		}
	}

	var names []string
	currentTool := 0
	for i, t := range ed.Toolbox().Tools() {
		names = append(names, t.Name())
		if t == ed.Toolbox().Current() {
			currentTool = i
		}
	}

	var menu *menuSnapshot
	if m := ed.ContextMenu(); m != nil {
		menu = &menuSnapshot{position: m.Position}
	}

	return paintState{
		width:       width,
		height:      height,
		cam:         cam,
		scheme:      sc,
		shapes:      shapes,
		handles:     handles,
		toolNames:   names,
		currentTool: currentTool,
		brush:       ed.BrushColor(),
		collective:  ed.CollectiveFlag(),
		zoom:        ed.RealCamera().Zoom,
		message:     message,
		menu:        menu,
	}
}

func flatten(s squid.Squid) drawShape {
	switch s := s.(type) {
	case *squid.Circle:
		data := s.AnimatedData()
		return drawShape{
			kind:   circleKind,
			center: data.Position.Reveal(),
			radius: data.Radius,
			color:  data.Color,
		}
	case *squid.Rect:
		return drawShape{
			kind:  quadKind,
			quad:  s.WorldCorners(),
			color: s.AnimatedData().Color,
		}
	case *squid.Tri:
		return drawShape{
			kind:  triKind,
			tri:   s.AnimatedScreenPoints(identityCamera),
			color: s.AnimatedData().Color,
		}
	}
	return drawShape{}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{X: st.width, Y: st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{toRGBA(st.scheme.Background)}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	for _, sh := range st.shapes {
		rasterizeShape(dst, sh, st.cam)
		if ctx.Err() != nil {
			return
		}
	}

	drawHandles(dst, st)
	if ctx.Err() != nil {
		return
	}

	drawToolbar(dst, st)
	drawStatusLine(dst, st)
	if ctx.Err() != nil {
		return
	}

	if st.menu != nil {
		drawMenu(dst, st)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func (sh drawShape) contains(world curve.Point) bool {
	switch sh.kind {
	case circleKind:
		return sh.center.Distance(world) < sh.radius
	case quadKind:
		return insideQuadHandles(sh.quad, world)
	case triKind:
		return insideTri(sh.tri, world)
	}
	return false
}

func (sh drawShape) worldBounds() curve.Rect {
	switch sh.kind {
	case circleKind:
		return curve.Rect{
			X0: sh.center.X - sh.radius, Y0: sh.center.Y - sh.radius,
			X1: sh.center.X + sh.radius, Y1: sh.center.Y + sh.radius,
		}
	case quadKind:
		return pointBounds(sh.quad[:])
	case triKind:
		return pointBounds(sh.tri[:])
	}
	return curve.Rect{}
}

func pointBounds(points []curve.Point) curve.Rect {
	r := curve.Rect{X0: points[0].X, Y0: points[0].Y, X1: points[0].X, Y1: points[0].Y}
	for _, p := range points[1:] {
		r.X0 = math.Min(r.X0, p.X)
		r.Y0 = math.Min(r.Y0, p.Y)
		r.X1 = math.Max(r.X1, p.X)
		r.Y1 = math.Max(r.Y1, p.Y)
	}
	return r
}

func rasterizeShape(dst *image.RGBA, sh drawShape, cam camera.Camera) {
	bounds := sh.worldBounds()
	topLeft := cam.Apply(curve.Point{X: bounds.MinX(), Y: bounds.MinY()})
	bottomRight := cam.Apply(curve.Point{X: bounds.MaxX(), Y: bounds.MaxY()})

	clip := dst.Bounds()
	x0 := clampInt(int(math.Floor(topLeft.X)), clip.Min.X, clip.Max.X)
	y0 := clampInt(int(math.Floor(topLeft.Y)), clip.Min.Y, clip.Max.Y)
	x1 := clampInt(int(math.Ceil(bottomRight.X))+1, clip.Min.X, clip.Max.X)
	y1 := clampInt(int(math.Ceil(bottomRight.Y))+1, clip.Min.Y, clip.Max.Y)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			world := cam.Unapply(curve.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			if sh.contains(world) {
				blendPixel(dst, x, y, sh.color)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func blendPixel(dst *image.RGBA, x, y int, c colors.Color) {
	src := c.NRGBA()
	if src.A == 0xff {
		dst.SetRGBA(x, y, color.RGBA{R: src.R, G: src.G, B: src.B, A: 0xff})
		return
	}
	prev := dst.RGBAAt(x, y)
	a := uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	dst.SetRGBA(x, y, color.RGBA{
		R: mix(src.R, prev.R),
		G: mix(src.G, prev.G),
		B: mix(src.B, prev.B),
		A: 0xff,
	})
}

func drawHandles(dst *image.RGBA, st paintState) {
	fillCol := toRGBA(st.scheme.Foreground)
	edgeCol := toRGBA(st.scheme.DarkForeground)
	for _, h := range st.handles {
		x := int(math.Round(h.X))
		y := int(math.Round(h.Y))
		r := image.Rect(x-handleSize/2, y-handleSize/2, x+handleSize/2+1, y+handleSize/2+1)
		draw.Draw(dst, r.Inset(-1), &image.Uniform{edgeCol}, image.Point{}, draw.Src)
		draw.Draw(dst, r, &image.Uniform{fillCol}, image.Point{}, draw.Src)
	}
}

func drawToolbar(dst *image.RGBA, st paintState) {
	bar := image.Rect(0, 0, toolbarWidth, st.height)
	draw.Draw(dst, bar, &image.Uniform{toRGBA(st.scheme.DarkRibbon)}, image.Point{}, draw.Src)

	title := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{toRGBA(st.scheme.Foreground)},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(6, 16),
	}
	title.DrawString("Squidpad")

	y := toolButtonHeight
	for i, name := range st.toolNames {
		row := image.Rect(0, y, toolbarWidth, y+toolButtonHeight)
		textCol := toRGBA(st.scheme.Input)
		if i == st.currentTool {
			draw.Draw(dst, row, &image.Uniform{toRGBA(st.scheme.Foreground)}, image.Point{}, draw.Src)
			textCol = toRGBA(st.scheme.DarkRibbon)
		}
		d := &font.Drawer{
			Dst:  dst,
			Src:  &image.Uniform{textCol},
			Face: basicfont.Face7x13,
			Dot:  fixed.P(6, y+16),
		}
		d.DrawString(fmt.Sprintf("%d:%s", i+1, name))
		y += toolButtonHeight
	}
}

func drawStatusLine(dst *image.RGBA, st paintState) {
	bar := image.Rect(toolbarWidth, st.height-ribbonHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{toRGBA(st.scheme.LightRibbon)}, image.Point{}, draw.Src)

	text := st.message
	if text == "" {
		text = fmt.Sprintf("%s  (%.0f%%)", st.toolNames[st.currentTool], st.zoom*100)
		if st.collective {
			text += "  [group]"
		}
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{toRGBA(st.scheme.Foreground)},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(toolbarWidth+8, st.height-8),
	}
	d.DrawString(text)

	swatch := image.Rect(st.width-ribbonHeight+4, st.height-ribbonHeight+4, st.width-4, st.height-4)
	draw.Draw(dst, swatch, &image.Uniform{toRGBA(st.brush)}, image.Point{}, draw.Src)
}

func drawMenu(dst *image.RGBA, st paintState) {
	r := menuBounds(st.menu.position)
	draw.Draw(dst, r.Inset(-1), &image.Uniform{toRGBA(st.scheme.DarkRibbon)}, image.Point{}, draw.Src)
	draw.Draw(dst, r, &image.Uniform{toRGBA(st.scheme.Input)}, image.Point{}, draw.Src)
	for i, entry := range menuEntries {
		d := &font.Drawer{
			Dst:  dst,
			Src:  &image.Uniform{toRGBA(st.scheme.Foreground)},
			Face: basicfont.Face7x13,
			Dot:  fixed.P(r.Min.X+8, r.Min.Y+i*menuEntryHeight+15),
		}
		d.DrawString(entry)
	}
}

// menuBounds is the screen rectangle of a context menu anchored at p.
func menuBounds(p curve.Point) image.Rectangle {
	x := int(math.Round(p.X))
	y := int(math.Round(p.Y))
	return image.Rect(x, y, x+menuWidth, y+len(menuEntries)*menuEntryHeight)
}

// menuEntryAt resolves a click inside the menu to an entry index.
func menuEntryAt(anchor, click curve.Point) (int, bool) {
	r := menuBounds(anchor)
	x := int(math.Round(click.X))
	y := int(math.Round(click.Y))
	if !(image.Point{X: x, Y: y}).In(r) {
		return 0, false
	}
	idx := (y - r.Min.Y) / menuEntryHeight
	if idx < 0 || idx >= len(menuEntries) {
		return 0, false
	}
	return idx, true
}

func toRGBA(c colors.Color) color.RGBA {
	n := c.NRGBA()
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// insideQuadHandles mirrors Rect.IsPointOver's corner ordering so the
// painted area and the hit-tested area always agree.
func insideQuadHandles(q [4]curve.Point, p curve.Point) bool {
	return geom.InsideQuad(q[0], q[1], q[2], q[3], p)
}

func insideTri(t [3]curve.Point, p curve.Point) bool {
	return geom.InsideTriangle(p, t[0], t[1], t[2])
}
