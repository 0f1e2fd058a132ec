package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/squidpad/internal/clipboard"
	"github.com/example/squidpad/internal/config"
	"github.com/example/squidpad/internal/export"
	"github.com/example/squidpad/internal/interaction"
	"github.com/example/squidpad/internal/notify"
	"github.com/example/squidpad/internal/scheme"

	"honnef.co/go/curve"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before an in-flight paint is allowed to finish.
const frameDropThreshold = 10

// frameInterval paces repaints so camera and squid animations keep easing
// between input events.
const frameInterval = time.Second / 60

// wheelDelta is the zoom step one wheel notch contributes.
const wheelDelta = 120.0

// App holds application configuration for the editor window.
type App struct {
	Config *config.Config
	Scheme *scheme.Scheme
	Output string
	Width  int
	Height int

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithConfig sets the loaded configuration.
func WithConfig(cfg *config.Config) Option { return func(a *App) { a.Config = cfg } }

// WithScheme sets the color scheme used by the window.
func WithScheme(sc *scheme.Scheme) Option { return func(a *App) { a.Scheme = sc } }

// WithOutput sets the file path used when saving the canvas.
func WithOutput(out string) Option { return func(a *App) { a.Output = out } }

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(a *App) {
		a.Width = width
		a.Height = height
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		Width:  1280,
		Height: 720,
		Output: "squidpad.png",
	}
	for _, o := range opts {
		o(a)
	}
	if a.Config == nil {
		a.Config = config.New()
	}
	if a.Scheme == nil {
		a.Scheme = scheme.Default()
	}
	return a
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// shortcut pairs a lowercased rune with its modifiers, mapping key events
// to registered actions.
type shortcut struct {
	Rune      rune
	Modifiers key.Modifiers
}

// Run executes the editor window loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	cfg := a.Config
	sc := a.Scheme
	width := a.Width
	height := a.Height

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Squidpad"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ed := NewEditor(curve.Vec2{X: float64(width), Y: float64(height)}, cfg.Options())

	notifier := notify.New(notify.LoadPreferences())
	notifier.Enable(notify.EventSave, cfg.Notify.Save)
	notifier.Enable(notify.EventExport, cfg.Notify.Export)
	notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	var message string
	var messageUntil time.Time
	flash := func(format string, args ...interface{}) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	ticker := time.NewTicker(frameInterval)
	tickerDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				w.Send(paint.Event{})
			case <-tickerDone:
				return
			}
		}
	}()
	defer func() {
		ticker.Stop()
		close(tickerDone)
	}()

	viewport := func() export.Viewport {
		topLeft, bottomRight := ed.RealCamera().View()
		return export.Viewport{
			Origin: topLeft,
			Size:   bottomRight.Sub(topLeft),
		}
	}

	actions := map[string]func(){}
	keyboardAction := map[shortcut]string{}
	register := func(name string, keys []shortcut, fn func()) {
		actions[name] = fn
		for _, k := range keys {
			keyboardAction[k] = name
		}
	}

	register("undo", []shortcut{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if !ed.Undo() {
			flash("nothing to undo")
		}
	})
	register("redo", []shortcut{{Rune: 'z', Modifiers: key.ModControl | key.ModShift}}, func() {
		if !ed.Redo() {
			flash("nothing to redo")
		}
	})
	register("copy", []shortcut{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		img := export.Render(ed.Ocean(), viewport(), sc.Background)
		if err := clipboard.WriteImage(img); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		notifier.Copy("canvas")
		flash("canvas copied to clipboard")
	})
	register("save", []shortcut{{Rune: 's', Modifiers: key.ModControl}}, func() {
		out, err := os.Create(a.Output)
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		if err := export.WritePNG(out, ed.Ocean(), viewport(), sc.Background); err != nil {
			log.Printf("save: %v", err)
			if cerr := out.Close(); cerr != nil {
				log.Printf("save: closing file: %v", cerr)
			}
			return
		}
		if err := out.Close(); err != nil {
			log.Printf("save: closing file: %v", err)
			return
		}
		notifier.Save(a.Output)
		flash("saved %s", a.Output)
	})
	register("export", []shortcut{{Rune: 'e', Modifiers: key.ModControl}}, func() {
		path := filepath.Join(cfg.ExportDir, "squidpad.svg")
		out, err := os.Create(path)
		if err != nil {
			log.Printf("export: %v", err)
			return
		}
		if err := export.WriteSVG(out, ed.Ocean(), viewport()); err != nil {
			log.Printf("export: %v", err)
			if cerr := out.Close(); cerr != nil {
				log.Printf("export: closing file: %v", cerr)
			}
			return
		}
		if err := out.Close(); err != nil {
			log.Printf("export: closing file: %v", err)
			return
		}
		notifier.Export(path, export.Render(ed.Ocean(), viewport(), sc.Background))
		flash("exported %s", path)
	})
	register("zoomin", []shortcut{{Rune: '=', Modifiers: key.ModControl}, {Rune: '+', Modifiers: key.ModControl}}, func() {
		ed.ZoomIn()
	})
	register("zoomout", []shortcut{{Rune: '-', Modifiers: key.ModControl}}, func() {
		ed.ZoomOut()
	})

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	doClick := func(button mouse.Button, pos curve.Point) interaction.Capture {
		if m := ed.ContextMenu(); m != nil {
			anchor := m.Position
			ed.CloseContextMenu()
			if idx, ok := menuEntryAt(anchor, pos); ok {
				switch menuEntries[idx] {
				case "Delete":
					ed.DeleteSelected()
					flash("deleted selection")
				case "Duplicate":
					ed.DuplicateSelected()
				}
				return interaction.NoDrag{}
			}
		}

		if int(pos.X) < toolbarWidth {
			idx := int(pos.Y)/toolButtonHeight - 1
			if button == mouse.ButtonLeft && idx >= 0 && idx < len(ed.Toolbox().Tools()) {
				ed.Toolbox().Select(idx)
			}
			return interaction.NoDrag{}
		}
		if int(pos.Y) >= height-ribbonHeight {
			return interaction.NoDrag{}
		}

		return ed.Toolbox().Current().Interact(interaction.Click{Button: button, Position: pos}, ed)
	}

	var dragging bool
	var dragStart curve.Point
	var dragLast curve.Point

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}

		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			ed.SetWindow(curve.Vec2{X: float64(width), Y: float64(height)})
			w.Send(paint.Event{})

		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			if message != "" && !time.Now().Before(messageUntil) {
				message = ""
			}
			st := snapshotFrame(ed, sc, width, height, message)
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}

		case mouse.Event:
			pos := curve.Point{X: float64(e.X), Y: float64(e.Y)}

			if e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown {
				if e.Direction == mouse.DirPress {
					delta := wheelDelta
					if e.Button == mouse.ButtonWheelDown {
						delta = -wheelDelta
					}
					ed.SetMouse(pos)
					ed.Scroll(delta)
					w.Send(paint.Event{})
				}
				continue
			}

			ed.SetMouse(pos)

			switch e.Direction {
			case mouse.DirPress:
				capture := doClick(e.Button, pos)
				if _, noDrag := capture.(interaction.NoDrag); !noDrag {
					dragging = true
					dragStart = pos
					dragLast = pos
					ed.DoCapture(capture)
				}
				w.Send(paint.Event{})
			case mouse.DirRelease:
				ed.StopDrag(e.Button)
				dragging = false
				w.Send(paint.Event{})
			case mouse.DirNone:
				if dragging {
					drag := interaction.Drag{
						Delta:     pos.Sub(dragLast),
						Start:     dragStart,
						Current:   pos,
						Modifiers: modifiersFor(ed),
					}
					dragLast = pos
					capture := ed.Toolbox().Current().Interact(drag, ed)
					ed.DoCapture(capture)
					w.Send(paint.Event{})
				}
			}

		case key.Event:
			ed.SetShiftHeld(e.Modifiers&key.ModShift != 0)
			if e.Direction != key.DirPress {
				continue
			}

			ks := shortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
			if action, ok := keyboardAction[ks]; ok {
				handleShortcut(action)
				continue
			}

			press := interaction.KeyPress{Code: e.Code, Modifiers: e.Modifiers}
			if capture := ed.Toolbox().Current().Interact(press, ed); capture.Claimed() {
				w.Send(paint.Event{})
				continue
			}

			switch e.Rune {
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				idx := int(e.Rune - '1')
				if idx < len(ed.Toolbox().Tools()) {
					ed.Toolbox().Select(idx)
					w.Send(paint.Event{})
				}
			case 'x', 'X':
				ed.DeleteSelected()
				w.Send(paint.Event{})
			case 'd', 'D':
				if e.Modifiers&key.ModShift != 0 {
					ed.DuplicateSelected()
					w.Send(paint.Event{})
				}
			case 'q', 'Q':
				stopPaint()
				return
			case -1:
				if e.Code == key.CodeEscape {
					ed.CloseContextMenu()
					w.Send(paint.Event{})
				}
			}
		}
	}
}

func modifiersFor(ed *Editor) key.Modifiers {
	if ed.ShiftHeld() {
		return key.ModShift
	}
	return 0
}
