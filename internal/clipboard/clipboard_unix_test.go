//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func resetInit() {
	initOnce = sync.Once{}
	initErr = nil
}

func TestWriteImageFailsFastHeadless(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit()

	canvas := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := WriteImage(canvas); !errors.Is(err, errNoDisplay) {
		t.Fatalf("WriteImage without a display = %v, want errNoDisplay", err)
	}
}

func TestInitFailureIsCached(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit()

	if err := WriteText("squidpad canvas"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("first write = %v, want errNoDisplay", err)
	}

	// Setting a display afterwards must not resurrect the backend; the
	// init outcome is decided once per process.
	t.Setenv("DISPLAY", ":0")
	if err := WriteText("squidpad canvas"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("write after cached failure = %v, want errNoDisplay", err)
	}
}
