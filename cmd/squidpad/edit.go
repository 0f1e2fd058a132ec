package main

import (
	"flag"
	"fmt"

	"github.com/example/squidpad/internal/app"
)

type editCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	width  int
	height int
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.output, "output", "squidpad.png", "file the canvas is saved to")
	fs.IntVar(&e.width, "width", 1280, "initial window width in pixels")
	fs.IntVar(&e.height, "height", 720, "initial window height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func (e *editCmd) Run() error {
	a := app.New(
		app.WithConfig(e.config),
		app.WithScheme(e.activeScheme),
		app.WithOutput(e.output),
		app.WithSize(e.width, e.height),
	)
	a.Run()
	return nil
}
