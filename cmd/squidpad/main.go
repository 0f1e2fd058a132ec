package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/squidpad/internal/config"
	"github.com/example/squidpad/internal/notify"
	"github.com/example/squidpad/internal/scheme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	schemeName   string
	activeScheme *scheme.Scheme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("squidpad", flag.ExitOnError),
		program:  "squidpad",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving the canvas")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	// We set the default value for the flag to "", and handle fallback logic in Run if it remains empty.
	r.fs.StringVar(&r.schemeName, "scheme", "", "color scheme to use (default, light, or a path)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	// The editor window builds its own notifier from the config, so the
	// resolved flag values are written back before the config is handed down.
	r.config.Notify.Save = r.saveAlerts
	r.config.Notify.Export = r.exportAlerts
	r.config.Notify.Copy = r.copyAlerts

	// Load scheme if specified via CLI, Env, or Config
	schemeName := r.schemeName
	if schemeName == "" {
		schemeName = os.Getenv("SQUIDPAD_SCHEME")
	}
	if schemeName == "" {
		schemeName = r.config.Scheme
	}

	var sc *scheme.Scheme
	if cfgScheme, ok := r.config.Schemes[schemeName]; ok {
		sc = cfgScheme
	} else {
		loader := scheme.NewLoader()
		var loadErr error
		sc, loadErr = loader.Load(schemeName)
		if loadErr != nil {
			if schemeName != "" && schemeName != "default" {
				fmt.Fprintf(os.Stderr, "warning: failed to load scheme '%s': %v. using default.\n", schemeName, loadErr)
			}
			sc = scheme.Default()
		}
	}
	r.activeScheme = sc

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "schemes":
		cmd, err = parseSchemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	if runErr := cmd.Run(); runErr != nil {
		return runErr
	}
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyExport(path string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}
