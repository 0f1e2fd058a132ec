package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/squidpad/internal/scheme"
)

type schemesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseSchemesCmd(args []string, r *root) (*schemesCmd, error) {
	fs := flag.NewFlagSet("schemes", flag.ExitOnError)
	cmd := &schemesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *schemesCmd) Run() error {
	active := ""
	if c.activeScheme != nil {
		active = c.activeScheme.Name
	}

	fmt.Fprintln(os.Stdout, "available color schemes (* marks the active scheme):")
	for _, entry := range collectSchemes(c.root) {
		marker := " "
		if entry.name == active && active != "" {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s (%s)\n", marker, entry.name, entry.origin)
	}
	fmt.Fprintln(os.Stdout, "select a scheme with -scheme, SQUIDPAD_SCHEME, or scheme= in the config")
	return nil
}

type schemeEntry struct {
	name   string
	origin string
}

// collectSchemes gathers scheme names from every source the loader
// consults, earliest origin wins on a name collision.
func collectSchemes(r *root) []schemeEntry {
	seen := map[string]bool{}
	var entries []schemeEntry
	add := func(name, origin string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, schemeEntry{name: name, origin: origin})
	}

	if r.config != nil {
		names := make([]string, 0, len(r.config.Schemes))
		for name := range r.config.Schemes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			add(name, "config")
		}
	}

	if files, err := scheme.EmbeddedSchemes.ReadDir("defaults"); err == nil {
		for _, f := range files {
			add(strings.TrimSuffix(f.Name(), ".scheme"), "built-in")
		}
	}

	loader := scheme.NewLoader()
	for _, dir := range []struct{ path, origin string }{
		{loader.ConfigDir, "user"},
		{loader.SystemDir, "system"},
	} {
		files, err := os.ReadDir(dir.path)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".scheme") {
				continue
			}
			add(strings.TrimSuffix(f.Name(), ".scheme"), dir.origin)
		}
	}
	return entries
}

func (c *schemesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
