package config

import (
	"os"
	"path/filepath"
)

// Loader resolves and reads the configuration file.
type Loader struct {
	Version      string // Build version, "dev" enables the working-directory file
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load parses the configuration file, or returns defaults when none exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the first existing config file along the precedence
// chain: compile-time override, SQUIDPAD_CONFIG, a working-directory
// .squidpadrc in dev builds, then the XDG config directory. Empty means no
// file was found.
func (l *Loader) GetConfigPath() string {
	candidates := []string{l.OverridePath, os.Getenv("SQUIDPAD_CONFIG")}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		candidates = append(candidates, filepath.Join(wd, ".squidpadrc"))
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	candidates = append(candidates,
		filepath.Join(configDir, "squidpad", "config.rc"),
		filepath.Join(configDir, "squidpad", "squidpad.rc"))

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
