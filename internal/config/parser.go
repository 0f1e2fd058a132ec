package config

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/example/squidpad/internal/colors"
	"github.com/example/squidpad/internal/scheme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentScheme *scheme.Scheme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentScheme = nil

			if strings.HasPrefix(currentSection, "scheme.") {
				schemeName := strings.TrimPrefix(currentSection, "scheme.")
				// Start with defaults so missing keys are fine
				currentScheme = scheme.Default()
				currentScheme.Name = schemeName
				cfg.Schemes[schemeName] = currentScheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentScheme != nil:
			err = setSchemeField(currentScheme, key, value)
		case currentSection == "snap":
			err = setSnapField(&cfg.Snap, key, value)
		case currentSection == "duplicate":
			err = setDuplicateField(&cfg.Duplicate, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "scheme":
		cfg.Scheme = value
	case "export_dir":
		cfg.ExportDir = value
	}
	return nil
}

func setSnapField(s *Snap, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "translation":
		s.Translation = f
	case "rotation_degrees":
		s.RotationDegrees = f
	}
	return nil
}

func setDuplicateField(d *Duplicate, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "offset_x":
		d.OffsetX = f
	case "offset_y":
		d.OffsetY = f
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setSchemeField(s *scheme.Scheme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		s.Name = value
		return nil
	}

	val := reflect.ValueOf(s).Elem()

	// Case-insensitive field lookup
	typ := val.Type()
	var fieldName string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if strings.EqualFold(f.Name, key) {
			fieldName = f.Name
			break
		}
	}

	if fieldName == "" {
		return nil // Ignore unknown fields
	}

	field := val.FieldByName(fieldName)
	if !field.IsValid() {
		return nil // Should not happen if loop found it, but safety check
	}

	if field.Type() == reflect.TypeOf(colors.Color{}) {
		col := colors.FromHex(value)
		if col == (colors.Color{}) && !strings.EqualFold(value, "#0000") && !strings.EqualFold(value, "#00000000") {
			return fmt.Errorf("invalid color for key %s: %q", key, value)
		}
		field.Set(reflect.ValueOf(col))
	}
	return nil
}
