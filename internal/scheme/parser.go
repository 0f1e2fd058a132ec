package scheme

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/example/squidpad/internal/colors"
)

// Parse reads a scheme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: #RRGGBB or #RRGGBBAA
func Parse(r io.Reader) (*Scheme, error) {
	s := Default() // Start with defaults
	scanner := bufio.NewScanner(r)

	val := reflect.ValueOf(s).Elem()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key == "Name" {
			s.Name = value
			continue
		}

		field := val.FieldByName(key)
		if !field.IsValid() {
			continue // Unknown field, ignore for forward compatibility
		}

		if field.Type() == reflect.TypeOf(colors.Color{}) {
			col, ok := parseColor(value)
			if !ok {
				return nil, fmt.Errorf("invalid color for key %s: %q", key, value)
			}
			field.Set(reflect.ValueOf(col))
		}
	}

	return s, scanner.Err()
}

func parseColor(value string) (colors.Color, bool) {
	col := colors.FromHex(value)
	if col == (colors.Color{}) && !isTransparentBlack(value) {
		return colors.Color{}, false
	}
	return col, true
}

// isTransparentBlack recognizes the few spellings whose parse really is
// the zero color, so they are not mistaken for parse failures.
func isTransparentBlack(value string) bool {
	switch strings.ToLower(value) {
	case "#0000", "#00000000":
		return true
	}
	return false
}
