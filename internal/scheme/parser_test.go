package scheme

import (
	"strings"
	"testing"

	"github.com/example/squidpad/internal/colors"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
Name: Custom
// accent goes red
Foreground: #ff0000
UnknownKey: #123456
`
	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "Custom" {
		t.Errorf("Name = %q, want %q", s.Name, "Custom")
	}
	if s.Foreground != colors.FromHex("#ff0000") {
		t.Errorf("Foreground = %v, want red", s.Foreground)
	}
	if s.Background != Default().Background {
		t.Errorf("Background should keep the default, got %v", s.Background)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Foreground: notacolor")); err == nil {
		t.Error("expected an error for a malformed color")
	}
}

func TestEmbeddedSchemesParse(t *testing.T) {
	for _, name := range []string{"default.scheme", "light.scheme"} {
		f, err := EmbeddedSchemes.Open("defaults/" + name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		s, err := Parse(f)
		f.Close()
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if s.Name == "" {
			t.Errorf("%s has no name", name)
		}
	}
}
