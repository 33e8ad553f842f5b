package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/abdullathedruid/conpane/internal/surface"
)

// ValidateKeys checks for duplicate keybindings and invalid key strings.
// Printable characters are rejected because the console consumes them as
// typed text.
func ValidateKeys(keys *KeyBindings) error {
	// Build a map of key -> action names for duplicate detection
	keyMap := make(map[string][]string)
	var order []string

	v := reflect.ValueOf(keys).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := t.Field(i).Name

		if field.Kind() != reflect.String {
			continue
		}

		keyStr := field.String()
		if keyStr == "" {
			continue
		}

		key, err := ParseKey(keyStr)
		if err != nil {
			return fmt.Errorf("invalid key for %s: %w", fieldName, err)
		}
		if key.IsRune() {
			return fmt.Errorf("invalid key for %s: %q would be typed into the console", fieldName, keyStr)
		}

		normalizedKey := strings.ToLower(strings.TrimSpace(keyStr))
		if _, seen := keyMap[normalizedKey]; !seen {
			order = append(order, normalizedKey)
		}
		keyMap[normalizedKey] = append(keyMap[normalizedKey], fieldName)
	}

	// Check for duplicates
	var duplicates []string
	for _, key := range order {
		if actions := keyMap[key]; len(actions) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("key %q is used by: %s", key, strings.Join(actions, ", ")))
		}
	}

	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate keybindings found:\n  %s", strings.Join(duplicates, "\n  "))
	}

	return nil
}

// namedColors maps the gocui color names to RGB.
var namedColors = map[string]string{
	"black":   "#000000",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"yellow":  "#ffff00",
	"blue":    "#0000ff",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"white":   "#ffffff",
}

// ValidateColor checks if a color string is valid for gocui.
func ValidateColor(color string) bool {
	name := strings.ToLower(color)
	_, ok := namedColors[name]
	return ok || name == "default"
}

// ParseColor parses "#rrggbb", "#rgb" or a color name.
func ParseColor(s string) (surface.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return surface.Color{}, fmt.Errorf("invalid color %q", s)
	}
	c := chroma.ParseColour(s)
	if !c.IsSet() {
		return surface.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return surface.RGB(c.Red(), c.Green(), c.Blue()), nil
}
