package config

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"
)

// Key represents a parsed key binding.
type Key struct {
	Value any // rune for single chars, gocui.Key for special keys
	Mod   gocui.Modifier
}

// ParseKey parses a key string into a gocui-compatible key value.
// Supported formats:
//   - Ctrl combinations: "ctrl+q", "ctrl+r"
//   - Alt combinations: "alt+x", "alt+f4"
//   - Special keys: "f1".."f12", "esc", "insert", "pgup"
//   - Single characters, case preserved: "q", "N"
func ParseKey(s string) (Key, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Key{}, fmt.Errorf("empty key string")
	}
	lower := strings.ToLower(trimmed)

	if rest, found := strings.CutPrefix(lower, "alt+"); found {
		key, err := ParseKey(trimmed[len("alt+"):])
		if err != nil || rest == "" {
			return Key{}, fmt.Errorf("invalid alt combination: %s", s)
		}
		key.Mod = gocui.ModAlt
		return key, nil
	}

	if char, found := strings.CutPrefix(lower, "ctrl+"); found {
		if ctrlKey, ok := ctrlKeyMap[char]; ok {
			return Key{Value: ctrlKey, Mod: gocui.ModNone}, nil
		}
		return Key{}, fmt.Errorf("invalid ctrl combination: %s", s)
	}

	if key, ok := specialKeyMap[lower]; ok {
		return Key{Value: key, Mod: gocui.ModNone}, nil
	}

	if r := []rune(trimmed); len(r) == 1 {
		return Key{Value: r[0], Mod: gocui.ModNone}, nil
	}

	return Key{}, fmt.Errorf("unknown key: %s", s)
}

// MustParseKey is ParseKey for keys already validated by Load.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsRune returns true if the key is a rune (single character).
func (k Key) IsRune() bool {
	_, ok := k.Value.(rune)
	return ok
}

// Rune returns the key as a rune, or 0 if not a rune.
func (k Key) Rune() rune {
	if r, ok := k.Value.(rune); ok {
		return r
	}
	return 0
}

// GocuiKey returns the key as a gocui.Key, or 0 if not a special key.
func (k Key) GocuiKey() gocui.Key {
	if key, ok := k.Value.(gocui.Key); ok {
		return key
	}
	return 0
}

// Matches reports whether a gocui key event is this binding.
func (k Key) Matches(key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if mod != k.Mod {
		return false
	}
	if k.IsRune() {
		return ch == k.Rune()
	}
	return ch == 0 && key == k.GocuiKey()
}

// specialKeyMap maps string names to gocui special keys. Editing and
// arrow keys are left out because the console needs them.
var specialKeyMap = map[string]gocui.Key{
	"esc":      gocui.KeyEsc,
	"escape":   gocui.KeyEsc,
	"insert":   gocui.KeyInsert,
	"pgup":     gocui.KeyPgup,
	"pageup":   gocui.KeyPgup,
	"pgdn":     gocui.KeyPgdn,
	"pagedown": gocui.KeyPgdn,
	"f1":       gocui.KeyF1,
	"f2":       gocui.KeyF2,
	"f3":       gocui.KeyF3,
	"f4":       gocui.KeyF4,
	"f5":       gocui.KeyF5,
	"f6":       gocui.KeyF6,
	"f7":       gocui.KeyF7,
	"f8":       gocui.KeyF8,
	"f9":       gocui.KeyF9,
	"f10":      gocui.KeyF10,
	"f11":      gocui.KeyF11,
	"f12":      gocui.KeyF12,
}

// ctrlKeyMap maps single characters to their ctrl+key equivalents. Ctrl+H,
// Ctrl+I and Ctrl+M are missing because terminals send them for
// backspace, tab and enter.
var ctrlKeyMap = map[string]gocui.Key{
	"a": gocui.KeyCtrlA,
	"b": gocui.KeyCtrlB,
	"c": gocui.KeyCtrlC,
	"d": gocui.KeyCtrlD,
	"e": gocui.KeyCtrlE,
	"f": gocui.KeyCtrlF,
	"g": gocui.KeyCtrlG,
	"j": gocui.KeyCtrlJ,
	"k": gocui.KeyCtrlK,
	"l": gocui.KeyCtrlL,
	"n": gocui.KeyCtrlN,
	"o": gocui.KeyCtrlO,
	"p": gocui.KeyCtrlP,
	"q": gocui.KeyCtrlQ,
	"r": gocui.KeyCtrlR,
	"s": gocui.KeyCtrlS,
	"t": gocui.KeyCtrlT,
	"u": gocui.KeyCtrlU,
	"v": gocui.KeyCtrlV,
	"w": gocui.KeyCtrlW,
	"x": gocui.KeyCtrlX,
	"y": gocui.KeyCtrlY,
	"z": gocui.KeyCtrlZ,
}

// KeyToString converts a Key back to its string representation.
func KeyToString(k Key) string {
	prefix := ""
	if k.Mod == gocui.ModAlt {
		prefix = "alt+"
	}
	if k.IsRune() {
		return prefix + string(k.Rune())
	}

	gKey := k.GocuiKey()

	// Prefer the short names where aliases exist.
	for _, name := range []string{"esc", "pgup", "pgdn"} {
		if specialKeyMap[name] == gKey {
			return prefix + name
		}
	}
	for name, key := range specialKeyMap {
		if key == gKey {
			return prefix + name
		}
	}

	for char, key := range ctrlKeyMap {
		if key == gKey {
			return prefix + "ctrl+" + char
		}
	}

	return ""
}
