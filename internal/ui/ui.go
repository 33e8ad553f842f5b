// Package ui renders a console document into gocui views and translates
// gocui key events for the console.
package ui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/conpane/internal/config"
	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// Colors and styles for the TUI
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorReverse = "\033[7m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
)

// SGR returns the escape sequence selecting c as the 24-bit foreground.
func SGR(c surface.Color) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// gocuiColors maps config color names to gocui attributes.
var gocuiColors = map[string]gocui.Attribute{
	"default": gocui.ColorDefault,
	"black":   gocui.ColorBlack,
	"red":     gocui.ColorRed,
	"green":   gocui.ColorGreen,
	"yellow":  gocui.ColorYellow,
	"blue":    gocui.ColorBlue,
	"magenta": gocui.ColorMagenta,
	"cyan":    gocui.ColorCyan,
	"white":   gocui.ColorWhite,
}

// GocuiColor returns the attribute for a color name, or ColorDefault.
func GocuiColor(name string) gocui.Attribute {
	if c, ok := gocuiColors[strings.ToLower(name)]; ok {
		return c
	}
	return gocui.ColorDefault
}

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	State       string
	Mode        input.Mode
	File        string
	CodePage    int
	Muted       bool
	Diagnostics bool
	Keys        config.KeyBindings
	Version     string
}

// RenderStatusBar creates the bottom status bar content, fitted to width.
func RenderStatusBar(info StatusInfo, width int) string {
	left := fmt.Sprintf("[%s] %s", info.Mode, info.State)
	if info.File != "" {
		left += " │ " + info.File
	}
	left += fmt.Sprintf(" │ cp %d", info.CodePage)
	if info.Muted {
		left += " │ muted"
	}
	if info.Diagnostics {
		left += " │ diag"
	}

	k := info.Keys
	help := fmt.Sprintf("%s:stop %s:run %s:clear %s:quit", k.Stop, k.Restart, k.Clear, k.Quit)
	right := help + "  " + info.Version

	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 2 {
		return Truncate(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// HelpText returns the keybinding summary shown in the console title.
func HelpText(k config.KeyBindings) string {
	return fmt.Sprintf("%s paste · ctrl+c copy · ctrl+x cut · alt+arrows select", k.Paste)
}
