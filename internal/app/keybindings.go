package app

import (
	"fmt"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/config"
)

// binding is a global key and what it does.
type binding struct {
	name    string
	key     config.Key
	handler func(g *gocui.Gui, v *gocui.View) error
}

// keyBindings parses the configured keys into global bindings.
func (a *App) keyBindings(keys config.KeyBindings) ([]binding, error) {
	entries := []struct {
		name    string
		value   string
		handler func(g *gocui.Gui, v *gocui.View) error
	}{
		{"quit", keys.Quit, a.quitHandler},
		{"stop", keys.Stop, a.stopHandler},
		{"restart", keys.Restart, a.restartHandler},
		{"clear", keys.Clear, a.clearHandler},
		{"paste", keys.Paste, a.pasteHandler},
	}

	bindings := make([]binding, 0, len(entries))
	for _, e := range entries {
		key, err := config.ParseKey(e.value)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", e.name, err)
		}
		bindings = append(bindings, binding{name: e.name, key: key, handler: e.handler})
	}
	return bindings, nil
}

// setupKeybindings registers the global keys with gocui.
func (a *App) setupKeybindings() error {
	for _, b := range a.bindings {
		if err := a.gui.SetKeybinding("", b.key.Value, b.key.Mod, b.handler); err != nil {
			return fmt.Errorf("binding %s: %w", b.name, err)
		}
	}
	return nil
}

// reserved reports whether a key event belongs to a global binding, so
// the console editor leaves it alone.
func (a *App) reserved(key gocui.Key, ch rune, mod gocui.Modifier) bool {
	for _, b := range a.bindings {
		if b.key.Matches(key, ch, mod) {
			return true
		}
	}
	return false
}

// === HANDLERS ===

func (a *App) quitHandler(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// stopHandler kills the running process. The exit shows up as an event.
func (a *App) stopHandler(g *gocui.Gui, v *gocui.View) error {
	if !a.console.IsProcessRunning() {
		return nil
	}
	if err := a.console.StopProcess(); err != nil {
		a.log.Warn("stop failed", "err", err)
	}
	return nil
}

// restartHandler asks for a program line prefilled with the last one.
func (a *App) restartHandler(g *gocui.Gui, v *gocui.View) error {
	if a.prompt.Visible() {
		return nil
	}
	a.prompt.Show(" Run (enter to start, esc to cancel) ", a.command.String(), func(line string) {
		cmd, err := parseCommand(line)
		if err != nil {
			a.log.Warn("invalid command line", "line", line, "err", err)
			return
		}
		a.restart(cmd)
	})
	return nil
}

func (a *App) clearHandler(g *gocui.Gui, v *gocui.View) error {
	if a.prompt.Visible() {
		return nil
	}
	a.console.ClearOutput()
	return nil
}

func (a *App) pasteHandler(g *gocui.Gui, v *gocui.View) error {
	if a.prompt.Visible() {
		return nil
	}
	res := a.editor.Paste()
	a.log.Debug("paste", "handled", res.Handled, "applied", res.Applied)
	return nil
}
