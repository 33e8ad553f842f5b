// Package console turns a styled text surface into an interactive
// console for a child process.
//
// Process output is appended to the surface as history. The characters
// after the input boundary mirror the pending input line, and key events
// are filtered so that only that line can be edited. All methods except
// Post-based writers and Subscribe must be called on the goroutine that
// owns the surface; events from other goroutines are marshaled there
// through the Dispatcher.
package console

import (
	"errors"
	"sync"

	clog "github.com/charmbracelet/log"

	"github.com/abdullathedruid/conpane/internal/codepage"
	"github.com/abdullathedruid/conpane/internal/host"
	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/logging"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// Host runs the child process.
type Host interface {
	Start(fileName, arguments string) error
	Stop() error
	WriteInput(text string) error
	Events() <-chan host.Event
	FileName() string
	SetCodePage(cp int) error
}

// ErrAlreadyRunning is returned by StartProcess while a process runs.
var ErrAlreadyRunning = errors.New("a process is already running")

// Config configures a Console. Zero fields take defaults, except Settings
// which callers should start from DefaultSettings.
type Config struct {
	Settings     Settings
	Colors       Colors
	ClearCommand string
	Dispatcher   Dispatcher
	Logger       *clog.Logger
}

// Console is the input-and-output engine between a surface and a host.
type Console struct {
	surface    surface.Surface
	host       Host
	buffer     *input.Buffer
	dispatcher Dispatcher
	log        *clog.Logger

	settings     Settings
	colors       Colors
	clearCommand string

	state      State
	boundary   surface.Position
	lastEchoed string

	subsMu  sync.Mutex
	subs    map[int]chan Notification
	nextSub int
}

// New creates a console writing into s and driving h.
func New(s surface.Surface, h Host, cfg Config) *Console {
	if cfg.Colors == (Colors{}) {
		cfg.Colors = DefaultColors()
	}
	if cfg.ClearCommand == "" {
		cfg.ClearCommand = DefaultClearCommand()
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = Inline{}
	}
	if cfg.Settings.CodePage == 0 {
		cfg.Settings.CodePage = codepage.UTF8
	}

	s.SetReadOnly(true)
	return &Console{
		surface:      s,
		host:         h,
		buffer:       input.NewBuffer(),
		dispatcher:   cfg.Dispatcher,
		log:          logging.Component(cfg.Logger, "console"),
		settings:     cfg.Settings,
		colors:       cfg.Colors,
		clearCommand: cfg.ClearCommand,
		boundary:     s.End(),
		subs:         make(map[int]chan Notification),
	}
}

// Surface returns the surface the console writes into.
func (c *Console) Surface() surface.Surface {
	return c.surface
}

// Host returns the process host.
func (c *Console) Host() Host {
	return c.host
}

// Input returns the pending input line.
func (c *Console) Input() string {
	return c.buffer.String()
}

// Boundary returns the position where the pending input line starts.
func (c *Console) Boundary() surface.Position {
	return c.boundary
}

// LastEchoed returns the last line written to the process.
func (c *Console) LastEchoed() string {
	return c.lastEchoed
}

// Settings returns the current settings.
func (c *Console) Settings() Settings {
	return c.settings
}

// Colors returns the write colors.
func (c *Console) Colors() Colors {
	return c.colors
}

// SetColors replaces the write colors for later writes.
func (c *Console) SetColors(colors Colors) {
	c.colors = colors
}

// Mode returns ModeEditable while a process runs with input enabled.
func (c *Console) Mode() input.Mode {
	if c.state == StateRunning && c.settings.InputEnabled {
		return input.ModeEditable
	}
	return input.ModeIdle
}

// SetShowDiagnostics toggles diagnostic banners. The return value reports
// whether the embedder must act on the change, which is never the case.
func (c *Console) SetShowDiagnostics(show bool) bool {
	c.settings.ShowDiagnostics = show
	return false
}

// SetMute toggles output suppression. Writes already on the surface stay.
func (c *Console) SetMute(mute bool) bool {
	c.settings.Mute = mute
	return false
}

// SetInputEnabled toggles user input. It returns true when the surface's
// read-only flag was updated because a process is running.
func (c *Console) SetInputEnabled(enabled bool) bool {
	changed := c.settings.InputEnabled != enabled
	c.settings.InputEnabled = enabled
	if c.state == StateRunning {
		c.surface.SetReadOnly(!enabled)
		return changed
	}
	return false
}

// SetCodePage changes the output code page for processes started later.
// It returns true when the host was reconfigured.
func (c *Console) SetCodePage(cp int) (bool, error) {
	if cp == c.settings.CodePage {
		return false, nil
	}
	if err := c.host.SetCodePage(cp); err != nil {
		return false, err
	}
	c.settings.CodePage = cp
	return true, nil
}

// ApplySettings applies every field of s through its setter.
func (c *Console) ApplySettings(s Settings) error {
	c.SetShowDiagnostics(s.ShowDiagnostics)
	c.SetMute(s.Mute)
	c.SetInputEnabled(s.InputEnabled)
	if s.CodePage != 0 {
		if _, err := c.SetCodePage(s.CodePage); err != nil {
			return err
		}
	}
	return nil
}
