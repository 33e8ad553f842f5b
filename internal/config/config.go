// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdullathedruid/conpane/internal/codepage"
	"github.com/abdullathedruid/conpane/internal/console"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory holding the config file and the log.
	DataDir string `yaml:"-"`

	// ShowDiagnostics writes start and exit banners into the console.
	ShowDiagnostics bool `yaml:"show_diagnostics"`

	// InputEnabled lets the user type into the running process.
	InputEnabled bool `yaml:"input_enabled"`

	// Mute suppresses process output.
	Mute bool `yaml:"mute"`

	// CodePage selects the decoder for process output (65001 is UTF-8).
	CodePage int `yaml:"code_page"`

	// UsePTY runs the process on a pseudo-terminal.
	UsePTY bool `yaml:"use_pty"`

	// ClearCommand is sent to the process when the console is cleared.
	ClearCommand string `yaml:"clear_command"`

	// DefaultShell is run when no program is given on the command line.
	DefaultShell string `yaml:"default_shell"`

	// LogFile is the log destination; "-" disables logging.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Colors holds the console write colors.
	Colors ColorConfig `yaml:"colors"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`
}

// KeyBindings holds all configurable keybindings.
type KeyBindings struct {
	Quit    string `yaml:"quit"`
	Stop    string `yaml:"stop"`
	Restart string `yaml:"restart"`
	Clear   string `yaml:"clear"`
	Paste   string `yaml:"paste"`
}

// ColorConfig holds console colors as "#rrggbb" or a color name.
type ColorConfig struct {
	Output     string `yaml:"output"`
	Error      string `yaml:"error"`
	Input      string `yaml:"input"`
	Diagnostic string `yaml:"diagnostic"`
}

// Theme holds theme configuration.
type Theme struct {
	StatusBarBg string `yaml:"statusbar_bg"`
	StatusBarFg string `yaml:"statusbar_fg"`
}

// fileConfig mirrors Config for parsing. Booleans are pointers so that an
// explicit false in the file can override a true default.
type fileConfig struct {
	ShowDiagnostics *bool       `yaml:"show_diagnostics"`
	InputEnabled    *bool       `yaml:"input_enabled"`
	Mute            *bool       `yaml:"mute"`
	CodePage        int         `yaml:"code_page"`
	UsePTY          *bool       `yaml:"use_pty"`
	ClearCommand    string      `yaml:"clear_command"`
	DefaultShell    string      `yaml:"default_shell"`
	LogFile         string      `yaml:"log_file"`
	LogLevel        string      `yaml:"log_level"`
	Keys            KeyBindings `yaml:"keys"`
	Colors          ColorConfig `yaml:"colors"`
	Theme           Theme       `yaml:"theme"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		InputEnabled: true,
		CodePage:     codepage.UTF8,
		ClearCommand: console.DefaultClearCommand(),
		DefaultShell: getDefaultShell(),
		LogLevel:     "info",
		Keys:         DefaultKeyBindings(),
		Colors:       DefaultColors(),
		Theme:        DefaultTheme(),
	}
}

// DefaultKeyBindings returns the default keybindings. Typed characters go
// to the console, so every action is bound to a control key.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:    "ctrl+q",
		Stop:    "ctrl+k",
		Restart: "ctrl+r",
		Clear:   "ctrl+l",
		Paste:   "ctrl+v",
	}
}

// DefaultColors returns the default console colors.
func DefaultColors() ColorConfig {
	return ColorConfig{
		Output:     "white",
		Error:      "red",
		Input:      "white",
		Diagnostic: "#00ff00",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		StatusBarBg: "blue",
		StatusBarFg: "white",
	}
}

// Load loads configuration from the default config file, falling back to
// defaults.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path. An empty path means the default
// config file. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = cfg.ConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := cfg.parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parse merges YAML data over cfg and validates the result.
func (c *Config) parse(data []byte) error {
	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	// Merge file config with defaults (file values override defaults)
	mergeConfig(c, &fileCfg)

	return c.Validate()
}

// Validate checks keybindings, colors and the code page.
func (c *Config) Validate() error {
	if err := ValidateKeys(&c.Keys); err != nil {
		return err
	}
	if _, err := c.ConsoleColors(); err != nil {
		return err
	}
	if !ValidateColor(c.Theme.StatusBarBg) || !ValidateColor(c.Theme.StatusBarFg) {
		return fmt.Errorf("invalid status bar color %q/%q", c.Theme.StatusBarBg, c.Theme.StatusBarFg)
	}
	if _, err := codepage.Lookup(c.CodePage); err != nil {
		return fmt.Errorf("code_page: %w", err)
	}
	return nil
}

// mergeConfig merges file configuration into the default configuration.
// Only values present in the file are applied.
func mergeConfig(dst *Config, src *fileConfig) {
	if src.ShowDiagnostics != nil {
		dst.ShowDiagnostics = *src.ShowDiagnostics
	}
	if src.InputEnabled != nil {
		dst.InputEnabled = *src.InputEnabled
	}
	if src.Mute != nil {
		dst.Mute = *src.Mute
	}
	if src.UsePTY != nil {
		dst.UsePTY = *src.UsePTY
	}
	if src.CodePage != 0 {
		dst.CodePage = src.CodePage
	}
	if src.ClearCommand != "" {
		dst.ClearCommand = src.ClearCommand
	}
	if src.DefaultShell != "" {
		dst.DefaultShell = src.DefaultShell
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
	mergeColors(&dst.Colors, &src.Colors)

	if src.Theme.StatusBarBg != "" {
		dst.Theme.StatusBarBg = src.Theme.StatusBarBg
	}
	if src.Theme.StatusBarFg != "" {
		dst.Theme.StatusBarFg = src.Theme.StatusBarFg
	}
}

// mergeKeyBindings merges keybindings from src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	if src.Quit != "" {
		dst.Quit = src.Quit
	}
	if src.Stop != "" {
		dst.Stop = src.Stop
	}
	if src.Restart != "" {
		dst.Restart = src.Restart
	}
	if src.Clear != "" {
		dst.Clear = src.Clear
	}
	if src.Paste != "" {
		dst.Paste = src.Paste
	}
}

func mergeColors(dst, src *ColorConfig) {
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.Error != "" {
		dst.Error = src.Error
	}
	if src.Input != "" {
		dst.Input = src.Input
	}
	if src.Diagnostic != "" {
		dst.Diagnostic = src.Diagnostic
	}
}

// ConsoleSettings returns the console switches of the config.
func (c *Config) ConsoleSettings() console.Settings {
	return console.Settings{
		ShowDiagnostics: c.ShowDiagnostics,
		InputEnabled:    c.InputEnabled,
		Mute:            c.Mute,
		CodePage:        c.CodePage,
	}
}

// ConsoleColors parses the configured colors.
func (c *Config) ConsoleColors() (console.Colors, error) {
	var colors console.Colors
	fields := []struct {
		name  string
		value string
		dst   *surface.Color
	}{
		{"output", c.Colors.Output, &colors.Output},
		{"error", c.Colors.Error, &colors.Error},
		{"input", c.Colors.Input, &colors.Input},
		{"diagnostic", c.Colors.Diagnostic, &colors.Diagnostic},
	}
	for _, f := range fields {
		col, err := ParseColor(f.value)
		if err != nil {
			return console.Colors{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return colors, nil
}

// LogPath returns the log file path, or "" when logging is disabled.
func (c *Config) LogPath() string {
	switch c.LogFile {
	case "-":
		return ""
	case "":
		return filepath.Join(c.DataDir, "conpane.log")
	default:
		return c.LogFile
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "conpane")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".conpane"
	}
	return filepath.Join(home, ".config", "conpane")
}

// getDefaultShell returns the user's default shell.
func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	if shell := os.Getenv("COMSPEC"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}
