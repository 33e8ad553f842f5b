package console

import (
	"runtime"

	"github.com/abdullathedruid/conpane/internal/codepage"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// Settings are the embedder-controlled switches of a console.
type Settings struct {
	// ShowDiagnostics writes start, exit and failure banners.
	ShowDiagnostics bool
	// InputEnabled makes the view editable while a process runs.
	InputEnabled bool
	// Mute suppresses every output write.
	Mute bool
	// CodePage selects the decoder for process output.
	CodePage int
}

// DefaultSettings returns input enabled, diagnostics off, UTF-8.
func DefaultSettings() Settings {
	return Settings{
		InputEnabled: true,
		CodePage:     codepage.UTF8,
	}
}

// Colors are the foreground colors used for each kind of write.
type Colors struct {
	Output     surface.Color
	Error      surface.Color
	Input      surface.Color
	Diagnostic surface.Color
}

// DefaultColors returns white output and input, red errors and green
// diagnostics.
func DefaultColors() Colors {
	return Colors{
		Output:     surface.White,
		Error:      surface.Red,
		Input:      surface.White,
		Diagnostic: surface.Green,
	}
}

// DefaultClearCommand returns the shell's clear-screen command for the
// current platform.
func DefaultClearCommand() string {
	if runtime.GOOS == "windows" {
		return "cls"
	}
	return "clear"
}
