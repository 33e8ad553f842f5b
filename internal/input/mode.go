// Package input provides the console's input line buffer, key events and
// edit mode.
package input

// Mode represents whether the console accepts edits.
type Mode int

const (
	// ModeIdle ignores every key and paste event. The console is in this
	// mode whenever no process is running or input is disabled.
	ModeIdle Mode = iota
	// ModeEditable routes key and paste events to the input buffer.
	ModeEditable
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeEditable:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}

// IsIdle returns true if events are ignored.
func (m Mode) IsIdle() bool {
	return m == ModeIdle
}

// IsEditable returns true if events edit the input line.
func (m Mode) IsEditable() bool {
	return m == ModeEditable
}
