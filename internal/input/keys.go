package input

// Key identifies a key press independently of the terminal library that
// produced it.
type Key int

const (
	// KeyRune is a printable character carried in Event.Rune.
	KeyRune Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeySpace
	KeyTab
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeySpace:
		return "space"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "esc"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdn"
	default:
		return "unknown"
	}
}

// IsNavigation returns true for keys that only move the caret.
func (k Key) IsNavigation() bool {
	switch k {
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown:
		return true
	}
	return false
}

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune // set when Key is KeyRune
	Ctrl bool
}

// Rune returns a plain character event.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns a control-modified character event such as Ctrl+X.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Ctrl: true}
}

// Press returns an event for a non-character key.
func Press(k Key) Event {
	return Event{Key: k}
}

// IsCtrl reports whether the event is Ctrl plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.Ctrl && e.Key == KeyRune && (e.Rune == r || e.Rune == r-'a'+'A')
}

// String returns a readable description such as "ctrl+x" or "enter".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if e.Ctrl {
		return "ctrl+" + name
	}
	return name
}
