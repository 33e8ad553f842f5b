package ui

import (
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/input"
)

var namedKeys = map[gocui.Key]input.Key{
	gocui.KeyEnter:      input.KeyEnter,
	gocui.KeyBackspace:  input.KeyBackspace,
	gocui.KeyBackspace2: input.KeyBackspace,
	gocui.KeyDelete:     input.KeyDelete,
	gocui.KeySpace:      input.KeySpace,
	gocui.KeyTab:        input.KeyTab,
	gocui.KeyEsc:        input.KeyEscape,
	gocui.KeyArrowLeft:  input.KeyLeft,
	gocui.KeyArrowRight: input.KeyRight,
	gocui.KeyArrowUp:    input.KeyUp,
	gocui.KeyArrowDown:  input.KeyDown,
	gocui.KeyHome:       input.KeyHome,
	gocui.KeyEnd:        input.KeyEnd,
	gocui.KeyPgup:       input.KeyPageUp,
	gocui.KeyPgdn:       input.KeyPageDown,
}

// Ctrl+H, Ctrl+I and Ctrl+M arrive as backspace, tab and enter.
var ctrlKeys = map[gocui.Key]rune{
	gocui.KeyCtrlA: 'a',
	gocui.KeyCtrlB: 'b',
	gocui.KeyCtrlC: 'c',
	gocui.KeyCtrlD: 'd',
	gocui.KeyCtrlE: 'e',
	gocui.KeyCtrlF: 'f',
	gocui.KeyCtrlG: 'g',
	gocui.KeyCtrlJ: 'j',
	gocui.KeyCtrlK: 'k',
	gocui.KeyCtrlL: 'l',
	gocui.KeyCtrlN: 'n',
	gocui.KeyCtrlO: 'o',
	gocui.KeyCtrlP: 'p',
	gocui.KeyCtrlQ: 'q',
	gocui.KeyCtrlR: 'r',
	gocui.KeyCtrlS: 's',
	gocui.KeyCtrlT: 't',
	gocui.KeyCtrlU: 'u',
	gocui.KeyCtrlV: 'v',
	gocui.KeyCtrlW: 'w',
	gocui.KeyCtrlX: 'x',
	gocui.KeyCtrlY: 'y',
	gocui.KeyCtrlZ: 'z',
}

// TranslateKey converts a gocui key event into a console key event. Alt
// combinations with characters are not text and are not translated.
func TranslateKey(key gocui.Key, ch rune, mod gocui.Modifier) (input.Event, bool) {
	if ch != 0 {
		if mod == gocui.ModAlt {
			return input.Event{}, false
		}
		if ch == ' ' {
			return input.Press(input.KeySpace), true
		}
		return input.Rune(ch), true
	}
	if k, ok := namedKeys[key]; ok {
		return input.Press(k), true
	}
	if r, ok := ctrlKeys[key]; ok {
		return input.Ctrl(r), true
	}
	return input.Event{}, false
}
