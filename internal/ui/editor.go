package ui

import (
	clog "github.com/charmbracelet/log"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/console"
	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/logging"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// ConsoleEditor feeds gocui key events to a console. Keys the console
// lets through move the caret or copy the selection.
type ConsoleEditor struct {
	console   *console.Console
	doc       *surface.Document
	clipboard Clipboard
	pageSize  func() int
	reserved  func(key gocui.Key, ch rune, mod gocui.Modifier) bool
	log       *clog.Logger
}

// EditorOptions configures a ConsoleEditor.
type EditorOptions struct {
	Clipboard Clipboard
	// PageSize returns the number of lines moved by PageUp and PageDown.
	PageSize func() int
	// Reserved reports keys that belong to global keybindings.
	Reserved func(key gocui.Key, ch rune, mod gocui.Modifier) bool
	Logger   *clog.Logger
}

// NewConsoleEditor creates an editor for c, whose surface is doc.
func NewConsoleEditor(c *console.Console, doc *surface.Document, opts EditorOptions) *ConsoleEditor {
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.PageSize == nil {
		opts.PageSize = func() int { return 10 }
	}
	return &ConsoleEditor{
		console:   c,
		doc:       doc,
		clipboard: opts.Clipboard,
		pageSize:  opts.PageSize,
		reserved:  opts.Reserved,
		log:       logging.Component(opts.Logger, "editor"),
	}
}

// Edit implements gocui.Editor. Returning false lets global keybindings
// see the key.
func (e *ConsoleEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if e.reserved != nil && e.reserved(key, ch, mod) {
		return false
	}
	ev, ok := TranslateKey(key, ch, mod)
	if !ok {
		return false
	}

	res := e.console.HandleKey(ev)
	e.log.Debug("key", "event", ev, "handled", res.Handled, "applied", res.Applied)
	if res.Cut != "" {
		e.copy(res.Cut)
	}
	if res.Handled {
		return true
	}
	return e.passThrough(ev, mod == gocui.ModAlt)
}

// passThrough applies keys the console did not consume.
func (e *ConsoleEditor) passThrough(ev input.Event, extend bool) bool {
	switch {
	case ev.IsCtrl('c'):
		if text := e.doc.SelectedText(); text != "" {
			e.copy(text)
		}
	case ev.Key == input.KeyLeft:
		e.doc.MoveCaret(-1, extend)
	case ev.Key == input.KeyRight:
		e.doc.MoveCaret(1, extend)
	case ev.Key == input.KeyUp:
		e.doc.MoveCaretLine(-1, extend)
	case ev.Key == input.KeyDown:
		e.doc.MoveCaretLine(1, extend)
	case ev.Key == input.KeyHome:
		e.doc.MoveCaretLineEdge(false, extend)
	case ev.Key == input.KeyEnd:
		e.doc.MoveCaretLineEdge(true, extend)
	case ev.Key == input.KeyPageUp:
		e.doc.MoveCaretLine(-e.pageSize(), extend)
	case ev.Key == input.KeyPageDown:
		e.doc.MoveCaretLine(e.pageSize(), extend)
	default:
		return false
	}
	return true
}

// Paste inserts the clipboard text into the input line.
func (e *ConsoleEditor) Paste() console.Result {
	text, err := e.clipboard.ReadAll()
	if err != nil {
		e.log.Warn("clipboard read failed", "err", err)
		return console.Result{}
	}
	return e.console.HandlePaste(text)
}

func (e *ConsoleEditor) copy(text string) {
	if err := e.clipboard.WriteAll(text); err != nil {
		e.log.Warn("clipboard write failed", "err", err)
	}
}
