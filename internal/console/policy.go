package console

import (
	"strings"
	"unicode"

	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// Result reports what the console did with a user event.
type Result struct {
	// Handled means the event was consumed and the view must not apply it.
	Handled bool
	// Applied means the input line changed.
	Applied bool
	// Cut holds the text removed by Ctrl+X, for the clipboard.
	Cut string
}

var (
	passThrough = Result{}
	rejected    = Result{Handled: true}
	applied     = Result{Handled: true, Applied: true}
)

// selection maps the current surface selection into the input line.
// inside is false when either end lies in the history.
func (c *Console) selection() (start, end int, inside bool) {
	start, end = MapSelection(c.surface, c.boundary, c.buffer.Len())
	return start, end, c.buffer.Valid(start) && c.buffer.Valid(end)
}

// pos converts an input line index to a surface position.
func (c *Console) pos(index int) surface.Position {
	return c.surface.PositionAt(c.boundary, index)
}

// HandleKey filters a key press. Keys that would modify the history are
// consumed without effect. Navigation, Ctrl+C and unrecognised keys pass
// through so the view can move the caret or copy.
func (c *Console) HandleKey(ev input.Event) Result {
	if !c.Mode().IsEditable() {
		return passThrough
	}
	start, end, inside := c.selection()

	switch {
	case ev.Key == input.KeyEnter:
		c.commit()
		return applied
	case ev.Key == input.KeyBackspace:
		return c.deleteBackward(start, end, inside)
	case ev.Key == input.KeyDelete:
		return c.deleteForward(start, end, inside)
	case ev.Key == input.KeySpace:
		if !inside {
			return rejected
		}
		c.replace(start, end, " ")
		return applied
	}

	if !inside {
		if ev.Key.IsNavigation() || ev.IsCtrl('c') {
			return passThrough
		}
		return rejected
	}

	switch {
	case ev.IsCtrl('x'):
		if start == end {
			return rejected
		}
		cut := c.buffer.Slice(start, end)
		c.replace(start, end, "")
		return Result{Handled: true, Applied: true, Cut: cut}
	case ev.IsCtrl('z'):
		// No undo history exists for the input line.
		return rejected
	case ev.Ctrl, ev.Key.IsNavigation(), ev.Key == input.KeyEscape:
		return passThrough
	case ev.Key == input.KeyTab:
		c.replace(start, end, "\t")
		return applied
	case ev.Key == input.KeyRune:
		return c.HandleText(string(ev.Rune))
	}
	return passThrough
}

// HandleText inserts composed text at the caret, replacing any selection.
// Text is rejected unless the selection lies inside the input line.
func (c *Console) HandleText(text string) Result {
	if !c.Mode().IsEditable() {
		return passThrough
	}
	start, end, inside := c.selection()
	if !inside {
		return rejected
	}
	text = strings.Map(func(r rune) rune {
		if r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
	if text == "" {
		return rejected
	}
	c.replace(start, end, text)
	return applied
}

// HandlePaste inserts clipboard text into the input line. Trailing line
// breaks are dropped and inner ones become spaces, so a paste never
// submits a line.
func (c *Console) HandlePaste(text string) Result {
	if !c.Mode().IsEditable() {
		return passThrough
	}
	start, end, inside := c.selection()
	if !inside {
		return rejected
	}
	text = flattenPaste(text)
	if text == "" {
		return rejected
	}
	c.replace(start, end, text)
	c.boundary = c.surface.PositionAt(c.surface.End(), -c.buffer.Len())
	c.surface.ScrollToEnd()
	return applied
}

func flattenPaste(text string) string {
	text = strings.TrimRight(text, "\r\n")
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	return strings.Map(func(r rune) rune {
		if r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
}

// replace edits the input line and mirrors the edit on the surface. The
// caret ends after the inserted text.
func (c *Console) replace(start, end int, text string) {
	lo, hi := min(start, end), max(start, end)
	c.buffer.Replace(lo, hi, text)
	c.surface.Delete(c.pos(lo), c.pos(hi))
	after := c.surface.Insert(c.pos(lo), text, c.colors.Input)
	c.surface.SetCaret(after)
}

func (c *Console) deleteBackward(start, end int, inside bool) Result {
	if !inside {
		return rejected
	}
	if start != end {
		return c.deleteSelection(start, end)
	}
	if !c.buffer.DeleteBackward(start) {
		return rejected
	}
	c.surface.Delete(c.pos(start-1), c.pos(start))
	c.surface.SetCaret(c.pos(start - 1))
	return applied
}

func (c *Console) deleteForward(start, end int, inside bool) Result {
	if !inside {
		return rejected
	}
	if start != end {
		return c.deleteSelection(start, end)
	}
	// Mirror before the buffer shrinks so pos(start+1) is not clamped.
	from, to := c.pos(start), c.pos(start+1)
	if !c.buffer.DeleteForward(start) {
		return rejected
	}
	c.surface.Delete(from, to)
	c.surface.SetCaret(c.pos(start))
	return applied
}

func (c *Console) deleteSelection(start, end int) Result {
	if !c.buffer.DeleteRange(start, end) {
		return rejected
	}
	lo, hi := min(start, end), max(start, end)
	c.surface.Delete(c.pos(lo), c.pos(hi))
	c.surface.SetCaret(c.pos(lo))
	return applied
}

// commit submits the input line. The caret moves to the end, a newline is
// appended and the boundary moves past it.
func (c *Console) commit() {
	line := c.buffer.Commit()
	end := c.surface.End()
	c.surface.SetCaret(end)
	c.surface.Append("\n", c.colors.Input)
	c.boundary = c.surface.End()
	c.surface.SetCaret(c.boundary)
	c.surface.ScrollToEnd()
	c.writeInput(line, c.colors.Input, false)
}
