package ui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/surface"
)

// ConsoleViewName is the name of the console view.
const ConsoleViewName = "console"

const tabWidth = 4

// FormatLine renders a line of cells with 24-bit color escapes. Tabs are
// expanded to spaces. Cells in [selFrom, selTo) are shown reversed.
func FormatLine(cells []surface.Cell, selFrom, selTo int) string {
	var sb strings.Builder
	var cur surface.Color
	styled, reversed := false, false
	col := 0

	for i, c := range cells {
		sel := i >= selFrom && i < selTo
		if sel != reversed {
			if !sel {
				sb.WriteString(ColorReset)
				styled = false
			} else {
				sb.WriteString(ColorReverse)
			}
			reversed = sel
		}
		if !styled || c.Fg != cur {
			sb.WriteString(SGR(c.Fg))
			cur, styled = c.Fg, true
		}

		if c.Rune == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(c.Rune)
		col += runewidth.RuneWidth(c.Rune)
	}
	if styled || reversed {
		sb.WriteString(ColorReset)
	}
	return sb.String()
}

// CellColumn returns the screen column where the character at index col
// of line starts.
func CellColumn(line []surface.Cell, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i].Rune == '\t' {
			x += tabWidth - x%tabWidth
			continue
		}
		x += runewidth.RuneWidth(line[i].Rune)
	}
	return x
}

// ScrollOrigin returns an origin that keeps pos inside a window of size
// cells, moving the current origin as little as possible.
func ScrollOrigin(origin, pos, size int) int {
	if size <= 0 {
		return pos
	}
	if pos < origin {
		return pos
	}
	if pos >= origin+size {
		return pos - size + 1
	}
	return origin
}

// ConsoleView draws a document into a gocui view and keeps the caret in
// sight.
type ConsoleView struct {
	doc    *surface.Document
	ox, oy int
	height int

	lastRev    uint64
	lastW      int
	lastH      int
	lastCursor [2]int
}

// NewConsoleView creates a view renderer for doc.
func NewConsoleView(doc *surface.Document) *ConsoleView {
	return &ConsoleView{doc: doc, lastRev: ^uint64(0)}
}

// PageSize returns the number of visible lines.
func (cv *ConsoleView) PageSize() int {
	return max(1, cv.height)
}

// Configure sets up the gocui view.
func (cv *ConsoleView) Configure(v *gocui.View, title string, mode input.Mode) {
	v.Title = title
	v.Frame = true
	v.Wrap = false
	v.Editable = true
	if mode.IsEditable() {
		v.FrameColor = gocui.ColorGreen
	} else {
		v.FrameColor = gocui.ColorDefault
	}
}

// Render redraws the document when it changed and places the cursor on
// the caret.
func (cv *ConsoleView) Render(v *gocui.View) {
	w, h := v.Size()
	cv.height = h
	rev := cv.doc.Revision()
	if rev == cv.lastRev && w == cv.lastW && h == cv.lastH {
		v.SetCursor(cv.lastCursor[0], cv.lastCursor[1])
		return
	}
	cv.lastRev, cv.lastW, cv.lastH = rev, w, h

	lines := cv.doc.Lines()
	anchor, caret := cv.doc.Selection()
	line, col := cv.doc.LineCol(caret)
	cx := CellColumn(lines[line], col)

	if cv.doc.Following() {
		cv.oy = max(0, len(lines)-h)
	}
	cv.oy = ScrollOrigin(cv.oy, line, h)
	cv.ox = ScrollOrigin(cv.ox, cx, w)

	lo, hi := min(anchor, caret), max(anchor, caret)
	start := surface.Position(0)

	v.Clear()
	for i, l := range lines {
		if i > 0 {
			fmt.Fprint(v, "\n")
		}
		from, to := int(lo-start), int(hi-start)
		fmt.Fprint(v, FormatLine(l, from, to))
		start += surface.Position(len(l) + 1)
	}

	v.SetOrigin(cv.ox, cv.oy)
	cv.lastCursor = [2]int{cx - cv.ox, line - cv.oy}
	v.SetCursor(cv.lastCursor[0], cv.lastCursor[1])
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	width = min(width, maxX-2)
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}
