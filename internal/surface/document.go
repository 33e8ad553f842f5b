package surface

import (
	"strings"
	"sync"
)

// Cell is a single character of a document with its foreground color.
type Cell struct {
	Rune rune
	Fg   Color
}

// Document is an in-memory Surface. Positions are character offsets from
// the start of the document. It is safe for concurrent use so that a
// renderer may read it while the console goroutine writes.
type Document struct {
	mu       sync.RWMutex
	cells    []Cell
	anchor   Position
	caret    Position
	readOnly bool
	follow   bool
	revision uint64
}

// NewDocument creates an empty read-only document.
func NewDocument() *Document {
	return &Document{readOnly: true, follow: true}
}

// normalize converts CRLF and lone CR to LF and drops control characters
// other than newline and tab.
func normalize(text string) []rune {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch {
		case r == '\r':
			out = append(out, '\n')
		case r == '\n' || r == '\t':
			out = append(out, r)
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			out = append(out, r)
		}
	}
	return out
}

func (d *Document) clamp(p Position) Position {
	if p < 0 {
		return 0
	}
	if int(p) > len(d.cells) {
		return Position(len(d.cells))
	}
	return p
}

// Append writes text at the end of the document.
func (d *Document) Append(text string, fg Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.insertLocked(Position(len(d.cells)), normalize(text), fg)
}

// Insert writes text at the given position and returns the position just
// after it.
func (d *Document) Insert(at Position, text string, fg Color) Position {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.insertLocked(d.clamp(at), normalize(text), fg)
}

func (d *Document) insertLocked(at Position, runes []rune, fg Color) Position {
	if len(runes) == 0 {
		return at
	}
	added := make([]Cell, len(runes))
	for i, r := range runes {
		added[i] = Cell{Rune: r, Fg: fg}
	}
	idx := int(at)
	d.cells = append(d.cells[:idx], append(added, d.cells[idx:]...)...)

	n := Position(len(runes))
	if d.anchor > at {
		d.anchor += n
	}
	if d.caret > at {
		d.caret += n
	}
	d.revision++
	return at + n
}

// Delete removes the text between two positions.
func (d *Document) Delete(from, to Position) {
	d.mu.Lock()
	defer d.mu.Unlock()

	from, to = d.clamp(from), d.clamp(to)
	if from > to {
		from, to = to, from
	}
	if from == to {
		return
	}
	d.cells = append(d.cells[:from], d.cells[to:]...)
	d.anchor = shiftForDelete(d.anchor, from, to)
	d.caret = shiftForDelete(d.caret, from, to)
	d.revision++
}

func shiftForDelete(p, from, to Position) Position {
	switch {
	case p >= to:
		return p - (to - from)
	case p > from:
		return from
	default:
		return p
	}
}

// Clear removes all content and resets the caret.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cells = nil
	d.anchor, d.caret = 0, 0
	d.follow = true
	d.revision++
}

// Start returns the first position.
func (d *Document) Start() Position {
	return 0
}

// End returns the position after the last character.
func (d *Document) End() Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Position(len(d.cells))
}

// Offset returns b - a.
func (d *Document) Offset(a, b Position) int {
	return int(b - a)
}

// PositionAt moves delta characters from a position.
func (d *Document) PositionAt(from Position, delta int) Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clamp(from + Position(delta))
}

// Selection returns the anchor and caret.
func (d *Document) Selection() (start, end Position) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.anchor, d.caret
}

// SetCaret collapses the selection at p.
func (d *Document) SetCaret(p Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p = d.clamp(p)
	d.anchor, d.caret = p, p
	d.revision++
}

// Select sets the anchor and caret.
func (d *Document) Select(anchor, caret Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anchor, d.caret = d.clamp(anchor), d.clamp(caret)
	d.revision++
}

// SelectedText returns the text between anchor and caret.
func (d *Document) SelectedText() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	lo, hi := d.anchor, d.caret
	if lo > hi {
		lo, hi = hi, lo
	}
	return cellsText(d.cells[lo:hi])
}

// SetReadOnly sets the read-only flag.
func (d *Document) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = readOnly
	d.revision++
}

// ReadOnly reports the read-only flag.
func (d *Document) ReadOnly() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.readOnly
}

// ScrollToEnd marks the document as following its end.
func (d *Document) ScrollToEnd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.follow = true
	d.revision++
}

// Following reports whether the view should stay pinned to the end, and
// clears the request.
func (d *Document) Following() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.follow
	d.follow = false
	return f
}

// Revision increases on every mutation.
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Text returns the document as plain text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cellsText(d.cells)
}

func cellsText(cells []Cell) string {
	var sb strings.Builder
	sb.Grow(len(cells))
	for _, c := range cells {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Lines returns a copy of the document split into lines. The newline cells
// themselves are not included.
func (d *Document) Lines() [][]Cell {
	d.mu.RLock()
	defer d.mu.RUnlock()

	lines := [][]Cell{nil}
	for _, c := range d.cells {
		if c.Rune == '\n' {
			lines = append(lines, nil)
			continue
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], c)
	}
	return lines
}

// LineCol returns the zero-based line and column (in characters) of p.
func (d *Document) LineCol(p Position) (line, col int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineColLocked(d.clamp(p))
}

func (d *Document) lineColLocked(p Position) (line, col int) {
	for _, c := range d.cells[:p] {
		if c.Rune == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// positionOfLocked returns the position of a line and column, clamping the
// column to the line length.
func (d *Document) positionOfLocked(line, col int) Position {
	if line < 0 {
		return 0
	}
	cur := 0
	start := 0
	for i, c := range d.cells {
		if cur == line {
			break
		}
		if c.Rune == '\n' {
			cur++
			start = i + 1
		}
	}
	if cur < line {
		return Position(len(d.cells))
	}
	p := start
	for p < len(d.cells) && d.cells[p].Rune != '\n' && p-start < col {
		p++
	}
	return Position(p)
}

// MoveCaret moves the caret by delta characters. With extend the anchor
// stays put and the selection grows.
func (d *Document) MoveCaret(delta int, extend bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveLocked(d.clamp(d.caret+Position(delta)), extend)
}

// MoveCaretLine moves the caret up or down by lines, keeping its column
// where the target line is long enough.
func (d *Document) MoveCaretLine(delta int, extend bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, col := d.lineColLocked(d.caret)
	d.moveLocked(d.positionOfLocked(line+delta, col), extend)
}

// MoveCaretLineEdge moves the caret to the start or end of its line.
func (d *Document) MoveCaretLineEdge(end, extend bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, _ := d.lineColLocked(d.caret)
	col := 0
	if end {
		col = len(d.cells)
	}
	d.moveLocked(d.positionOfLocked(line, col), extend)
}

func (d *Document) moveLocked(p Position, extend bool) {
	d.caret = p
	if !extend {
		d.anchor = p
	}
	d.revision++
}

var _ Surface = (*Document)(nil)
