// Package surface defines the rendering surface a console writes into and
// provides an in-memory styled document implementing it.
package surface

import "fmt"

// Position is an opaque location in a surface's coordinate space.
// Positions are only meaningful to the surface that produced them and must
// not be kept across mutations.
type Position int

// Color is a 24-bit foreground color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
)

// RGB returns the color with the given components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Surface is a mutable styled text document with a caret, a selection and
// a read-only flag.
type Surface interface {
	// Append writes text at the end of the document in the given color.
	Append(text string, fg Color)
	// Insert writes text at the given position and returns the position
	// just after the inserted text.
	Insert(at Position, text string, fg Color) Position
	// Delete removes the text between two positions, in either order.
	Delete(from, to Position)
	// Clear removes all content.
	Clear()

	// Start is the first position of the document.
	Start() Position
	// End is the position just after the last character of content.
	End() Position
	// Offset returns the number of characters from a to b (negative when
	// b lies before a).
	Offset(a, b Position) int
	// PositionAt moves delta characters from a position, clamped to the
	// document.
	PositionAt(from Position, delta int) Position

	// Selection returns the selection anchor and caret. They are equal
	// when nothing is selected and may be in either order.
	Selection() (start, end Position)
	// SetCaret collapses the selection to p.
	SetCaret(p Position)
	// Select sets the selection anchor and caret.
	Select(anchor, caret Position)

	SetReadOnly(readOnly bool)
	ReadOnly() bool

	// ScrollToEnd asks the view to show the end of the document.
	ScrollToEnd()

	// Text returns the plain text of the document.
	Text() string
}
