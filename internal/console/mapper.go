package console

import "github.com/abdullathedruid/conpane/internal/surface"

// MapSelection translates the surface selection into buffer indices.
//
// The input line occupies bufferLen characters starting at boundary. An
// index in [0, bufferLen] lies within the line; a negative index lies in
// the history before the boundary. Positions must be read fresh for every
// event because both the document and the boundary move between events.
func MapSelection(s surface.Surface, boundary surface.Position, bufferLen int) (start, end int) {
	inputEnd := s.PositionAt(boundary, bufferLen)
	a, b := s.Selection()
	start = bufferLen - s.Offset(a, inputEnd)
	end = bufferLen - s.Offset(b, inputEnd)
	return start, end
}
