package input

import (
	"sync"
)

// Buffer holds the input line that has not been submitted yet.
//
// Indices are rune offsets counted from the start of the line. Operations
// that take a start and end accept them in either order, so a reversed
// selection can be passed as is. Every rejected operation leaves the
// buffer untouched.
type Buffer struct {
	runes []rune
	mu    sync.RWMutex
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.runes)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}

// Slice returns the text between start and end, clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lo, hi := b.bounds(start, end)
	return string(b.runes[lo:hi])
}

// bounds orders start and end and clamps both into [0, len].
func (b *Buffer) bounds(start, end int) (lo, hi int) {
	lo, hi = min(start, end), max(start, end)
	lo = max(0, min(lo, len(b.runes)))
	hi = max(0, min(hi, len(b.runes)))
	return lo, hi
}

// Replace replaces the text between start and end with text. When start
// equals end the text is inserted. An insertion point at or past the end
// appends, which keeps stale offsets from a just-cleared buffer harmless.
func (b *Buffer) Replace(start, end int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lo, hi := b.bounds(start, end)
	if lo != hi {
		b.runes = append(b.runes[:lo], b.runes[hi:]...)
	}
	b.insertLocked(lo, []rune(text))
}

func (b *Buffer) insertLocked(at int, r []rune) {
	if len(r) == 0 {
		return
	}
	if at >= len(b.runes) {
		b.runes = append(b.runes, r...)
		return
	}
	tail := append(r, b.runes[at:]...)
	b.runes = append(b.runes[:at], tail...)
}

// DeleteBackward removes the rune before index. It is rejected when index
// is not in (0, len] or the buffer is empty.
func (b *Buffer) DeleteBackward(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index <= 0 || len(b.runes) == 0 || index > len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:index-1], b.runes[index:]...)
	return true
}

// DeleteForward removes the rune at index. It is rejected when index is not
// in [0, len) or the buffer is empty.
func (b *Buffer) DeleteForward(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || len(b.runes) == 0 || index >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:index], b.runes[index+1:]...)
	return true
}

// DeleteRange removes a non-empty range. It is rejected when the range is
// empty or either end lies outside [0, len].
func (b *Buffer) DeleteRange(start, end int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(start) || !b.validLocked(end) || start == end {
		return false
	}
	lo, hi := min(start, end), max(start, end)
	b.runes = append(b.runes[:lo], b.runes[hi:]...)
	return true
}

// InsertText inserts text at index. It is rejected when index is outside
// [0, len].
func (b *Buffer) InsertText(index int, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validLocked(index) {
		return false
	}
	b.insertLocked(index, []rune(text))
	return true
}

// InsertSpace inserts a single space at index.
func (b *Buffer) InsertSpace(index int) bool {
	return b.InsertText(index, " ")
}

// Valid reports whether index lies within [0, len].
func (b *Buffer) Valid(index int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.validLocked(index)
}

func (b *Buffer) validLocked(index int) bool {
	return index >= 0 && index <= len(b.runes)
}

// Commit returns the buffer contents and clears it.
func (b *Buffer) Commit() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := string(b.runes)
	b.runes = nil
	return result
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runes = nil
}
