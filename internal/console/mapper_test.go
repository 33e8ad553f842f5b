package console

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abdullathedruid/conpane/internal/host"
	"github.com/abdullathedruid/conpane/internal/input"
	"github.com/abdullathedruid/conpane/internal/surface"
)

func TestMapSelection(t *testing.T) {
	doc := surface.NewDocument()
	doc.Append("history\n", surface.White)
	boundary := doc.End()
	doc.Append("echo hi", surface.White)

	tests := []struct {
		name          string
		anchor, caret surface.Position
		start, end    int
	}{
		{"caret at end", boundary + 7, boundary + 7, 7, 7},
		{"caret at boundary", boundary, boundary, 0, 0},
		{"selection inside", boundary + 4, boundary + 7, 4, 7},
		{"reversed selection", boundary + 7, boundary + 4, 7, 4},
		{"caret in history", 2, 2, -6, -6},
		{"selection across boundary", 3, boundary + 2, -5, 2},
	}

	for _, tt := range tests {
		doc.Select(tt.anchor, tt.caret)
		start, end := MapSelection(doc, boundary, 7)
		if start != tt.start || end != tt.end {
			t.Errorf("%s: MapSelection() = (%d, %d), want (%d, %d)", tt.name, start, end, tt.start, tt.end)
		}
	}
}

// TestConsole_MirrorInvariant drives random edits, outputs and commits and
// checks after every step that the text after the boundary is the buffer.
func TestConsole_MirrorInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	keys := []input.Event{
		input.Rune('a'),
		input.Rune('é'),
		input.Press(input.KeySpace),
		input.Press(input.KeyBackspace),
		input.Press(input.KeyDelete),
		input.Press(input.KeyTab),
		input.Ctrl('x'),
		input.Ctrl('z'),
	}

	for run := 0; run < 100; run++ {
		c, doc, _ := running(t)

		for step := 0; step < 60; step++ {
			history := string([]rune(doc.Text())[:c.Boundary()])

			end := int(doc.End())
			switch rng.IntN(10) {
			case 0:
				c.HandleEvent(host.Event{Kind: host.Output, Content: "out\r\n"})
			case 1:
				c.HandleKey(input.Press(input.KeyEnter))
			case 2:
				c.HandlePaste("p\nq\n")
			case 3, 4:
				doc.Select(surface.Position(rng.IntN(end+1)), surface.Position(rng.IntN(end+1)))
			default:
				c.HandleKey(keys[rng.IntN(len(keys))])
			}

			checkMirror(t, c, doc)
			if !strings.HasPrefix(doc.Text(), history) {
				t.Fatalf("run %d step %d: history %q rewritten to %q", run, step, history, doc.Text())
			}
		}
	}
}
