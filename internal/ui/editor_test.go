package ui

import (
	"errors"
	"testing"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/config"
	"github.com/abdullathedruid/conpane/internal/console"
	"github.com/abdullathedruid/conpane/internal/host"
	"github.com/abdullathedruid/conpane/internal/surface"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

type nullHost struct{ events chan host.Event }

func (h *nullHost) Start(string, string) error { return nil }
func (h *nullHost) Stop() error                { return nil }
func (h *nullHost) WriteInput(string) error    { return nil }
func (h *nullHost) Events() <-chan host.Event  { return h.events }
func (h *nullHost) FileName() string           { return "sh" }
func (h *nullHost) SetCodePage(int) error      { return nil }

func newEditor(t *testing.T) (*ConsoleEditor, *console.Console, *surface.Document, *fakeClipboard) {
	t.Helper()
	doc := surface.NewDocument()
	c := console.New(doc, &nullHost{}, console.Config{Settings: console.DefaultSettings()})
	if err := c.StartProcess("sh", ""); err != nil {
		t.Fatal(err)
	}
	clip := &fakeClipboard{}
	quit := config.MustParseKey("ctrl+q")
	e := NewConsoleEditor(c, doc, EditorOptions{
		Clipboard: clip,
		Reserved:  quit.Matches,
	})
	return e, c, doc, clip
}

func TestConsoleEditor_Typing(t *testing.T) {
	e, c, doc, _ := newEditor(t)

	for _, ch := range "ls" {
		if !e.Edit(nil, 0, ch, gocui.ModNone) {
			t.Fatalf("Edit(%q) not consumed", ch)
		}
	}
	e.Edit(nil, gocui.KeySpace, 0, gocui.ModNone)
	e.Edit(nil, 0, 'x', gocui.ModNone)
	e.Edit(nil, gocui.KeyBackspace2, 0, gocui.ModNone)

	if got := c.Input(); got != "ls " {
		t.Errorf("Input() = %q, want %q", got, "ls ")
	}
	if got := doc.Text(); got != "ls " {
		t.Errorf("document = %q, want %q", got, "ls ")
	}
}

func TestConsoleEditor_ReservedKeysFallThrough(t *testing.T) {
	e, _, _, _ := newEditor(t)

	if e.Edit(nil, gocui.KeyCtrlQ, 0, gocui.ModNone) {
		t.Error("reserved key should not be consumed by the editor")
	}
	if e.Edit(nil, gocui.KeyF5, 0, gocui.ModNone) {
		t.Error("untranslated key should not be consumed by the editor")
	}
}

func TestConsoleEditor_Navigation(t *testing.T) {
	e, c, doc, _ := newEditor(t)
	c.HandleEvent(host.Event{Kind: host.Output, Content: "one\ntwo\n"})

	e.Edit(nil, gocui.KeyArrowUp, 0, gocui.ModNone)
	if _, caret := doc.Selection(); caret != 4 {
		t.Errorf("after Up caret = %d, want 4", caret)
	}
	e.Edit(nil, gocui.KeyEnd, 0, gocui.ModAlt)
	anchor, caret := doc.Selection()
	if anchor != 4 || caret != 7 {
		t.Errorf("after Alt+End selection = (%d, %d), want (4, 7)", anchor, caret)
	}
	if got := doc.SelectedText(); got != "two" {
		t.Errorf("SelectedText() = %q, want %q", got, "two")
	}

	// Typing over a history selection is rejected.
	if !e.Edit(nil, 0, 'z', gocui.ModNone) {
		t.Error("typing in history should be consumed")
	}
	if got := doc.Text(); got != "one\ntwo\n" {
		t.Errorf("document = %q, want %q", got, "one\ntwo\n")
	}
}

func TestConsoleEditor_CopyAndCut(t *testing.T) {
	e, c, doc, clip := newEditor(t)
	c.HandleEvent(host.Event{Kind: host.Output, Content: "out\n"})
	doc.Select(0, 3)

	e.Edit(nil, gocui.KeyCtrlC, 0, gocui.ModNone)
	if clip.text != "out" {
		t.Errorf("clipboard = %q after copy, want %q", clip.text, "out")
	}

	for _, ch := range "abc" {
		e.Edit(nil, 0, ch, gocui.ModNone)
	}
	// The caret sits in history after the copy, so typing was rejected.
	if c.Input() != "" {
		t.Fatalf("Input() = %q, want empty", c.Input())
	}

	doc.SetCaret(doc.End())
	for _, ch := range "abc" {
		e.Edit(nil, 0, ch, gocui.ModNone)
	}
	b := c.Boundary()
	doc.Select(b, b+2)
	e.Edit(nil, gocui.KeyCtrlX, 0, gocui.ModNone)
	if clip.text != "ab" || c.Input() != "c" {
		t.Errorf("after cut clipboard = %q input = %q, want %q and %q", clip.text, c.Input(), "ab", "c")
	}
}

func TestConsoleEditor_Paste(t *testing.T) {
	e, c, _, clip := newEditor(t)
	clip.text = "echo one\ntwo\n"

	if res := e.Paste(); !res.Applied {
		t.Errorf("Paste() = %+v, want applied", res)
	}
	if got := c.Input(); got != "echo one two" {
		t.Errorf("Input() = %q, want %q", got, "echo one two")
	}

	clip.err = errors.New("no clipboard")
	if res := e.Paste(); res.Applied {
		t.Errorf("Paste() with clipboard error = %+v, want not applied", res)
	}
}
