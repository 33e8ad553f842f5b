package ui

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"github.com/mattn/go-runewidth"
)

// PromptView is the name of the prompt modal view.
const PromptView = "prompt"

// Prompt is a single-line modal asking for text.
type Prompt struct {
	title    string
	text     []rune
	visible  bool
	onSubmit func(string)
}

// NewPrompt creates a hidden prompt.
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Show opens the prompt with initial text. onSubmit runs on Enter.
func (p *Prompt) Show(title, initial string, onSubmit func(string)) {
	p.title = title
	p.text = []rune(initial)
	p.onSubmit = onSubmit
	p.visible = true
}

// Hide closes the prompt without submitting.
func (p *Prompt) Hide() {
	p.visible = false
	p.onSubmit = nil
}

// Visible reports whether the prompt is open.
func (p *Prompt) Visible() bool {
	return p.visible
}

// Text returns the current prompt text.
func (p *Prompt) Text() string {
	return string(p.text)
}

// Edit handles key input for the prompt modal.
func (p *Prompt) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	switch {
	case key == gocui.KeyEsc:
		p.Hide()
		return true
	case key == gocui.KeyEnter:
		submit, text := p.onSubmit, string(p.text)
		p.Hide()
		if submit != nil {
			submit(text)
		}
		return true
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		if len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
		return true
	case key == gocui.KeySpace:
		p.text = append(p.text, ' ')
		return true
	case ch != 0 && mod == gocui.ModNone:
		p.text = append(p.text, ch)
		return true
	}
	return false
}

// Layout shows or removes the modal. It returns the view name that
// should have focus, or "" when the prompt is hidden.
func (p *Prompt) Layout(g *gocui.Gui) (string, error) {
	if !p.visible {
		if err := g.DeleteView(PromptView); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return "", err
		}
		return "", nil
	}

	maxX, maxY := g.Size()
	x0, y0, x1, y1 := ModalDimensions(maxX, maxY, 60, 2)
	v, err := g.SetView(PromptView, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return "", err
	}

	v.Title = p.title
	v.Frame = true
	v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
	v.FrameColor = gocui.ColorYellow
	v.Editable = true
	v.Editor = gocui.EditorFunc(p.Edit)

	width, _ := v.Size()
	text := string(p.text)
	shown := text
	if w := runewidth.StringWidth(text); w >= width {
		shown = runewidth.TruncateLeft(text, w-width+1, "")
	}
	v.Clear()
	fmt.Fprint(v, shown)
	v.SetCursor(runewidth.StringWidth(shown), 0)

	return PromptView, nil
}
