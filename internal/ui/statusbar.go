package ui

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/config"
)

// StatusBarView is the name of the status bar view.
const StatusBarView = "statusbar"

// StatusBar draws the bottom line.
type StatusBar struct {
	theme config.Theme
}

// NewStatusBar creates a status bar using the theme colors.
func NewStatusBar(theme config.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// SetTheme replaces the colors.
func (s *StatusBar) SetTheme(theme config.Theme) {
	s.theme = theme
}

// Layout sets up the status bar view and renders info into it.
func (s *StatusBar) Layout(g *gocui.Gui, info StatusInfo) error {
	maxX, maxY := g.Size()

	v, err := g.SetView(StatusBarView, 0, maxY-2, maxX-1, maxY, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	v.Frame = false
	v.Wrap = false
	v.BgColor = GocuiColor(s.theme.StatusBarBg)
	v.FgColor = GocuiColor(s.theme.StatusBarFg) | gocui.AttrBold

	v.Clear()
	fmt.Fprint(v, " "+RenderStatusBar(info, maxX-2))
	return nil
}
