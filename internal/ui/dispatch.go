package ui

import (
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/console"
)

// GuiDispatcher runs console work on the gocui main loop. Functions are
// queued in order and drained by the next update, so a burst of posts
// keeps its order even though gocui updates are delivered asynchronously.
type GuiDispatcher struct {
	gui   *gocui.Gui
	queue *console.Queue
}

// NewGuiDispatcher creates a dispatcher for g.
func NewGuiDispatcher(g *gocui.Gui) *GuiDispatcher {
	return &GuiDispatcher{gui: g, queue: console.NewQueue()}
}

// Post queues fn and schedules a drain on the main loop.
func (d *GuiDispatcher) Post(fn func()) {
	d.queue.Post(fn)
	d.gui.Update(func(*gocui.Gui) error {
		d.queue.Drain()
		return nil
	})
}
