package console

import (
	"fmt"
	"strings"

	"github.com/abdullathedruid/conpane/internal/surface"
)

// WriteOutput appends text to the history in the given color. It may be
// called from any goroutine.
func (c *Console) WriteOutput(text string, fg surface.Color) {
	c.dispatcher.Post(func() {
		c.writeOutput(text, fg)
	})
}

// WriteInput sends text to the process as a line, optionally echoing it
// into the history first. It may be called from any goroutine.
func (c *Console) WriteInput(text string, fg surface.Color, echo bool) {
	c.dispatcher.Post(func() {
		c.writeInput(text, fg, echo)
	})
}

// writeOutput appends to the history unless muted or the text is the echo
// of the last line sent. It reports whether anything was written.
func (c *Console) writeOutput(text string, fg surface.Color) bool {
	if c.settings.Mute {
		return false
	}
	if c.isEcho(text) {
		c.log.Debug("echo suppressed", "text", text)
		return false
	}
	c.appendHistory(text, fg)
	return true
}

// isEcho reports whether text is the process repeating the last line.
func (c *Console) isEcho(text string) bool {
	if c.lastEchoed == "" {
		return false
	}
	if text == c.lastEchoed {
		return true
	}
	if strings.ReplaceAll(text, "\r\n", "") == c.lastEchoed {
		return true
	}
	return strings.ReplaceAll(text, "\n", "") == c.lastEchoed
}

// appendHistory writes text before the pending input line and moves the
// boundary past it. The caret follows the end of the document.
func (c *Console) appendHistory(text string, fg surface.Color) {
	if c.buffer.Len() == 0 {
		c.surface.Append(text, fg)
		c.boundary = c.surface.End()
	} else {
		c.boundary = c.surface.Insert(c.boundary, text, fg)
	}
	c.surface.SetCaret(c.surface.End())
	c.surface.ScrollToEnd()
}

func (c *Console) writeInput(text string, fg surface.Color, echo bool) {
	if echo {
		c.appendHistory(text, fg)
	}
	c.lastEchoed = text

	if err := c.host.WriteInput(text); err != nil {
		c.log.Warn("write input failed", "err", err)
		if c.settings.ShowDiagnostics {
			c.writeOutput(fmt.Sprintf("\nFailed to write input: %v\n", err), c.colors.Diagnostic)
		}
	}
	c.publish(Notification{Kind: ProcessInput, Content: text})
}
