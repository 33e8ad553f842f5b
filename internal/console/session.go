package console

import (
	"context"
	"fmt"

	"github.com/abdullathedruid/conpane/internal/host"
)

// State is the process lifecycle as seen by the console.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// State returns the process state.
func (c *Console) State() State {
	return c.state
}

// IsProcessRunning reports whether a process is running.
func (c *Console) IsProcessRunning() bool {
	return c.state == StateRunning
}

// StartProcess clears the console and starts fileName. Arguments are split
// with shell quoting rules by the host.
func (c *Console) StartProcess(fileName, arguments string) error {
	if c.state != StateStopped {
		return ErrAlreadyRunning
	}

	c.ClearOutput()
	c.state = StateStarting

	if c.settings.ShowDiagnostics {
		banner := fmt.Sprintf("Preparing to run %s.\n", fileName)
		if arguments != "" {
			banner = fmt.Sprintf("Preparing to run %s with arguments %s.\n", fileName, arguments)
		}
		c.writeOutput(banner, c.colors.Diagnostic)
	}

	if err := c.host.Start(fileName, arguments); err != nil {
		c.state = StateStopped
		c.log.Error("start failed", "file", fileName, "err", err)
		if c.settings.ShowDiagnostics {
			c.writeOutput(fmt.Sprintf("Failed to start %s: %v\n", fileName, err), c.colors.Diagnostic)
		}
		return fmt.Errorf("start %s: %w", fileName, err)
	}

	c.state = StateRunning
	c.lastEchoed = ""
	c.surface.SetReadOnly(!c.settings.InputEnabled)
	c.surface.SetCaret(c.surface.End())
	c.log.Info("process running", "file", fileName)
	return nil
}

// StopProcess kills the running process. The console returns to the
// stopped state when the host reports the exit.
func (c *Console) StopProcess() error {
	return c.host.Stop()
}

// ClearOutput empties the surface and the input line. While a process
// runs the clear command is sent to it as well.
func (c *Console) ClearOutput() {
	c.surface.Clear()
	c.buffer.Clear()
	c.boundary = c.surface.End()
	if c.state == StateRunning {
		c.writeInput(c.clearCommand, c.colors.Input, false)
	}
}

// HandleEvent applies a host event. It must run on the owning goroutine.
func (c *Console) HandleEvent(ev host.Event) {
	switch ev.Kind {
	case host.Output:
		c.writeOutput(ev.Content, c.colors.Output)
		c.publish(Notification{Kind: ProcessOutput, Content: ev.Content})
	case host.Error:
		c.writeOutput(ev.Content, c.colors.Error)
		c.publish(Notification{Kind: ProcessOutput, Content: ev.Content})
	case host.Input:
		c.log.Debug("stdin written", "content", ev.Content)
	case host.Exit:
		c.handleExit(ev.ExitCode)
	}
}

func (c *Console) handleExit(code int) {
	c.log.Info("process exited", "file", c.host.FileName(), "code", code)
	if c.settings.ShowDiagnostics {
		banner := fmt.Sprintf("\n%s exited.", c.host.FileName())
		if code != 0 {
			banner = fmt.Sprintf("\n%s exited with code %d.", c.host.FileName(), code)
		}
		c.writeOutput(banner, c.colors.Diagnostic)
	}
	c.surface.SetReadOnly(true)
	c.state = StateStopped
}

// Run forwards host events to the owning goroutine until ctx is done or
// the host closes its event channel.
func (c *Console) Run(ctx context.Context) error {
	events := c.host.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.dispatcher.Post(func() {
				c.HandleEvent(ev)
			})
		}
	}
}
