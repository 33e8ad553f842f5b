// Package app wires the console, the process host and the gocui front end
// together.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clog "github.com/charmbracelet/log"
	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/conpane/internal/config"
	"github.com/abdullathedruid/conpane/internal/console"
	"github.com/abdullathedruid/conpane/internal/host"
	"github.com/abdullathedruid/conpane/internal/logging"
	"github.com/abdullathedruid/conpane/internal/surface"
	"github.com/abdullathedruid/conpane/internal/ui"
	"github.com/abdullathedruid/conpane/internal/version"
)

// Options holds what the command line decides beyond the config file.
type Options struct {
	// File is the program to run.
	File string
	// Args are its arguments, unquoted.
	Args []string
	// ConfigPath is the config file to watch. Empty means the default.
	ConfigPath string
	// Watch reloads console settings when the config file changes.
	Watch  bool
	Logger *clog.Logger
}

// App is the console window.
type App struct {
	gui        *gocui.Gui
	config     *config.Config
	log        *clog.Logger
	doc        *surface.Document
	host       *host.Process
	console    *console.Console
	dispatcher console.Dispatcher

	view     *ui.ConsoleView
	editor   *ui.ConsoleEditor
	status   *ui.StatusBar
	prompt   *ui.Prompt
	bindings []binding

	watcher    *config.Watcher
	configPath string
	watch      bool

	// command is the last program line run; pending is set while a restart
	// waits for the running process to exit.
	command command
	pending *command
}

// command is a program with its argument string.
type command struct {
	file string
	args string
}

func (c command) String() string {
	if c.args == "" {
		return c.file
	}
	return c.file + " " + c.args
}

// New creates the application. The process is started by Run.
func New(cfg *config.Config, opts Options) (*App, error) {
	colors, err := cfg.ConsoleColors()
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}

	log := logging.Component(opts.Logger, "app")

	h, err := host.New(host.Options{
		UsePTY:   cfg.UsePTY,
		CodePage: cfg.CodePage,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating host: %w", err)
	}

	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("initializing GUI: %w", err)
	}

	file := opts.File
	if file == "" {
		file = cfg.DefaultShell
	}

	a := &App{
		gui:        g,
		config:     cfg,
		log:        log,
		doc:        surface.NewDocument(),
		host:       h,
		dispatcher: ui.NewGuiDispatcher(g),
		status:     ui.NewStatusBar(cfg.Theme),
		prompt:     ui.NewPrompt(),
		configPath: opts.ConfigPath,
		watch:      opts.Watch,
		command:    command{file: file, args: JoinArgs(opts.Args)},
	}
	if a.configPath == "" {
		a.configPath = cfg.ConfigFile()
	}

	a.console = console.New(a.doc, h, console.Config{
		Settings:     cfg.ConsoleSettings(),
		Colors:       colors,
		ClearCommand: cfg.ClearCommand,
		Dispatcher:   a.dispatcher,
		Logger:       opts.Logger,
	})
	a.view = ui.NewConsoleView(a.doc)

	if a.bindings, err = a.keyBindings(cfg.Keys); err != nil {
		a.Close()
		return nil, err
	}
	clip := ui.SystemClipboard{}
	if !clip.Available() {
		log.Warn("no clipboard utility found, copy and paste will fail")
	}
	a.editor = ui.NewConsoleEditor(a.console, a.doc, ui.EditorOptions{
		Clipboard: clip,
		PageSize:  a.view.PageSize,
		Reserved:  a.reserved,
		Logger:    opts.Logger,
	})

	return a, nil
}

// Console returns the console driven by the app.
func (a *App) Console() *console.Console {
	return a.console
}

// Run starts the process and the main loop. It returns when the user
// quits.
func (a *App) Run() (err error) {
	defer a.Close()

	a.gui.SetManagerFunc(a.layout)
	a.gui.Cursor = true

	if err := a.setupKeybindings(); err != nil {
		return fmt.Errorf("setting up keybindings: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := a.console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("event pump stopped", "err", err)
		}
	}()

	notifications, unsubscribe := a.console.Subscribe(0)
	defer unsubscribe()
	go a.logNotifications(notifications)

	if a.watch {
		a.startWatcher()
	}

	// Handle SIGINT/SIGTERM for clean exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			a.gui.Update(func(g *gocui.Gui) error {
				return gocui.ErrQuit
			})
		case <-ctx.Done():
		}
	}()

	a.start(a.command)

	defer func() {
		if r := recover(); r != nil {
			wrapped := errors.Wrap(r, 2)
			a.log.Error("panic in main loop", "err", wrapped, "stack", wrapped.ErrorStack())
			err = wrapped
		}
	}()

	if err := a.gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) && err.Error() != "quit" {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// Close stops the process and releases the terminal. It is safe to call
// more than once.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.host != nil {
		if err := a.host.Close(); err != nil {
			a.log.Warn("closing host", "err", err)
		}
		a.host = nil
	}
	if a.gui != nil {
		a.gui.Close()
		a.gui = nil
	}
}

// logNotifications traces console traffic at debug level until the
// subscription is cancelled.
func (a *App) logNotifications(ch <-chan console.Notification) {
	for n := range ch {
		a.log.Debug("console", "kind", n.Kind, "bytes", len(n.Content))
	}
}

// start runs cmd in the console. Failures are reported by the console
// itself, so they are only logged here.
func (a *App) start(cmd command) {
	a.command = cmd
	if err := a.console.StartProcess(cmd.file, cmd.args); err != nil {
		a.log.Error("start failed", "command", cmd.String(), "err", err)
	}
}

// restart runs cmd now, or after the running process has exited.
func (a *App) restart(cmd command) {
	if !a.console.IsProcessRunning() {
		a.start(cmd)
		return
	}
	a.pending = &cmd
	if err := a.console.StopProcess(); err != nil {
		a.log.Warn("stop for restart failed", "err", err)
	}
}

// startPending starts a queued restart once the old process is gone.
func (a *App) startPending() {
	if a.pending == nil || a.console.State() != console.StateStopped {
		return
	}
	cmd := *a.pending
	a.pending = nil
	a.start(cmd)
}

// layout is the gocui manager function.
func (a *App) layout(g *gocui.Gui) error {
	a.startPending()

	maxX, maxY := g.Size()
	v, err := g.SetView(ui.ConsoleViewName, 0, 0, maxX-1, maxY-2, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	v.Editor = a.editor
	a.view.Configure(v, a.title(), a.console.Mode())
	a.view.Render(v)

	if err := a.status.Layout(g, a.statusInfo()); err != nil {
		return err
	}

	focus, err := a.prompt.Layout(g)
	if err != nil {
		return err
	}
	if focus == "" {
		focus = ui.ConsoleViewName
	}
	if _, err := g.SetCurrentView(focus); err != nil {
		return err
	}
	return nil
}

func (a *App) title() string {
	name := a.host.FileName()
	if name == "" {
		name = a.command.file
	}
	return fmt.Sprintf(" %s [%s] │ %s ", name, a.console.Mode(), ui.HelpText(a.config.Keys))
}

func (a *App) statusInfo() ui.StatusInfo {
	settings := a.console.Settings()
	return ui.StatusInfo{
		State:       a.console.State().String(),
		Mode:        a.console.Mode(),
		File:        a.command.String(),
		CodePage:    settings.CodePage,
		Muted:       settings.Mute,
		Diagnostics: settings.ShowDiagnostics,
		Keys:        a.config.Keys,
		Version:     version.Short(),
	}
}

// parseCommand splits a prompt line into a program and its arguments.
func parseCommand(line string) (command, error) {
	fields, err := SplitArgs(line)
	if err != nil {
		return command{}, err
	}
	if len(fields) == 0 {
		return command{}, errors.New("no program given")
	}
	return command{file: fields[0], args: JoinArgs(fields[1:])}, nil
}
