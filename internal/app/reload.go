package app

import (
	"github.com/abdullathedruid/conpane/internal/config"
)

// startWatcher reloads the config file on change. A missing config
// directory only disables reloading.
func (a *App) startWatcher() {
	w, err := config.NewWatcher(a.configPath)
	if err != nil {
		a.log.Warn("config watch disabled", "path", a.configPath, "err", err)
		return
	}
	w.OnChange(func(cfg *config.Config) {
		a.dispatcher.Post(func() { a.applyConfig(cfg) })
	})
	w.OnError(func(err error) {
		a.log.Warn("config reload failed", "path", a.configPath, "err", err)
	})
	w.Start()
	a.watcher = w
}

// applyConfig applies the live parts of a reloaded config: the console
// switches, the colors and the status bar theme. Keys, the pty mode and
// the log destination need a restart.
func (a *App) applyConfig(cfg *config.Config) {
	if err := a.console.ApplySettings(cfg.ConsoleSettings()); err != nil {
		a.log.Warn("applying settings", "err", err)
	}
	if colors, err := cfg.ConsoleColors(); err != nil {
		a.log.Warn("applying colors", "err", err)
	} else {
		a.console.SetColors(colors)
	}
	a.status.SetTheme(cfg.Theme)

	if cfg.Keys != a.config.Keys {
		a.log.Info("key bindings changed, restart to apply")
	}
	keys := a.config.Keys
	a.config = cfg
	a.config.Keys = keys
	a.log.Info("config reloaded", "state", a.console.State(), "mode", a.console.Mode())
}
