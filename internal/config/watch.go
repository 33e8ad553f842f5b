package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file whenever it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	callbacks []func(*Config)
	errorFns  []func(error)

	stopCh chan struct{}
	done   chan struct{}
}

// NewWatcher watches path. The parent directory is watched so that editors
// which replace the file on save are seen too.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{
		path:    filepath.Clean(path),
		watcher: w,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// OnChange registers a callback for every successful reload.
func (w *Watcher) OnChange(cb func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// OnError registers a callback for reloads that fail to parse.
func (w *Watcher) OnError(cb func(error)) {
	w.mu.Lock()
	w.errorFns = append(w.errorFns, cb)
	w.mu.Unlock()
}

// Start begins watching.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and waits for the loop to exit. It must only be
// called after Start.
func (w *Watcher) Stop() {
	select {
	case <-w.stopCh:
		return
	default:
	}
	close(w.stopCh)
	w.watcher.Close()
	<-w.done
}

func (w *Watcher) watchLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.fail(err)
		return
	}

	w.mu.Lock()
	callbacks := append([]func(*Config){}, w.callbacks...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	fns := append([]func(error){}, w.errorFns...)
	w.mu.Unlock()

	for _, fn := range fns {
		fn(err)
	}
}
