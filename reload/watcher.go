package reload

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the served root recursively and invokes its callbacks
// once per burst of file change events, debounced by wait.
type Watcher struct {
	root   string
	wait   time.Duration
	logger *slog.Logger
	notify []func()

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher over root. Each callback in notify runs once
// per debounced change burst.
func NewWatcher(root string, wait time.Duration, logger *slog.Logger, notify ...func()) *Watcher {
	return &Watcher{
		root:   root,
		wait:   wait,
		logger: logger,
		notify: notify,
		done:   make(chan struct{}),
	}
}

func (w *Watcher) Name() string { return "file-watcher" }

// Start registers watches for root and every directory below it, then runs
// the debounce loop until Stop.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return err
	}

	w.fsw = fsw
	go w.run()
	w.logger.Info("watching for changes", "root", w.root, "wait", w.wait)
	return nil
}

func (w *Watcher) run() {
	defer close(w.done)

	// The timer is armed on the first event of a burst and pushed back by
	// every further event, so one save-all in an editor means one reload.
	timer := time.NewTimer(w.wait)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New directories must be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(event.Name)
				}
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.wait)
		case <-timer.C:
			for _, fn := range w.notify {
				fn()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("file watch error", "error", err)
		}
	}
}

// Stop closes the underlying watch and waits for the loop to drain.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.fsw != nil {
		if err := w.fsw.Close(); err != nil {
			return err
		}
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
