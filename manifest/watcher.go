package manifest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a List synchronized with the manifest file on disk. The
// initial read happens synchronously in Start; every subsequent file change
// event triggers an independent re-read. Parse failures are swallowed and the
// last-good list stays in effect, so a manifest caught mid-write never
// corrupts the externally visible state.
type Watcher struct {
	path   string
	list   *List
	logger *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher for the manifest named name inside root.
func NewWatcher(root, name string, list *List, logger *slog.Logger) *Watcher {
	return &Watcher{
		path:   filepath.Join(root, name),
		list:   list,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (w *Watcher) Name() string { return "manifest-watcher" }

// Start reads the manifest once and registers a persistent watch on its
// path. A missing manifest is a non-fatal warning: the list stays empty and
// no watch is registered.
func (w *Watcher) Start() error {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn("manifest not found, declared external resources stay empty",
				"path", w.path)
			close(w.done)
			return nil
		}
		return err
	}

	w.read()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.path); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw

	go w.run()
	w.logger.Info("watching manifest", "path", w.path)
	return nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Editors often replace files via rename; re-add the watch so
			// later writes keep arriving.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				_ = w.fsw.Add(w.path)
			}
			w.read()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("manifest watch error", "error", err)
		}
	}
}

// read loads and parses the manifest, replacing the list on success and
// retaining the previous value on any failure.
func (w *Watcher) read() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Debug("manifest read failed, keeping previous resources",
			"path", w.path, "error", err)
		w.list.Touch()
		return
	}

	resources, err := ParseExternalResources(data)
	if err != nil {
		w.logger.Debug("manifest parse failed, keeping previous resources",
			"path", w.path, "error", err)
		w.list.Touch()
		return
	}

	w.list.Replace(resources)
	w.logger.Debug("manifest reloaded", "path", w.path, "resources", len(resources))
}

// Stop closes the underlying watch and waits for the event loop to drain.
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
