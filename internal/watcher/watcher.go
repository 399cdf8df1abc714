// Package watcher monitors the workshop and mods folders for filesystem
// changes, so watch mode can re-run an integrity check after Steam finishes
// downloading an update.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval coalesces the event storm a large mod download produces
// into a single notification after writes settle.
const DebounceInterval = 2 * time.Second

// Event reports that a watched tree changed.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Watcher recursively watches directory trees and emits debounced change
// events.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan Event
	log     *log.Logger

	mu      sync.Mutex
	watched map[string]bool
	timer   *time.Timer
	last    string
}

// New creates a watcher. Call AddTree for each root, then Run.
func New(logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:     fsw,
		changes: make(chan Event, 1),
		log:     logger,
		watched: make(map[string]bool),
	}, nil
}

// Changes returns the channel change events are delivered on.
func (w *Watcher) Changes() <-chan Event { return w.changes }

// AddTree watches a directory and all its subdirectories. Unreadable
// subdirectories are skipped.
func (w *Watcher) AddTree(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			w.logDebug("Cannot watch directory", "path", path, "error", err)
			return nil
		}
		w.watched[path] = true
		return nil
	})
}

// Run processes filesystem events until the context is cancelled. New
// directories created inside a watched tree are picked up automatically.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logWarn("Watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		w.maybeWatchNewDir(event.Name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.last = event.Name
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(DebounceInterval, func() {
		w.mu.Lock()
		path := w.last
		w.mu.Unlock()

		select {
		case w.changes <- Event{Path: path, Timestamp: time.Now()}:
		case <-ctx.Done():
		default:
			// A pending event already covers this change.
		}
	})
}

func (w *Watcher) maybeWatchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[path] {
		return
	}
	if err := w.fsw.Add(path); err == nil {
		w.watched[path] = true
	}
}

func (w *Watcher) logWarn(msg string, keyvals ...interface{}) {
	if w.log != nil {
		w.log.Warn(msg, keyvals...)
	}
}

func (w *Watcher) logDebug(msg string, keyvals ...interface{}) {
	if w.log != nil {
		w.log.Debug(msg, keyvals...)
	}
}
