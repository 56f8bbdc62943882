// Package watch feeds filesystem change events to the front ends, so a
// directory that changes underneath the browser refreshes without operator
// action. Watching is best-effort: when it cannot run, the UI degrades to
// manual refresh.
package watch

import (
	"context"
	"os"
	"sync"
	"time"

	"uaman/internal/errors"
	"uaman/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Event is one observed change under a watched directory.
type Event struct {
	Path string
	Op   fsnotify.Op
	At   time.Time
}

// Watcher wraps fsnotify for the directories the front ends display: the
// active browse directory and the logs directory.
type Watcher struct {
	events    chan Event
	stop      chan struct{}
	fsWatcher *fsnotify.Watcher

	mu          sync.RWMutex
	directories []string
	running     bool
	closed      bool
}

// New creates a watcher. Add directories, then Start.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create filesystem watcher")
	}
	return &Watcher{
		events:    make(chan Event, 16),
		stop:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Add registers a directory with the watcher. Adding the same directory
// twice is harmless.
func (w *Watcher) Add(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("cannot watch directory", dir, errors.NotFound, err)
		}
		return errors.NewFileError("cannot watch directory", dir, errors.OperationFailed, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("watch target is not a directory", dir, errors.InvalidPath, nil)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.NewFileError("cannot watch directory", dir, errors.OperationFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.directories {
		if existing == dir {
			return nil
		}
	}
	w.directories = append(w.directories, dir)
	log.With(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Events returns the delivery channel. It is never closed; consumers select
// on it alongside their own done signal.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start launches the event loop. The loop ends when ctx is canceled or Stop
// is called; starting an already running watcher is an error.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.stop = make(chan struct{})
	w.mu.Unlock()

	go func() {
		defer func() {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
		}()
		w.loop(ctx)
	}()
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !relevant(event.Op) {
				continue
			}
			select {
			case w.events <- Event{Path: event.Name, Op: event.Op, At: time.Now()}:
			default:
				// Consumer lags; the refresh it eventually runs sees the
				// current state anyway.
				log.With(log.F("path", event.Name)).Debug("event channel full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.With(log.F("error", err.Error())).Warn("watcher error")

		case <-ctx.Done():
			return

		case <-w.stop:
			return
		}
	}
}

// relevant filters for the operations that change what a listing shows.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}

// Stop ends the event loop and releases the underlying watches. Safe to
// call repeatedly, and after the context already ended the loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		close(w.stop)
		w.running = false
	}
	if !w.closed {
		w.closed = true
		if err := w.fsWatcher.Close(); err != nil {
			log.With(log.F("error", err.Error())).Warn("error closing watcher")
		}
	}
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Directories returns a copy of the watched directory list.
func (w *Watcher) Directories() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}
