// Package watch reports changes to the collection files of a data directory
// made by other processes, so an open shell can reload them.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/atomicfile"
)

// Op is the kind of change seen on a collection file.
type Op int

const (
	// OpWrite covers creation, modification and replacement by rename.
	OpWrite Op = iota
	// OpRemove means the file was deleted or renamed away.
	OpRemove
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is a change to one watched file.
type Event struct {
	// Name is the file name inside the data dir, e.g. "clientes.txt".
	Name string
	Op   Op
}

// Watcher watches a data directory for changes to a fixed set of files.
// Temporary files created while a file is atomically replaced are ignored;
// the final rename shows up as an OpWrite on the target.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	dir     string
	files   []string

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopped bool
}

// New creates a watcher for the named files inside dir. Start must be called
// before it emits events. A nil logger disables logging.
func New(dir string, files []string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		watcher: fw,
		logger:  logger.Named("watch"),
		dir:     dir,
		files:   slices.Clone(files),
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()

	w.logger.Debug("watching data dir", zap.String("dir", w.dir), zap.Strings("files", w.files))
	return nil
}

// Run starts the watcher and stops it when ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Stop stops watching and closes the Events and Errors channels. It blocks
// until the event goroutine has exited. Stop may be called more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	if wasRunning {
		w.wg.Wait()
	}
	close(w.events)
	close(w.errors)

	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// Events returns the channel of file changes. It is closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch errors. It is closed by Stop. Errors
// that arrive while the channel is full are logged and dropped.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// isRunning reports whether the watcher is between Start and Stop.
func (w *Watcher) isRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Drain returns the events queued so far without blocking.
func (w *Watcher) Drain() []Event {
	var out []Event
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			ev, ok := w.convertEvent(event)
			if !ok {
				continue
			}
			w.logger.Debug("collection file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			select {
			case w.events <- ev:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// reportError logs err and queues it on Errors. When nobody reads Errors and
// the queue is full the error is dropped, so event delivery never waits on it.
func (w *Watcher) reportError(err error) {
	w.logger.Warn("watch error", zap.Error(err))
	select {
	case w.errors <- err:
	default:
		w.logger.Debug("error queue full, dropping watch error")
	}
}

// convertEvent maps an fsnotify event to an Event, or reports false for
// files and operations that are not of interest.
func (w *Watcher) convertEvent(event fsnotify.Event) (Event, bool) {
	name := filepath.Base(event.Name)
	if atomicfile.IsTemp(name) || !slices.Contains(w.files, name) {
		return Event{}, false
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return Event{Name: name, Op: OpWrite}, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Event{Name: name, Op: OpRemove}, true
	default:
		return Event{}, false
	}
}
