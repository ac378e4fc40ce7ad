// Package watch reports changes to corpus input files using fsnotify.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeNotifier = (*Watcher)(nil)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// Operation names carried by domain.ChangeEvent.
const (
	OpCreate = "create"
	OpWrite  = "write"
	OpRemove = "remove"
	OpRename = "rename"
)

// Watcher watches the directories holding the configured corpus files and
// reports events for those files only. Editors that save by writing a
// temporary file and renaming it over the target show up as a create of
// the target.
type Watcher struct {
	files map[string]bool
	dirs  []string

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a watcher for the files named by settings.
func New(settings domain.CorpusSettings) *Watcher {
	w := &Watcher{files: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, f := range settings.Files() {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		w.dirs = append(w.dirs, d)
	}
	sort.Strings(w.dirs)
	return w
}

// Watch starts watching and returns the event channel. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.ChangeEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}
	if len(w.files) == 0 {
		return nil, errors.New("no corpus files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, d := range w.dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", d, err)
		}
	}
	w.watchers = append(w.watchers, fw)
	logger.Debug("watching %d corpus files in %v", len(w.files), w.dirs)

	out := make(chan domain.ChangeEvent, 16)
	go w.run(ctx, fw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- domain.ChangeEvent) {
	defer close(out)
	defer w.release(fw)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			change := w.handleEvent(ev)
			if change == nil {
				continue
			}
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent converts an fsnotify event on a corpus file. Other files and
// permission-only changes are ignored.
func (w *Watcher) handleEvent(ev fsnotify.Event) *domain.ChangeEvent {
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		abs = filepath.Clean(ev.Name)
	}
	if !w.files[abs] {
		return nil
	}

	var op string
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	case ev.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Has(fsnotify.Rename):
		op = OpRename
	default:
		return nil
	}
	return &domain.ChangeEvent{Path: abs, Op: op}
}

func (w *Watcher) release(fw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, x := range w.watchers {
		if x == fw {
			w.watchers = append(w.watchers[:i], w.watchers[i+1:]...)
			break
		}
	}
	fw.Close()
}

// Close stops every active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	var errs []error
	for _, fw := range w.watchers {
		if err := fw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.watchers = nil
	return errors.Join(errs...)
}
