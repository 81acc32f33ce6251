// Package hotreload watches shader directories and reports changed shader
// files to the render loop.
//
// The watcher runs its own goroutine but never calls back into user code from
// it: changes are queued and delivered by [Watcher.Poll] on the caller's
// goroutine, which is normally the one owning the GL context.
package hotreload

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultExts are the shader file extensions watched when none are configured.
var DefaultExts = []string{".vert", ".frag"}

// Watcher queues changes to shader files in a set of directories.
type Watcher struct {
	fsw  *fsnotify.Watcher
	log  *slog.Logger
	exts []string
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher starts watching dirs for changes to files with one of
// [DefaultExts]. logger may be nil, in which case slog.Default() is used.
func NewWatcher(logger *slog.Logger, dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("hotreload: no directories to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("hotreload: %w", err)
	}
	for _, dir := range dirs {
		if err = fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("hotreload: watching %s: %w", dir, err)
		}
	}
	w := &Watcher{
		fsw:     fsw,
		log:     logger,
		exts:    DefaultExts,
		done:    make(chan struct{}),
		pending: make(map[string]struct{}),
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !slices.Contains(w.exts, filepath.Ext(event.Name)) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("shader watcher", slog.Any("err", err))
		}
	}
}

// Poll calls fn with every shader file changed since the last Poll, in
// lexical order, and returns how many there were. Several changes to one
// file are reported once. Poll does not block.
func (w *Watcher) Poll(fn func(filename string)) int {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0
	}
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	clear(w.pending)
	w.mu.Unlock()

	slices.Sort(changed)
	for _, name := range changed {
		w.log.Debug("shader changed", slog.String("file", name))
		fn(name)
	}
	return len(changed)
}

// Close stops watching. Changes not yet polled are discarded.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
