// Package watcher provides debounced change notification for a single source
// file. The watch is placed on the file's directory rather than the file
// itself: editors replace files on save (rename or delete + create), which
// would silently drop a watch on the file's inode.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback fires. Editors emit bursts of events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one file for changes with debouncing.
type Watcher struct {
	path     string // Absolute path of the watched file
	watcher  *fsnotify.Watcher
	debounce time.Duration
	callback func()

	ctx    context.Context
	cancel context.CancelFunc

	debounceTimer *time.Timer
	timerMu       sync.Mutex // Protects debounceTimer

	stopOnce sync.Once     // Ensures Stop() is idempotent
	doneCh   chan struct{} // Signals watch goroutine has finished
}

// New creates a watcher for the file at path. The file's directory must
// exist; the file itself may not, in which case the first fire happens when
// it appears.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: DefaultDebounce,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching, invoking callback after each debounced burst of
// changes to the file.
func (w *Watcher) Start(ctx context.Context, callback func()) error {
	if callback == nil {
		return nil
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

// Stop stops the watcher and waits for the watch goroutine to finish. Safe
// to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			// Never started, close doneCh manually
			close(w.doneCh)
		}

		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (w *Watcher) watch() {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.resetDebounceTimer(fireCh)

		case <-fireCh:
			// Debounce period expired
			w.callback()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// shouldProcessEvent reports whether an event is a change to the watched
// file. Create and Rename of the same path count as writes because editors
// save by replacing the file; Remove counts too so the consumer can report
// the disappearance. Chmod is noise.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// resetDebounceTimer restarts the quiet-period timer, replacing any timer
// already running.
func (w *Watcher) resetDebounceTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		// Non-blocking: a pending fire already covers this burst
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}
