// Package watcher reloads the FAQ index when the corpus file changes on
// disk.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce window: editors often emit several write events for one save.
const debounce = 500 * time.Millisecond

// Reloader is called after the corpus file changes. It receives the
// corpus path and is expected to rebuild whatever depends on it.
type Reloader func(path string) error

// Watcher monitors a single corpus file and triggers a reload on
// change. The parent directory is watched rather than the file itself,
// so atomic-rename saves are picked up too.
type Watcher struct {
	fw   *fsnotify.Watcher
	path string
}

// New creates a watcher for the given corpus file.
func New(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{fw: fw, path: abs}, nil
}

// Run blocks until ctx is cancelled, invoking reload after each change
// to the corpus file. Reload failures are logged and the previous state
// stays in effect.
func (w *Watcher) Run(ctx context.Context, reload Reloader) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := reload(w.path); err != nil {
				log.Printf("[WARN] corpus reload failed, keeping previous index: %v", err)
				continue
			}
			log.Printf("[INFO] corpus reloaded from %s", w.path)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] corpus watcher: %v", err)
		}
	}
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
