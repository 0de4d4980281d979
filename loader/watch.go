package loader

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deepnoodle-ai/skillet"
)

// DefaultDebounce is the minimum quiet period between catalog rebuilds in
// watch mode. Editors commonly emit bursts of write events for one save.
const DefaultDebounce = 250 * time.Millisecond

// Watch re-runs discovery whenever a manifest under one of the loader's
// search paths changes, and invokes onChange with the freshly built
// catalog. The previous catalog remains valid: callers resolve against the
// new one and swap plans atomically.
//
// Watch blocks until ctx is canceled. onChange is called once immediately
// with the initial catalog.
func (l *Loader) Watch(ctx context.Context, onChange func(*skillet.Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	paths, err := l.searchPaths()
	if err != nil {
		return err
	}
	watched := 0
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(path); err != nil {
			l.logger.Warn("failed to watch directory", "dir", path, "error", err)
			continue
		}
		l.logger.Debug("watching directory", "dir", path)
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("no skill directories found to watch")
	}

	catalog, err := l.Discover()
	if err != nil {
		return err
	}
	onChange(catalog)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			l.logger.Debug("manifest change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(DefaultDebounce)
				timerC = timer.C
			} else {
				timer.Reset(DefaultDebounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			catalog, err := l.Discover()
			if err != nil {
				l.logger.Error("rediscovery failed", "error", err)
				continue
			}
			onChange(catalog)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("file watcher error", "error", err)
		}
	}
}
