// Package watch blocks until an expected file lands on disk. The analyse
// stage uses it to pick up Drive downloads that are still in flight.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openhydro/watermap-cli/internal/logger"
)

// WaitForFile blocks until path exists and its size has stopped changing
// for one settle window. The settle wait avoids reading a file that a
// download manager is still appending to.
func WaitForFile(ctx context.Context, path string, settle time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving watch path: %w", err)
	}

	if _, err := os.Stat(abs); err == nil {
		return waitSettled(ctx, abs, settle)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// The file may have appeared between the stat and the watch.
	if _, err := os.Stat(abs); err == nil {
		return waitSettled(ctx, abs, settle)
	}

	logger.Infof("waiting for %s", abs)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed while waiting for %s", abs)
			}
			if event.Name != abs {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				return waitSettled(ctx, abs, settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed while waiting for %s", abs)
			}
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
}

// waitSettled polls the file size until it holds still for one settle
// window.
func waitSettled(ctx context.Context, path string, settle time.Duration) error {
	var last int64 = -1
	ticker := time.NewTicker(settle)
	defer ticker.Stop()

	for {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stating %s: %w", path, err)
		}
		if info.Size() == last {
			return nil
		}
		last = info.Size()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
