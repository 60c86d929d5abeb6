package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file changes.
// It blocks until ctx is cancelled or the watcher fails. onReload, if
// non-nil, is called after every successful reload.
func Watch(ctx context.Context, onReload func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file so editors that replace the
	// file atomically (write temp, rename) still trigger events.
	configFile := Get().ConfigFilePath()
	if err := watcher.Add(filepath.Dir(configFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(configFile), err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != configFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reloading configuration: %v\n", err)
				continue
			}
			if onReload != nil {
				onReload(Get())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
