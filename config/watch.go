package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const settle = 100 * time.Millisecond

// Watch reloads the configuration at path once the file has settled after a
// change and passes every valid result to onChange, until ctx is done. Invalid
// edits are logged and skipped.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(Config)) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	// Editors replace files on save, so watch the directory instead of the
	// file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config: %w", err)
	}

	go func() {
		defer w.Close()
		name := filepath.Clean(path)
		reload := time.NewTimer(settle)
		reload.Stop()
		defer reload.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) == name && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reload.Reset(settle)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watch", slog.Any("err", err))
			case <-reload.C:
				c, err := Load(path)
				if err != nil {
					logger.Warn("config not reloaded", slog.String("path", path), slog.Any("err", err))
					continue
				}
				logger.Info("config reloaded", slog.String("path", path))
				onChange(c)
			}
		}
	}()
	return nil
}
