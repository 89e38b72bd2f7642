package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback receives a freshly loaded dataset whose checksum differs
// from the previous one.
type ReloadCallback func(d *Dataset)

// Watch observes the dataset file at path and calls cb after each change
// settles. It watches the parent directory so editors that replace the file
// by rename are picked up. Files that fail to load are logged and skipped.
// lastChecksum seeds change detection; Watch returns when ctx is cancelled.
func Watch(ctx context.Context, path, lastChecksum string, debounce time.Duration, logger *slog.Logger, cb ReloadCallback) error {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("dataset watcher: started", slog.String("path", abs))

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("dataset watcher: stopped")
			return nil

		case <-timerCh:
			d, loadErr := Load(abs)
			if loadErr != nil {
				logger.Warn("dataset watcher: load failed", slog.String("path", abs), slog.String("error", loadErr.Error()))
				continue
			}
			if d.Checksum == lastChecksum {
				logger.Debug("dataset watcher: unchanged", slog.String("path", abs))
				continue
			}
			lastChecksum = d.Checksum
			cb(d)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("dataset watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
