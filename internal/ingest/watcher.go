package ingest

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/common"
)

type WatchConfig struct {
	Folder   string        // watched non-recursively, like the collector reads it
	Debounce time.Duration // coalesce rapid create/write bursts
	Logger   *slog.Logger
}

// StartWatcher emits on the returned channel whenever a report candidate in
// the folder is created, written, renamed or removed. Bursts within Debounce
// collapse into one signal, and a signal is dropped while a previous one is
// still pending, so a slow consumer never sees a backlog.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan struct{}, <-chan error, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Folder == "" {
		return nil, nil, common.FolderNotFound(cfg.Folder, errors.New("no folder provided"))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}
	if err := w.Add(cfg.Folder); err != nil {
		_ = w.Close()
		return nil, nil, common.FolderNotFound(cfg.Folder, err)
	}

	evCh := make(chan struct{}, 1)
	errCh := make(chan error, 1)

	var (
		mu      sync.Mutex
		timer   *time.Timer
		stopped bool
	)
	notify := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		select {
		case evCh <- struct{}{}:
		default:
		}
	}

	go func() {
		defer close(errCh)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("failed to close watcher", "error", err)
			}
			mu.Lock()
			stopped = true
			if timer != nil {
				timer.Stop()
			}
			close(evCh)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if !constants.IsReportName(filepath.Base(e.Name)) {
					continue
				}
				if !e.Op.Has(fsnotify.Create) && !e.Op.Has(fsnotify.Write) &&
					!e.Op.Has(fsnotify.Rename) && !e.Op.Has(fsnotify.Remove) {
					continue
				}
				logger.Debug("watch.event", "path", e.Name, "op", e.Op.String())
				if cfg.Debounce <= 0 {
					notify()
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(cfg.Debounce, notify)
				mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}
