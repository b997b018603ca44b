package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/emmanuelcandido/coursecast/internal/logger"
)

type implWatcher struct {
	inboxDir    string
	handler     CourseHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
	queue       chan string
	wg          sync.WaitGroup
}

// Start monitors the inbox until the context is cancelled. Newly created
// directories are queued and handled by a single worker in arrival order.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)

	w.wg.Add(1)
	go w.worker(ctx)

	for {
		select {
		case <-ctx.Done():
			close(w.queue)
			w.logger.Info(ctx, "Waiting for in-flight course to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isCourseDir(event.Name) {
				w.logger.Debug(ctx, "Ignoring inbox entry: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New course detected: %s", filepath.Base(event.Name))
			select {
			case w.queue <- event.Name:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) worker(ctx context.Context) {
	defer w.wg.Done()

	for courseDir := range w.queue {
		// Copies into the inbox are not atomic. Wait for writes to settle
		// before touching the directory.
		select {
		case <-time.After(w.settleDelay):
		case <-ctx.Done():
			return
		}

		if err := w.handler(ctx, courseDir); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filepath.Base(courseDir), err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isCourseDir accepts only directories, skipping hidden entries and loose
// files dropped into the inbox.
func (w *implWatcher) isCourseDir(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
