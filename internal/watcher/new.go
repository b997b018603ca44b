package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/emmanuelcandido/coursecast/internal/logger"
)

// New creates a Watcher over the inbox directory. Courses run strictly one at
// a time: the stages behind them saturate CPU (ffmpeg, whisper) and the
// pipeline state is simplest to reason about without interleaving.
func New(inboxDir string, handler CourseHandler, log logger.Logger, settleDelay time.Duration) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settleDelay <= 0 {
		settleDelay = 30 * time.Second
	}

	return &implWatcher{
		inboxDir:    inboxDir,
		handler:     handler,
		logger:      log,
		watcher:     watcher,
		settleDelay: settleDelay,
		queue:       make(chan string, 16),
	}, nil
}
