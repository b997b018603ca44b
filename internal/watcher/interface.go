package watcher

import "context"

// Watcher monitors the inbox for newly dropped course directories.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// CourseHandler processes one detected course directory.
type CourseHandler func(ctx context.Context, courseDir string) error
