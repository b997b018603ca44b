package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/logger"
)

func TestIsCourseDir(t *testing.T) {
	dir := t.TempDir()
	courseDir := filepath.Join(dir, "Algebra 101")
	if err := os.Mkdir(courseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	hiddenDir := filepath.Join(dir, ".staging")
	if err := os.Mkdir(hiddenDir, 0o755); err != nil {
		t.Fatal(err)
	}
	loneFile := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(loneFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &implWatcher{}
	tests := []struct {
		path string
		want bool
	}{
		{courseDir, true},
		{hiddenDir, false},
		{loneFile, false},
		{filepath.Join(dir, "missing"), false},
	}
	for _, tt := range tests {
		if got := w.isCourseDir(tt.path); got != tt.want {
			t.Errorf("isCourseDir(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStartHandlesNewCourse(t *testing.T) {
	inbox := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, courseDir string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(courseDir))
		mu.Unlock()
		return nil
	}

	w, err := New(inbox, handler, logger.New("error"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher a moment to arm before creating the directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.Mkdir(filepath.Join(inbox, "Algebra 101"), 0o755); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler was never invoked")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() returned %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if handled[0] != "Algebra 101" {
		t.Errorf("handled %v, want Algebra 101 first", handled)
	}
}

func TestNewMissingInbox(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), nil, logger.New("error"), 0)
	if err == nil {
		t.Error("New() expected error for missing inbox, got nil")
	}
}
