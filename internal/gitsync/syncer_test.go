package gitsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

// fakeExecutor replays canned git output keyed by subcommand.
type fakeExecutor struct {
	calls   [][]string
	outputs map[string]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) > 0 {
		return f.outputs[args[0]], nil
	}
	return "", nil
}

func (f *fakeExecutor) subcommands() []string {
	var subs []string
	for _, call := range f.calls {
		if len(call) > 1 {
			subs = append(subs, call[1])
		}
	}
	return subs
}

func testRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestSyncCommitsAndPushes(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status": " M feed.xml\n"}}
	s := New(config.GitConfig{RepoPath: testRepo(t), Remote: "origin", Branch: "main"}, exec, logger.New("error"))

	detail, err := s.Sync(context.Background(), "Add Algebra 101 podcast")
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !strings.Contains(detail, "origin/main") {
		t.Errorf("Sync() detail = %q, want push destination", detail)
	}

	want := []string{"add", "status", "commit", "push"}
	got := exec.subcommands()
	if len(got) != len(want) {
		t.Fatalf("git subcommands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subcommand %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSyncCleanTree(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status": "\n"}}
	s := New(config.GitConfig{RepoPath: testRepo(t), Remote: "origin", Branch: "main"}, exec, logger.New("error"))

	detail, err := s.Sync(context.Background(), "Add Algebra 101 podcast")
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if detail != "No changes to commit" {
		t.Errorf("Sync() detail = %q, want no-changes short circuit", detail)
	}

	for _, sub := range exec.subcommands() {
		if sub == "commit" || sub == "push" {
			t.Errorf("unexpected git %s on clean tree", sub)
		}
	}
}

func TestSyncMissingRepo(t *testing.T) {
	s := New(config.GitConfig{RepoPath: filepath.Join(t.TempDir(), "absent")}, &fakeExecutor{}, logger.New("error"))

	if _, err := s.Sync(context.Background(), "msg"); err == nil || !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("Sync() error = %v, want not a git repository", err)
	}
}
