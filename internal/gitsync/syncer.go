package gitsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sync stages every change in the repository, commits with the given message
// and pushes to the configured remote. When the working tree is clean the
// commit and push are skipped.
func (s *implSyncer) Sync(ctx context.Context, commitMessage string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.cfg.RepoPath, ".git")); err != nil {
		return "", fmt.Errorf("not a git repository: %s", s.cfg.RepoPath)
	}

	if _, err := s.executor.ExecuteInDir(ctx, s.cfg.RepoPath, "git", "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	status, err := s.executor.ExecuteInDir(ctx, s.cfg.RepoPath, "git", "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(status) == "" {
		s.logger.Info(ctx, "Repository already up to date, nothing to commit")
		return "No changes to commit", nil
	}

	if _, err := s.executor.ExecuteInDir(ctx, s.cfg.RepoPath, "git", "commit", "-m", commitMessage); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	if _, err := s.executor.ExecuteInDir(ctx, s.cfg.RepoPath, "git", "push", s.cfg.Remote, s.cfg.Branch); err != nil {
		return "", fmt.Errorf("git push: %w", err)
	}

	s.logger.Info(ctx, "Pushed %q to %s/%s", commitMessage, s.cfg.Remote, s.cfg.Branch)
	return fmt.Sprintf("Pushed to %s/%s", s.cfg.Remote, s.cfg.Branch), nil
}
