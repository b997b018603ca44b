package gitsync

import "context"

// Syncer commits local feed changes and pushes them to the remote.
type Syncer interface {
	Sync(ctx context.Context, commitMessage string) (string, error)
}
