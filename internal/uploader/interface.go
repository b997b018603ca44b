package uploader

import "context"

// Uploader stores a local file in remote object storage and resolves its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
	PublicURL(remoteID string) string
	Close() error
}
