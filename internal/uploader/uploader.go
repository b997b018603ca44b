package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const uploadTimeout = 10 * time.Minute

// Upload copies the local file into the configured bucket under the optional
// prefix and returns the object key.
func (u *implUploader) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload source: %w", err)
	}
	defer file.Close()

	key := filepath.Base(localPath)
	if u.cfg.Prefix != "" {
		key = path.Join(u.cfg.Prefix, key)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	u.logger.Info(ctx, "Uploading %s to gs://%s/%s", filepath.Base(localPath), u.cfg.Bucket, key)

	w := u.client.Bucket(u.cfg.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = "audio/mpeg"
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write to bucket: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close bucket writer: %w", err)
	}

	u.logger.Info(ctx, "Upload completed: %s", key)
	return key, nil
}

// PublicURL resolves the download URL for an uploaded object key. A configured
// base URL (CDN or website endpoint) wins over the default GCS endpoint.
func (u *implUploader) PublicURL(remoteID string) string {
	key := strings.TrimLeft(remoteID, "/")
	if u.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(u.cfg.PublicBaseURL, "/"), key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.cfg.Bucket, key)
}

// Close releases the underlying storage client.
func (u *implUploader) Close() error {
	return u.client.Close()
}
