package uploader

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

type implUploader struct {
	cfg    config.StorageConfig
	client *storage.Client
	logger logger.Logger
}

// New creates an Uploader backed by a Google Cloud Storage bucket. When a
// credentials file is configured it overrides application default credentials.
func New(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (Uploader, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &implUploader{
		cfg:    cfg,
		client: client,
		logger: log,
	}, nil
}
