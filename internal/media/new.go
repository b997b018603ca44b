package media

import (
	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
	"github.com/emmanuelcandido/coursecast/pkg/executor"
)

type implService struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a media Service backed by the configured ffmpeg binaries.
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Service {
	return &implService{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
