package gitsync

import (
	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
	"github.com/emmanuelcandido/coursecast/pkg/executor"
)

type implSyncer struct {
	cfg      config.GitConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Syncer that drives the system git binary inside the
// configured repository.
func New(cfg config.GitConfig, exec executor.Executor, log logger.Logger) Syncer {
	return &implSyncer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
