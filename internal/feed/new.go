package feed

import (
	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

type implPublisher struct {
	cfg    config.FeedConfig
	logger logger.Logger
}

// New creates a Publisher that maintains the RSS document at cfg.Path.
func New(cfg config.FeedConfig, log logger.Logger) Publisher {
	return &implPublisher{
		cfg:    cfg,
		logger: log,
	}
}
