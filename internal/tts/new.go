package tts

import (
	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
	"github.com/emmanuelcandido/coursecast/pkg/executor"
)

type implSpeaker struct {
	cfg      config.TTSConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Speaker backed by the edge-tts command line tool.
func New(cfg config.TTSConfig, exec executor.Executor, log logger.Logger) Speaker {
	return &implSpeaker{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
