package summarizer

import (
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

type implSummarizer struct {
	apiKeys    []string
	currentKey int
	promptsDir string
	model      string
	logger     logger.Logger
}

// New creates a Summarizer that loads prompt templates from promptsDir and
// rotates through the supplied Gemini API keys.
func New(apiKeys []string, promptsDir, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implSummarizer{
		apiKeys:    apiKeys,
		promptsDir: promptsDir,
		model:      model,
		logger:     log,
	}
}
