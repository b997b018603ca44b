package pipeline

import (
	"time"

	"github.com/emmanuelcandido/coursecast/internal/logger"
	"github.com/emmanuelcandido/coursecast/internal/store"
)

// Runner drives one course through the fixed stage table, persisting progress
// after every stage so an interrupted run can resume where it stopped.
type Runner struct {
	store      store.Store
	logger     logger.Logger
	clb        Collaborators
	promptName string
	interval   time.Duration
	author     string
	progress   ProgressFunc
}

// Options tune a Runner beyond its collaborators.
type Options struct {
	// PromptName selects the summary prompt template. Defaults to "summary".
	PromptName string
	// TimestampInterval is the spacing of chapter marks. Defaults to 5m.
	TimestampInterval time.Duration
	// Author is stamped on published feed entries.
	Author string
	// Progress, when set, observes each stage start.
	Progress ProgressFunc
}

// NewRunner creates a Runner instance.
func NewRunner(st store.Store, log logger.Logger, clb Collaborators, opts Options) *Runner {
	if opts.PromptName == "" {
		opts.PromptName = "summary"
	}
	if opts.TimestampInterval <= 0 {
		opts.TimestampInterval = 5 * time.Minute
	}

	return &Runner{
		store:      st,
		logger:     log,
		clb:        clb,
		promptName: opts.PromptName,
		interval:   opts.TimestampInterval,
		author:     opts.Author,
		progress:   opts.Progress,
	}
}
