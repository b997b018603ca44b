package pipeline

import (
	"context"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/feed"
)

// Collaborator contracts. Each stage makes exactly one call through one of
// these; everything behind them (transcoding, APIs, git) is outside the
// pipeline's scope.

// Converter extracts audio from every video under sourceDir into outputDir.
type Converter interface {
	ConvertAll(ctx context.Context, sourceDir, outputDir string) ([]string, error)
}

// Transcriber turns one audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer condenses a transcription using a named prompt template.
type Summarizer interface {
	Summarize(ctx context.Context, text, promptName string) (string, error)
}

// Unifier concatenates audio files into a single output file.
type Unifier interface {
	Unify(ctx context.Context, files []string, outputPath string) (string, error)
}

// Timestamper derives chapter marks and durations from an audio file.
type Timestamper interface {
	Timestamps(ctx context.Context, audioPath string, interval time.Duration) (string, error)
	Duration(ctx context.Context, audioPath string) (time.Duration, error)
}

// Uploader pushes a file to remote storage and resolves its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
	PublicURL(id string) string
}

// FeedPublisher adds or replaces one entry in the distribution feed.
type FeedPublisher interface {
	Publish(ctx context.Context, entry feed.Entry) (string, error)
}

// RepoSyncer commits and pushes the feed repository.
type RepoSyncer interface {
	Sync(ctx context.Context, commitMessage string) (string, error)
}

// Collaborators bundles everything a runner invokes.
type Collaborators struct {
	Converter   Converter
	Transcriber Transcriber
	Summarizer  Summarizer
	Unifier     Unifier
	Timestamper Timestamper
	Uploader    Uploader
	Feed        FeedPublisher
	Repo        RepoSyncer
}

// ProgressFunc observes stage starts. Purely informational; the run does not
// depend on it.
type ProgressFunc func(stage string, index, total int)
