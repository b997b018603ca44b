package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/emmanuelcandido/coursecast/internal/domain"
	"github.com/emmanuelcandido/coursecast/internal/feed"
	"github.com/emmanuelcandido/coursecast/internal/summarizer"
)

// Canonical stage names, in pipeline order. They double as the course's
// processing_stage value while active and as the operation_type of log entries.
const (
	StageConvertAudio = "convert_audio"
	StageTranscribe   = "transcribe"
	StageSummarize    = "summarize"
	StageUnifyAudio   = "unify_audio"
	StageTimestamps   = "generate_timestamps"
	StageUpload       = "upload"
	StagePublishFeed  = "publish_feed"
	StageSyncRepo     = "sync_repo"
)

// ErrMissingArtifact marks a precondition failure: a stage was reached before
// its required input existed. Never retried automatically.
var ErrMissingArtifact = errors.New("missing required artifact")

func missing(artifact string) error {
	return fmt.Errorf("%w: %s", ErrMissingArtifact, artifact)
}

// Stage is one descriptor of the fixed stage table. Done reports whether the
// output artifact is already present (idempotent skip on resume), Check is the
// precondition evaluated before invoking the collaborator, and Run performs
// the single collaborator call and writes the result back into the bag and,
// where resume needs it, to disk. Run returns a short detail message for the
// operation log.
type Stage struct {
	Name  string
	Done  func(b *Bag) bool
	Check func(b *Bag) error
	Run   func(ctx context.Context, b *Bag) (string, error)
}

// StageNames returns the canonical stage order.
func StageNames() []string {
	return []string{
		StageConvertAudio,
		StageTranscribe,
		StageSummarize,
		StageUnifyAudio,
		StageTimestamps,
		StageUpload,
		StagePublishFeed,
		StageSyncRepo,
	}
}

// stages builds the table for one course. The closures capture the course
// layout so every run resolves the same deterministic paths.
func (r *Runner) stages(course *domain.Course) []Stage {
	layout := NewLayout(course)

	return []Stage{
		{
			Name: StageConvertAudio,
			Done: func(b *Bag) bool { return len(b.AudioFiles) > 0 },
			Run: func(ctx context.Context, b *Bag) (string, error) {
				files, err := r.clb.Converter.ConvertAll(ctx, course.SourceDir, layout.AudiosDir())
				if err != nil {
					return "", err
				}
				if len(files) == 0 {
					return "", fmt.Errorf("no audio files produced from %s", course.SourceDir)
				}
				b.AudioFiles = files
				return fmt.Sprintf("%d audio files", len(files)), nil
			},
		},
		{
			Name: StageTranscribe,
			Done: func(b *Bag) bool { return b.Transcription != "" },
			Check: func(b *Bag) error {
				if len(b.AudioFiles) == 0 {
					return missing("audio_files")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				text, err := r.clb.Transcriber.Transcribe(ctx, b.AudioFiles[0])
				if err != nil {
					return "", err
				}
				if err := writeArtifact(layout.TranscriptionPath(), text); err != nil {
					return "", err
				}
				b.Transcription = text
				return layout.TranscriptionPath(), nil
			},
		},
		{
			Name: StageSummarize,
			Done: func(b *Bag) bool { return b.Summary != "" },
			Check: func(b *Bag) error {
				if b.Transcription == "" {
					return missing("transcription")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				text, err := r.clb.Summarizer.Summarize(ctx, b.Transcription, r.promptName)
				if err != nil {
					return "", err
				}
				if err := writeArtifact(layout.SummaryPath(), text); err != nil {
					return "", err
				}
				if err := summarizer.WriteDocx(course.Name, text, layout.SummaryDocxPath()); err != nil {
					r.logger.Warn(ctx, "Failed to export summary docx: %v", err)
				}
				b.Summary = text
				return layout.SummaryPath(), nil
			},
		},
		{
			Name: StageUnifyAudio,
			Done: func(b *Bag) bool { return b.UnifiedAudio != "" },
			Check: func(b *Bag) error {
				if len(b.AudioFiles) == 0 {
					return missing("audio_files")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				path, err := r.clb.Unifier.Unify(ctx, b.AudioFiles, layout.UnifiedPath())
				if err != nil {
					return "", err
				}
				b.UnifiedAudio = path
				return path, nil
			},
		},
		{
			Name: StageTimestamps,
			Done: func(b *Bag) bool { return b.Timestamps != "" },
			Check: func(b *Bag) error {
				if b.UnifiedAudio == "" {
					return missing("unified_audio")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				marks, err := r.clb.Timestamper.Timestamps(ctx, b.UnifiedAudio, r.interval)
				if err != nil {
					return "", err
				}
				if err := writeArtifact(layout.TimestampsPath(), marks); err != nil {
					return "", err
				}
				b.Timestamps = marks
				return layout.TimestampsPath(), nil
			},
		},
		{
			Name: StageUpload,
			Done: func(b *Bag) bool { return b.RemoteFileID != "" },
			Check: func(b *Bag) error {
				if b.UnifiedAudio == "" {
					return missing("unified_audio")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				id, err := r.clb.Uploader.Upload(ctx, b.UnifiedAudio)
				if err != nil {
					return "", err
				}
				b.RemoteFileID = id
				return id, nil
			},
		},
		{
			Name: StagePublishFeed,
			Check: func(b *Bag) error {
				switch {
				case b.UnifiedAudio == "":
					return missing("unified_audio")
				case b.Summary == "":
					return missing("summary")
				case b.RemoteFileID == "":
					return missing("remote_file_id")
				}
				return nil
			},
			Run: func(ctx context.Context, b *Bag) (string, error) {
				entry, err := r.feedEntry(ctx, course, b)
				if err != nil {
					return "", err
				}
				return r.clb.Feed.Publish(ctx, entry)
			},
		},
		{
			Name: StageSyncRepo,
			Run: func(ctx context.Context, b *Bag) (string, error) {
				return r.clb.Repo.Sync(ctx, fmt.Sprintf("Add %s podcast", course.Name))
			},
		},
	}
}

// feedEntry assembles the distribution feed item for a finished course. The
// GUID is derived from the enclosure URL so re-publishing replaces the item
// instead of duplicating it.
func (r *Runner) feedEntry(ctx context.Context, course *domain.Course, b *Bag) (feed.Entry, error) {
	url := r.clb.Uploader.PublicURL(b.RemoteFileID)

	info, err := os.Stat(b.UnifiedAudio)
	if err != nil {
		return feed.Entry{}, fmt.Errorf("stat unified audio: %w", err)
	}

	duration := "00:00:00"
	if d, err := r.clb.Timestamper.Duration(ctx, b.UnifiedAudio); err != nil {
		r.logger.Warn(ctx, "Failed to probe episode duration: %v", err)
	} else {
		duration = fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}

	return feed.Entry{
		Title:           course.Name,
		Link:            url,
		GUID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
		Description:     b.Summary,
		EnclosureURL:    url,
		EnclosureLength: info.Size(),
		Duration:        duration,
		Author:          r.author,
	}, nil
}

func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
