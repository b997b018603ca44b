package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// InProgress returns the courses an interrupted or failed run left behind,
// oldest first. A course the user declines to resume stays listed on the next
// startup.
func (r *Runner) InProgress(ctx context.Context) ([]domain.Course, error) {
	return r.store.ListInProgress(ctx)
}

// Resume rebuilds the artifact bag from disk and restarts the run. Completed
// stages skip through their Done checks; the first stage whose artifacts could
// not be reconstructed runs again.
func (r *Runner) Resume(ctx context.Context, course *domain.Course) error {
	bag, err := Rebuild(course)
	if err != nil {
		return err
	}
	r.logger.Info(ctx, "Resuming %s at stage %s", course.Name, ResumePoint(bag))
	return r.Run(ctx, course, bag)
}

// Rebuild reconstructs the artifact bag by re-deriving each artifact from the
// files expected at the course's deterministic output paths. Files are
// trusted over the persisted metadata snapshot, which may be stale relative
// to partially written output; the one exception is the remote file id, which
// has no filesystem representation and is taken from the snapshot.
func Rebuild(course *domain.Course) (*Bag, error) {
	layout := NewLayout(course)
	bag := &Bag{}

	bag.AudioFiles = listAudioFiles(layout.AudiosDir())
	bag.Transcription = readArtifact(layout.TranscriptionPath())
	bag.Summary = readArtifact(layout.SummaryPath())
	if info, err := os.Stat(layout.UnifiedPath()); err == nil && info.Size() > 0 {
		bag.UnifiedAudio = layout.UnifiedPath()
	}
	bag.Timestamps = readArtifact(layout.TimestampsPath())

	snapshot, err := BagFromMetadata(course.Metadata)
	if err != nil {
		return nil, err
	}
	bag.RemoteFileID = snapshot.RemoteFileID

	return bag, nil
}

// ResumePoint names the first stage whose output artifact is absent from the
// bag. Used for reporting; the runner re-derives the same answer from the
// stage table's Done checks.
func ResumePoint(bag *Bag) string {
	switch {
	case len(bag.AudioFiles) == 0:
		return StageConvertAudio
	case bag.Transcription == "":
		return StageTranscribe
	case bag.Summary == "":
		return StageSummarize
	case bag.UnifiedAudio == "":
		return StageUnifyAudio
	case bag.Timestamps == "":
		return StageTimestamps
	case bag.RemoteFileID == "":
		return StageUpload
	}
	return StagePublishFeed
}

// listAudioFiles walks the audios directory recursively, mirroring the
// hierarchy the converter preserves from the source videos. Sorted for a
// stable episode order.
func listAudioFiles(dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}

func readArtifact(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
