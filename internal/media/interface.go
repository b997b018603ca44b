package media

import (
	"context"
	"time"
)

// Service wraps every ffmpeg/ffprobe-backed operation the pipeline needs:
// video-to-audio extraction, audio concatenation and duration probing.
type Service interface {
	ConvertAll(ctx context.Context, sourceDir, outputDir string) ([]string, error)
	Unify(ctx context.Context, files []string, outputPath string) (string, error)
	Timestamps(ctx context.Context, audioPath string, interval time.Duration) (string, error)
	Duration(ctx context.Context, audioPath string) (time.Duration, error)
}
