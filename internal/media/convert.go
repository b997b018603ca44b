package media

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
	".m4v":  {},
	".flv":  {},
}

// ConvertAll extracts MP3 audio from every video under sourceDir, preserving
// the course hierarchy below outputDir. Returns the generated audio paths in
// sorted order.
func (s *implService) ConvertAll(ctx context.Context, sourceDir, outputDir string) ([]string, error) {
	videos, err := listVideos(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("no videos found in %s", sourceDir)
	}

	s.logger.Info(ctx, "Converting %d videos from %s", len(videos), sourceDir)

	audioFiles := make([]string, 0, len(videos))
	for i, video := range videos {
		rel, err := filepath.Rel(sourceDir, video)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", video, err)
		}
		audioPath := filepath.Join(outputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".mp3")

		s.logger.Info(ctx, "[%d/%d] Converting %s", i+1, len(videos), filepath.Base(video))
		if err := s.convert(ctx, video, audioPath); err != nil {
			return nil, err
		}
		audioFiles = append(audioFiles, audioPath)
	}

	sort.Strings(audioFiles)
	s.logger.Info(ctx, "Finished converting %d videos to audio", len(audioFiles))
	return audioFiles, nil
}

// convert runs one ffmpeg extraction to MP3 at the configured bitrate.
func (s *implService) convert(ctx context.Context, videoPath, audioPath string) error {
	if err := os.MkdirAll(filepath.Dir(audioPath), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(s.cfg.SampleRate),
		"-acodec", s.cfg.AudioCodec,
		"-b:a", s.cfg.Bitrate,
		"-y",
		audioPath,
	}

	if _, err := s.executor.Execute(ctx, s.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg convert %s: %w", filepath.Base(videoPath), err)
	}
	return nil
}

func listVideos(dir string) ([]string, error) {
	var videos []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(videos)
	return videos, nil
}
