package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unify concatenates the audio files into a single MP3 using ffmpeg's concat
// demuxer. The inputs share one codec, so streams are copied, not re-encoded.
func (s *implService) Unify(ctx context.Context, files []string, outputPath string) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("no audio files provided for unification")
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return "", fmt.Errorf("audio file not found: %s", file)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	listPath, err := writeConcatList(files)
	if err != nil {
		return "", err
	}
	defer os.Remove(listPath)

	s.logger.Info(ctx, "Unifying %d audio files into %s", len(files), filepath.Base(outputPath))

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputPath,
	}
	if _, err := s.executor.Execute(ctx, s.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg unify: %w", err)
	}

	return outputPath, nil
}

// writeConcatList writes the ffmpeg concat demuxer input list. Single quotes
// in paths are escaped per the demuxer's quoting rules.
func writeConcatList(files []string) (string, error) {
	tmp, err := os.CreateTemp("", "coursecast-concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}
	defer tmp.Close()

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", fmt.Errorf("absolute path for %s: %w", file, err)
		}
		escaped := strings.ReplaceAll(abs, "'", `'\''`)
		if _, err := fmt.Fprintf(tmp, "file '%s'\n", escaped); err != nil {
			return "", fmt.Errorf("write concat list: %w", err)
		}
	}
	return tmp.Name(), nil
}
