package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration probes the length of an audio file with ffprobe.
func (s *implService) Duration(ctx context.Context, audioPath string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	}
	out, err := s.executor.Execute(ctx, s.cfg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Timestamps derives evenly spaced chapter marks covering the audio file,
// one per interval starting at zero, one mark per line.
func (s *implService) Timestamps(ctx context.Context, audioPath string, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("timestamp interval must be positive, got %s", interval)
	}

	total, err := s.Duration(ctx, audioPath)
	if err != nil {
		return "", err
	}

	var marks []string
	for offset := time.Duration(0); offset < total; offset += interval {
		marks = append(marks, formatMark(offset))
	}
	return strings.Join(marks, "\n"), nil
}

// formatMark renders an offset as MM:SS, switching to HH:MM:SS past an hour.
func formatMark(offset time.Duration) string {
	hours := int(offset.Hours())
	minutes := int(offset.Minutes()) % 60
	seconds := int(offset.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
