package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Transcribe runs whisper.cpp over the audio file and returns the plain-text
// transcription. Whisper writes <prefix>.txt next to the audio; the file is
// read back and its contents returned.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription with %d threads: %s",
		t.cfg.Threads, filepath.Base(audioPath))

	// -ml/-mc 0 lifts segment and context limits, -bo 5 trades speed for
	// accuracy on long lecture audio.
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	textPath := outputPrefix + ".txt"
	data, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("read transcription %s: %w", textPath, err)
	}

	text := strings.TrimSpace(string(data))
	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}
