package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Speak synthesizes the text into an MP3 at outputPath.
func (s *implSpeaker) Speak(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to synthesize")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	s.logger.Info(ctx, "Synthesizing %d characters with voice %s", len(text), s.cfg.Voice)

	args := []string{
		"--text", text,
		"--voice", s.cfg.Voice,
		"--write-media", outputPath,
	}
	if _, err := s.executor.Execute(ctx, s.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("edge-tts: %w", err)
	}

	s.logger.Info(ctx, "Audio written to %s", outputPath)
	return nil
}

// SpeakFile reads a text file and synthesizes its contents.
func (s *implSpeaker) SpeakFile(ctx context.Context, textPath, outputPath string) error {
	data, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("read text file: %w", err)
	}
	return s.Speak(ctx, string(data), outputPath)
}
