package tts

import "context"

// Speaker renders text to an audio file.
type Speaker interface {
	Speak(ctx context.Context, text, outputPath string) error
	SpeakFile(ctx context.Context, textPath, outputPath string) error
}
