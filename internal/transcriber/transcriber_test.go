package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

// fakeExecutor simulates whisper.cpp by writing the canned transcription to
// the --output-file prefix.
type fakeExecutor struct {
	calls [][]string
	text  string
	err   error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	for i, arg := range args {
		if arg == "--output-file" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".txt", []byte(f.text), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testConfig() config.WhisperConfig {
	return config.WhisperConfig{
		ModelPath:  "/models/ggml-base.bin",
		BinaryPath: "whisper-cli",
		Language:   "en",
		Threads:    4,
	}
}

func TestTranscribe(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "lesson.mp3")

	exec := &fakeExecutor{text: "Welcome to the course.\n"}
	tr := New(testConfig(), exec, logger.New("error"))

	text, err := tr.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "Welcome to the course." {
		t.Errorf("Transcribe() = %q, want trimmed transcription", text)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("expected 1 whisper invocation, got %d", len(exec.calls))
	}
	call := strings.Join(exec.calls[0], " ")
	for _, flag := range []string{"whisper-cli", "-m /models/ggml-base.bin", "-otxt", "-l en", "-t 4"} {
		if !strings.Contains(call, flag) {
			t.Errorf("whisper invocation missing %q: %s", flag, call)
		}
	}
}

func TestTranscribeExecutorError(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("model not found")}
	tr := New(testConfig(), exec, logger.New("error"))

	if _, err := tr.Transcribe(context.Background(), "lesson.mp3"); err == nil {
		t.Error("Transcribe() expected error, got nil")
	}
}

func TestTranscribeMissingOutput(t *testing.T) {
	// Executor succeeds but never writes the text file.
	tr := New(testConfig(), &noWriteExecutor{}, logger.New("error"))

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "lesson.mp3"))
	if err == nil || !strings.Contains(err.Error(), "read transcription") {
		t.Errorf("Transcribe() error = %v, want read transcription failure", err)
	}
}

type noWriteExecutor struct{}

func (noWriteExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", nil
}

func (noWriteExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return "", nil
}
