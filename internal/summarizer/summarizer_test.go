package summarizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emmanuelcandido/coursecast/internal/logger"
)

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	content := "Summarize the following transcription: {{TRANSCRIPTION}}"
	if err := os.WriteFile(filepath.Join(dir, "summary_test.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New([]string{"key"}, dir, "", logger.New("error")).(*implSummarizer)

	template, err := s.loadPrompt("summary_test")
	if err != nil {
		t.Fatalf("loadPrompt: %v", err)
	}
	if template != content {
		t.Errorf("template = %q", template)
	}

	filled := strings.ReplaceAll(template, transcriptionPlaceholder, "hello world")
	if filled != "Summarize the following transcription: hello world" {
		t.Errorf("substitution = %q", filled)
	}
}

func TestLoadPromptMissing(t *testing.T) {
	s := New([]string{"key"}, t.TempDir(), "", logger.New("error")).(*implSummarizer)
	if _, err := s.loadPrompt("nope"); err == nil {
		t.Error("expected error for missing prompt file")
	}
}

func TestRotateKey(t *testing.T) {
	s := New([]string{"a", "b", "c"}, t.TempDir(), "", logger.New("error")).(*implSummarizer)

	want := []int{1, 2, 0, 1}
	for i, w := range want {
		s.rotateKey()
		if s.currentKey != w {
			t.Fatalf("rotation %d: currentKey = %d, want %d", i, s.currentKey, w)
		}
	}
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.docx")
	markdown := "# Overview\n\nSome **bold** text.\n\n- first point\n- second point\n\n1. step one\n"

	if err := WriteDocx("Algebra101", markdown, path); err != nil {
		t.Fatalf("WriteDocx: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx output is empty")
	}
}
