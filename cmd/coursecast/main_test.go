package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

func TestWriteCourseTable(t *testing.T) {
	courses := []domain.Course{
		{
			ID:              1,
			Name:            "Algebra 101",
			Status:          domain.CourseStatusInProgress,
			ProcessingStage: "upload",
			CreatedAt:       time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:              2,
			Name:            "Geometry 201",
			Status:          domain.CourseStatusCompleted,
			ProcessingStage: domain.StageFinished,
			CreatedAt:       time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := writeCourseTable(&buf, courses); err != nil {
		t.Fatalf("writeCourseTable: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("missing header: %q", lines[0])
	}
	for _, want := range []string{"Algebra 101", "in_progress", "upload", "Geometry 201", "2026-08-01 10:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCourseTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCourseTable(&buf, nil); err != nil {
		t.Fatalf("writeCourseTable: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}
