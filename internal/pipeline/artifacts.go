package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// Bag accumulates the outputs of completed stages during one run. Each field
// is written once per run; a populated field makes the producing stage skip.
// The bag is never persisted directly: its JSON snapshot lands in the course
// metadata column after every stage, and the files written alongside it are
// what resume reconstruction trusts.
type Bag struct {
	AudioFiles    []string `json:"audio_files,omitempty"`
	Transcription string   `json:"transcription,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	UnifiedAudio  string   `json:"unified_audio,omitempty"`
	Timestamps    string   `json:"timestamps,omitempty"`
	RemoteFileID  string   `json:"remote_file_id,omitempty"`
}

// Snapshot serializes the bag for the course metadata column.
func (b *Bag) Snapshot() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("snapshot artifact bag: %w", err)
	}
	return data, nil
}

// BagFromMetadata restores a snapshot taken by a previous run. An empty
// metadata column yields an empty bag.
func BagFromMetadata(metadata []byte) (*Bag, error) {
	bag := &Bag{}
	if len(metadata) == 0 {
		return bag, nil
	}
	if err := json.Unmarshal(metadata, bag); err != nil {
		return nil, fmt.Errorf("restore artifact bag: %w", err)
	}
	return bag, nil
}

// Layout maps one course to its deterministic output paths. The resume
// detector relies on these paths never changing between runs.
type Layout struct {
	base string
	name string
}

func NewLayout(course *domain.Course) Layout {
	return Layout{
		base: filepath.Join(course.OutputDir, course.Name),
		name: course.Name,
	}
}

func (l Layout) Dir() string               { return l.base }
func (l Layout) AudiosDir() string         { return filepath.Join(l.base, "audios") }
func (l Layout) UnifiedPath() string       { return filepath.Join(l.base, l.name+".mp3") }
func (l Layout) TranscriptionPath() string { return filepath.Join(l.base, "transcription.txt") }
func (l Layout) SummaryPath() string       { return filepath.Join(l.base, "summary.md") }
func (l Layout) SummaryDocxPath() string   { return filepath.Join(l.base, "summary.docx") }
func (l Layout) TimestampsPath() string    { return filepath.Join(l.base, "timestamps.txt") }
func (l Layout) NotesPath() string         { return filepath.Join(l.base, "notes.mp3") }
