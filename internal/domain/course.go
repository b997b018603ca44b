package domain

import (
	"time"

	"gorm.io/datatypes"
)

type CourseStatus string

const (
	CourseStatusPending    CourseStatus = "pending"
	CourseStatusInProgress CourseStatus = "in_progress"
	CourseStatusCompleted  CourseStatus = "completed"
	CourseStatusFailed     CourseStatus = "failed"
)

// Markers used in ProcessingStage outside of any pipeline stage.
const (
	StageNotStarted = "not_started"
	StageDiscovery  = "discovery"
	StageFinished   = "finished"
)

// Course is one processing job: a source directory of videos turned into a
// published audio course. Created when the user requests processing, mutated
// only by the pipeline runner, never deleted by the pipeline.
type Course struct {
	ID              uint           `gorm:"primaryKey;autoIncrement"`
	Name            string         `gorm:"not null;uniqueIndex"`
	SourceDir       string         `gorm:"column:source_dir;not null"`
	OutputDir       string         `gorm:"column:output_dir;not null"`
	Status          CourseStatus   `gorm:"not null;default:pending;index"`
	ProcessingStage string         `gorm:"column:processing_stage;not null;default:not_started"`
	Metadata        datatypes.JSON `gorm:"column:metadata"`
	LeaseOwner      string         `gorm:"column:lease_owner"`
	LeaseExpiresAt  time.Time      `gorm:"column:lease_expires_at"`
	CreatedAt       time.Time      `gorm:"not null"`
}

func (Course) TableName() string { return "courses" }
