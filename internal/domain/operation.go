package domain

import (
	"time"

	"gorm.io/datatypes"
)

type OperationStatus string

const (
	OperationSuccess OperationStatus = "success"
	OperationFailed  OperationStatus = "failed"
)

// Operation is one append-only audit entry: one stage attempt for one course.
// Entries are never mutated or deleted; a course may accumulate several
// entries per stage across retries and resumed runs.
type Operation struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	CourseID      uint            `gorm:"column:course_id;not null;index"`
	OperationType string          `gorm:"column:operation_type;not null"`
	Status        OperationStatus `gorm:"not null"`
	StartedAt     time.Time       `gorm:"column:started_at;not null"`
	ErrorMessage  string          `gorm:"column:error_message"`
	Details       datatypes.JSON  `gorm:"column:details"`
}

func (Operation) TableName() string { return "operations" }
