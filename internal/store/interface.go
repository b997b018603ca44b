package store

import (
	"context"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// Store persists course records and their append-only operation log.
type Store interface {
	CreateCourse(ctx context.Context, course *domain.Course) error
	GetCourse(ctx context.Context, id uint) (*domain.Course, error)
	GetCourseByName(ctx context.Context, name string) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	ListInProgress(ctx context.Context) ([]domain.Course, error)
	UpdateProgress(ctx context.Context, id uint, status domain.CourseStatus, stage string, metadata []byte) error
	AcquireLease(ctx context.Context, id uint, owner string, ttl time.Duration) error
	ReleaseLease(ctx context.Context, id uint, owner string) error
	AppendOperation(ctx context.Context, op *domain.Operation) error
	ListOperations(ctx context.Context, courseID uint) ([]domain.Operation, error)
	Close() error
}
