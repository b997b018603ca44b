package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// ErrCourseExists is returned when creating a course whose name is taken.
var ErrCourseExists = errors.New("course already exists")

// ErrCourseNotFound is returned when a lookup matches no course.
var ErrCourseNotFound = errors.New("course not found")

func (s *implStore) CreateCourse(ctx context.Context, course *domain.Course) error {
	existing, err := s.GetCourseByName(ctx, course.Name)
	if err != nil && !errors.Is(err, ErrCourseNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrCourseExists, course.Name)
	}

	if course.Status == "" {
		course.Status = domain.CourseStatusPending
	}
	if course.ProcessingStage == "" {
		course.ProcessingStage = domain.StageNotStarted
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	s.logger.Info(ctx, "Course %q registered with id %d", course.Name, course.ID)
	return nil
}

func (s *implStore) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := s.db.WithContext(ctx).First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrCourseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (s *implStore) GetCourseByName(ctx context.Context, name string) (*domain.Course, error) {
	var course domain.Course
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get course by name: %w", err)
	}
	return &course, nil
}

func (s *implStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := s.db.WithContext(ctx).Order("created_at").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *implStore) ListInProgress(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := s.db.WithContext(ctx).
		Where("status = ?", domain.CourseStatusInProgress).
		Order("created_at").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("list in-progress courses: %w", err)
	}
	return courses, nil
}

// UpdateProgress persists status and stage, and the metadata snapshot when one
// is given. This write is the durability point the resume flow depends on.
func (s *implStore) UpdateProgress(ctx context.Context, id uint, status domain.CourseStatus, stage string, metadata []byte) error {
	updates := map[string]interface{}{
		"status":           status,
		"processing_stage": stage,
	}
	if metadata != nil {
		updates["metadata"] = metadata
	}

	res := s.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update course %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrCourseNotFound, id)
	}
	s.logger.Debug(ctx, "Course %d updated to %s at stage %s", id, status, stage)
	return nil
}
