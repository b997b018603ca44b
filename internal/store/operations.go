package store

import (
	"context"
	"fmt"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// AppendOperation records one stage attempt. The operations table is
// append-only; nothing here updates or deletes existing rows.
func (s *implStore) AppendOperation(ctx context.Context, op *domain.Operation) error {
	if op.StartedAt.IsZero() {
		op.StartedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("append operation: %w", err)
	}
	if op.Status == domain.OperationSuccess {
		s.logger.Info(ctx, "Operation %s for course %d completed successfully", op.OperationType, op.CourseID)
	} else {
		s.logger.Error(ctx, "Operation %s for course %d failed: %s", op.OperationType, op.CourseID, op.ErrorMessage)
	}
	return nil
}

func (s *implStore) ListOperations(ctx context.Context, courseID uint) ([]domain.Operation, error) {
	var ops []domain.Operation
	err := s.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("started_at, id").
		Find(&ops).Error
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return ops, nil
}
