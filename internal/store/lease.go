package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// ErrCourseLocked is returned when another runner holds the course lease.
var ErrCourseLocked = errors.New("course is locked by another run")

// AcquireLease claims exclusive run ownership of a course. The claim is a
// single conditional update, so two competing runners cannot both succeed;
// an expired lease from a crashed runner is claimable.
func (s *implStore) AcquireLease(ctx context.Context, id uint, owner string, ttl time.Duration) error {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ? AND (lease_owner = '' OR lease_owner IS NULL OR lease_owner = ? OR lease_expires_at < ?)", id, owner, now).
		Updates(map[string]interface{}{
			"lease_owner":      owner,
			"lease_expires_at": now.Add(ttl),
		})
	if res.Error != nil {
		return fmt.Errorf("acquire lease for course %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var course domain.Course
		if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
			return fmt.Errorf("%w: id %d", ErrCourseNotFound, id)
		}
		return fmt.Errorf("%w: held by %s until %s", ErrCourseLocked, course.LeaseOwner, course.LeaseExpiresAt.Format(time.RFC3339))
	}
	s.logger.Debug(ctx, "Lease on course %d acquired by %s", id, owner)
	return nil
}

// ReleaseLease gives up ownership. Releasing a lease held by someone else is
// a no-op.
func (s *implStore) ReleaseLease(ctx context.Context, id uint, owner string) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ? AND lease_owner = ?", id, owner).
		Updates(map[string]interface{}{
			"lease_owner":      "",
			"lease_expires_at": time.Time{},
		})
	if res.Error != nil {
		return fmt.Errorf("release lease for course %d: %w", id, res.Error)
	}
	return nil
}
