package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelcandido/coursecast/internal/domain"
)

// leaseTTL bounds how long a crashed run can block the next one.
const leaseTTL = 6 * time.Hour

// Process registers a fresh course and runs it through every stage.
func (r *Runner) Process(ctx context.Context, name, sourceDir, outputDir string) (*domain.Course, error) {
	course := &domain.Course{
		Name:            name,
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Status:          domain.CourseStatusInProgress,
		ProcessingStage: domain.StageDiscovery,
	}
	if err := r.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	r.logger.Info(ctx, "Starting full course processing for: %s", name)
	return course, r.Run(ctx, course, &Bag{})
}

// Run executes the stage table in order against the given bag, starting from
// the first stage whose output is not already present, stopping at the first
// failure. The bag may be empty (fresh run) or partially populated (resume).
//
// Each stage follows the same sequence: persist "in_progress at stage" first,
// so an interruption before completion is detectable on the next startup;
// evaluate the precondition; make the single collaborator call; then append
// the log entry and persist the metadata snapshot. Failures halt the run with
// status=failed at the stage that stopped; a failed run stays resumable.
func (r *Runner) Run(ctx context.Context, course *domain.Course, bag *Bag) error {
	// One active runner per course. A lease left behind by a crashed run
	// expires on its own.
	owner := uuid.NewString()
	if err := r.store.AcquireLease(ctx, course.ID, owner, leaseTTL); err != nil {
		return err
	}
	defer func() {
		if err := r.store.ReleaseLease(context.WithoutCancel(ctx), course.ID, owner); err != nil {
			r.logger.Warn(ctx, "Failed to release lease on course %d: %v", course.ID, err)
		}
	}()

	stages := r.stages(course)
	total := len(stages)

	for i, stage := range stages {
		if stage.Done != nil && stage.Done(bag) {
			r.logger.Info(ctx, "Stage %s already complete for %s, skipping", stage.Name, course.Name)
			// A crash can land between an artifact write and its success log
			// entry. The skip entry keeps the log total: every stage of a
			// completed course has at least one success row.
			if err := r.skip(ctx, course, stage.Name); err != nil {
				return err
			}
			continue
		}

		// Durability point: a crash between here and the post-stage persist
		// leaves the record in_progress at this stage name.
		if err := r.store.UpdateProgress(ctx, course.ID, domain.CourseStatusInProgress, stage.Name, nil); err != nil {
			return fmt.Errorf("persist stage start: %w", err)
		}
		if r.progress != nil {
			r.progress(stage.Name, i+1, total)
		}
		r.logger.Info(ctx, "Stage %d/%d: %s", i+1, total, stage.Name)

		if stage.Check != nil {
			if err := stage.Check(bag); err != nil {
				return r.fail(ctx, course, stage.Name, bag, err)
			}
		}

		detail, err := stage.Run(ctx, bag)
		if err != nil {
			return r.fail(ctx, course, stage.Name, bag, err)
		}

		if err := r.succeed(ctx, course, stage.Name, bag, detail); err != nil {
			return err
		}
	}

	snapshot, err := bag.Snapshot()
	if err != nil {
		return err
	}
	if err := r.store.UpdateProgress(ctx, course.ID, domain.CourseStatusCompleted, domain.StageFinished, snapshot); err != nil {
		return fmt.Errorf("persist completion: %w", err)
	}
	course.Status = domain.CourseStatusCompleted
	course.ProcessingStage = domain.StageFinished
	r.logger.Info(ctx, "Full course processing completed for: %s", course.Name)
	return nil
}

// skip records a success entry for a stage whose output artifact already
// exists, without invoking the collaborator.
func (r *Runner) skip(ctx context.Context, course *domain.Course, stageName string) error {
	details, err := json.Marshal(map[string]string{"message": "artifact restored from disk"})
	if err != nil {
		return fmt.Errorf("encode operation details: %w", err)
	}
	op := &domain.Operation{
		CourseID:      course.ID,
		OperationType: stageName,
		Status:        domain.OperationSuccess,
		StartedAt:     time.Now().UTC(),
		Details:       details,
	}
	if err := r.store.AppendOperation(ctx, op); err != nil {
		return fmt.Errorf("persist stage skip: %w", err)
	}
	return nil
}

// succeed records a successful stage attempt and persists the bag snapshot.
// Persistence errors are fatal: proceeding with unpersisted state would break
// the resume invariant.
func (r *Runner) succeed(ctx context.Context, course *domain.Course, stageName string, bag *Bag, detail string) error {
	details, err := json.Marshal(map[string]string{"message": detail})
	if err != nil {
		return fmt.Errorf("encode operation details: %w", err)
	}
	op := &domain.Operation{
		CourseID:      course.ID,
		OperationType: stageName,
		Status:        domain.OperationSuccess,
		StartedAt:     time.Now().UTC(),
		Details:       details,
	}
	if err := r.store.AppendOperation(ctx, op); err != nil {
		return fmt.Errorf("persist stage result: %w", err)
	}

	snapshot, err := bag.Snapshot()
	if err != nil {
		return err
	}
	if err := r.store.UpdateProgress(ctx, course.ID, domain.CourseStatusInProgress, stageName, snapshot); err != nil {
		return fmt.Errorf("persist stage result: %w", err)
	}
	return nil
}

// fail records the failed attempt, marks the course failed at the stage that
// stopped and returns the failure to the caller. No later stage runs.
func (r *Runner) fail(ctx context.Context, course *domain.Course, stageName string, bag *Bag, cause error) error {
	op := &domain.Operation{
		CourseID:      course.ID,
		OperationType: stageName,
		Status:        domain.OperationFailed,
		StartedAt:     time.Now().UTC(),
		ErrorMessage:  cause.Error(),
	}
	if err := r.store.AppendOperation(ctx, op); err != nil {
		return fmt.Errorf("persist stage failure: %w", err)
	}

	snapshot, err := bag.Snapshot()
	if err != nil {
		return err
	}
	if err := r.store.UpdateProgress(ctx, course.ID, domain.CourseStatusFailed, stageName, snapshot); err != nil {
		return fmt.Errorf("persist stage failure: %w", err)
	}
	course.Status = domain.CourseStatusFailed
	course.ProcessingStage = stageName

	r.logger.Error(ctx, "Stage %s failed for %s: %v", stageName, course.Name, cause)
	return fmt.Errorf("stage %s: %w", stageName, cause)
}
