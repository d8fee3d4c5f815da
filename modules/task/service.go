package task

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	domain "github.com/example/task-planner/domain/task"
	"github.com/example/task-planner/modules/cache"
)

// Service implements the task-planning operations. Every operation that
// touches a task checks ownership first; a caller can never read or write
// another user's data through any path, including the subtask and
// work-record routes that reach the task indirectly.
type Service struct {
	repo      *Repository
	summaries cache.Service
	sf        singleflight.Group
}

// NewService wires the service. summaries may be nil, which disables the
// task-summary cache.
func NewService(repo *Repository, summaries cache.Service) *Service {
	return &Service{repo: repo, summaries: summaries}
}

// authorizeTask loads the task and verifies the caller owns it.
func (s *Service) authorizeTask(ctx context.Context, r *Repository, taskID, userID uint) (*domain.Task, error) {
	t, err := r.FindTaskLean(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// authorizeSubtask resolves a subtask through its parent task and verifies
// ownership of the task.
func (s *Service) authorizeSubtask(ctx context.Context, r *Repository, subtaskID, userID uint) (*domain.Subtask, error) {
	st, err := r.FindSubtask(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeTask(ctx, r, st.TaskID, userID); err != nil {
		return nil, err
	}
	return st, nil
}

// authorizeRecord resolves a work record through its subtask and task and
// verifies ownership.
func (s *Service) authorizeRecord(ctx context.Context, r *Repository, recordID, userID uint) (*domain.RecordWork, *domain.Subtask, error) {
	rec, err := r.FindRecord(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	st, err := s.authorizeSubtask(ctx, r, rec.SubtaskID, userID)
	if err != nil {
		return nil, nil, err
	}
	return rec, st, nil
}

func validateContribution(value int) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: contribution_value must be between 0 and 100", domain.ErrInvalidInput)
	}
	return nil
}

func validateWork(work, workTime int) error {
	if work < 0 || work > 100 {
		return fmt.Errorf("%w: work must be between 0 and 100", domain.ErrInvalidInput)
	}
	if workTime < 0 {
		return fmt.Errorf("%w: work_time must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// capProgress clamps a raw work sum to the 0..100 progress scale.
func capProgress(workSum int) int {
	if workSum > 100 {
		return 100
	}
	if workSum < 0 {
		return 0
	}
	return workSum
}
