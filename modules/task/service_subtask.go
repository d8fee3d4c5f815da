package task

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/example/task-planner/domain/task"
)

// checkContributionSum verifies the task's subtasks still sum to exactly
// 100. Called inside a subtask-mutating transaction, after the write, so
// a violation rolls the whole mutation back.
func checkContributionSum(ctx context.Context, tx *Repository, taskID uint) error {
	sum, err := tx.SumContributions(ctx, taskID)
	if err != nil {
		return err
	}
	if sum != 100 {
		return fmt.Errorf("%w: subtask contribution values sum to %d, want 100",
			domain.ErrInvalidState, sum)
	}
	return nil
}

func (s *Service) ListSubtasks(ctx context.Context, req ListSubtasksRequest) (ListSubtasksResponse, error) {
	if _, err := s.authorizeTask(ctx, s.repo, req.TaskID, req.UserID); err != nil {
		return ListSubtasksResponse{}, err
	}
	subtasks, err := s.repo.SubtasksByTask(ctx, req.TaskID)
	if err != nil {
		return ListSubtasksResponse{}, err
	}
	workSums, err := s.repo.WorkSumsByTask(ctx, req.TaskID)
	if err != nil {
		return ListSubtasksResponse{}, err
	}

	resp := ListSubtasksResponse{Subtasks: make([]SubtaskResponse, 0, len(subtasks))}
	for _, st := range subtasks {
		resp.Subtasks = append(resp.Subtasks, subtaskResponse(&st, capProgress(workSums[st.SubtaskID])))
	}
	return resp, nil
}

func (s *Service) GetSubtask(ctx context.Context, req GetSubtaskRequest) (SubtaskResponse, error) {
	st, err := s.authorizeSubtask(ctx, s.repo, req.SubtaskID, req.UserID)
	if err != nil {
		return SubtaskResponse{}, err
	}
	workSum, err := s.repo.SubtaskWorkSum(ctx, st.SubtaskID)
	if err != nil {
		return SubtaskResponse{}, err
	}
	return subtaskResponse(st, capProgress(workSum)), nil
}

// CreateSubtask adds a subtask to an owned task. The insert only commits
// if the task's contribution values still sum to 100 afterwards, so a
// lone new subtask must carry the exact slack its siblings leave.
func (s *Service) CreateSubtask(ctx context.Context, req CreateSubtaskRequest) (SubtaskResponse, error) {
	if strings.TrimSpace(req.SubtaskName) == "" {
		return SubtaskResponse{}, fmt.Errorf("%w: subtask_name must not be empty", domain.ErrInvalidInput)
	}
	if err := validateContribution(req.ContributionValue); err != nil {
		return SubtaskResponse{}, err
	}

	st := &domain.Subtask{
		TaskID:            req.TaskID,
		SubtaskName:       req.SubtaskName,
		ContributionValue: req.ContributionValue,
	}
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		if _, err := s.authorizeTask(ctx, tx, req.TaskID, req.UserID); err != nil {
			return err
		}
		if err := tx.CreateSubtask(ctx, st); err != nil {
			return err
		}
		return checkContributionSum(ctx, tx, req.TaskID)
	})
	if err != nil {
		return SubtaskResponse{}, err
	}
	return subtaskResponse(st, 0), nil
}

func (s *Service) UpdateSubtask(ctx context.Context, req UpdateSubtaskRequest) (SubtaskResponse, error) {
	var st *domain.Subtask
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		var err error
		st, err = s.authorizeSubtask(ctx, tx, req.SubtaskID, req.UserID)
		if err != nil {
			return err
		}

		if req.SubtaskName != nil {
			if strings.TrimSpace(*req.SubtaskName) == "" {
				return fmt.Errorf("%w: subtask_name must not be empty", domain.ErrInvalidInput)
			}
			st.SubtaskName = *req.SubtaskName
		}
		if req.ContributionValue != nil {
			if err := validateContribution(*req.ContributionValue); err != nil {
				return err
			}
			st.ContributionValue = *req.ContributionValue
		}
		if err := tx.SaveSubtask(ctx, st); err != nil {
			return err
		}
		return checkContributionSum(ctx, tx, st.TaskID)
	})
	if err != nil {
		return SubtaskResponse{}, err
	}
	workSum, err := s.repo.SubtaskWorkSum(ctx, st.SubtaskID)
	if err != nil {
		return SubtaskResponse{}, err
	}
	return subtaskResponse(st, capProgress(workSum)), nil
}

// DeleteSubtask removes a subtask and its work records. The contribution
// check is skipped only when the deletion empties the task, so a task can
// always be wound down; deleting one of several subtasks still has to
// leave the siblings summing to 100.
func (s *Service) DeleteSubtask(ctx context.Context, req DeleteSubtaskRequest) (DeleteSubtaskResponse, error) {
	var taskID uint
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		st, err := s.authorizeSubtask(ctx, tx, req.SubtaskID, req.UserID)
		if err != nil {
			return err
		}
		taskID = st.TaskID

		if err := tx.DeleteSubtask(ctx, st.SubtaskID); err != nil {
			return err
		}
		remaining, err := tx.CountSubtasks(ctx, st.TaskID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return nil
		}
		return checkContributionSum(ctx, tx, st.TaskID)
	})
	if err != nil {
		return DeleteSubtaskResponse{}, err
	}
	s.invalidateTaskSummary(ctx, taskID)
	return DeleteSubtaskResponse{SubtaskID: req.SubtaskID, Deleted: true}, nil
}

// SubtaskProgress reports the subtask's completion percentage: the sum of
// its recorded work, capped at 100. Over-recording is kept in the raw
// rows but never reported beyond 100.
func (s *Service) SubtaskProgress(ctx context.Context, req SubtaskProgressRequest) (SubtaskProgressResponse, error) {
	st, err := s.authorizeSubtask(ctx, s.repo, req.SubtaskID, req.UserID)
	if err != nil {
		return SubtaskProgressResponse{}, err
	}
	workSum, err := s.repo.SubtaskWorkSum(ctx, st.SubtaskID)
	if err != nil {
		return SubtaskProgressResponse{}, err
	}
	return SubtaskProgressResponse{SubtaskID: st.SubtaskID, Progress: capProgress(workSum)}, nil
}

func (s *Service) SubtaskSummary(ctx context.Context, req SubtaskSummaryRequest) (SubtaskSummaryResponse, error) {
	st, err := s.authorizeSubtask(ctx, s.repo, req.SubtaskID, req.UserID)
	if err != nil {
		return SubtaskSummaryResponse{}, err
	}
	summary, err := s.repo.SubtaskSummary(ctx, st.SubtaskID)
	if err != nil {
		return SubtaskSummaryResponse{}, err
	}
	return SubtaskSummaryResponse{
		SubtaskID:     st.SubtaskID,
		TotalWork:     summary.TotalWork,
		TotalWorkTime: summary.TotalWorkTime,
		WorkDays:      summary.WorkDays,
	}, nil
}

func subtaskResponse(st *domain.Subtask, progress int) SubtaskResponse {
	return SubtaskResponse{
		SubtaskID:         st.SubtaskID,
		TaskID:            st.TaskID,
		SubtaskName:       st.SubtaskName,
		ContributionValue: st.ContributionValue,
		Progress:          progress,
	}
}
