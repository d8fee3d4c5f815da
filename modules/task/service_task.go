package task

import (
	"context"
	"fmt"
	"math"
	"strings"

	domain "github.com/example/task-planner/domain/task"
)

// defaultListLimit caps unpaginated task listings.
const defaultListLimit = 100

// ListTasks returns the caller's own tasks with derived progress values.
// Other users' tasks are never visible here.
func (s *Service) ListTasks(ctx context.Context, req ListTasksRequest) (ListTasksResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	tasks, err := s.repo.ListTasks(ctx, req.UserID, req.Offset, limit)
	if err != nil {
		return ListTasksResponse{}, err
	}
	total, err := s.repo.CountTasks(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{Tasks: make([]TaskResponse, 0, len(tasks)), Total: int(total)}
	for i := range tasks {
		tr, err := s.taskResponse(ctx, &tasks[i])
		if err != nil {
			return ListTasksResponse{}, err
		}
		resp.Tasks = append(resp.Tasks, tr)
	}
	return resp, nil
}

func (s *Service) GetTask(ctx context.Context, req GetTaskRequest) (TaskResponse, error) {
	t, err := s.repo.FindTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	if t.UserID != req.UserID {
		return TaskResponse{}, domain.ErrForbidden
	}
	return s.taskResponse(ctx, t)
}

// CreateTask validates the full planning payload and persists the task
// with its subtasks and daily plans in one transaction.
func (s *Service) CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	if err := validateTaskFields(req.TaskName, req.StartDate, req.DueDate, req.TargetTime); err != nil {
		return TaskResponse{}, err
	}
	for _, st := range req.Subtasks {
		if strings.TrimSpace(st.SubtaskName) == "" {
			return TaskResponse{}, fmt.Errorf("%w: subtask_name must not be empty", domain.ErrInvalidInput)
		}
		if err := validateContribution(st.ContributionValue); err != nil {
			return TaskResponse{}, err
		}
	}
	if err := validatePlanInputs(req.DailyTaskPlans, req.DailyTimePlans); err != nil {
		return TaskResponse{}, err
	}
	if err := ValidatePlanning(req.Subtasks, req.DailyTaskPlans, req.DailyTimePlans, req.TargetTime); err != nil {
		return TaskResponse{}, err
	}

	t := &domain.Task{
		UserID:         req.UserID,
		TaskName:       req.TaskName,
		TaskContent:    req.TaskContent,
		RecentSchedule: req.RecentSchedule,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		Category:       req.Category,
		TargetTime:     req.TargetTime,
		Comment:        req.Comment,
	}
	for _, st := range req.Subtasks {
		t.Subtasks = append(t.Subtasks, domain.Subtask{
			SubtaskName:       st.SubtaskName,
			ContributionValue: st.ContributionValue,
		})
	}
	for _, p := range req.DailyTaskPlans {
		t.DailyTaskPlans = append(t.DailyTaskPlans, domain.DailyTaskPlan{
			Date:          p.Date,
			TaskPlanValue: p.TaskPlanValue,
		})
	}
	for _, p := range req.DailyTimePlans {
		t.DailyTimePlans = append(t.DailyTimePlans, domain.DailyTimePlan{
			Date:          p.Date,
			TimePlanValue: p.TimePlanValue,
		})
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return TaskResponse{}, err
	}
	return s.taskResponse(ctx, t)
}

// UpdateTask applies a partial patch. Provided plan slices replace the
// stored sets wholesale; the resulting full sets are re-validated against
// the sum invariants inside the same transaction, so a violating patch
// leaves the task untouched.
func (s *Service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error) {
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		t, err := s.authorizeTask(ctx, tx, req.TaskID, req.UserID)
		if err != nil {
			return err
		}

		if req.TaskName != nil {
			t.TaskName = *req.TaskName
		}
		if req.TaskContent != nil {
			t.TaskContent = *req.TaskContent
		}
		if req.RecentSchedule != nil {
			t.RecentSchedule = *req.RecentSchedule
		}
		if req.StartDate != nil {
			t.StartDate = *req.StartDate
		}
		if req.DueDate != nil {
			t.DueDate = *req.DueDate
		}
		if req.Category != nil {
			t.Category = *req.Category
		}
		if req.TargetTime != nil {
			t.TargetTime = *req.TargetTime
		}
		if req.Comment != nil {
			t.Comment = *req.Comment
		}
		if err := validateTaskFields(t.TaskName, t.StartDate, t.DueDate, t.TargetTime); err != nil {
			return err
		}
		if err := tx.SaveTask(ctx, t); err != nil {
			return err
		}

		if req.DailyTaskPlans != nil {
			if err := validatePlanInputs(req.DailyTaskPlans, nil); err != nil {
				return err
			}
			plans := make([]domain.DailyTaskPlan, 0, len(req.DailyTaskPlans))
			for _, p := range req.DailyTaskPlans {
				plans = append(plans, domain.DailyTaskPlan{
					TaskID:        t.TaskID,
					Date:          p.Date,
					TaskPlanValue: p.TaskPlanValue,
				})
			}
			if err := tx.ReplaceTaskPlans(ctx, t.TaskID, plans); err != nil {
				return err
			}
		}
		if req.DailyTimePlans != nil {
			if err := validatePlanInputs(nil, req.DailyTimePlans); err != nil {
				return err
			}
			plans := make([]domain.DailyTimePlan, 0, len(req.DailyTimePlans))
			for _, p := range req.DailyTimePlans {
				plans = append(plans, domain.DailyTimePlan{
					TaskID:        t.TaskID,
					Date:          p.Date,
					TimePlanValue: p.TimePlanValue,
				})
			}
			if err := tx.ReplaceTimePlans(ctx, t.TaskID, plans); err != nil {
				return err
			}
		}

		// Re-check the plan sums against whatever the patch produced,
		// including a changed target time with untouched plans.
		taskPlans, err := tx.TaskPlans(ctx, t.TaskID)
		if err != nil {
			return err
		}
		timePlans, err := tx.TimePlans(ctx, t.TaskID)
		if err != nil {
			return err
		}
		taskSum := 0.0
		for _, p := range taskPlans {
			taskSum += p.TaskPlanValue
		}
		timeSum := 0.0
		for _, p := range timePlans {
			timeSum += p.TimePlanValue
		}
		return validatePlanSums(taskSum, timeSum, t.TargetTime)
	})
	if err != nil {
		return TaskResponse{}, err
	}

	t, err := s.repo.FindTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return s.taskResponse(ctx, t)
}

// DeleteTask removes the task and everything under it.
func (s *Service) DeleteTask(ctx context.Context, req DeleteTaskRequest) (DeleteTaskResponse, error) {
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		if _, err := s.authorizeTask(ctx, tx, req.TaskID, req.UserID); err != nil {
			return err
		}
		return tx.DeleteTask(ctx, req.TaskID)
	})
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	s.invalidateTaskSummary(ctx, req.TaskID)
	return DeleteTaskResponse{TaskID: req.TaskID, Deleted: true}, nil
}

// InitialValues computes the even plan pre-fill for the task form. Pure
// calculation, nothing is persisted.
func (s *Service) InitialValues(_ context.Context, req InitialValuesRequest) (InitialValues, error) {
	if req.DueDate.Before(req.StartDate) {
		return InitialValues{}, fmt.Errorf("%w: due_date must not be before start_date", domain.ErrInvalidInput)
	}
	if req.TargetTime < 0 {
		return InitialValues{}, fmt.Errorf("%w: target_time must not be negative", domain.ErrInvalidInput)
	}
	if req.SubtaskCount < 0 {
		return InitialValues{}, fmt.Errorf("%w: subtask_count must not be negative", domain.ErrInvalidInput)
	}
	return CalculateInitialValues(req.StartDate, req.DueDate, req.TargetTime, req.SubtaskCount), nil
}

func validateTaskFields(name string, start, due domain.Date, targetTime int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: task_name must not be empty", domain.ErrInvalidInput)
	}
	if start.IsZero() || due.IsZero() {
		return fmt.Errorf("%w: start_date and due_date are required", domain.ErrInvalidInput)
	}
	if due.Before(start) {
		return fmt.Errorf("%w: due_date must not be before start_date", domain.ErrInvalidInput)
	}
	if targetTime < 0 {
		return fmt.Errorf("%w: target_time must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func validatePlanInputs(taskPlans []TaskPlanInput, timePlans []TimePlanInput) error {
	for _, p := range taskPlans {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: daily task plan requires a date", domain.ErrInvalidInput)
		}
		if p.TaskPlanValue < 0 || p.TaskPlanValue > 100 {
			return fmt.Errorf("%w: task_plan_value must be between 0 and 100", domain.ErrInvalidInput)
		}
	}
	for _, p := range timePlans {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: daily time plan requires a date", domain.ErrInvalidInput)
		}
		if p.TimePlanValue < 0 {
			return fmt.Errorf("%w: time_plan_value must not be negative", domain.ErrInvalidInput)
		}
	}
	return nil
}

// taskResponse assembles the response DTO with the derived fields: each
// subtask's capped progress, the contribution-weighted task progress, and
// the total recorded minutes.
func (s *Service) taskResponse(ctx context.Context, t *domain.Task) (TaskResponse, error) {
	workSums, err := s.repo.WorkSumsByTask(ctx, t.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	summary, err := s.repo.TaskSummary(ctx, t.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	resp := TaskResponse{
		TaskID:         t.TaskID,
		UserID:         t.UserID,
		TaskName:       t.TaskName,
		TaskContent:    t.TaskContent,
		RecentSchedule: t.RecentSchedule,
		StartDate:      t.StartDate,
		DueDate:        t.DueDate,
		Category:       t.Category,
		TargetTime:     t.TargetTime,
		Comment:        t.Comment,
		TotalWorkTime:  summary.TotalWorkTime,
		Subtasks:       make([]SubtaskResponse, 0, len(t.Subtasks)),
		DailyTaskPlans: make([]TaskPlanResponse, 0, len(t.DailyTaskPlans)),
		DailyTimePlans: make([]TimePlanResponse, 0, len(t.DailyTimePlans)),
	}

	weighted := 0.0
	for _, st := range t.Subtasks {
		progress := capProgress(workSums[st.SubtaskID])
		weighted += float64(st.ContributionValue) * float64(progress) / 100
		resp.Subtasks = append(resp.Subtasks, SubtaskResponse{
			SubtaskID:         st.SubtaskID,
			TaskID:            st.TaskID,
			SubtaskName:       st.SubtaskName,
			ContributionValue: st.ContributionValue,
			Progress:          progress,
		})
	}
	resp.Progress = capProgress(int(math.Round(weighted)))

	for _, p := range t.DailyTaskPlans {
		resp.DailyTaskPlans = append(resp.DailyTaskPlans, TaskPlanResponse{
			DailyTaskPlanID: p.DailyTaskPlanID,
			TaskID:          p.TaskID,
			Date:            p.Date,
			TaskPlanValue:   p.TaskPlanValue,
		})
	}
	for _, p := range t.DailyTimePlans {
		resp.DailyTimePlans = append(resp.DailyTimePlans, TimePlanResponse{
			DailyTimePlanID: p.DailyTimePlanID,
			TaskID:          p.TaskID,
			Date:            p.Date,
			TimePlanValue:   p.TimePlanValue,
		})
	}
	return resp, nil
}
