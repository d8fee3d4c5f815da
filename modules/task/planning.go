package task

import (
	"fmt"

	domain "github.com/example/task-planner/domain/task"
)

// Tolerances for the floating-point plan sums. Inherited policy: the plan
// editor produces evenly divided values whose sum drifts from the target by
// accumulated rounding, so equality is checked within a band rather than
// exactly. Candidate for an integer-scaled representation.
const (
	taskPlanSumMin = 99.9
	taskPlanSumMax = 100.1
	timePlanSlack  = 0.01 // ±1% of target time
)

// ValidatePlanning checks the three sum invariants of a task-creation
// payload. It is pure: no persistence, no side effects.
//
//  1. Subtask contribution values sum to exactly 100.
//  2. Daily task-plan values sum to 100 within ±0.1.
//  3. Daily time-plan values sum to the target time within ±1%.
func ValidatePlanning(subtasks []SubtaskInput, taskPlans []TaskPlanInput, timePlans []TimePlanInput, targetTime int) error {
	contributionSum := 0
	for _, st := range subtasks {
		contributionSum += st.ContributionValue
	}
	if contributionSum != 100 {
		return fmt.Errorf("%w: subtask contribution values sum to %d, want 100",
			domain.ErrInvalidState, contributionSum)
	}

	if err := validatePlanSums(taskPlanValues(taskPlans), timePlanValues(timePlans), targetTime); err != nil {
		return err
	}

	return nil
}

// validatePlanSums checks the two floating-point plan invariants. Task
// update re-runs this against the resulting full plan sets, where the
// subtask check does not apply.
func validatePlanSums(taskPlanSum, timePlanSum float64, targetTime int) error {
	if taskPlanSum < taskPlanSumMin || taskPlanSum > taskPlanSumMax {
		return fmt.Errorf("%w: daily task-plan values sum to %g, want 100 (±0.1)",
			domain.ErrInvalidState, taskPlanSum)
	}

	target := float64(targetTime)
	if timePlanSum < target*(1-timePlanSlack) || timePlanSum > target*(1+timePlanSlack) {
		return fmt.Errorf("%w: daily time-plan values sum to %g, want %d (±1%%)",
			domain.ErrInvalidState, timePlanSum, targetTime)
	}

	return nil
}

func taskPlanValues(plans []TaskPlanInput) float64 {
	sum := 0.0
	for _, p := range plans {
		sum += p.TaskPlanValue
	}
	return sum
}

func timePlanValues(plans []TimePlanInput) float64 {
	sum := 0.0
	for _, p := range plans {
		sum += p.TimePlanValue
	}
	return sum
}

// InitialValues is the even pre-fill for a new task's plans. It is a
// convenience for callers to edit before submission and is deliberately
// not validated against the sum invariants; rounding is the caller's
// concern.
type InitialValues struct {
	DailyTaskPlans           []TaskPlanInput `json:"daily_task_plans"`
	DailyTimePlans           []TimePlanInput `json:"daily_time_plans"`
	SubtaskContributionValue float64         `json:"subtask_contribution_value"`
}

// CalculateInitialValues distributes 100% of progress and the full target
// time evenly across every calendar day in [start, due], and splits the
// contribution budget evenly across subtaskCount subtasks. Zero day or
// subtask counts yield zero values rather than dividing by zero.
func CalculateInitialValues(start, due domain.Date, targetTime, subtaskCount int) InitialValues {
	days := 0
	if !due.Before(start) {
		days = start.DaysUntil(due) + 1
	}

	iv := InitialValues{
		DailyTaskPlans: make([]TaskPlanInput, 0, days),
		DailyTimePlans: make([]TimePlanInput, 0, days),
	}

	if days > 0 {
		taskPlanValue := 100.0 / float64(days)
		timePlanValue := float64(targetTime) / float64(days)
		for d := start; !d.After(due); d = d.AddDays(1) {
			iv.DailyTaskPlans = append(iv.DailyTaskPlans, TaskPlanInput{
				Date:          d,
				TaskPlanValue: taskPlanValue,
			})
			iv.DailyTimePlans = append(iv.DailyTimePlans, TimePlanInput{
				Date:          d,
				TimePlanValue: timePlanValue,
			})
		}
	}

	if subtaskCount > 0 {
		iv.SubtaskContributionValue = 100.0 / float64(subtaskCount)
	}

	return iv
}
