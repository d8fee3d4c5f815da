package task

import (
	domain "github.com/example/task-planner/domain/task"
)

// Request types. UserID is always stamped by the API layer from validated
// token claims; it is never trusted from a client payload.

type SubtaskInput struct {
	SubtaskName       string `json:"subtask_name"`
	ContributionValue int    `json:"contribution_value"`
}

type TaskPlanInput struct {
	Date          domain.Date `json:"date"`
	TaskPlanValue float64     `json:"task_plan_value"`
}

type TimePlanInput struct {
	Date          domain.Date `json:"date"`
	TimePlanValue float64     `json:"time_plan_value"`
}

type ListTasksRequest struct {
	UserID uint `json:"user_id"`
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
}

type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
	UserID uint `json:"user_id"`
}

type CreateTaskRequest struct {
	UserID         uint            `json:"user_id"`
	TaskName       string          `json:"task_name"`
	TaskContent    string          `json:"task_content"`
	RecentSchedule string          `json:"recent_schedule"`
	StartDate      domain.Date     `json:"start_date"`
	DueDate        domain.Date     `json:"due_date"`
	Category       string          `json:"category"`
	TargetTime     int             `json:"target_time"`
	Comment        string          `json:"comment"`
	Subtasks       []SubtaskInput  `json:"subtasks"`
	DailyTaskPlans []TaskPlanInput `json:"daily_task_plans"`
	DailyTimePlans []TimePlanInput `json:"daily_time_plans"`
}

// UpdateTaskRequest is a partial patch: nil fields are left untouched.
// A non-nil plan slice replaces that task's plan set wholesale, an empty
// one included.
type UpdateTaskRequest struct {
	TaskID         uint            `json:"task_id"`
	UserID         uint            `json:"user_id"`
	TaskName       *string         `json:"task_name"`
	TaskContent    *string         `json:"task_content"`
	RecentSchedule *string         `json:"recent_schedule"`
	StartDate      *domain.Date    `json:"start_date"`
	DueDate        *domain.Date    `json:"due_date"`
	Category       *string         `json:"category"`
	TargetTime     *int            `json:"target_time"`
	Comment        *string         `json:"comment"`
	DailyTaskPlans []TaskPlanInput `json:"daily_task_plans"`
	DailyTimePlans []TimePlanInput `json:"daily_time_plans"`
}

type DeleteTaskRequest struct {
	TaskID uint `json:"task_id"`
	UserID uint `json:"user_id"`
}

type InitialValuesRequest struct {
	StartDate    domain.Date `json:"start_date"`
	DueDate      domain.Date `json:"due_date"`
	TargetTime   int         `json:"target_time"`
	SubtaskCount int         `json:"subtask_count"`
}

type ListSubtasksRequest struct {
	TaskID uint `json:"task_id"`
	UserID uint `json:"user_id"`
}

type GetSubtaskRequest struct {
	SubtaskID uint `json:"subtask_id"`
	UserID    uint `json:"user_id"`
}

type CreateSubtaskRequest struct {
	TaskID            uint   `json:"task_id"`
	UserID            uint   `json:"user_id"`
	SubtaskName       string `json:"subtask_name"`
	ContributionValue int    `json:"contribution_value"`
}

type UpdateSubtaskRequest struct {
	SubtaskID         uint    `json:"subtask_id"`
	UserID            uint    `json:"user_id"`
	SubtaskName       *string `json:"subtask_name"`
	ContributionValue *int    `json:"contribution_value"`
}

type DeleteSubtaskRequest struct {
	SubtaskID uint `json:"subtask_id"`
	UserID    uint `json:"user_id"`
}

type SubtaskProgressRequest struct {
	SubtaskID uint `json:"subtask_id"`
	UserID    uint `json:"user_id"`
}

type SubtaskSummaryRequest struct {
	SubtaskID uint `json:"subtask_id"`
	UserID    uint `json:"user_id"`
}

type TaskSummaryRequest struct {
	TaskID uint `json:"task_id"`
	UserID uint `json:"user_id"`
}

type ListRecordsRequest struct {
	SubtaskID uint `json:"subtask_id"`
	UserID    uint `json:"user_id"`
}

type GetRecordRequest struct {
	RecordWorkID uint `json:"record_work_id"`
	UserID       uint `json:"user_id"`
}

type CreateRecordRequest struct {
	SubtaskID uint        `json:"subtask_id"`
	UserID    uint        `json:"user_id"`
	Date      domain.Date `json:"date"`
	Work      int         `json:"work"`
	WorkTime  int         `json:"work_time"`
}

type UpdateRecordRequest struct {
	RecordWorkID uint         `json:"record_work_id"`
	UserID       uint         `json:"user_id"`
	Date         *domain.Date `json:"date"`
	Work         *int         `json:"work"`
	WorkTime     *int         `json:"work_time"`
}

type DeleteRecordRequest struct {
	RecordWorkID uint `json:"record_work_id"`
	UserID       uint `json:"user_id"`
}

// Response types.

type SubtaskResponse struct {
	SubtaskID         uint   `json:"subtask_id"`
	TaskID            uint   `json:"task_id"`
	SubtaskName       string `json:"subtask_name"`
	ContributionValue int    `json:"contribution_value"`
	Progress          int    `json:"progress"`
}

type TaskPlanResponse struct {
	DailyTaskPlanID uint        `json:"daily_task_plan_id"`
	TaskID          uint        `json:"task_id"`
	Date            domain.Date `json:"date"`
	TaskPlanValue   float64     `json:"task_plan_value"`
}

type TimePlanResponse struct {
	DailyTimePlanID uint        `json:"daily_time_plan_id"`
	TaskID          uint        `json:"task_id"`
	Date            domain.Date `json:"date"`
	TimePlanValue   float64     `json:"time_plan_value"`
}

type TaskResponse struct {
	TaskID         uint               `json:"task_id"`
	UserID         uint               `json:"user_id"`
	TaskName       string             `json:"task_name"`
	TaskContent    string             `json:"task_content"`
	RecentSchedule string             `json:"recent_schedule"`
	StartDate      domain.Date        `json:"start_date"`
	DueDate        domain.Date        `json:"due_date"`
	Category       string             `json:"category"`
	TargetTime     int                `json:"target_time"`
	Comment        string             `json:"comment"`
	Progress       int                `json:"progress"`
	TotalWorkTime  int                `json:"total_work_time"`
	Subtasks       []SubtaskResponse  `json:"subtasks"`
	DailyTaskPlans []TaskPlanResponse `json:"daily_task_plans"`
	DailyTimePlans []TimePlanResponse `json:"daily_time_plans"`
}

type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type DeleteTaskResponse struct {
	TaskID  uint `json:"task_id"`
	Deleted bool `json:"deleted"`
}

type ListSubtasksResponse struct {
	Subtasks []SubtaskResponse `json:"subtasks"`
}

type DeleteSubtaskResponse struct {
	SubtaskID uint `json:"subtask_id"`
	Deleted   bool `json:"deleted"`
}

type SubtaskProgressResponse struct {
	SubtaskID uint `json:"subtask_id"`
	Progress  int  `json:"progress"`
}

type SubtaskSummaryResponse struct {
	SubtaskID     uint `json:"subtask_id"`
	TotalWork     int  `json:"total_work"`
	TotalWorkTime int  `json:"total_work_time"`
	WorkDays      int  `json:"work_days"`
}

type TaskSummaryResponse struct {
	TaskID        uint `json:"task_id"`
	TotalWork     int  `json:"total_work"`
	TotalWorkTime int  `json:"total_work_time"`
	WorkDays      int  `json:"work_days"`
}

type RecordResponse struct {
	RecordWorkID uint        `json:"record_work_id"`
	SubtaskID    uint        `json:"subtask_id"`
	Date         domain.Date `json:"date"`
	Work         int         `json:"work"`
	WorkTime     int         `json:"work_time"`
}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

type DeleteRecordResponse struct {
	RecordWorkID uint `json:"record_work_id"`
	Deleted      bool `json:"deleted"`
}
