package task

// Task is the root planning entity. It owns its subtasks and both daily
// plan sets; deleting a task removes all of them.
type Task struct {
	TaskID         uint   `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	UserID         uint   `gorm:"column:user_id;index;not null" json:"user_id"`
	TaskName       string `gorm:"column:task_name;not null;type:text" json:"task_name"`
	TaskContent    string `gorm:"column:task_content;type:text" json:"task_content"`
	RecentSchedule string `gorm:"column:recent_schedule;type:text" json:"recent_schedule"`
	StartDate      Date   `gorm:"column:start_date" json:"start_date"`
	DueDate        Date   `gorm:"column:due_date" json:"due_date"`
	Category       string `gorm:"column:category;type:text" json:"category"`
	TargetTime     int    `gorm:"column:target_time;not null;default:0" json:"target_time"`
	Comment        string `gorm:"column:comment;type:text" json:"comment"`

	Subtasks       []Subtask       `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subtasks"`
	DailyTaskPlans []DailyTaskPlan `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"daily_task_plans"`
	DailyTimePlans []DailyTimePlan `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"daily_time_plans"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Subtask is a weighted slice of a task. Contribution values of all
// subtasks under one task sum to 100.
type Subtask struct {
	SubtaskID         uint   `gorm:"column:subtask_id;primaryKey;autoIncrement" json:"subtask_id"`
	TaskID            uint   `gorm:"column:task_id;index;not null" json:"task_id"`
	SubtaskName       string `gorm:"column:subtask_name;not null;type:text" json:"subtask_name"`
	ContributionValue int    `gorm:"column:contribution_value;not null" json:"contribution_value"`

	RecordWorks []RecordWork `gorm:"foreignKey:SubtaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Subtask entity.
func (Subtask) TableName() string {
	return "subtasks"
}

// DailyTaskPlan is one day's planned share of task completion, in percent.
type DailyTaskPlan struct {
	DailyTaskPlanID uint    `gorm:"column:daily_task_plan_id;primaryKey;autoIncrement" json:"daily_task_plan_id"`
	TaskID          uint    `gorm:"column:task_id;index;not null" json:"task_id"`
	Date            Date    `gorm:"column:date" json:"date"`
	TaskPlanValue   float64 `gorm:"column:task_plan_value;not null" json:"task_plan_value"`
}

// TableName returns the table name for the DailyTaskPlan entity.
func (DailyTaskPlan) TableName() string {
	return "daily_task_plans"
}

// DailyTimePlan is one day's planned working time, in minutes.
type DailyTimePlan struct {
	DailyTimePlanID uint    `gorm:"column:daily_time_plan_id;primaryKey;autoIncrement" json:"daily_time_plan_id"`
	TaskID          uint    `gorm:"column:task_id;index;not null" json:"task_id"`
	Date            Date    `gorm:"column:date" json:"date"`
	TimePlanValue   float64 `gorm:"column:time_plan_value;not null" json:"time_plan_value"`
}

// TableName returns the table name for the DailyTimePlan entity.
func (DailyTimePlan) TableName() string {
	return "daily_time_plans"
}

// RecordWork is one day's reported work for a subtask. At most one record
// exists per (subtask, date) pair.
type RecordWork struct {
	RecordWorkID uint `gorm:"column:record_work_id;primaryKey;autoIncrement" json:"record_work_id"`
	SubtaskID    uint `gorm:"column:subtask_id;index:idx_record_works_subtask_date,unique;not null" json:"subtask_id"`
	Date         Date `gorm:"column:date;index:idx_record_works_subtask_date,unique" json:"date"`
	Work         int  `gorm:"column:work;not null" json:"work"`
	WorkTime     int  `gorm:"column:work_time;not null;default:0" json:"work_time"`
}

// TableName returns the table name for the RecordWork entity.
func (RecordWork) TableName() string {
	return "record_works"
}

// WorkSummary aggregates recorded work for a subtask or a whole task.
type WorkSummary struct {
	TotalWork     int `json:"total_work"`
	TotalWorkTime int `json:"total_work_time"`
	WorkDays      int `json:"work_days"`
}
