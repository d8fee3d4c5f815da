package task

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/example/task-planner/domain/task"
)

// Repository is the persistence layer for tasks and everything hanging off
// them. Multi-step operations run through WithTx so the invariant checks
// and the writes they guard commit or roll back together.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx runs fn against a transaction-scoped copy of the repository. An
// error from fn rolls the transaction back.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Tasks

// FindTask loads a task with its subtasks and both plan sets.
func (r *Repository) FindTask(ctx context.Context, taskID uint) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks").
		Preload("DailyTaskPlans", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		Preload("DailyTimePlans", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		First(&t, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTaskLean loads a task row without associations, enough for
// ownership checks.
func (r *Repository) FindTaskLean(ctx context.Context, taskID uint) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListTasks(ctx context.Context, userID uint, offset, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	q := r.db.WithContext(ctx).
		Preload("Subtasks").
		Preload("DailyTaskPlans", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		Preload("DailyTimePlans", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		Where("user_id = ?", userID).
		Order("task_id")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *Repository) CountTasks(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// CreateTask inserts the task together with any nested subtasks and plans.
func (r *Repository) CreateTask(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repository) SaveTask(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteTask removes the task and cascades to subtasks, plans, and work
// records. The cascade is issued explicitly so it does not depend on the
// driver honoring foreign-key pragmas.
func (r *Repository) DeleteTask(ctx context.Context, taskID uint) error {
	db := r.db.WithContext(ctx)
	subtaskIDs := db.Model(&domain.Subtask{}).Select("subtask_id").Where("task_id = ?", taskID)
	if err := db.Where("subtask_id IN (?)", subtaskIDs).Delete(&domain.RecordWork{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id = ?", taskID).Delete(&domain.Subtask{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id = ?", taskID).Delete(&domain.DailyTaskPlan{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id = ?", taskID).Delete(&domain.DailyTimePlan{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Task{}, taskID).Error
}

// Daily plans

// ReplaceTaskPlans swaps the task's daily task-plan set for the given one.
func (r *Repository) ReplaceTaskPlans(ctx context.Context, taskID uint, plans []domain.DailyTaskPlan) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", taskID).Delete(&domain.DailyTaskPlan{}).Error; err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}
	return db.Create(&plans).Error
}

// ReplaceTimePlans swaps the task's daily time-plan set for the given one.
func (r *Repository) ReplaceTimePlans(ctx context.Context, taskID uint, plans []domain.DailyTimePlan) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", taskID).Delete(&domain.DailyTimePlan{}).Error; err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}
	return db.Create(&plans).Error
}

func (r *Repository) TaskPlans(ctx context.Context, taskID uint) ([]domain.DailyTaskPlan, error) {
	var plans []domain.DailyTaskPlan
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).Order("date").Find(&plans).Error
	return plans, err
}

func (r *Repository) TimePlans(ctx context.Context, taskID uint) ([]domain.DailyTimePlan, error) {
	var plans []domain.DailyTimePlan
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).Order("date").Find(&plans).Error
	return plans, err
}

// Subtasks

func (r *Repository) FindSubtask(ctx context.Context, subtaskID uint) (*domain.Subtask, error) {
	var st domain.Subtask
	err := r.db.WithContext(ctx).First(&st, subtaskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSubtaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Repository) SubtasksByTask(ctx context.Context, taskID uint) ([]domain.Subtask, error) {
	var subtasks []domain.Subtask
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).Order("subtask_id").Find(&subtasks).Error
	return subtasks, err
}

func (r *Repository) CreateSubtask(ctx context.Context, st *domain.Subtask) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *Repository) SaveSubtask(ctx context.Context, st *domain.Subtask) error {
	return r.db.WithContext(ctx).Save(st).Error
}

// DeleteSubtask removes the subtask and its work records.
func (r *Repository) DeleteSubtask(ctx context.Context, subtaskID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("subtask_id = ?", subtaskID).Delete(&domain.RecordWork{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Subtask{}, subtaskID).Error
}

// SumContributions totals the contribution values of a task's subtasks.
func (r *Repository) SumContributions(ctx context.Context, taskID uint) (int, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&domain.Subtask{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(contribution_value), 0)").
		Scan(&sum).Error
	return int(sum), err
}

func (r *Repository) CountSubtasks(ctx context.Context, taskID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Subtask{}).
		Where("task_id = ?", taskID).Count(&n).Error
	return n, err
}

// Work records

func (r *Repository) FindRecord(ctx context.Context, recordID uint) (*domain.RecordWork, error) {
	var rec domain.RecordWork
	err := r.db.WithContext(ctx).First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) RecordsBySubtask(ctx context.Context, subtaskID uint) ([]domain.RecordWork, error) {
	var records []domain.RecordWork
	err := r.db.WithContext(ctx).
		Where("subtask_id = ?", subtaskID).Order("date DESC").Find(&records).Error
	return records, err
}

// RecordExistsOnDate reports whether the subtask already has a record for
// the date, optionally excluding one record (for date moves).
func (r *Repository) RecordExistsOnDate(ctx context.Context, subtaskID uint, date domain.Date, excludeID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.RecordWork{}).
		Where("subtask_id = ? AND date = ?", subtaskID, date)
	if excludeID != 0 {
		q = q.Where("record_work_id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) CreateRecord(ctx context.Context, rec *domain.RecordWork) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateDate
	}
	return err
}

func (r *Repository) SaveRecord(ctx context.Context, rec *domain.RecordWork) error {
	err := r.db.WithContext(ctx).Save(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateDate
	}
	return err
}

func (r *Repository) DeleteRecord(ctx context.Context, recordID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RecordWork{}, recordID).Error
}

// Aggregates

// SubtaskWorkSum totals the raw work percentages recorded for a subtask,
// uncapped.
func (r *Repository) SubtaskWorkSum(ctx context.Context, subtaskID uint) (int, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&domain.RecordWork{}).
		Where("subtask_id = ?", subtaskID).
		Select("COALESCE(SUM(work), 0)").
		Scan(&sum).Error
	return int(sum), err
}

// WorkSumsByTask returns each subtask's raw work sum for one task, keyed
// by subtask ID. Subtasks with no records are absent from the map.
func (r *Repository) WorkSumsByTask(ctx context.Context, taskID uint) (map[uint]int, error) {
	type row struct {
		SubtaskID uint
		Sum       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.RecordWork{}).
		Select("record_works.subtask_id AS subtask_id, COALESCE(SUM(record_works.work), 0) AS sum").
		Joins("JOIN subtasks ON subtasks.subtask_id = record_works.subtask_id").
		Where("subtasks.task_id = ?", taskID).
		Group("record_works.subtask_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[uint]int, len(rows))
	for _, rw := range rows {
		sums[rw.SubtaskID] = int(rw.Sum)
	}
	return sums, nil
}

// SubtaskSummary aggregates a subtask's work records: total work, total
// minutes, and the number of distinct days worked.
func (r *Repository) SubtaskSummary(ctx context.Context, subtaskID uint) (domain.WorkSummary, error) {
	var s domain.WorkSummary
	err := r.db.WithContext(ctx).Model(&domain.RecordWork{}).
		Where("subtask_id = ?", subtaskID).
		Select("COALESCE(SUM(work), 0) AS total_work, COALESCE(SUM(work_time), 0) AS total_work_time, COUNT(DISTINCT date) AS work_days").
		Scan(&s).Error
	return s, err
}

// TaskSummary aggregates work records across all of a task's subtasks.
func (r *Repository) TaskSummary(ctx context.Context, taskID uint) (domain.WorkSummary, error) {
	var s domain.WorkSummary
	err := r.db.WithContext(ctx).Model(&domain.RecordWork{}).
		Joins("JOIN subtasks ON subtasks.subtask_id = record_works.subtask_id").
		Where("subtasks.task_id = ?", taskID).
		Select("COALESCE(SUM(record_works.work), 0) AS total_work, COALESCE(SUM(record_works.work_time), 0) AS total_work_time, COUNT(DISTINCT record_works.date) AS work_days").
		Scan(&s).Error
	return s, err
}
