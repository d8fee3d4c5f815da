package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-planner/domain/task"
)

func TestCreateRecord_DuplicateDateConflicts(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	first, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID,
		UserID:    ownerID,
		Date:      day,
		Work:      20,
		WorkTime:  45,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.RecordWorkID)

	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID,
		UserID:    ownerID,
		Date:      day,
		Work:      10,
		WorkTime:  15,
	})
	require.ErrorIs(t, err, domain.ErrDuplicateDate)

	// The same date on a different subtask is fine.
	other, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: resp.Subtasks[1].SubtaskID,
		UserID:    ownerID,
		Date:      day,
		Work:      10,
		WorkTime:  15,
	})
	require.NoError(t, err)
	assert.NotZero(t, other.RecordWorkID)
}

func TestUpdateRecord_DateMoveConflicts(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	_, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 20, WorkTime: 45,
	})
	require.NoError(t, err)
	second, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: ownerID, Date: day.AddDays(1), Work: 30, WorkTime: 60,
	})
	require.NoError(t, err)

	// Moving onto an occupied date fails.
	target := day
	_, err = svc.UpdateRecord(ctx, UpdateRecordRequest{
		RecordWorkID: second.RecordWorkID,
		UserID:       ownerID,
		Date:         &target,
	})
	require.ErrorIs(t, err, domain.ErrDuplicateDate)

	// Re-submitting a record's own date is not a conflict.
	own := day.AddDays(1)
	work := 35
	updated, err := svc.UpdateRecord(ctx, UpdateRecordRequest{
		RecordWorkID: second.RecordWorkID,
		UserID:       ownerID,
		Date:         &own,
		Work:         &work,
	})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Work)

	// Moving to a free date works.
	free := day.AddDays(2)
	moved, err := svc.UpdateRecord(ctx, UpdateRecordRequest{
		RecordWorkID: second.RecordWorkID,
		UserID:       ownerID,
		Date:         &free,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", moved.Date.String())
}

func TestRecord_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	tests := []struct {
		name string
		req  CreateRecordRequest
	}{
		{
			name: "work above 100",
			req:  CreateRecordRequest{SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 101},
		},
		{
			name: "negative work",
			req:  CreateRecordRequest{SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: -1},
		},
		{
			name: "negative work time",
			req:  CreateRecordRequest{SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 10, WorkTime: -5},
		},
		{
			name: "missing date",
			req:  CreateRecordRequest{SubtaskID: subtaskID, UserID: ownerID, Work: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecord(ctx, tt.req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecord_CrossUserAccess(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	rec, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 20, WorkTime: 45,
	})
	require.NoError(t, err)

	_, err = svc.GetRecord(ctx, GetRecordRequest{RecordWorkID: rec.RecordWorkID, UserID: intruderID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListRecords(ctx, ListRecordsRequest{SubtaskID: subtaskID, UserID: intruderID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.DeleteRecord(ctx, DeleteRecordRequest{RecordWorkID: rec.RecordWorkID, UserID: intruderID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: intruderID, Date: day.AddDays(1), Work: 5,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListRecords_NewestFirst(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRecord(ctx, CreateRecordRequest{
			SubtaskID: subtaskID, UserID: ownerID, Date: day.AddDays(i), Work: 10, WorkTime: 30,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListRecords(ctx, ListRecordsRequest{SubtaskID: subtaskID, UserID: ownerID})
	require.NoError(t, err)
	require.Len(t, list.Records, 3)
	assert.Equal(t, "2024-01-03", list.Records[0].Date.String())
	assert.Equal(t, "2024-01-01", list.Records[2].Date.String())
}

func TestTaskSummary_AggregatesAndCacheInvalidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	day := date(2024, time.January, 1)

	// Two subtasks, overlapping dates: distinct days = 2.
	_, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: resp.Subtasks[0].SubtaskID, UserID: ownerID, Date: day, Work: 20, WorkTime: 45,
	})
	require.NoError(t, err)
	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: resp.Subtasks[1].SubtaskID, UserID: ownerID, Date: day, Work: 30, WorkTime: 15,
	})
	require.NoError(t, err)
	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: resp.Subtasks[0].SubtaskID, UserID: ownerID, Date: day.AddDays(1), Work: 10, WorkTime: 30,
	})
	require.NoError(t, err)

	summary, err := svc.TaskSummary(ctx, TaskSummaryRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 60, summary.TotalWork)
	assert.Equal(t, 90, summary.TotalWorkTime)
	assert.Equal(t, 2, summary.WorkDays)

	// Cached value is served until a record mutation invalidates it.
	cached, err := svc.TaskSummary(ctx, TaskSummaryRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, summary, cached)

	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: resp.Subtasks[1].SubtaskID, UserID: ownerID, Date: day.AddDays(2), Work: 40, WorkTime: 10,
	})
	require.NoError(t, err)

	refreshed, err := svc.TaskSummary(ctx, TaskSummaryRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 100, refreshed.TotalWork)
	assert.Equal(t, 100, refreshed.TotalWorkTime)
	assert.Equal(t, 3, refreshed.WorkDays)
}

func TestDeleteRecord(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := date(2024, time.January, 1)

	rec, err := svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 20, WorkTime: 45,
	})
	require.NoError(t, err)

	del, err := svc.DeleteRecord(ctx, DeleteRecordRequest{RecordWorkID: rec.RecordWorkID, UserID: ownerID})
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	_, err = svc.GetRecord(ctx, GetRecordRequest{RecordWorkID: rec.RecordWorkID, UserID: ownerID})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	// The freed date is usable again.
	_, err = svc.CreateRecord(ctx, CreateRecordRequest{
		SubtaskID: subtaskID, UserID: ownerID, Date: day, Work: 25, WorkTime: 50,
	})
	require.NoError(t, err)
}
