package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-planner/domain/task"
)

func TestCreateSubtask_SumMustStayAt100(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)

	// Siblings already sum to 100; any non-zero addition breaks the sum.
	_, err := svc.CreateSubtask(ctx, CreateSubtaskRequest{
		TaskID:            resp.TaskID,
		UserID:            ownerID,
		SubtaskName:       "extra",
		ContributionValue: 10,
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)

	list, err := svc.ListSubtasks(ctx, ListSubtasksRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Len(t, list.Subtasks, 2)

	// A zero-contribution subtask keeps the sum intact.
	st, err := svc.CreateSubtask(ctx, CreateSubtaskRequest{
		TaskID:            resp.TaskID,
		UserID:            ownerID,
		SubtaskName:       "placeholder",
		ContributionValue: 0,
	})
	require.NoError(t, err)
	assert.NotZero(t, st.SubtaskID)
}

func TestUpdateSubtask_SumEnforced(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	first := resp.Subtasks[0] // 60/40 split with its sibling

	// A lone change that breaks the sum is rejected and rolled back.
	v := 50
	_, err := svc.UpdateSubtask(ctx, UpdateSubtaskRequest{
		SubtaskID:         first.SubtaskID,
		UserID:            ownerID,
		ContributionValue: &v,
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := svc.GetSubtask(ctx, GetSubtaskRequest{SubtaskID: first.SubtaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 60, got.ContributionValue)

	// Name-only updates never touch the sum.
	name := "deep research"
	updated, err := svc.UpdateSubtask(ctx, UpdateSubtaskRequest{
		SubtaskID:   first.SubtaskID,
		UserID:      ownerID,
		SubtaskName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "deep research", updated.SubtaskName)
	assert.Equal(t, 60, updated.ContributionValue)
}

func TestDeleteSubtask_LastOneSkipsSumCheck(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	first := resp.Subtasks[0]
	second := resp.Subtasks[1]

	// Deleting one of two leaves the survivor at 40 ≠ 100: rejected,
	// whichever side goes.
	_, err := svc.DeleteSubtask(ctx, DeleteSubtaskRequest{SubtaskID: first.SubtaskID, UserID: ownerID})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.DeleteSubtask(ctx, DeleteSubtaskRequest{SubtaskID: second.SubtaskID, UserID: ownerID})
	require.ErrorIs(t, err, domain.ErrInvalidState)

	list, err := svc.ListSubtasks(ctx, ListSubtasksRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Len(t, list.Subtasks, 2)

	// Deleting the only subtask of a task skips the check.
	single := validCreateRequest(ownerID)
	single.Subtasks = []SubtaskInput{{SubtaskName: "only", ContributionValue: 100}}
	created, err := svc.CreateTask(ctx, single)
	require.NoError(t, err)

	del, err := svc.DeleteSubtask(ctx, DeleteSubtaskRequest{
		SubtaskID: created.Subtasks[0].SubtaskID,
		UserID:    ownerID,
	})
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	got, err := svc.GetTask(ctx, GetTaskRequest{TaskID: created.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Empty(t, got.Subtasks)
}

func TestSubtask_CrossUserAccess(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID

	_, err := svc.GetSubtask(ctx, GetSubtaskRequest{SubtaskID: subtaskID, UserID: intruderID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	name := "hijacked"
	_, err = svc.UpdateSubtask(ctx, UpdateSubtaskRequest{
		SubtaskID:   subtaskID,
		UserID:      intruderID,
		SubtaskName: &name,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.DeleteSubtask(ctx, DeleteSubtaskRequest{SubtaskID: subtaskID, UserID: intruderID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateSubtask(ctx, CreateSubtaskRequest{
		TaskID:            resp.TaskID,
		UserID:            intruderID,
		SubtaskName:       "sneaky",
		ContributionValue: 0,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubtaskProgress_CappedAt100(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	resp := createTask(t, svc, ownerID)
	subtaskID := resp.Subtasks[0].SubtaskID
	day := resp.StartDate

	// 80 + 70 = 150 raw work over two days.
	for i, work := range []int{80, 70} {
		_, err := svc.CreateRecord(ctx, CreateRecordRequest{
			SubtaskID: subtaskID,
			UserID:    ownerID,
			Date:      day.AddDays(i),
			Work:      work,
			WorkTime:  60,
		})
		require.NoError(t, err)
	}

	progress, err := svc.SubtaskProgress(ctx, SubtaskProgressRequest{SubtaskID: subtaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Progress)

	// The raw sum stays visible in the summary.
	summary, err := svc.SubtaskSummary(ctx, SubtaskSummaryRequest{SubtaskID: subtaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 150, summary.TotalWork)
	assert.Equal(t, 120, summary.TotalWorkTime)
	assert.Equal(t, 2, summary.WorkDays)

	// Task progress weights the capped value: 60×100/100 + 40×0/100 = 60.
	got, err := svc.GetTask(ctx, GetTaskRequest{TaskID: resp.TaskID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)
}
