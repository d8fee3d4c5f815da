package task

import (
	"context"

	"github.com/go-monolith/mono"
)

// Request-reply handlers. Each delegates straight to the service; the
// request structs already carry the authenticated user ID stamped by the
// API layer.

func (m *TaskModule) handleTaskList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	return m.service.ListTasks(ctx, req)
}

func (m *TaskModule) handleTaskGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	return m.service.GetTask(ctx, req)
}

func (m *TaskModule) handleTaskCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	return m.service.CreateTask(ctx, req)
}

func (m *TaskModule) handleTaskUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	return m.service.UpdateTask(ctx, req)
}

func (m *TaskModule) handleTaskDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	return m.service.DeleteTask(ctx, req)
}

func (m *TaskModule) handleInitialValues(ctx context.Context, req InitialValuesRequest, _ *mono.Msg) (InitialValues, error) {
	return m.service.InitialValues(ctx, req)
}

func (m *TaskModule) handleTaskSummary(ctx context.Context, req TaskSummaryRequest, _ *mono.Msg) (TaskSummaryResponse, error) {
	return m.service.TaskSummary(ctx, req)
}

func (m *TaskModule) handleSubtaskList(ctx context.Context, req ListSubtasksRequest, _ *mono.Msg) (ListSubtasksResponse, error) {
	return m.service.ListSubtasks(ctx, req)
}

func (m *TaskModule) handleSubtaskGet(ctx context.Context, req GetSubtaskRequest, _ *mono.Msg) (SubtaskResponse, error) {
	return m.service.GetSubtask(ctx, req)
}

func (m *TaskModule) handleSubtaskCreate(ctx context.Context, req CreateSubtaskRequest, _ *mono.Msg) (SubtaskResponse, error) {
	return m.service.CreateSubtask(ctx, req)
}

func (m *TaskModule) handleSubtaskUpdate(ctx context.Context, req UpdateSubtaskRequest, _ *mono.Msg) (SubtaskResponse, error) {
	return m.service.UpdateSubtask(ctx, req)
}

func (m *TaskModule) handleSubtaskDelete(ctx context.Context, req DeleteSubtaskRequest, _ *mono.Msg) (DeleteSubtaskResponse, error) {
	return m.service.DeleteSubtask(ctx, req)
}

func (m *TaskModule) handleSubtaskProgress(ctx context.Context, req SubtaskProgressRequest, _ *mono.Msg) (SubtaskProgressResponse, error) {
	return m.service.SubtaskProgress(ctx, req)
}

func (m *TaskModule) handleSubtaskSummary(ctx context.Context, req SubtaskSummaryRequest, _ *mono.Msg) (SubtaskSummaryResponse, error) {
	return m.service.SubtaskSummary(ctx, req)
}

func (m *TaskModule) handleRecordList(ctx context.Context, req ListRecordsRequest, _ *mono.Msg) (ListRecordsResponse, error) {
	return m.service.ListRecords(ctx, req)
}

func (m *TaskModule) handleRecordGet(ctx context.Context, req GetRecordRequest, _ *mono.Msg) (RecordResponse, error) {
	return m.service.GetRecord(ctx, req)
}

func (m *TaskModule) handleRecordCreate(ctx context.Context, req CreateRecordRequest, _ *mono.Msg) (RecordResponse, error) {
	return m.service.CreateRecord(ctx, req)
}

func (m *TaskModule) handleRecordUpdate(ctx context.Context, req UpdateRecordRequest, _ *mono.Msg) (RecordResponse, error) {
	return m.service.UpdateRecord(ctx, req)
}

func (m *TaskModule) handleRecordDelete(ctx context.Context, req DeleteRecordRequest, _ *mono.Msg) (DeleteRecordResponse, error) {
	return m.service.DeleteRecord(ctx, req)
}
