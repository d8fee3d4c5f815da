package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/task-planner/modules/task"
)

// ListTasks returns the authenticated user's tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}

	req := task.ListTasksRequest{
		UserID: claims.UserID,
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", 0),
	}
	resp, err := callService[task.ListTasksResponse](c, h.taskContainer, "task-list", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask returns one task with subtasks and plans.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.GetTaskRequest{TaskID: taskID, UserID: claims.UserID}
	resp, err := callService[task.TaskResponse](c, h.taskContainer, "task-get", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateTask creates a task with its subtasks and daily plans.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}

	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	// The acting user comes from the token, never from the payload.
	req.UserID = claims.UserID

	resp, err := callService[task.TaskResponse](c, h.taskContainer, "task-create", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.TaskID = taskID
	req.UserID = claims.UserID

	resp, err := callService[task.TaskResponse](c, h.taskContainer, "task-update", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask deletes a task and everything under it.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.DeleteTaskRequest{TaskID: taskID, UserID: claims.UserID}
	resp, err := callService[task.DeleteTaskResponse](c, h.taskContainer, "task-delete", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CalculateInitialValues returns the even plan pre-fill for the task form.
func (h *Handlers) CalculateInitialValues(c *fiber.Ctx) error {
	if _, ok := requireClaims(c); !ok {
		return nil
	}

	var req task.InitialValuesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := callService[task.InitialValues](c, h.taskContainer, "task-initial-values", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// TaskWorkSummary returns aggregated work over all of a task's subtasks.
func (h *Handlers) TaskWorkSummary(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.TaskSummaryRequest{TaskID: taskID, UserID: claims.UserID}
	resp, err := callService[task.TaskSummaryResponse](c, h.taskContainer, "task-summary", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
