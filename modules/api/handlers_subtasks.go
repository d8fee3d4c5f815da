package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/task-planner/modules/task"
)

// ListSubtasks returns the subtasks of one task.
func (h *Handlers) ListSubtasks(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "taskId")
	if !ok {
		return nil
	}

	req := task.ListSubtasksRequest{TaskID: taskID, UserID: claims.UserID}
	resp, err := callService[task.ListSubtasksResponse](c, h.taskContainer, "subtask-list", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateSubtask adds a subtask to a task.
func (h *Handlers) CreateSubtask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "taskId")
	if !ok {
		return nil
	}

	var req task.CreateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.TaskID = taskID
	req.UserID = claims.UserID

	resp, err := callService[task.SubtaskResponse](c, h.taskContainer, "subtask-create", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSubtask returns one subtask with its progress.
func (h *Handlers) GetSubtask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.GetSubtaskRequest{SubtaskID: subtaskID, UserID: claims.UserID}
	resp, err := callService[task.SubtaskResponse](c, h.taskContainer, "subtask-get", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateSubtask patches a subtask's name or contribution value.
func (h *Handlers) UpdateSubtask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req task.UpdateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.SubtaskID = subtaskID
	req.UserID = claims.UserID

	resp, err := callService[task.SubtaskResponse](c, h.taskContainer, "subtask-update", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteSubtask deletes a subtask and its work records.
func (h *Handlers) DeleteSubtask(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.DeleteSubtaskRequest{SubtaskID: subtaskID, UserID: claims.UserID}
	resp, err := callService[task.DeleteSubtaskResponse](c, h.taskContainer, "subtask-delete", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// SubtaskProgress returns the capped completion percentage.
func (h *Handlers) SubtaskProgress(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.SubtaskProgressRequest{SubtaskID: subtaskID, UserID: claims.UserID}
	resp, err := callService[task.SubtaskProgressResponse](c, h.taskContainer, "subtask-progress", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// SubtaskSummary returns aggregated work for one subtask.
func (h *Handlers) SubtaskSummary(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.SubtaskSummaryRequest{SubtaskID: subtaskID, UserID: claims.UserID}
	resp, err := callService[task.SubtaskSummaryResponse](c, h.taskContainer, "subtask-summary", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
