package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/task-planner/modules/task"
)

// ListRecords returns a subtask's work records, newest date first.
func (h *Handlers) ListRecords(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.ListRecordsRequest{SubtaskID: subtaskID, UserID: claims.UserID}
	resp, err := callService[task.ListRecordsResponse](c, h.taskContainer, "record-list", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateRecord records work done on a subtask for one day.
func (h *Handlers) CreateRecord(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	subtaskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req task.CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.SubtaskID = subtaskID
	req.UserID = claims.UserID

	resp, err := callService[task.RecordResponse](c, h.taskContainer, "record-create", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetRecord returns one work record.
func (h *Handlers) GetRecord(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.GetRecordRequest{RecordWorkID: recordID, UserID: claims.UserID}
	resp, err := callService[task.RecordResponse](c, h.taskContainer, "record-get", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateRecord patches a work record.
func (h *Handlers) UpdateRecord(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req task.UpdateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.RecordWorkID = recordID
	req.UserID = claims.UserID

	resp, err := callService[task.RecordResponse](c, h.taskContainer, "record-update", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteRecord deletes a work record.
func (h *Handlers) DeleteRecord(c *fiber.Ctx) error {
	claims, ok := requireClaims(c)
	if !ok {
		return nil
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	req := task.DeleteRecordRequest{RecordWorkID: recordID, UserID: claims.UserID}
	resp, err := callService[task.DeleteRecordResponse](c, h.taskContainer, "record-delete", &req)
	if err != nil {
		return handleTaskError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
