package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// handleTaskError maps a task-service error onto an HTTP status. The
// error crossed the message bus as text, so matching is by the sentinel
// messages the task module embeds. The diagnostic text (computed sums,
// offending rule) is passed through to the client.
func handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: trimServicePrefix(errStr),
		})
	case strings.Contains(errStr, "permission denied"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: trimServicePrefix(errStr),
		})
	case strings.Contains(errStr, "invariant violated"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_state",
			Message: trimServicePrefix(errStr),
		})
	case strings.Contains(errStr, "already exists for this date"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "conflict",
			Message: trimServicePrefix(errStr),
		})
	case strings.Contains(errStr, "invalid input"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: trimServicePrefix(errStr),
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// trimServicePrefix drops transport wrapping ("x request failed: ") so
// clients see only the domain message.
func trimServicePrefix(errStr string) string {
	if i := strings.LastIndex(errStr, "request failed: "); i >= 0 {
		return errStr[i+len("request failed: "):]
	}
	return errStr
}
