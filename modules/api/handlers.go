package api

import (
	"encoding/json"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	domain "github.com/example/task-planner/domain/user"
	"github.com/example/task-planner/modules/auth"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
		authAdapter:   authAdapter,
	}
}

// callService sends a request-reply message to a registered service and
// decodes the reply.
func callService[Resp any](c *fiber.Ctx, container mono.ServiceContainer, name string, req any) (Resp, error) {
	var resp Resp
	err := helper.CallRequestReplyService(
		c.UserContext(),
		container,
		name,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
	return resp, err
}

// currentClaims returns the token claims stored by the auth middleware.
func currentClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// requireClaims fetches the claims, writing a 401 response when absent.
// The bool reports whether the handler may proceed.
func requireClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		_ = c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}
	return claims, ok
}

// paramID parses a numeric path parameter, writing a 400 response on a
// malformed value.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}
