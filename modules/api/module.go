package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/task-planner/modules/auth"
	"github.com/example/task-planner/modules/cache"
)

// APIModule is the HTTP surface. It owns no state of its own; everything
// goes through the auth and task service containers.
type APIModule struct {
	app           *fiber.App
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	cacheMod      *cache.Module
	port          int
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := 3000
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		} else {
			log.Printf("[api] Invalid HTTP_PORT %q, using default %d", v, port)
		}
	}
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskContainer = container
	}
}

// SetCacheModule hands over the cache module so the API can expose cache
// statistics. Optional.
func (m *APIModule) SetCacheModule(cm *cache.Module) {
	m.cacheMod = cm
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskContainer == nil {
		return fmt.Errorf("task dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.taskContainer, m.authAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	if m.cacheMod != nil {
		v1.Get("/cache/stats", func(c *fiber.Ctx) error {
			return c.JSON(m.cacheMod.Service().Stats())
		})
	}

	// Everything below requires a bearer token
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))

	protected.Get("/users/me", handlers.Me)

	protected.Get("/tasks", handlers.ListTasks)
	protected.Post("/tasks", handlers.CreateTask)
	protected.Post("/tasks/calculate-initial-values", handlers.CalculateInitialValues)
	protected.Get("/tasks/:id", handlers.GetTask)
	protected.Put("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)
	protected.Get("/tasks/:id/work-summary", handlers.TaskWorkSummary)

	protected.Get("/subtasks/task/:taskId", handlers.ListSubtasks)
	protected.Post("/subtasks/task/:taskId", handlers.CreateSubtask)
	protected.Get("/subtasks/:id", handlers.GetSubtask)
	protected.Put("/subtasks/:id", handlers.UpdateSubtask)
	protected.Delete("/subtasks/:id", handlers.DeleteSubtask)
	protected.Get("/subtasks/:id/progress", handlers.SubtaskProgress)
	protected.Get("/subtasks/:id/summary", handlers.SubtaskSummary)
	protected.Get("/subtasks/:id/record-works", handlers.ListRecords)
	protected.Post("/subtasks/:id/record-works", handlers.CreateRecord)

	protected.Get("/record-works/:id", handlers.GetRecord)
	protected.Put("/record-works/:id", handlers.UpdateRecord)
	protected.Delete("/record-works/:id", handlers.DeleteRecord)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
