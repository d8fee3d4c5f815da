package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/task-planner/modules/api"
	"github.com/example/task-planner/modules/auth"
	"github.com/example/task-planner/modules/cache"
	"github.com/example/task-planner/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Planner ===")

	redisAddr := os.Getenv("REDIS_ADDR")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	cacheModule := cache.NewModule(redisAddr, "taskplanner:", cacheTTL)
	taskModule := task.NewModule()
	taskModule.SetCacheModule(cacheModule)
	apiModule := api.NewModule()
	apiModule.SetCacheModule(cacheModule)

	// Order: independent modules first, then dependent modules
	app.Register(cacheModule)
	app.Register(auth.NewModule())
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (default http://localhost:3000):")
	log.Println("")
	log.Println("  Public:")
	log.Println("  POST   /api/v1/auth/register                      - Register a new user")
	log.Println("  POST   /api/v1/auth/login                         - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh                       - Refresh access token")
	log.Println("  GET    /health                                    - Health check")
	log.Println("")
	log.Println("  Protected (require Bearer token):")
	log.Println("  GET    /api/v1/users/me                           - Current user profile")
	log.Println("  GET    /api/v1/tasks                              - List own tasks")
	log.Println("  POST   /api/v1/tasks                              - Create task with subtasks + plans")
	log.Println("  POST   /api/v1/tasks/calculate-initial-values     - Even plan pre-fill")
	log.Println("  GET    /api/v1/tasks/:id                          - Get task")
	log.Println("  PUT    /api/v1/tasks/:id                          - Update task (partial)")
	log.Println("  DELETE /api/v1/tasks/:id                          - Delete task (cascade)")
	log.Println("  GET    /api/v1/tasks/:id/work-summary             - Aggregated work")
	log.Println("  GET    /api/v1/subtasks/task/:taskId              - List subtasks")
	log.Println("  POST   /api/v1/subtasks/task/:taskId              - Create subtask")
	log.Println("  GET    /api/v1/subtasks/:id                       - Get subtask")
	log.Println("  PUT    /api/v1/subtasks/:id                       - Update subtask")
	log.Println("  DELETE /api/v1/subtasks/:id                       - Delete subtask")
	log.Println("  GET    /api/v1/subtasks/:id/progress              - Capped progress")
	log.Println("  GET    /api/v1/subtasks/:id/summary               - Aggregated work")
	log.Println("  GET    /api/v1/subtasks/:id/record-works          - List work records")
	log.Println("  POST   /api/v1/subtasks/:id/record-works          - Record work for a day")
	log.Println("  GET    /api/v1/record-works/:id                   - Get work record")
	log.Println("  PUT    /api/v1/record-works/:id                   - Update work record")
	log.Println("  DELETE /api/v1/record-works/:id                   - Delete work record")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
