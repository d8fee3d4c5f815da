package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/task-planner/domain/task"
	"github.com/example/task-planner/modules/cache"
)

// TaskModule provides the task-planning services.
type TaskModule struct {
	db       *gorm.DB
	service  *Service
	dbPath   string
	cacheMod *cache.Module
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASK_DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}
	return &TaskModule{
		dbPath: dbPath,
	}
}

// SetCacheModule hands over the cache module. The cache module must be
// registered before this one so its backend exists when Start runs here.
// Without it the summary cache is simply disabled.
func (m *TaskModule) SetCacheModule(cm *cache.Module) {
	m.cacheMod = cm
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel()),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(
		&domain.Task{},
		&domain.Subtask{},
		&domain.DailyTaskPlan{},
		&domain.DailyTimePlan{},
		&domain.RecordWork{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var summaries cache.Service
	if m.cacheMod != nil {
		summaries = m.cacheMod.Service()
	}
	m.service = NewService(NewRepository(db), summaries)

	log.Printf("[task] Module started (database: %s, summary cache: %v)", m.dbPath, summaries != nil)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers the request-reply services in the container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	register := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
		return nil
	}

	if err := register("task-list", helper.RegisterTypedRequestReplyService(
		container, "task-list", json.Unmarshal, json.Marshal, m.handleTaskList)); err != nil {
		return err
	}
	if err := register("task-get", helper.RegisterTypedRequestReplyService(
		container, "task-get", json.Unmarshal, json.Marshal, m.handleTaskGet)); err != nil {
		return err
	}
	if err := register("task-create", helper.RegisterTypedRequestReplyService(
		container, "task-create", json.Unmarshal, json.Marshal, m.handleTaskCreate)); err != nil {
		return err
	}
	if err := register("task-update", helper.RegisterTypedRequestReplyService(
		container, "task-update", json.Unmarshal, json.Marshal, m.handleTaskUpdate)); err != nil {
		return err
	}
	if err := register("task-delete", helper.RegisterTypedRequestReplyService(
		container, "task-delete", json.Unmarshal, json.Marshal, m.handleTaskDelete)); err != nil {
		return err
	}
	if err := register("task-initial-values", helper.RegisterTypedRequestReplyService(
		container, "task-initial-values", json.Unmarshal, json.Marshal, m.handleInitialValues)); err != nil {
		return err
	}
	if err := register("task-summary", helper.RegisterTypedRequestReplyService(
		container, "task-summary", json.Unmarshal, json.Marshal, m.handleTaskSummary)); err != nil {
		return err
	}
	if err := register("subtask-list", helper.RegisterTypedRequestReplyService(
		container, "subtask-list", json.Unmarshal, json.Marshal, m.handleSubtaskList)); err != nil {
		return err
	}
	if err := register("subtask-get", helper.RegisterTypedRequestReplyService(
		container, "subtask-get", json.Unmarshal, json.Marshal, m.handleSubtaskGet)); err != nil {
		return err
	}
	if err := register("subtask-create", helper.RegisterTypedRequestReplyService(
		container, "subtask-create", json.Unmarshal, json.Marshal, m.handleSubtaskCreate)); err != nil {
		return err
	}
	if err := register("subtask-update", helper.RegisterTypedRequestReplyService(
		container, "subtask-update", json.Unmarshal, json.Marshal, m.handleSubtaskUpdate)); err != nil {
		return err
	}
	if err := register("subtask-delete", helper.RegisterTypedRequestReplyService(
		container, "subtask-delete", json.Unmarshal, json.Marshal, m.handleSubtaskDelete)); err != nil {
		return err
	}
	if err := register("subtask-progress", helper.RegisterTypedRequestReplyService(
		container, "subtask-progress", json.Unmarshal, json.Marshal, m.handleSubtaskProgress)); err != nil {
		return err
	}
	if err := register("subtask-summary", helper.RegisterTypedRequestReplyService(
		container, "subtask-summary", json.Unmarshal, json.Marshal, m.handleSubtaskSummary)); err != nil {
		return err
	}
	if err := register("record-list", helper.RegisterTypedRequestReplyService(
		container, "record-list", json.Unmarshal, json.Marshal, m.handleRecordList)); err != nil {
		return err
	}
	if err := register("record-get", helper.RegisterTypedRequestReplyService(
		container, "record-get", json.Unmarshal, json.Marshal, m.handleRecordGet)); err != nil {
		return err
	}
	if err := register("record-create", helper.RegisterTypedRequestReplyService(
		container, "record-create", json.Unmarshal, json.Marshal, m.handleRecordCreate)); err != nil {
		return err
	}
	if err := register("record-update", helper.RegisterTypedRequestReplyService(
		container, "record-update", json.Unmarshal, json.Marshal, m.handleRecordUpdate)); err != nil {
		return err
	}
	if err := register("record-delete", helper.RegisterTypedRequestReplyService(
		container, "record-delete", json.Unmarshal, json.Marshal, m.handleRecordDelete)); err != nil {
		return err
	}

	log.Printf("[task] Registered 19 task, subtask, and work-record services")
	return nil
}

func gormLogLevel() logger.LogLevel {
	if os.Getenv("DB_DEBUG") == "true" {
		return logger.Info
	}
	return logger.Silent
}
