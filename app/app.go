package app

import (
	"daily-planner/config"
	"daily-planner/services"
	"daily-planner/sync"
	"daily-planner/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config     *config.Config
	Tasks      *services.TaskService
	Notes      *services.NoteService
	SyncWorker *sync.Worker
	Validator  *validator.Validator
	Logger     *slog.Logger
}

// New creates a new App instance with all dependencies.
// syncWorker may be nil when no mirror is configured.
func New(cfg *config.Config, tasks *services.TaskService, notes *services.NoteService, syncWorker *sync.Worker, logger *slog.Logger) *App {
	return &App{
		Config:     cfg,
		Tasks:      tasks,
		Notes:      notes,
		SyncWorker: syncWorker,
		Validator:  validator.New(),
		Logger:     logger,
	}
}
