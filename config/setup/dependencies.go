package setup

import (
	"context"
	"daily-planner/app"
	"daily-planner/config"
	"daily-planner/database"
	"daily-planner/drive"
	"daily-planner/kv"
	"daily-planner/localstore"
	"daily-planner/rest"
	"daily-planner/services"
	"daily-planner/storage"
	"daily-planner/sync"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
)

// Resources are the opened backend and whatever must be released on shutdown
type Resources struct {
	Backend storage.Backend
	DB      *database.DB

	cfg        *config.Config
	drive      *drive.Client
	driveToken *oauth2.Token
}

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(driver, dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(driver, dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "driver", driver, "path", dbPath)
	return db, nil
}

// InitBackend opens the storage backend selected by STORAGE_BACKEND
func InitBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Resources, error) {
	res := &Resources{cfg: cfg}

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := InitDatabase(cfg.DBDriver, cfg.DBPath, logger)
		if err != nil {
			return nil, err
		}
		res.DB = db
		res.Backend = database.NewRepository(db)

	case config.BackendREST:
		res.Backend = rest.NewClient(ctx, cfg.RESTURL, cfg.RESTAPIKey)
		logger.Info("remote backend configured", "url", cfg.RESTURL)

	case config.BackendLocal:
		area, err := res.initArea(ctx, cfg.LocalArea, cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		res.Backend = localstore.NewBackend(localstore.New(area))
		logger.Info("local backend configured", "area", cfg.LocalArea)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return res, nil
}

// initArea opens a key-value area of the given kind
func (r *Resources) initArea(ctx context.Context, kind, dir string) (kv.Area, error) {
	switch kind {
	case config.AreaFile:
		return kv.NewFileArea(dir)
	case config.AreaMemory:
		return kv.NewMemoryArea(), nil
	case config.AreaDrive:
		client, err := r.driveClient(ctx)
		if err != nil {
			return nil, err
		}
		return drive.NewArea(client, r.cfg.DriveFolder), nil
	default:
		return nil, fmt.Errorf("unknown area %q", kind)
	}
}

// driveClient connects to Drive once with the stored token
func (r *Resources) driveClient(ctx context.Context) (*drive.Client, error) {
	if r.drive != nil {
		return r.drive, nil
	}

	token, err := drive.LoadToken(r.cfg.GoogleTokenFile)
	if err != nil {
		return nil, err
	}

	client, err := drive.NewClient(ctx, drive.OAuthConfig(r.cfg.GoogleClientID, r.cfg.GoogleClientSecret), token)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	r.drive = client
	r.driveToken = token
	return client, nil
}

// InitSync creates and starts the mirror worker. It returns nil when SYNC_TARGET is unset.
func InitSync(ctx context.Context, cfg *config.Config, res *Resources, logger *slog.Logger) (*sync.Worker, error) {
	if cfg.SyncTarget == "" {
		logger.Info("sync mirror disabled")
		return nil, nil
	}

	area, err := res.initArea(ctx, cfg.SyncTarget, cfg.SyncDir)
	if err != nil {
		return nil, err
	}

	worker := sync.NewWorker(res.Backend, localstore.New(area), cfg.SyncInterval, logger)
	if res.drive != nil {
		worker.WatchToken(res.drive, res.driveToken, func(token *oauth2.Token) error {
			return drive.SaveToken(cfg.GoogleTokenFile, token)
		})
	}

	worker.Start()
	logger.Info("sync worker started", "target", cfg.SyncTarget)
	return worker, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, res *Resources, syncWorker *sync.Worker, logger *slog.Logger) *app.App {
	tasks := services.NewTaskService(res.Backend, logger)
	notes := services.NewNoteService(res.Backend, logger)

	// Create App with all dependencies injected
	application := app.New(cfg, tasks, notes, syncWorker, logger)
	logger.Info("application initialized", "backend", cfg.StorageBackend)

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(syncWorker *sync.Worker, res *Resources, logger *slog.Logger) {
	logger.Info("shutting down services...")

	// Stop sync worker
	if syncWorker != nil {
		syncWorker.Stop()
		logger.Info("sync worker stopped")
	}

	// Close database
	if res != nil && res.DB != nil {
		res.DB.Close()
		logger.Info("database closed")
	}
}
