package config

import (
	"daily-planner/validator"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
	BackendLocal  = "local"
)

// Key-value areas usable by the local backend and the sync mirror
const (
	AreaFile   = "file"
	AreaMemory = "memory"
	AreaDrive  = "drive"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	Env         string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	CORSOrigins string

	StorageBackend string `validate:"oneof=sqlite rest local"`
	DBDriver       string `validate:"oneof=sqlite3 sqlite"`
	DBPath         string `validate:"required_if=StorageBackend sqlite"`
	RESTURL        string `validate:"required_if=StorageBackend rest,omitempty,url"`
	RESTAPIKey     string `validate:"required_if=StorageBackend rest"`
	LocalArea      string `validate:"oneof=file memory drive"`
	LocalDir       string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenFile    string
	DriveFolder        string

	SyncTarget   string        `validate:"omitempty,oneof=file drive"`
	SyncDir      string        `validate:"required_if=SyncTarget file"`
	SyncInterval time.Duration `validate:"gte=1s"`
}

var AppConfig *Config

// Load reads .env (if present) and the environment into AppConfig
func Load() (*Config, error) {
	_ = godotenv.Load()

	syncInterval, err := GetDuration("SYNC_INTERVAL", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               GetEnv("PORT", "3000"),
		Env:                GetEnv("ENV", "development"),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		CORSOrigins:        GetEnv("CORS_ORIGINS", "*"),
		StorageBackend:     GetEnv("STORAGE_BACKEND", BackendSQLite),
		DBDriver:           GetEnv("DB_DRIVER", "sqlite3"),
		DBPath:             GetEnv("DB_PATH", "./data/planner.db"),
		RESTURL:            GetEnv("REST_URL", ""),
		RESTAPIKey:         GetEnv("REST_API_KEY", ""),
		LocalArea:          GetEnv("LOCAL_AREA", AreaFile),
		LocalDir:           GetEnv("LOCAL_DIR", "./data/local"),
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleTokenFile:    GetEnv("GOOGLE_TOKEN_FILE", "./data/google_token.json"),
		DriveFolder:        GetEnv("DRIVE_FOLDER", ""),
		SyncTarget:         GetEnv("SYNC_TARGET", ""),
		SyncDir:            GetEnv("SYNC_DIR", "./data/mirror"),
		SyncInterval:       syncInterval,
	}

	if err := cfg.Validate(validator.New()); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

// Validate checks field constraints and the Google credentials Drive needs
func (c *Config) Validate(v *validator.Validator) error {
	if err := v.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.UsesDrive() {
		if c.GoogleClientID == "" {
			return fmt.Errorf("invalid configuration: GOOGLE_CLIENT_ID is required for Drive")
		}
		if c.GoogleClientSecret == "" {
			return fmt.Errorf("invalid configuration: GOOGLE_CLIENT_SECRET is required for Drive")
		}
		if c.GoogleTokenFile == "" {
			return fmt.Errorf("invalid configuration: GOOGLE_TOKEN_FILE is required for Drive")
		}
	}
	return nil
}

// UsesDrive reports whether the local backend or the sync mirror lives in Drive
func (c *Config) UsesDrive() bool {
	return (c.StorageBackend == BackendLocal && c.LocalArea == AreaDrive) || c.SyncTarget == AreaDrive
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDuration parses a time.ParseDuration value such as "90s" or "2m"
func GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
