package config

import (
	"os"
	"strings"
)

const (
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultEnv           = "development"
	defaultStoreBackend  = StoreSQLite
	defaultDataFile      = "./data/calculations.json"
	defaultMigrationsDir = "migrations"
	defaultTemplatesDir  = "web/templates"
)

// Storage backends accepted in STORE_BACKEND.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	MigrationsDir string
	StoreBackend  string
	DataFile      string
	TemplatesDir  string
	SeedDemo      bool
}

// Load reads environment variables and returns a populated Config. Values in
// a local .env file fill in variables the process environment leaves unset.
func Load() Config {
	_ = loadDotEnv(".env")

	cfg := Config{
		Env:           os.Getenv("APP_ENV"),
		Port:          os.Getenv("PORT"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		StoreBackend:  strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))),
		DataFile:      os.Getenv("DATA_FILE"),
		TemplatesDir:  os.Getenv("TEMPLATES_DIR"),
		SeedDemo:      parseBool(os.Getenv("SEED_DEMO")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}
	if cfg.StoreBackend != StoreFile {
		cfg.StoreBackend = defaultStoreBackend
	}
	if cfg.DataFile == "" {
		cfg.DataFile = defaultDataFile
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = defaultTemplatesDir
	}

	return cfg
}

// IsDev reports whether the service runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv || c.Env == "dev"
}

// AuthEnabled reports whether an admin login guards the application.
func (c Config) AuthEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// Warnings lists configuration problems worth logging at startup.
func (c Config) Warnings() []string {
	var warnings []string
	if c.AdminEmail == "" || c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_EMAIL or ADMIN_PASSWORD is not set; login is disabled")
	}
	if c.AuthEnabled() && c.SessionSecret == "" {
		warnings = append(warnings, "SESSION_SECRET is not set")
	}
	return warnings
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
