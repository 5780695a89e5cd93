package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is where the SQLite store lives unless DATABASE_PATH
// points elsewhere.
const DefaultDatabasePath = "./data/circulation.db"

type (
	Config struct {
		HTTP
		Global
		Database
		CORS
		Auth
		Fines
		Tasks
		OverdueScan
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	CORS struct {
		AllowedOrigins []string // empty means allow all, as the legacy deployment did
	}

	Auth struct {
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // set to false for local dev without HTTPS
	}

	Fines struct {
		PerDay float64 // currency units charged per day late
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	OverdueScan struct {
		Enabled  bool
		Schedule string // cron format: "0 2 * * *" = daily at 02:00
	}

	Audit struct {
		RetentionDays int // days to keep audit events
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("cors_allowed_origins", []string{})

	// Auth defaults
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)

	// Fine policy
	v.SetDefault("fine_per_day", 5.0)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Overdue scan defaults
	v.SetDefault("overdue_scan_enabled", true)
	v.SetDefault("overdue_scan_schedule", "0 2 * * *")

	// Audit retention
	v.SetDefault("audit_retention_days", 90)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		CORS: CORS{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Auth: Auth{
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Fines: Fines{
			PerDay: v.GetFloat64("FINE_PER_DAY"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		OverdueScan: OverdueScan{
			Enabled:  v.GetBool("OVERDUE_SCAN_ENABLED"),
			Schedule: v.GetString("OVERDUE_SCAN_SCHEDULE"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
