package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/bookverse/internal/importers"
	"github.com/mrlokans/bookverse/internal/reports"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Import
		Report
		Audit
		Schedule
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Import struct {
		SourceURL     string
		Timeout       time.Duration // Zero disables the HTTP timeout
		RejectLogPath string
	}
	Report struct {
		Path         string
		YAMLPath     string
		WorkbookPath string
		Currency     string
	}
	Audit struct {
		Dir           string // Empty disables import snapshots
		KeepSnapshots int
	}
	Schedule struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("import_source_url", importers.DefaultSourceURL)
	v.SetDefault("import_timeout", "0s")
	v.SetDefault("invalid_log_path", importers.DefaultRejectLogPath)

	v.SetDefault("report_path", DefaultReportPath)
	v.SetDefault("report_yaml_path", DefaultYAMLReportPath)
	v.SetDefault("report_workbook_path", DefaultWorkbookPath)
	v.SetDefault("report_currency", reports.DefaultCurrency)

	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_keep_snapshots", 20)

	v.SetDefault("schedule_enabled", false)
	v.SetDefault("import_schedule", "0 3 * * *") // Daily at 03:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Import: Import{
			SourceURL:     v.GetString("IMPORT_SOURCE_URL"),
			Timeout:       v.GetDuration("IMPORT_TIMEOUT"),
			RejectLogPath: v.GetString("INVALID_LOG_PATH"),
		},
		Report: Report{
			Path:         v.GetString("REPORT_PATH"),
			YAMLPath:     v.GetString("REPORT_YAML_PATH"),
			WorkbookPath: v.GetString("REPORT_WORKBOOK_PATH"),
			Currency:     v.GetString("REPORT_CURRENCY"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			KeepSnapshots: v.GetInt("AUDIT_KEEP_SNAPSHOTS"),
		},
		Schedule: Schedule{
			Enabled:  v.GetBool("SCHEDULE_ENABLED"),
			Schedule: v.GetString("IMPORT_SCHEDULE"),
		},
	}
}
