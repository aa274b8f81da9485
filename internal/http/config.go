package http

import (
	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    *services.Bookstore
	Database *database.Database

	// Report output paths for non-text formats
	ReportYAMLPath     string
	ReportWorkbookPath string

	// Scheduler is optional; nil when scheduled imports are disabled.
	Scheduler      ImportScheduler
	ImportSchedule string

	// Application info
	Version string
}
