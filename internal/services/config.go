package services

import (
	"github.com/mrlokans/bookverse/internal/audit"
	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/database"
)

// OptionsFromConfig maps application configuration onto bookstore options.
// Import snapshots are enabled when an audit directory is configured.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		SourceURL:     cfg.Import.SourceURL,
		ImportTimeout: cfg.Import.Timeout,
		RejectLogPath: cfg.Import.RejectLogPath,
		ReportPath:    cfg.Report.Path,
		Currency:      cfg.Report.Currency,
	}
	if cfg.Audit.Dir != "" {
		opts.Snapshots = audit.NewAuditor(cfg.Audit.Dir)
	}
	return opts
}

// NewBookstoreFromConfig opens a bookstore over db configured from cfg.
func NewBookstoreFromConfig(db *database.Database, cfg *config.Config) *Bookstore {
	return NewBookstore(db, OptionsFromConfig(cfg))
}
