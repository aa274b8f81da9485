package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookverse/internal/audit"
	"github.com/mrlokans/bookverse/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Import: config.Import{SourceURL: "https://example.com/b.json", Timeout: time.Minute, RejectLogPath: "rejects.txt"},
		Report: config.Report{Path: "out.txt", Currency: "USD"},
		Audit:  config.Audit{Dir: "snapshots"},
	}

	opts := OptionsFromConfig(cfg)

	assert.Equal(t, "https://example.com/b.json", opts.SourceURL)
	assert.Equal(t, time.Minute, opts.ImportTimeout)
	assert.Equal(t, "rejects.txt", opts.RejectLogPath)
	assert.Equal(t, "out.txt", opts.ReportPath)
	assert.Equal(t, "USD", opts.Currency)
	assert.Equal(t, audit.NewAuditor("snapshots"), opts.Snapshots)

	cfg.Audit.Dir = ""
	assert.Nil(t, OptionsFromConfig(cfg).Snapshots)
}
