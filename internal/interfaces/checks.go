package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookverse/internal/audit"
	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/database/orders"
	"github.com/mrlokans/bookverse/internal/exporters"
	"github.com/mrlokans/bookverse/internal/http"
	"github.com/mrlokans/bookverse/internal/importers"
	"github.com/mrlokans/bookverse/internal/reports"
	"github.com/mrlokans/bookverse/internal/scheduler"
	"github.com/mrlokans/bookverse/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookReader = (*books.Repository)(nil)
var _ services.OrderReader = (*orders.Repository)(nil)

var _ reports.BookSource = (*books.Repository)(nil)
var _ reports.OrderSource = (*orders.Repository)(nil)

// =============================================================================
// HTTP Controllers
// =============================================================================

var _ http.CatalogStore = (*services.Bookstore)(nil)
var _ http.OrderStore = (*services.Bookstore)(nil)
var _ http.ImportStore = (*services.Bookstore)(nil)
var _ http.ReportStore = (*services.Bookstore)(nil)
var _ http.ImportScheduler = (*scheduler.ImportScheduler)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ importers.Source = (*importers.HTTPSource)(nil)
var _ importers.Source = (*importers.FileSource)(nil)
var _ importers.RejectLog = (*importers.FileRejectLog)(nil)
var _ importers.RejectLog = importers.RejectLogFunc(nil)
var _ importers.Snapshotter = (*audit.Auditor)(nil)

// =============================================================================
// Scheduling
// =============================================================================

var _ scheduler.Store = (*services.Bookstore)(nil)
var _ scheduler.SnapshotPruner = (*audit.Auditor)(nil)

// =============================================================================
// Report Exporters
// =============================================================================

var _ exporters.ReportExporter = (*exporters.TextExporter)(nil)
var _ exporters.ReportExporter = (*exporters.YAMLExporter)(nil)
var _ exporters.ReportExporter = (*exporters.WorkbookExporter)(nil)
