// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookReader: catalogue queries and restocking (internal/services/interfaces.go)
//   - OrderReader: order listings and sales aggregates (internal/services/interfaces.go)
//   - BookSource, OrderSource: what the report builder reads (internal/reports/report.go)
//
// ## HTTP Interfaces
//
//   - CatalogStore: book and author endpoints (internal/http/books.go)
//   - OrderStore: order endpoints (internal/http/orders.go)
//   - ImportStore: import, reset and history endpoints (internal/http/imports.go)
//   - ReportStore: report endpoints (internal/http/reports.go)
//   - ImportScheduler: schedule status and manual runs (internal/http/schedule.go)
//
// ## Import Interfaces
//
//   - Source: where the bookstore document comes from (internal/importers/source.go)
//   - RejectLog: receives skipped records (internal/importers/rejects.go)
//   - Snapshotter: keeps fetched documents (internal/importers/pipeline.go)
//
// ## Output Interfaces
//
//   - ReportExporter: writes a report in one format (internal/exporters/generic.go)
//   - SnapshotPruner: trims old snapshots after scheduled runs (internal/scheduler/import_job.go)
//
// # Adding a New Report Format
//
//  1. Implement ReportExporter in internal/exporters
//  2. Register the format name in exporters.ForFormat
//  3. Add a compile-time check to checks.go
//
// # Adding a New Source Scheme
//
//  1. Implement importers.Source
//  2. Route the location prefix to it in importers.SourceFor
//  3. Add a compile-time check to checks.go
//
// # Compile-Time Checks
//
// See checks.go for compile-time interface implementation verification.
package interfaces
