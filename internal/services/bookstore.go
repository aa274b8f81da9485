package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/database/orders"
	"github.com/mrlokans/bookverse/internal/entities"
	"github.com/mrlokans/bookverse/internal/exporters"
	"github.com/mrlokans/bookverse/internal/importers"
	"github.com/mrlokans/bookverse/internal/reports"
)

// ErrNoSource is returned by ImportData when no source location is configured.
var ErrNoSource = errors.New("no import source configured")

// Options configure a Bookstore. Zero values fall back to package defaults.
type Options struct {
	SourceURL     string
	ImportTimeout time.Duration
	RejectLogPath string
	ReportPath    string
	Currency      string

	// Snapshots, when set, receives a copy of every fetched document.
	Snapshots importers.Snapshotter
	// Now is used for report timestamps.
	Now func() time.Time
}

// Bookstore is the single entry point used by the CLI, the HTTP API and the
// scheduler. Operations are serialized: an import never overlaps a query.
type Bookstore struct {
	mu      sync.Mutex
	db      *database.Database
	books   BookReader
	orders  OrderReader
	rejects *importers.FileRejectLog
	opts    Options
}

func NewBookstore(db *database.Database, opts Options) *Bookstore {
	if opts.RejectLogPath == "" {
		opts.RejectLogPath = importers.DefaultRejectLogPath
	}
	if opts.ReportPath == "" {
		opts.ReportPath = "sales_report.txt"
	}
	if opts.Currency == "" {
		opts.Currency = reports.DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Bookstore{
		db:      db,
		books:   books.NewRepository(db.DB),
		orders:  orders.NewRepository(db.DB),
		rejects: importers.NewFileRejectLog(opts.RejectLogPath),
		opts:    opts,
	}
}

// --- Import ---

// ImportData rebuilds the store from the configured source.
func (s *Bookstore) ImportData(ctx context.Context) (*ImportSummary, error) {
	if s.opts.SourceURL == "" {
		return nil, ErrNoSource
	}
	return s.ImportFrom(ctx, importers.SourceFor(s.opts.SourceURL, s.opts.ImportTimeout))
}

// ImportFrom rebuilds the store from src and records an import session.
// Failures are returned to the caller; the session is marked failed.
func (s *Bookstore) ImportFrom(ctx context.Context, src importers.Source) (*ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.db.StartImportSession(src.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to start import session: %w", err)
	}

	log.Printf("Importing bookstore data from %s", src.Location())

	pipeline := importers.NewPipeline(s.db, s.rejects)
	if s.opts.Snapshots != nil {
		pipeline.SetSnapshotter(s.opts.Snapshots)
	}
	result, runErr := pipeline.Import(ctx, src)

	session.AuthorsImported = result.Authors
	session.BooksImported = result.Books
	session.CustomersImported = result.Customers
	session.OrdersImported = result.Orders
	session.OrderItemsImported = result.OrderItems
	session.PaymentsImported = result.Payments
	session.Rejected = result.TotalRejected()
	if err := s.db.FinishImportSession(session, runErr); err != nil {
		log.Printf("Failed to finish import session %d: %v", session.ID, err)
	}

	if runErr != nil {
		log.Printf("Import from %s failed: %v", src.Location(), runErr)
		return nil, fmt.Errorf("import from %s failed: %w", src.Location(), runErr)
	}

	return &ImportSummary{
		SessionID: session.ID,
		Source:    src.Location(),
		Authors:   result.Authors,
		Books:     result.Books,
		Customers: result.Customers,
		Orders:    result.Orders,
		Items:     result.OrderItems,
		Payments:  result.Payments,
		Rejected:  result.Rejected,
		RejectLog: s.rejects.Path(),
	}, nil
}

// Reset empties the store without importing anything.
func (s *Bookstore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Reset(); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	log.Printf("Bookstore data reset")
	return nil
}

// ImportHistory returns the most recent import sessions first.
func (s *Bookstore) ImportHistory(limit int) ([]entities.ImportSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.ListImportSessions(limit)
}

// Counts returns the number of rows per bookstore table.
func (s *Bookstore) Counts() (database.StoreCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Counts()
}

// --- Queries ---

func (s *Bookstore) LoadBooks() ([]books.BookRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.ListBooks()
}

// Filter returns books whose title or author contains keyword, ignoring case.
func (s *Bookstore) Filter(keyword string) ([]books.BookRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.SearchBooks(keyword)
}

// Restock adds entities.RestockQuantum units to a book.
func (s *Bookstore) Restock(isbn string) (*books.BookRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.books.Restock(isbn, entities.RestockQuantum)
	if err != nil {
		return nil, err
	}
	log.Printf("Restocked %s: %d in stock", row.ISBN, row.Stock)
	return row, nil
}

func (s *Bookstore) LoadAuthors() ([]books.AuthorRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.ListAuthors()
}

func (s *Bookstore) LoadOrders() ([]orders.OrderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.ListOrderSummaries()
}

func (s *Bookstore) OrderItems(orderID string) ([]orders.OrderItemRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.GetOrderItems(orderID)
}

// --- Reports ---

func (s *Bookstore) BuildReport() (*reports.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildReport()
}

func (s *Bookstore) buildReport() (*reports.Report, error) {
	return reports.Build(s.books, s.orders, reports.Options{Currency: s.opts.Currency, Now: s.opts.Now})
}

// ExportReport writes the plain-text report to the configured report path
// and returns the rendered text.
func (s *Bookstore) ExportReport() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.buildReport()
	if err != nil {
		return "", err
	}
	if _, err := exporters.NewTextExporter(s.opts.ReportPath).Export(report); err != nil {
		return "", err
	}
	log.Printf("Report written to %s", s.opts.ReportPath)
	return exporters.RenderText(report), nil
}

// ExportReportAs writes the report in format to path. An empty path uses
// the configured report path.
func (s *Bookstore) ExportReportAs(format, path string) (exporters.ExportResult, error) {
	if path == "" {
		path = s.opts.ReportPath
	}
	exporter, err := exporters.ForFormat(format, path)
	if err != nil {
		return exporters.ExportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.buildReport()
	if err != nil {
		return exporters.ExportResult{}, err
	}
	result, err := exporter.Export(report)
	if err != nil {
		return exporters.ExportResult{}, err
	}
	log.Printf("Report (%s) written to %s", result.Format, result.Path)
	return result, nil
}
