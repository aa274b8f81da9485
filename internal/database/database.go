package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookverse/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Options tune how the connection is opened.
type Options struct {
	// LogLevel is one of "silent", "error", "warn" or "info". Default: "warn".
	LogLevel string
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(opts.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; one connection keeps batches strictly ordered.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(append(entities.StoreEntities(), &entities.ImportSession{})...)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset drops every bookstore table and recreates it empty.
// Import sessions are left untouched.
func (d *Database) Reset() error {
	tables := entities.StoreEntities()

	dropOrder := make([]any, 0, len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		dropOrder = append(dropOrder, tables[i])
	}

	if err := d.DB.Migrator().DropTable(dropOrder...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	if err := d.DB.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to recreate tables: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// --- Import sessions ---

func (d *Database) StartImportSession(sourceURL string) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		SourceURL: sourceURL,
		Status:    entities.ImportStatusRunning,
		StartedAt: time.Now(),
	}
	if err := d.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// FinishImportSession stores the final counters and marks the session
// completed, or failed when runErr is not nil.
func (d *Database) FinishImportSession(session *entities.ImportSession, runErr error) error {
	completedAt := time.Now()
	session.CompletedAt = &completedAt
	session.Status = entities.ImportStatusCompleted
	if runErr != nil {
		session.Status = entities.ImportStatusFailed
		session.Error = runErr.Error()
	}
	return d.DB.Save(session).Error
}

// ListImportSessions returns the most recent sessions first.
func (d *Database) ListImportSessions(limit int) ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	query := d.DB.Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

// StoreCounts holds the row count of every bookstore table.
type StoreCounts struct {
	Authors    int64 `json:"authors"`
	Books      int64 `json:"books"`
	Customers  int64 `json:"customers"`
	Orders     int64 `json:"orders"`
	OrderItems int64 `json:"order_items"`
	Payments   int64 `json:"payments"`
}

func (d *Database) Counts() (StoreCounts, error) {
	var c StoreCounts
	targets := []struct {
		model any
		dst   *int64
	}{
		{&entities.Author{}, &c.Authors},
		{&entities.Book{}, &c.Books},
		{&entities.Customer{}, &c.Customers},
		{&entities.Order{}, &c.Orders},
		{&entities.OrderItem{}, &c.OrderItems},
		{&entities.Payment{}, &c.Payments},
	}
	for _, t := range targets {
		if err := d.DB.Model(t.model).Count(t.dst).Error; err != nil {
			return StoreCounts{}, err
		}
	}
	return c, nil
}
