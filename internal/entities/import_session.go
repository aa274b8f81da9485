package entities

import "time"

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportSession records one run of the importer. Sessions are kept across
// store resets so the import history outlives the data it produced.
type ImportSession struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	SourceURL          string       `gorm:"size:2048" json:"source_url"`
	Status             ImportStatus `gorm:"size:20;default:'running'" json:"status"`
	AuthorsImported    int          `json:"authors_imported"`
	BooksImported      int          `json:"books_imported"`
	CustomersImported  int          `json:"customers_imported"`
	OrdersImported     int          `json:"orders_imported"`
	OrderItemsImported int          `json:"order_items_imported"`
	PaymentsImported   int          `json:"payments_imported"`
	Rejected           int          `json:"rejected"`
	Error              string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt          time.Time    `json:"started_at"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
}
