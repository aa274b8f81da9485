package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold flags books with strictly fewer units in stock.
	LowStockThreshold = 5

	// RestockQuantum is the number of units a single restock adds.
	RestockQuantum = 10
)

// paidStatuses are the order status tokens that count as paid.
var paidStatuses = map[string]struct{}{
	"paid":      {},
	"completed": {},
}

// IsPaidStatus reports whether an order status token means the order is paid.
// Matching is case-insensitive and ignores surrounding whitespace.
func IsPaidStatus(status string) bool {
	_, ok := paidStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Money columns are stored as TEXT so decimal values round-trip exactly.

type Author struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	Name    string `gorm:"size:256;not null" json:"name"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

type Book struct {
	ISBN     string          `gorm:"primaryKey;column:isbn;size:20" json:"isbn"`
	Title    string          `gorm:"index;size:512;not null" json:"title"`
	Category string          `gorm:"size:512" json:"category"`
	Price    decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"price"`
	Stock    int             `gorm:"not null;default:0" json:"stock"`
	AuthorID string          `gorm:"index;size:64;not null" json:"author_id"`
}

type Customer struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Name  string `gorm:"size:256;not null" json:"name"`
	Email string `gorm:"size:255" json:"email,omitempty"`
}

type Order struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	CustomerID string     `gorm:"index;size:64;not null" json:"customer_id"`
	OrderDate  *time.Time `json:"order_date,omitempty"` // nil when the source date is missing or unparseable
	Status     string     `gorm:"size:32" json:"status,omitempty"`
	IsPaid     bool       `gorm:"not null;default:false" json:"is_paid"`
}

type OrderItem struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string          `gorm:"index;size:64;not null" json:"order_id"`
	BookID    string          `gorm:"index;size:20;not null" json:"book_id"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"unit_price"`
	Discount  decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"discount"`
}

// LineTotal is quantity × unit price − discount.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// Payment belongs to exactly one order; an order has at most one payment,
// which the unique index on order_id enforces.
type Payment struct {
	ID       string          `gorm:"primaryKey;size:64" json:"id"`
	OrderID  string          `gorm:"uniqueIndex;size:64;not null" json:"order_id"`
	Method   string          `gorm:"size:50" json:"method,omitempty"`
	Amount   decimal.Decimal `gorm:"type:text;not null;default:'0'" json:"amount"`
	Captured bool            `gorm:"not null;default:false" json:"captured"`
}

// StoreEntities lists the bookstore tables in creation order.
// Drop them in reverse.
func StoreEntities() []any {
	return []any{
		&Author{},
		&Book{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Payment{},
	}
}
