package services

import (
	"github.com/shopspring/decimal"

	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/database/orders"
	"github.com/mrlokans/bookverse/internal/entities"
)

// BookReader provides access to the book catalogue.
// Use this interface when you only need to query or restock books.
type BookReader interface {
	ListBooks() ([]books.BookRow, error)
	SearchBooks(keyword string) ([]books.BookRow, error)
	GetBook(isbn string) (*books.BookRow, error)
	Restock(isbn string, quantum int) (*books.BookRow, error)
	LowStock(threshold int) ([]entities.Book, error)
	ListAuthors() ([]books.AuthorRow, error)
}

// OrderReader provides read-only access to orders and sales aggregates.
type OrderReader interface {
	ListOrderSummaries() ([]orders.OrderSummary, error)
	GetOrderItems(orderID string) ([]orders.OrderItemRow, error)
	PaidOrdersTotal() (decimal.Decimal, error)
	QuantitySoldByBook() ([]orders.BookSales, error)
}

// ImportSummary is the outcome of one import run.
type ImportSummary struct {
	SessionID uint           `json:"session_id"`
	Source    string         `json:"source"`
	Authors   int            `json:"authors"`
	Books     int            `json:"books"`
	Customers int            `json:"customers"`
	Orders    int            `json:"orders"`
	Items     int            `json:"order_items"`
	Payments  int            `json:"payments"`
	Rejected  map[string]int `json:"rejected"`
	RejectLog string         `json:"reject_log,omitempty"`
}
