// Package reports computes the sales report from the bookstore store.
//
// A Report is a point-in-time snapshot: total revenue of paid orders, the
// books below the low-stock threshold and the best-selling book. Rendering
// to files lives in the exporters package.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/database/orders"
	"github.com/mrlokans/bookverse/internal/entities"
)

// DefaultCurrency is printed next to monetary totals.
const DefaultCurrency = "EUR"

// BookSource is the subset of the books repository a report reads.
type BookSource interface {
	ListBooks() ([]books.BookRow, error)
	LowStock(threshold int) ([]entities.Book, error)
}

// OrderSource is the subset of the orders repository a report reads.
type OrderSource interface {
	ListOrderSummaries() ([]orders.OrderSummary, error)
	PaidOrdersTotal() (decimal.Decimal, error)
	QuantitySoldByBook() ([]orders.BookSales, error)
}

// StockLine is a book listed in the low-stock section.
type StockLine struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
	Stock int    `json:"stock"`
}

// BestSeller is the book with the highest cumulative quantity sold.
type BestSeller struct {
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// Report is the sales report shown to the user and written by exporters.
type Report struct {
	GeneratedAt       time.Time             `json:"generated_at"`
	Currency          string                `json:"currency"`
	TotalSales        decimal.Decimal       `json:"total_sales"`
	LowStockThreshold int                   `json:"low_stock_threshold"`
	LowStock          []StockLine           `json:"low_stock"`
	BestSeller        *BestSeller           `json:"best_seller"`
	Books             []books.BookRow       `json:"-"`
	Orders            []orders.OrderSummary `json:"-"`
}

// Options tune a report build. Zero values fall back to defaults.
type Options struct {
	Currency string
	Now      func() time.Time
}

// Build reads the store and assembles a report.
func Build(bookRepo BookSource, orderRepo OrderSource, opts Options) (*Report, error) {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	total, err := orderRepo.PaidOrdersTotal()
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid orders: %w", err)
	}

	low, err := bookRepo.LowStock(entities.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock books: %w", err)
	}
	lowStock := make([]StockLine, 0, len(low))
	for _, b := range low {
		lowStock = append(lowStock, StockLine{ISBN: b.ISBN, Title: b.Title, Stock: b.Stock})
	}

	sales, err := orderRepo.QuantitySoldByBook()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	bookRows, err := bookRepo.ListBooks()
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	orderRows, err := orderRepo.ListOrderSummaries()
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &Report{
		GeneratedAt:       opts.Now(),
		Currency:          strings.TrimSpace(opts.Currency),
		TotalSales:        total,
		LowStockThreshold: entities.LowStockThreshold,
		LowStock:          lowStock,
		BestSeller:        PickBestSeller(sales),
		Books:             bookRows,
		Orders:            orderRows,
	}, nil
}

// PickBestSeller returns the entry with the highest quantity. Ties go to the
// smallest ISBN. Nil means nothing was sold.
func PickBestSeller(sales []orders.BookSales) *BestSeller {
	var best *orders.BookSales
	for i := range sales {
		s := &sales[i]
		if s.Quantity <= 0 {
			continue
		}
		if best == nil || s.Quantity > best.Quantity ||
			(s.Quantity == best.Quantity && s.ISBN < best.ISBN) {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	return &BestSeller{ISBN: best.ISBN, Title: best.Title, Quantity: best.Quantity}
}
