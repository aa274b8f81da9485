// Package orders provides read access to orders, their items and the sales
// aggregates used by reporting.
package orders

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mrlokans/bookverse/internal/entities"
)

// OrderSummary is one order with its customer name and computed total.
type OrderSummary struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	OrderDate *time.Time      `json:"order_date,omitempty"`
	IsPaid    bool            `json:"is_paid"`
	Total     decimal.Decimal `json:"total"`
}

// OrderItemRow is an order line joined with the book title.
type OrderItemRow struct {
	ID        string          `json:"id"`
	BookID    string          `json:"book_id"`
	Book      string          `json:"book"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// BookSales is the cumulative quantity sold of one book across all orders.
type BookSales struct {
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// Repository handles order queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new orders repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IndexItemsByOrder groups order items by their order ID.
func IndexItemsByOrder(items []entities.OrderItem) map[string][]entities.OrderItem {
	index := make(map[string][]entities.OrderItem)
	for _, item := range items {
		index[item.OrderID] = append(index[item.OrderID], item)
	}
	return index
}

// SumLineTotals adds up quantity × unit price − discount over items.
func SumLineTotals(items []entities.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (r *Repository) bookTitles() (map[string]string, error) {
	var list []entities.Book
	if err := r.db.Select("isbn", "title").Find(&list).Error; err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(list))
	for _, b := range list {
		titles[b.ISBN] = b.Title
	}
	return titles, nil
}

// ListOrderSummaries returns every order ordered by ID.
func (r *Repository) ListOrderSummaries() ([]OrderSummary, error) {
	var list []entities.Order
	if err := r.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}

	var customers []entities.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	var items []entities.OrderItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := IndexItemsByOrder(items)

	summaries := make([]OrderSummary, 0, len(list))
	for _, o := range list {
		summaries = append(summaries, OrderSummary{
			ID:        o.ID,
			Customer:  names[o.CustomerID],
			OrderDate: o.OrderDate,
			IsPaid:    o.IsPaid,
			Total:     SumLineTotals(byOrder[o.ID]),
		})
	}
	return summaries, nil
}

// GetOrderItems returns the lines of one order. An unknown order yields an
// empty slice.
func (r *Repository) GetOrderItems(orderID string) ([]OrderItemRow, error) {
	var items []entities.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	titles, err := r.bookTitles()
	if err != nil {
		return nil, err
	}

	rows := make([]OrderItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, OrderItemRow{
			ID:        item.ID,
			BookID:    item.BookID,
			Book:      titles[item.BookID],
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Total:     item.LineTotal(),
		})
	}
	return rows, nil
}

// PaidOrdersTotal sums the item totals of paid orders only.
func (r *Repository) PaidOrdersTotal() (decimal.Decimal, error) {
	var items []entities.OrderItem
	err := r.db.
		Where("order_id IN (?)", r.db.Model(&entities.Order{}).Select("id").Where("is_paid = ?", true)).
		Find(&items).Error
	if err != nil {
		return decimal.Zero, err
	}
	return SumLineTotals(items), nil
}

// QuantitySoldByBook aggregates item quantities per book, ordered by ISBN.
func (r *Repository) QuantitySoldByBook() ([]BookSales, error) {
	var items []entities.OrderItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}

	titles, err := r.bookTitles()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, item := range items {
		totals[item.BookID] += item.Quantity
	}

	sales := make([]BookSales, 0, len(totals))
	for isbn, qty := range totals {
		sales = append(sales, BookSales{ISBN: isbn, Title: titles[isbn], Quantity: qty})
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ISBN < sales[j].ISBN })
	return sales, nil
}
