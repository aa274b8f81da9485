package reports_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/database/orders"
	"github.com/mrlokans/bookverse/internal/entities"
	"github.com/mrlokans/bookverse/internal/fixtures"
	"github.com/mrlokans/bookverse/internal/importers"
	"github.com/mrlokans/bookverse/internal/reports"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) }

func setupStore(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "reports.db"), database.Options{LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuild_Fixture(t *testing.T) {
	db := setupStore(t)
	doc, err := importers.Decode(fixtures.BookstoreJSON)
	require.NoError(t, err)
	_, err = importers.NewPipeline(db, nil).Load(context.Background(), doc)
	require.NoError(t, err)

	report, err := reports.Build(books.NewRepository(db.DB), orders.NewRepository(db.DB), reports.Options{Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, fixedNow(), report.GeneratedAt)
	assert.Equal(t, reports.DefaultCurrency, report.Currency)
	assert.Equal(t, "64.98", report.TotalSales.StringFixed(2), "unpaid order O3 is excluded")
	assert.Equal(t, entities.LowStockThreshold, report.LowStockThreshold)
	assert.Equal(t, []reports.StockLine{{ISBN: "B1", Title: "Dune", Stock: 3}}, report.LowStock)
	assert.Equal(t, &reports.BestSeller{ISBN: "B1", Title: "Dune", Quantity: 3}, report.BestSeller)
	assert.Len(t, report.Books, 2)
	assert.Len(t, report.Orders, 3)
}

func TestBuild_EmptyStore(t *testing.T) {
	db := setupStore(t)

	report, err := reports.Build(books.NewRepository(db.DB), orders.NewRepository(db.DB),
		reports.Options{Currency: "USD", Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, "USD", report.Currency)
	assert.True(t, report.TotalSales.IsZero())
	assert.Empty(t, report.LowStock)
	assert.Nil(t, report.BestSeller)
}

type failingOrders struct{}

func (failingOrders) ListOrderSummaries() ([]orders.OrderSummary, error) { return nil, nil }
func (failingOrders) PaidOrdersTotal() (decimal.Decimal, error) {
	return decimal.Zero, errors.New("disk I/O error")
}
func (failingOrders) QuantitySoldByBook() ([]orders.BookSales, error) { return nil, nil }

func TestBuild_SourceError(t *testing.T) {
	db := setupStore(t)

	_, err := reports.Build(books.NewRepository(db.DB), failingOrders{}, reports.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestPickBestSeller(t *testing.T) {
	tests := []struct {
		name  string
		sales []orders.BookSales
		want  *reports.BestSeller
	}{
		{"no sales", nil, nil},
		{"only zero quantities", []orders.BookSales{{ISBN: "B1", Quantity: 0}}, nil},
		{
			"highest quantity wins",
			[]orders.BookSales{{ISBN: "B1", Title: "A", Quantity: 2}, {ISBN: "B2", Title: "B", Quantity: 7}},
			&reports.BestSeller{ISBN: "B2", Title: "B", Quantity: 7},
		},
		{
			"tie goes to smallest ISBN regardless of order",
			[]orders.BookSales{{ISBN: "B9", Title: "Z", Quantity: 4}, {ISBN: "B3", Title: "C", Quantity: 4}},
			&reports.BestSeller{ISBN: "B3", Title: "C", Quantity: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reports.PickBestSeller(tt.sales))
		})
	}
}
