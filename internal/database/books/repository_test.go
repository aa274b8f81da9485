package books_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/entities"
	"github.com/mrlokans/bookverse/internal/fixtures"
	"github.com/mrlokans/bookverse/internal/importers"
)

func setupTestRepo(t *testing.T) (*books.Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"), database.Options{LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	doc, err := importers.Decode(fixtures.BookstoreJSON)
	require.NoError(t, err)
	_, err = importers.NewPipeline(db, nil).Load(context.Background(), doc)
	require.NoError(t, err)

	return books.NewRepository(db.DB), db
}

func isbns(rows []books.BookRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ISBN)
	}
	return out
}

func TestRepository_ListBooks(t *testing.T) {
	repo, _ := setupTestRepo(t)

	rows, err := repo.ListBooks()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, books.BookRow{
		ISBN:     "B1",
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "sci-fi, classic",
		Price:    rows[0].Price,
		Stock:    3,
	}, rows[0])
	assert.Equal(t, "9.99", rows[0].Price.StringFixed(2))
	assert.Equal(t, "The Dispossessed", rows[1].Title)
}

func TestRepository_SearchBooks(t *testing.T) {
	repo, _ := setupTestRepo(t)

	tests := []struct {
		keyword string
		want    []string
	}{
		{"", []string{"B1", "B2"}},
		{"   ", []string{"B1", "B2"}},
		{"dune", []string{"B1"}},
		{"DUNE", []string{"B1"}},
		{"le guin", []string{"B2"}},
		{"herbert", []string{"B1"}},
		{"e", []string{"B1", "B2"}},
		{"tolkien", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			rows, err := repo.SearchBooks(tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, isbns(rows))
		})
	}
}

func TestRepository_SearchBooks_UnicodeFolding(t *testing.T) {
	repo, db := setupTestRepo(t)
	require.NoError(t, db.DB.Create(&entities.Book{ISBN: "B9", Title: "Élan Vital", AuthorID: "A1"}).Error)

	rows, err := repo.SearchBooks("élan")
	require.NoError(t, err)
	assert.Equal(t, []string{"B9"}, isbns(rows))
}

func TestRepository_GetBook(t *testing.T) {
	repo, _ := setupTestRepo(t)

	row, err := repo.GetBook("B2")
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", row.Author)

	_, err = repo.GetBook("B404")
	assert.ErrorIs(t, err, books.ErrBookNotFound)
}

func TestRepository_Restock(t *testing.T) {
	repo, db := setupTestRepo(t)
	require.NoError(t, db.DB.Model(&entities.Book{}).Where("isbn = ?", "B1").Update("stock", 2).Error)

	row, err := repo.Restock("B1", entities.RestockQuantum)
	require.NoError(t, err)
	assert.Equal(t, 12, row.Stock)

	reloaded, err := repo.GetBook("B1")
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.Stock, "restock is visible to later reads")

	other, err := repo.GetBook("B2")
	require.NoError(t, err)
	assert.Equal(t, 5, other.Stock)

	_, err = repo.Restock("B404", entities.RestockQuantum)
	assert.ErrorIs(t, err, books.ErrBookNotFound)
}

func TestRepository_LowStock(t *testing.T) {
	repo, _ := setupTestRepo(t)

	low, err := repo.LowStock(entities.LowStockThreshold)
	require.NoError(t, err)
	require.Len(t, low, 1, "stock 5 is not below the threshold")
	assert.Equal(t, "B1", low[0].ISBN)

	_, err = repo.Restock("B1", entities.RestockQuantum)
	require.NoError(t, err)

	low, err = repo.LowStock(entities.LowStockThreshold)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestRepository_ListAuthors(t *testing.T) {
	repo, db := setupTestRepo(t)
	require.NoError(t, db.DB.Create(&entities.Author{ID: "A5", Name: "Anonymous"}).Error)

	authors, err := repo.ListAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 3)

	assert.Equal(t, "Anonymous", authors[0].Name)
	assert.Empty(t, authors[0].Books)
	assert.NotNil(t, authors[0].Books)

	assert.Equal(t, books.AuthorRow{ID: "A1", Name: "Frank Herbert", Country: "US", Books: []string{"B1"}}, authors[1])
	assert.Equal(t, []string{"B2"}, authors[2].Books)
}
