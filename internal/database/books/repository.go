// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	rows, err := repo.SearchBooks("dune")
//	row, err := repo.Restock("9780441013593", entities.RestockQuantum)
package books

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mrlokans/bookverse/internal/entities"
)

// ErrBookNotFound is returned when no book has the requested ISBN.
var ErrBookNotFound = errors.New("book not found")

// BookRow is a book joined with its author's name, as shown in listings.
type BookRow struct {
	ISBN     string          `json:"isbn"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

// AuthorRow is an author together with the ISBNs of their books.
type AuthorRow struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Books   []string `json:"books"`
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) authorNames() (map[string]string, error) {
	var authors []entities.Author
	if err := r.db.Find(&authors).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}
	return names, nil
}

func toRow(b entities.Book, authorNames map[string]string) BookRow {
	return BookRow{
		ISBN:     b.ISBN,
		Title:    b.Title,
		Author:   authorNames[b.AuthorID],
		Category: b.Category,
		Price:    b.Price,
		Stock:    b.Stock,
	}
}

// ListBooks returns every book ordered by title.
func (r *Repository) ListBooks() ([]BookRow, error) {
	var list []entities.Book
	if err := r.db.Order("title ASC, isbn ASC").Find(&list).Error; err != nil {
		return nil, err
	}

	names, err := r.authorNames()
	if err != nil {
		return nil, err
	}

	rows := make([]BookRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, toRow(b, names))
	}
	return rows, nil
}

// SearchBooks returns books whose title or author name contains keyword,
// ignoring case. A blank keyword matches every book.
//
// Matching runs in Go rather than through SQL LOWER(), which only folds ASCII.
func (r *Repository) SearchBooks(keyword string) ([]BookRow, error) {
	rows, err := r.ListBooks()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return rows, nil
	}

	matched := make([]BookRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Title), needle) ||
			strings.Contains(strings.ToLower(row.Author), needle) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// GetBook retrieves a single book by ISBN.
func (r *Repository) GetBook(isbn string) (*BookRow, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	var author entities.Author
	name := ""
	err = r.db.Where("id = ?", book.AuthorID).First(&author).Error
	if err == nil {
		name = author.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := toRow(book, map[string]string{book.AuthorID: name})
	return &row, nil
}

// Restock adds quantum units to the book's stock in a single transaction
// and returns the updated row.
func (r *Repository) Restock(isbn string, quantum int) (*BookRow, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).
			Where("isbn = ?", isbn).
			UpdateColumn("stock", gorm.Expr("stock + ?", quantum))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetBook(isbn)
}

// LowStock returns books with fewer than threshold units, ordered by title.
func (r *Repository) LowStock(threshold int) ([]entities.Book, error) {
	var list []entities.Book
	err := r.db.Where("stock < ?", threshold).Order("title ASC, isbn ASC").Find(&list).Error
	return list, err
}

// BooksByAuthor indexes book ISBNs by author ID.
func (r *Repository) BooksByAuthor() (map[string][]string, error) {
	var list []entities.Book
	if err := r.db.Select("isbn", "author_id").Order("isbn ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	index := make(map[string][]string)
	for _, b := range list {
		index[b.AuthorID] = append(index[b.AuthorID], b.ISBN)
	}
	return index, nil
}

// ListAuthors returns every author with the ISBNs of their books.
func (r *Repository) ListAuthors() ([]AuthorRow, error) {
	var authors []entities.Author
	if err := r.db.Find(&authors).Error; err != nil {
		return nil, err
	}

	index, err := r.BooksByAuthor()
	if err != nil {
		return nil, err
	}

	rows := make([]AuthorRow, 0, len(authors))
	for _, a := range authors {
		isbns := index[a.ID]
		if isbns == nil {
			isbns = []string{}
		}
		rows = append(rows, AuthorRow{ID: a.ID, Name: a.Name, Country: a.Country, Books: isbns})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}
