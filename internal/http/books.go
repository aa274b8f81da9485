package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/database/books"
)

// CatalogStore is the book side of the bookstore.
type CatalogStore interface {
	LoadBooks() ([]books.BookRow, error)
	Filter(keyword string) ([]books.BookRow, error)
	Restock(isbn string) (*books.BookRow, error)
	LoadAuthors() ([]books.AuthorRow, error)
}

type BooksController struct {
	store CatalogStore
}

func NewBooksController(store CatalogStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

// GetBooks lists every book, or only those matching ?q= by title or author.
func (controller *BooksController) GetBooks(c *gin.Context) {
	var (
		rows []books.BookRow
		err  error
	)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		rows, err = controller.store.Filter(q)
	} else {
		rows, err = controller.store.LoadBooks()
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": rows, "count": len(rows)})
}

func (controller *BooksController) Restock(c *gin.Context) {
	isbn := strings.TrimSpace(c.Param("isbn"))
	if isbn == "" {
		respondBadRequest(c, "isbn is required")
		return
	}

	row, err := controller.store.Restock(isbn)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "restock "+isbn)
		return
	}
	c.IndentedJSON(http.StatusOK, row)
}

func (controller *BooksController) GetAuthors(c *gin.Context) {
	authors, err := controller.store.LoadAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}
