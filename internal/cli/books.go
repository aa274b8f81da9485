package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/database/books"
)

// BooksCommand lists the catalogue, optionally filtered by keyword.
type BooksCommand struct {
	storeFlags
	Query   string
	Authors bool
}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ContinueOnError)

	fs.StringVar(&cmd.Query, "q", "", "Case-insensitive keyword matched against title and author")
	fs.BoolVar(&cmd.Authors, "authors", false, "List authors with their books instead")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List books in the local store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BooksCommand) Run() error {
	store, closeStore, err := cmd.open(config.NewConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	if cmd.Authors {
		authors, err := store.LoadAuthors()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.out(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOUNTRY\tBOOKS")
		for _, a := range authors {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Country, strings.Join(a.Books, ", "))
		}
		return w.Flush()
	}

	var rows []books.BookRow
	if cmd.Query != "" {
		rows, err = store.Filter(cmd.Query)
	} else {
		rows, err = store.LoadBooks()
	}
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.out(), "No books found")
		return nil
	}
	return writeBooks(cmd.out(), rows)
}

func writeBooks(out io.Writer, rows []books.BookRow) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ISBN\tTITLE\tAUTHOR\tCATEGORY\tPRICE\tSTOCK")
	for _, b := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", b.ISBN, b.Title, b.Author, b.Category, b.Price.StringFixed(2), b.Stock)
	}
	return w.Flush()
}
