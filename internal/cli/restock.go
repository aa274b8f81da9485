package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/database/books"
	"github.com/mrlokans/bookverse/internal/entities"
)

// RestockCommand adds one restock quantum to a book's stock.
type RestockCommand struct {
	storeFlags
	ISBN string
}

func NewRestockCommand() *RestockCommand {
	return &RestockCommand{}
}

func (cmd *RestockCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("restock", flag.ContinueOnError)

	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN of the book to restock (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s restock -isbn <isbn> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add %d units to the stock of a book.\n\n", entities.RestockQuantum)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ISBN == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}

	return nil
}

func (cmd *RestockCommand) Run() error {
	store, closeStore, err := cmd.open(config.NewConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	book, err := store.Restock(cmd.ISBN)
	if errors.Is(err, books.ErrBookNotFound) {
		return fmt.Errorf("no book with ISBN %s", cmd.ISBN)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out(), "Restocked %q (%s): stock is now %d\n", book.Title, book.ISBN, book.Stock)
	return nil
}
