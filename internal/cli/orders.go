package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/bookverse/internal/config"
)

// OrdersCommand lists order summaries or the items of a single order.
type OrdersCommand struct {
	storeFlags
	OrderID string
}

func NewOrdersCommand() *OrdersCommand {
	return &OrdersCommand{}
}

func (cmd *OrdersCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)

	fs.StringVar(&cmd.OrderID, "items", "", "Show the items of this order instead of the order list")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s orders [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List orders with customer, date, paid flag and total.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *OrdersCommand) Run() error {
	store, closeStore, err := cmd.open(config.NewConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	w := tabwriter.NewWriter(cmd.out(), 0, 0, 2, ' ', 0)

	if cmd.OrderID != "" {
		items, err := store.OrderItems(cmd.OrderID)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "BOOK\tTITLE\tQTY\tUNIT PRICE\tDISCOUNT\tTOTAL")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				item.BookID, item.Book, item.Quantity,
				item.UnitPrice.StringFixed(2), item.Discount.StringFixed(2), item.Total.StringFixed(2))
		}
		return w.Flush()
	}

	summaries, err := store.LoadOrders()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "ID\tCUSTOMER\tDATE\tPAID\tTOTAL")
	for _, o := range summaries {
		date := "-"
		if o.OrderDate != nil {
			date = o.OrderDate.Format("2006-01-02")
		}
		paid := "no"
		if o.IsPaid {
			paid = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.Customer, date, paid, o.Total.StringFixed(2))
	}
	return w.Flush()
}
