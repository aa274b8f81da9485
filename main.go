package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/bookverse/internal/cli"
	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// subcommand is implemented by every CLI command.
type subcommand interface {
	ParseFlags(args []string) error
	Run() error
}

// importRunner adapts the cancellable import command.
type importRunner struct {
	*cli.ImportCommand
}

func (r importRunner) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return r.ImportCommand.Run(ctx)
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	var cmd subcommand
	switch command {
	case "import":
		cmd = importRunner{cli.NewImportCommand()}
	case "books":
		cmd = cli.NewBooksCommand()
	case "orders":
		cmd = cli.NewOrdersCommand()
	case "restock":
		cmd = cli.NewRestockCommand()
	case "report":
		cmd = cli.NewReportCommand()

	case "version":
		fmt.Printf("bookverse %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import    Replace the local store with a fresh import\n")
	fmt.Fprintf(os.Stderr, "  books     List or search books and authors\n")
	fmt.Fprintf(os.Stderr, "  orders    List orders or the items of one order\n")
	fmt.Fprintf(os.Stderr, "  restock   Add stock to a book\n")
	fmt.Fprintf(os.Stderr, "  report    Write the sales report (text, yaml or xlsx)\n")
	fmt.Fprintf(os.Stderr, "  version   Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
