package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mrlokans/bookverse/internal/config"
)

// ImportCommand rebuilds the local store from a bookstore document.
type ImportCommand struct {
	storeFlags
	SourceURL     string
	FilePath      string
	RejectLogPath string
	AuditDir      string
	Timeout       time.Duration
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.SourceURL, "url", "", "URL of the bookstore JSON document (defaults to IMPORT_SOURCE_URL)")
	fs.StringVar(&cmd.FilePath, "file", "", "Path to a local bookstore JSON document (overrides -url)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_PATH)")
	fs.StringVar(&cmd.RejectLogPath, "log", "", "File that rejected records are appended to (defaults to INVALID_LOG_PATH)")
	fs.StringVar(&cmd.AuditDir, "audit", "", "Directory for snapshots of the fetched document (defaults to AUDIT_DIR)")
	fs.DurationVar(&cmd.Timeout, "timeout", 0, "HTTP timeout, 0 disables it")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace the contents of the local store with a fresh import.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -file bookstore.json -db ./bookverse.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.SourceURL != "" && cmd.FilePath != "" {
		return fmt.Errorf("flags -url and -file are mutually exclusive")
	}

	return nil
}

func (cmd *ImportCommand) Run(ctx context.Context) error {
	cfg := config.NewConfig()
	switch {
	case cmd.FilePath != "":
		cfg.Import.SourceURL = cmd.FilePath
	case cmd.SourceURL != "":
		cfg.Import.SourceURL = cmd.SourceURL
	}
	if cmd.RejectLogPath != "" {
		cfg.Import.RejectLogPath = cmd.RejectLogPath
	}
	if cmd.AuditDir != "" {
		cfg.Audit.Dir = cmd.AuditDir
	}
	if cmd.Timeout > 0 {
		cfg.Import.Timeout = cmd.Timeout
	}

	store, closeStore, err := cmd.open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.out()
	fmt.Fprintln(out, "Bookstore Import")
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "Source: %s\n", cfg.Import.SourceURL)
	fmt.Fprintf(out, "Database: %s\n\n", cfg.Database.Path)

	summary, err := store.ImportData(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Authors:     %d\n", summary.Authors)
	fmt.Fprintf(out, "Books:       %d\n", summary.Books)
	fmt.Fprintf(out, "Customers:   %d\n", summary.Customers)
	fmt.Fprintf(out, "Orders:      %d\n", summary.Orders)
	fmt.Fprintf(out, "Order items: %d\n", summary.Items)
	fmt.Fprintf(out, "Payments:    %d\n", summary.Payments)

	if len(summary.Rejected) > 0 {
		types := make([]string, 0, len(summary.Rejected))
		for entityType := range summary.Rejected {
			types = append(types, entityType)
		}
		sort.Strings(types)

		fmt.Fprintf(out, "\nRejected records (see %s):\n", summary.RejectLog)
		for _, entityType := range types {
			fmt.Fprintf(out, "  %-10s %d\n", entityType, summary.Rejected[entityType])
		}
	}

	return nil
}
