package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/exporters"
)

// ReportCommand builds the sales report and writes it to disk.
type ReportCommand struct {
	storeFlags
	Format     string
	OutputPath string
	Currency   string
}

func NewReportCommand() *ReportCommand {
	return &ReportCommand{}
}

func (cmd *ReportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)

	fs.StringVar(&cmd.Format, "format", exporters.FormatText, "Report format: text, yaml or xlsx")
	fs.StringVar(&cmd.OutputPath, "output", "", "Output file (defaults to REPORT_PATH, REPORT_YAML_PATH or REPORT_WORKBOOK_PATH)")
	fs.StringVar(&cmd.Currency, "currency", "", "Currency label for amounts (defaults to REPORT_CURRENCY)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s report [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write the sales report. The text report is also printed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := exporters.ForFormat(cmd.Format, ""); err != nil {
		return err
	}

	return nil
}

func (cmd *ReportCommand) Run() error {
	cfg := config.NewConfig()
	if cmd.Currency != "" {
		cfg.Report.Currency = cmd.Currency
	}

	path := cmd.OutputPath
	exporter, _ := exporters.ForFormat(cmd.Format, "")
	switch exporter.(type) {
	case *exporters.TextExporter:
		if path != "" {
			cfg.Report.Path = path
		}
	case *exporters.YAMLExporter:
		if path == "" {
			path = cfg.Report.YAMLPath
		}
	case *exporters.WorkbookExporter:
		if path == "" {
			path = cfg.Report.WorkbookPath
		}
	}

	store, closeStore, err := cmd.open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, ok := exporter.(*exporters.TextExporter); ok {
		text, err := store.ExportReport()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.out(), text)
		fmt.Fprintf(cmd.out(), "\nReport written to %s\n", cfg.Report.Path)
		return nil
	}

	result, err := store.ExportReportAs(cmd.Format, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out(), "Report (%s) written to %s (%d bytes)\n", result.Format, result.Path, result.Bytes)
	return nil
}
