package exporters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/bookverse/internal/reports"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown report format")

type ReportExporter interface {
	Export(report *reports.Report) (ExportResult, error)
}

type ExportResult struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
}

// ForFormat returns the exporter writing format to path.
func ForFormat(format, path string) (ReportExporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText, "txt":
		return NewTextExporter(path), nil
	case FormatYAML, "yml":
		return NewYAMLExporter(path), nil
	case FormatXLSX:
		return NewWorkbookExporter(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
