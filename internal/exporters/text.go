package exporters

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/bookverse/internal/reports"
)

const reportRule = "======================="

type TextExporter struct {
	Path string
}

func NewTextExporter(path string) *TextExporter {
	return &TextExporter{Path: path}
}

// Export overwrites the report file with the rendered text.
func (e *TextExporter) Export(report *reports.Report) (ExportResult, error) {
	content := RenderText(report)
	if err := os.WriteFile(e.Path, []byte(content), 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write report %s: %w", e.Path, err)
	}
	return ExportResult{Format: FormatText, Path: e.Path, Bytes: int64(len(content))}, nil
}

// RenderText formats the report as plain text.
func RenderText(report *reports.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "BOOKVERSE REPORT (%d)\n", report.GeneratedAt.Year())
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "Total sales: %s %s\n", report.TotalSales.StringFixed(2), report.Currency)
	fmt.Fprintf(&b, "Books below stock threshold (%d):\n", report.LowStockThreshold)
	for _, line := range report.LowStock {
		fmt.Fprintf(&b, "- %s (%d left)\n", line.Title, line.Stock)
	}
	if report.BestSeller == nil {
		fmt.Fprintf(&b, "Best-selling: none (0 units sold)\n")
	} else {
		fmt.Fprintf(&b, "Best-selling: %s (%d units sold)\n", report.BestSeller.Title, report.BestSeller.Quantity)
	}

	return b.String()
}
