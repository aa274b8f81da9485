package exporters

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookverse/internal/reports"
)

type yamlReport struct {
	GeneratedAt       string          `yaml:"generated_at"`
	Currency          string          `yaml:"currency"`
	TotalSales        string          `yaml:"total_sales"`
	LowStockThreshold int             `yaml:"low_stock_threshold"`
	LowStock          []yamlStockLine `yaml:"low_stock"`
	BestSeller        *yamlBestSeller `yaml:"best_seller"`
}

type yamlStockLine struct {
	ISBN  string `yaml:"isbn"`
	Title string `yaml:"title"`
	Stock int    `yaml:"stock"`
}

type yamlBestSeller struct {
	ISBN     string `yaml:"isbn"`
	Title    string `yaml:"title"`
	Quantity int    `yaml:"quantity"`
}

type YAMLExporter struct {
	Path string
}

func NewYAMLExporter(path string) *YAMLExporter {
	return &YAMLExporter{Path: path}
}

func (e *YAMLExporter) Export(report *reports.Report) (ExportResult, error) {
	data, err := RenderYAML(report)
	if err != nil {
		return ExportResult{}, err
	}
	if err := os.WriteFile(e.Path, data, 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write report %s: %w", e.Path, err)
	}
	return ExportResult{Format: FormatYAML, Path: e.Path, Bytes: int64(len(data))}, nil
}

// RenderYAML formats the report as a YAML document. Amounts keep two
// decimals as strings so they round-trip without float drift.
func RenderYAML(report *reports.Report) ([]byte, error) {
	doc := yamlReport{
		GeneratedAt:       report.GeneratedAt.UTC().Format(time.RFC3339),
		Currency:          report.Currency,
		TotalSales:        report.TotalSales.StringFixed(2),
		LowStockThreshold: report.LowStockThreshold,
		LowStock:          make([]yamlStockLine, 0, len(report.LowStock)),
	}
	for _, line := range report.LowStock {
		doc.LowStock = append(doc.LowStock, yamlStockLine{ISBN: line.ISBN, Title: line.Title, Stock: line.Stock})
	}
	if report.BestSeller != nil {
		doc.BestSeller = &yamlBestSeller{
			ISBN:     report.BestSeller.ISBN,
			Title:    report.BestSeller.Title,
			Quantity: report.BestSeller.Quantity,
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}
