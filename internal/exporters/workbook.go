package exporters

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/bookverse/internal/reports"
)

// Workbook sheet names.
const (
	SheetSummary  = "Summary"
	SheetLowStock = "Low stock"
	SheetBooks    = "Books"
	SheetOrders   = "Orders"
)

type WorkbookExporter struct {
	Path string
}

func NewWorkbookExporter(path string) *WorkbookExporter {
	return &WorkbookExporter{Path: path}
}

func (e *WorkbookExporter) Export(report *reports.Report) (ExportResult, error) {
	f, err := BuildWorkbook(report)
	if err != nil {
		return ExportResult{}, err
	}
	defer f.Close()

	if err := f.SaveAs(e.Path); err != nil {
		return ExportResult{}, fmt.Errorf("failed to save workbook %s: %w", e.Path, err)
	}

	result := ExportResult{Format: FormatXLSX, Path: e.Path}
	if info, err := os.Stat(e.Path); err == nil {
		result.Bytes = info.Size()
	}
	return result, nil
}

// BuildWorkbook lays the report out over four sheets. The caller closes the
// returned file.
func BuildWorkbook(report *reports.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetLowStock, SheetBooks, SheetOrders} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	bestTitle, bestQty := "none", 0
	if report.BestSeller != nil {
		bestTitle, bestQty = report.BestSeller.Title, report.BestSeller.Quantity
	}

	sheets := map[string][][]any{
		SheetSummary: {
			{"Generated at", report.GeneratedAt.UTC().Format(time.RFC3339)},
			{"Currency", report.Currency},
			{"Total sales", report.TotalSales.InexactFloat64()},
			{"Low stock threshold", report.LowStockThreshold},
			{"Best-selling", bestTitle},
			{"Units sold", bestQty},
		},
		SheetLowStock: {{"ISBN", "Title", "Stock"}},
		SheetBooks:    {{"ISBN", "Title", "Author", "Category", "Price", "Stock"}},
		SheetOrders:   {{"ID", "Customer", "Date", "Paid", "Total"}},
	}
	for _, line := range report.LowStock {
		sheets[SheetLowStock] = append(sheets[SheetLowStock], []any{line.ISBN, line.Title, line.Stock})
	}
	for _, b := range report.Books {
		sheets[SheetBooks] = append(sheets[SheetBooks],
			[]any{b.ISBN, b.Title, b.Author, b.Category, b.Price.InexactFloat64(), b.Stock})
	}
	for _, o := range report.Orders {
		date := ""
		if o.OrderDate != nil {
			date = o.OrderDate.Format("2006-01-02")
		}
		sheets[SheetOrders] = append(sheets[SheetOrders],
			[]any{o.ID, o.Customer, date, o.IsPaid, o.Total.InexactFloat64()})
	}

	for sheet, rows := range sheets {
		if err := writeRows(f, sheet, rows); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to fill sheet %s: %w", sheet, err)
		}
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
