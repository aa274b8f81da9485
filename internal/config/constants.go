package config

// Default paths for files the application writes
const (
	// DefaultDatabasePath is the default path for the bookstore database
	DefaultDatabasePath = "./bookverse.db"

	// DefaultReportPath is where the plain-text sales report is written
	DefaultReportPath = "sales_report.txt"

	// DefaultYAMLReportPath is where the YAML report is written
	DefaultYAMLReportPath = "sales_report.yaml"

	// DefaultWorkbookPath is where the XLSX report is written
	DefaultWorkbookPath = "sales_report.xlsx"
)
