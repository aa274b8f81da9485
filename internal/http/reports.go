package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/exporters"
	"github.com/mrlokans/bookverse/internal/reports"
)

type ReportStore interface {
	BuildReport() (*reports.Report, error)
	ExportReport() (string, error)
	ExportReportAs(format, path string) (exporters.ExportResult, error)
}

// ExportRequest selects the format written by POST /api/report/export.
type ExportRequest struct {
	Format string `json:"format"`
}

type ReportController struct {
	store ReportStore
	paths map[string]string
}

// NewReportController creates a controller writing YAML and XLSX reports to
// the given paths. The text report always goes to the store's report path.
func NewReportController(store ReportStore, yamlPath, workbookPath string) *ReportController {
	return &ReportController{
		store: store,
		paths: map[string]string{
			exporters.FormatYAML: yamlPath,
			exporters.FormatXLSX: workbookPath,
		},
	}
}

// GetReport returns the report as JSON, or as plain text with ?format=text.
func (controller *ReportController) GetReport(c *gin.Context) {
	report, err := controller.store.BuildReport()
	if err != nil {
		respondInternalError(c, err, "build report")
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.IndentedJSON(http.StatusOK, report)
	case exporters.FormatText:
		c.String(http.StatusOK, exporters.RenderText(report))
	case exporters.FormatYAML:
		data, err := exporters.RenderYAML(report)
		if err != nil {
			respondInternalError(c, err, "render yaml report")
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
	default:
		respondBadRequest(c, "format must be json, text or yaml")
	}
}

// Export writes the report file and returns what was written.
func (controller *ReportController) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	if req.Format == "" || req.Format == exporters.FormatText {
		text, err := controller.store.ExportReport()
		if err != nil {
			respondInternalError(c, err, "export report")
			return
		}
		c.String(http.StatusOK, text)
		return
	}

	path, ok := controller.paths[req.Format]
	if !ok || path == "" {
		respondBadRequest(c, "format must be text, yaml or xlsx")
		return
	}

	result, err := controller.store.ExportReportAs(req.Format, path)
	if errors.Is(err, exporters.ErrUnknownFormat) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "export report")
		return
	}
	respondSuccess(c, "report exported", result)
}
