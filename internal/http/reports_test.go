package http

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureReport = "BOOKVERSE REPORT (2025)\n" +
	"=======================\n" +
	"Total sales: 64.98 EUR\n" +
	"Books below stock threshold (5):\n" +
	"- Dune (3 left)\n" +
	"Best-selling: Dune (3 units sold)\n"

func TestReportController_GetReport(t *testing.T) {
	env := setupTestStore(t, true)
	router := newTestRouter(env)

	t.Run("returns JSON by default", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/report")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Currency   string `json:"currency"`
			TotalSales string `json:"total_sales"`
			LowStock   []struct {
				ISBN string `json:"isbn"`
			} `json:"low_stock"`
			BestSeller struct {
				Title    string `json:"title"`
				Quantity int    `json:"quantity"`
			} `json:"best_seller"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "EUR", response.Currency)
		assert.Equal(t, "64.98", response.TotalSales)
		require.Len(t, response.LowStock, 1)
		assert.Equal(t, "B1", response.LowStock[0].ISBN)
		assert.Equal(t, "Dune", response.BestSeller.Title)
		assert.Equal(t, 3, response.BestSeller.Quantity)
	})

	t.Run("renders text", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/report?format=text")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fixtureReport, w.Body.String())
	})

	t.Run("renders yaml", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/report?format=yaml")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "total_sales: \"64.98\"")
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/report?format=pdf")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportController_Export(t *testing.T) {
	t.Run("writes the text report", func(t *testing.T) {
		env := setupTestStore(t, true)

		w := postJSON(t, env, "/api/report/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fixtureReport, w.Body.String())

		content, err := os.ReadFile(filepath.Join(env.dir, "sales_report.txt"))
		require.NoError(t, err)
		assert.Equal(t, fixtureReport, string(content))
	})

	t.Run("writes the workbook", func(t *testing.T) {
		env := setupTestStore(t, true)

		w := postJSON(t, env, "/api/report/export", ExportRequest{Format: "xlsx"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "report exported")
		assert.FileExists(t, filepath.Join(env.dir, "sales_report.xlsx"))
	})

	t.Run("writes yaml", func(t *testing.T) {
		env := setupTestStore(t, true)

		w := postJSON(t, env, "/api/report/export", ExportRequest{Format: "yaml"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.FileExists(t, filepath.Join(env.dir, "sales_report.yaml"))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		env := setupTestStore(t, true)

		w := postJSON(t, env, "/api/report/export", ExportRequest{Format: "pdf"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
