package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/entities"
)

// HealthResponse reports database connectivity along with the store's row
// counts and the most recent import run.
type HealthResponse struct {
	Status     string                  `json:"status"`
	Time       string                  `json:"time"`
	Version    string                  `json:"version,omitempty"`
	Checks     map[string]string       `json:"checks"`
	Store      *database.StoreCounts   `json:"store,omitempty"`
	LastImport *entities.ImportSession `json:"last_import,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status is unhealthy only when the database is unreachable. An empty store
// or a failed last import is reported in checks without changing the status.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string),
	}

	if h.db == nil {
		health.Checks["database"] = "not configured"
		c.IndentedJSON(http.StatusOK, health)
		return
	}

	if err := h.db.Ping(); err != nil {
		health.Checks["database"] = "error: " + err.Error()
		health.Status = "unhealthy"
		c.IndentedJSON(http.StatusServiceUnavailable, health)
		return
	}
	health.Checks["database"] = "ok"

	if counts, err := h.db.Counts(); err != nil {
		health.Checks["store"] = "error: " + err.Error()
	} else {
		health.Store = &counts
		if counts.Books == 0 {
			health.Checks["store"] = "empty"
		} else {
			health.Checks["store"] = fmt.Sprintf("%d books, %d orders", counts.Books, counts.Orders)
		}
	}

	sessions, err := h.db.ListImportSessions(1)
	switch {
	case err != nil:
		health.Checks["last_import"] = "error: " + err.Error()
	case len(sessions) == 0:
		health.Checks["last_import"] = "never"
	default:
		health.LastImport = &sessions[0]
		health.Checks["last_import"] = string(sessions[0].Status)
		if sessions[0].Error != "" {
			health.Checks["last_import"] += ": " + sessions[0].Error
		}
	}

	c.IndentedJSON(http.StatusOK, health)
}
