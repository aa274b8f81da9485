package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/entities"
	"github.com/mrlokans/bookverse/internal/importers"
	"github.com/mrlokans/bookverse/internal/services"
)

type ImportStore interface {
	ImportData(ctx context.Context) (*services.ImportSummary, error)
	ImportFrom(ctx context.Context, src importers.Source) (*services.ImportSummary, error)
	Reset(ctx context.Context) error
	ImportHistory(limit int) ([]entities.ImportSession, error)
	Counts() (database.StoreCounts, error)
}

// ImportRequest optionally overrides the configured source with an http(s) URL.
type ImportRequest struct {
	URL string `json:"url"`
}

type ImportController struct {
	store ImportStore
}

func NewImportController(store ImportStore) *ImportController {
	return &ImportController{store: store}
}

// storeContext detaches store operations from the request. Once the reset has
// run, a disconnecting client must not abort the batches that follow.
func storeContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// Import rebuilds the store. Errors are mapped to status codes so a failed
// import never takes the server down.
func (controller *ImportController) Import(c *gin.Context) {
	var req ImportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	var (
		summary *services.ImportSummary
		err     error
	)
	ctx := storeContext(c)
	url := strings.TrimSpace(req.URL)
	switch {
	case url == "":
		summary, err = controller.store.ImportData(ctx)
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		summary, err = controller.store.ImportFrom(ctx, importers.NewHTTPSource(url, 0))
	default:
		respondBadRequest(c, "url must be an http(s) URL")
		return
	}

	if err != nil {
		respondImportError(c, err)
		return
	}
	respondSuccess(c, "import completed", summary)
}

func respondImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoSource):
		respondError(c, http.StatusBadRequest, "no_source", err.Error())
	case errors.Is(err, importers.ErrFetch):
		respondError(c, http.StatusBadGateway, "fetch_failed", err.Error())
	case errors.Is(err, importers.ErrMalformedDocument):
		respondError(c, http.StatusUnprocessableEntity, "malformed_document", err.Error())
	default:
		respondInternalError(c, err, "import")
	}
}

// Reset empties the store. With ?reimport=true the configured source is
// imported again in the same request.
func (controller *ImportController) Reset(c *gin.Context) {
	reimport, err := strconv.ParseBool(c.DefaultQuery("reimport", "false"))
	if err != nil {
		respondBadRequest(c, "reimport must be a boolean")
		return
	}

	ctx := storeContext(c)
	if err := controller.store.Reset(ctx); err != nil {
		respondInternalError(c, err, "reset")
		return
	}
	if !reimport {
		respondSuccess(c, "store reset", nil)
		return
	}

	summary, err := controller.store.ImportData(ctx)
	if err != nil {
		respondImportError(c, err)
		return
	}
	respondSuccess(c, "store reset and reimported", summary)
}

// History lists recent import sessions together with current row counts.
func (controller *ImportController) History(c *gin.Context) {
	limit, ok := parseLimitQuery(c, 20)
	if !ok {
		return
	}

	sessions, err := controller.store.ImportHistory(limit)
	if err != nil {
		respondInternalError(c, err, "import history")
		return
	}
	counts, err := controller.store.Counts()
	if err != nil {
		respondInternalError(c, err, "store counts")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"imports": sessions, "count": len(sessions), "store": counts})
}
