package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Status(t *testing.T) {
	serve := func(controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return w, response
	}

	t.Run("returns healthy when database is connected", func(t *testing.T) {
		env := setupTestStore(t, false)

		w, response := serve(NewHealthController(env.db, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
	})

	t.Run("reports an empty store that was never imported", func(t *testing.T) {
		env := setupTestStore(t, false)

		w, response := serve(NewHealthController(env.db, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "empty", response.Checks["store"])
		assert.Equal(t, "never", response.Checks["last_import"])
		assert.Nil(t, response.LastImport)
	})

	t.Run("reports store counts and the last import", func(t *testing.T) {
		env := setupTestStore(t, true)

		w, response := serve(NewHealthController(env.db, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2 books, 3 orders", response.Checks["store"])
		assert.Equal(t, "completed", response.Checks["last_import"])
		require.NotNil(t, response.Store)
		assert.Equal(t, int64(2), response.Store.Authors)
		require.NotNil(t, response.LastImport)
		assert.Equal(t, env.source, response.LastImport.SourceURL)
		assert.Equal(t, 2, response.LastImport.BooksImported)
	})

	t.Run("reports a failed last import without going unhealthy", func(t *testing.T) {
		env := setupTestStore(t, true)
		require.NoError(t, os.Remove(env.source))
		_, err := env.store.ImportData(context.Background())
		require.Error(t, err)

		w, response := serve(NewHealthController(env.db, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Contains(t, response.Checks["last_import"], "failed: ")
		assert.Equal(t, "2 books, 3 orders", response.Checks["store"])
	})

	t.Run("reports a missing database", func(t *testing.T) {
		w, response := serve(NewHealthController(nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		env := setupTestStore(t, false)
		require.NoError(t, env.db.Close())

		w, response := serve(NewHealthController(env.db, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("includes timestamp in response", func(t *testing.T) {
		env := setupTestStore(t, false)

		_, response := serve(NewHealthController(env.db, ""))

		_, err := time.Parse(time.RFC3339, response.Time)
		assert.NoError(t, err)
		assert.Empty(t, response.Version)
	})
}
