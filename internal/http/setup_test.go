package http

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/fixtures"
	"github.com/mrlokans/bookverse/internal/services"
)

type testEnv struct {
	db     *database.Database
	store  *services.Bookstore
	dir    string
	source string
}

// setupTestStore creates a bookstore backed by a temporary database. When
// seeded, the shared fixture is imported first.
func setupTestStore(t *testing.T, seeded bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	db, err := database.NewDatabase(filepath.Join(dir, "test.db"), database.Options{LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	source := filepath.Join(dir, "bookstore.json")
	require.NoError(t, os.WriteFile(source, fixtures.BookstoreJSON, 0644))

	store := services.NewBookstore(db, services.Options{
		SourceURL:     source,
		RejectLogPath: filepath.Join(dir, "invalid_bookstore.txt"),
		ReportPath:    filepath.Join(dir, "sales_report.txt"),
		Now:           func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})

	if seeded {
		_, err := store.ImportData(context.Background())
		require.NoError(t, err)
	}

	return &testEnv{db: db, store: store, dir: dir, source: source}
}
