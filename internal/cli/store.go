package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/services"
)

// storeFlags are shared by every command that opens the local database.
type storeFlags struct {
	DatabasePath string
	Out          io.Writer
}

func (f *storeFlags) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

// open returns a bookstore over the configured database. The returned
// function closes the database.
func (f *storeFlags) open(cfg *config.Config) (*services.Bookstore, func(), error) {
	if f.DatabasePath != "" {
		cfg.Database.Path = f.DatabasePath
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.Options{LogLevel: cfg.Database.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return services.NewBookstoreFromConfig(db, cfg), func() { db.Close() }, nil
}
