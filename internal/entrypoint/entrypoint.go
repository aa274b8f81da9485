package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/audit"
	"github.com/mrlokans/bookverse/internal/config"
	"github.com/mrlokans/bookverse/internal/database"
	http_controllers "github.com/mrlokans/bookverse/internal/http"
	"github.com/mrlokans/bookverse/internal/scheduler"
	"github.com/mrlokans/bookverse/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookverse v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, database.Options{LogLevel: cfg.Database.LogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store := services.NewBookstoreFromConfig(db, cfg)

	routerCfg := http_controllers.RouterConfig{
		Store:              store,
		Database:           db,
		ReportYAMLPath:     cfg.Report.YAMLPath,
		ReportWorkbookPath: cfg.Report.WorkbookPath,
		ImportSchedule:     cfg.Schedule.Schedule,
		Version:            version,
	}

	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	var importScheduler *scheduler.ImportScheduler
	if cfg.Schedule.Enabled {
		importScheduler = scheduler.NewImportScheduler(store, cfg.Schedule.Schedule)
		if cfg.Audit.Dir != "" {
			importScheduler.SetSnapshotPruner(audit.NewAuditor(cfg.Audit.Dir), cfg.Audit.KeepSnapshots)
		}
		if err := importScheduler.Start(schedulerCtx); err != nil {
			log.Printf("Import scheduler: failed to start: %v", err)
		} else {
			routerCfg.Scheduler = importScheduler
		}
	} else {
		log.Printf("Import scheduler: disabled")
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, func(ctx context.Context) {
		cancelScheduler()
		if importScheduler != nil {
			importScheduler.Stop()
		}
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
