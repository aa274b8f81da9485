package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookverse/internal/services"
)

// Store is what a scheduled run calls into.
type Store interface {
	ImportData(ctx context.Context) (*services.ImportSummary, error)
	ExportReport() (string, error)
}

// SnapshotPruner trims old import snapshots after each run.
type SnapshotPruner interface {
	Prune(keep int) (int, error)
}

// RunStatus describes the last scheduled run.
type RunStatus struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
}

const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// ImportScheduler periodically re-imports the store and writes the report.
type ImportScheduler struct {
	store    Store
	schedule string

	pruner        SnapshotPruner
	keepSnapshots int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	lastRun    *RunStatus
	cancelFunc context.CancelFunc
}

// NewImportScheduler creates a new scheduler instance
func NewImportScheduler(store Store, schedule string) *ImportScheduler {
	return &ImportScheduler{
		store:    store,
		schedule: schedule,
	}
}

// SetSnapshotPruner keeps only the newest keep snapshots after each run.
func (s *ImportScheduler) SetSnapshotPruner(p SnapshotPruner, keep int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruner = p
	s.keepSnapshots = keep
}

// Start begins the scheduler. It stops when ctx is cancelled.
func (s *ImportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.cron = cron.New(cron.WithParser(cronParser))
	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runImport(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule import job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.schedule, time.Now())
	log.Printf("Import scheduler: started with schedule '%s' (%s). Next run: %v",
		s.schedule,
		GetCronDescription(s.schedule),
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *ImportScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	c := s.cron
	cancel := s.cancelFunc
	s.isRunning = false
	s.cancelFunc = nil
	s.mu.Unlock()

	<-c.Stop().Done()
	if cancel != nil {
		cancel()
	}

	log.Printf("Import scheduler: stopped")
}

// RunNow triggers an immediate run in the background.
func (s *ImportScheduler) RunNow() {
	go s.runImport(context.Background())
}

// IsRunning returns whether the scheduler is active
func (s *ImportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastRun returns the outcome of the most recent run, or nil.
func (s *ImportScheduler) LastRun() *RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return nil
	}
	status := *s.lastRun
	return &status
}

// GetNextRunTime returns when the next run will occur
func (s *ImportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runImport imports the configured source and rewrites the report.
// Overlapping triggers are skipped.
func (s *ImportScheduler) runImport(ctx context.Context) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Scheduled import: skipped (previous run still in progress)")
		return
	}
	s.isSyncing = true
	pruner, keep := s.pruner, s.keepSnapshots
	s.mu.Unlock()

	status := &RunStatus{StartedAt: time.Now()}
	defer func() {
		status.FinishedAt = time.Now()
		s.mu.Lock()
		s.isSyncing = false
		s.lastRun = status
		s.mu.Unlock()
	}()

	log.Printf("Scheduled import: starting")

	summary, err := s.store.ImportData(ctx)
	if err != nil {
		status.Status = RunStatusFailed
		status.Message = err.Error()
		log.Printf("Scheduled import: %v", err)
		return
	}

	if _, err := s.store.ExportReport(); err != nil {
		status.Status = RunStatusFailed
		status.Message = fmt.Sprintf("Imported %d books, report failed: %v", summary.Books, err)
		log.Printf("Scheduled import: %s", status.Message)
		return
	}

	if pruner != nil && keep > 0 {
		if removed, err := pruner.Prune(keep); err != nil {
			log.Printf("Scheduled import: warning - failed to prune snapshots: %v", err)
		} else if removed > 0 {
			log.Printf("Scheduled import: pruned %d old snapshots", removed)
		}
	}

	status.Status = RunStatusSuccess
	status.Message = fmt.Sprintf("Imported %d books, %d orders in %v",
		summary.Books, summary.Orders, time.Since(status.StartedAt).Round(time.Millisecond))
	log.Printf("Scheduled import: %s", status.Message)
}
