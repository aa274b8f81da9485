package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/services"
)

type fakeStore struct {
	mu        sync.Mutex
	imports   int
	reports   int
	importErr error
	block     chan struct{}
}

func (f *fakeStore) ImportData(context.Context) (*services.ImportSummary, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports++
	if f.importErr != nil {
		return nil, f.importErr
	}
	return &services.ImportSummary{Books: 2, Orders: 3}, nil
}

func (f *fakeStore) ExportReport() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports++
	return "report", nil
}

func (f *fakeStore) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.imports, f.reports
}

type fakePruner struct {
	keep []int
}

func (p *fakePruner) Prune(keep int) (int, error) {
	p.keep = append(p.keep, keep)
	return 1, nil
}

func TestImportScheduler_StartStop(t *testing.T) {
	s := NewImportScheduler(&fakeStore{}, "0 3 * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Start(context.Background()), "starting twice is a no-op")

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
	s.Stop()
}

func TestImportScheduler_StopsWithContext(t *testing.T) {
	s := NewImportScheduler(&fakeStore{}, "*/15 * * * *")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestImportScheduler_InvalidSchedule(t *testing.T) {
	s := NewImportScheduler(&fakeStore{}, "every day")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestImportScheduler_RunImport(t *testing.T) {
	store := &fakeStore{}
	pruner := &fakePruner{}
	s := NewImportScheduler(store, "0 3 * * *")
	s.SetSnapshotPruner(pruner, 10)

	s.runImport(context.Background())

	imports, reports := store.counts()
	assert.Equal(t, 1, imports)
	assert.Equal(t, 1, reports)
	assert.Equal(t, []int{10}, pruner.keep)

	last := s.LastRun()
	require.NotNil(t, last)
	assert.Equal(t, RunStatusSuccess, last.Status)
	assert.Contains(t, last.Message, "Imported 2 books, 3 orders")
}

func TestImportScheduler_RunImportFailure(t *testing.T) {
	store := &fakeStore{importErr: errors.New("source unreachable")}
	s := NewImportScheduler(store, "0 3 * * *")

	s.runImport(context.Background())

	_, reports := store.counts()
	assert.Zero(t, reports, "no report after a failed import")

	last := s.LastRun()
	require.NotNil(t, last)
	assert.Equal(t, RunStatusFailed, last.Status)
	assert.Equal(t, "source unreachable", last.Message)
}

func TestImportScheduler_SkipsOverlappingRuns(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	s := NewImportScheduler(store, "0 3 * * *")

	s.RunNow()
	assert.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.isSyncing
	}, time.Second, 5*time.Millisecond)

	s.runImport(context.Background())
	close(store.block)

	assert.Eventually(t, func() bool { return s.LastRun() != nil }, time.Second, 5*time.Millisecond)
	imports, _ := store.counts()
	assert.Equal(t, 1, imports)
}

func TestCronHelpers(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule("* * *"))

	assert.Equal(t, "Daily at 03:00", GetCronDescription("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))

	from := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	next, err := GetNextRunTime("0 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, from.Add(time.Hour), *next)
}
