package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Clawdomoto/moto-dashboard/internal/crontab"
	"github.com/Clawdomoto/moto-dashboard/internal/memorylog"
	"github.com/Clawdomoto/moto-dashboard/internal/store"
	"github.com/Clawdomoto/moto-dashboard/internal/workspace"
	"github.com/Clawdomoto/moto-dashboard/internal/ws"
)

const defaultSyncInterval = time.Minute

// Collaborator interfaces keep the worker testable without a live database
// or CLI.

type activitySink interface {
	Clear(ctx context.Context) error
	InsertBatch(ctx context.Context, activities []memorylog.Activity) error
}

type cronJobSink interface {
	Sync(ctx context.Context, jobs []crontab.Job) error
}

type searchIndexSink interface {
	IndexFile(ctx context.Context, filePath, fileName, content string) (*store.IndexedFile, error)
}

type jobLister interface {
	Jobs(ctx context.Context) ([]crontab.Job, error)
}

type eventBroadcaster interface {
	BroadcastEvent(event ws.Event)
}

// SyncWorker periodically re-parses the workspace into the store so the
// database mirrors the filesystem and CLI state.
type SyncWorker struct {
	Workspace  *workspace.Workspace
	CLI        jobLister
	Activities activitySink
	CronJobs   cronJobSink
	Index      searchIndexSink
	Hub        eventBroadcaster

	Interval time.Duration
	Logf     func(string, ...any)

	now func() time.Time
}

// NewSyncWorker wires a worker with defaults applied.
func NewSyncWorker(w *workspace.Workspace, cli jobLister) *SyncWorker {
	return &SyncWorker{
		Workspace: w,
		CLI:       cli,
		Interval:  defaultSyncInterval,
		now:       time.Now,
	}
}

// Start loops RunOnce until the context is cancelled.
func (s *SyncWorker) Start(ctx context.Context) {
	for {
		if err := s.RunOnce(ctx); err != nil && s.Logf != nil {
			s.Logf("sync worker run failed: %v", err)
		}
		if err := sleepWithContext(ctx, s.interval()); err != nil {
			return
		}
	}
}

// RunOnce refreshes activities, cron jobs, and the search index. Each phase
// is independent; the first failure is returned but earlier phases keep their
// results.
func (s *SyncWorker) RunOnce(ctx context.Context) error {
	if s == nil || s.Workspace == nil {
		return fmt.Errorf("sync worker is not configured")
	}

	if err := s.refreshActivities(ctx); err != nil {
		return err
	}
	if err := s.refreshCronJobs(ctx); err != nil {
		return err
	}
	return s.refreshIndex(ctx)
}

func (s *SyncWorker) refreshActivities(ctx context.Context) error {
	if s.Activities == nil {
		return nil
	}

	var activities []memorylog.Activity
	for _, file := range s.Workspace.MemoryFiles(0) {
		activities = append(activities, memorylog.Parse(file.Content, file.Name)...)
	}

	if err := s.Activities.Clear(ctx); err != nil {
		return err
	}
	if err := s.Activities.InsertBatch(ctx, activities); err != nil {
		return err
	}

	s.broadcast(ws.Event{Type: ws.EventActivitiesUpdated, Count: len(activities)})
	return nil
}

func (s *SyncWorker) refreshCronJobs(ctx context.Context) error {
	if s.CronJobs == nil || s.CLI == nil {
		return nil
	}

	jobs, err := s.CLI.Jobs(ctx)
	if err != nil {
		// The CLI being unavailable is not fatal for the dashboard; keep the
		// previous snapshot.
		if s.Logf != nil {
			s.Logf("cron listing unavailable: %v", err)
		}
		return nil
	}

	for i := range jobs {
		if jobs[i].NextRun == nil {
			jobs[i].NextRun = NextRunPreview(jobs[i].Schedule, s.now())
		}
	}

	if err := s.CronJobs.Sync(ctx, jobs); err != nil {
		return err
	}

	s.broadcast(ws.Event{Type: ws.EventCronUpdated, Count: len(jobs)})
	return nil
}

func (s *SyncWorker) refreshIndex(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}

	files := s.Workspace.Walk(s.Workspace.Root)
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		relPath, err := filepath.Rel(s.Workspace.Root, path)
		if err != nil {
			relPath = path
		}
		if _, err := s.Index.IndexFile(ctx, relPath, filepath.Base(path), string(content)); err != nil {
			return err
		}
	}

	s.broadcast(ws.Event{Type: ws.EventIndexUpdated, Count: len(files)})
	return nil
}

func (s *SyncWorker) broadcast(event ws.Event) {
	if s.Hub == nil {
		return
	}
	s.Hub.BroadcastEvent(event)
}

func (s *SyncWorker) interval() time.Duration {
	if s.Interval <= 0 {
		return defaultSyncInterval
	}
	return s.Interval
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
