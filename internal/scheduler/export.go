package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/locallibrary/internal/tasks"
)

// auditCleanupSchedule runs the audit log pruning once a day.
const auditCleanupSchedule = "30 4 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands tasks to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// Options configures an ExportScheduler.
type Options struct {
	// ExportEnabled turns on the periodic markdown export.
	ExportEnabled bool
	// ExportSchedule is a five field cron expression.
	ExportSchedule string
	// AuditRetentionDays prunes older audit events daily when positive.
	AuditRetentionDays int
}

// ExportScheduler enqueues catalog exports and audit cleanups on a cron schedule.
type ExportScheduler struct {
	queue Enqueuer
	opts  Options

	cron      *cron.Cron
	exportID  cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewExportScheduler(queue Enqueuer, opts Options) *ExportScheduler {
	return &ExportScheduler{
		queue: queue,
		opts:  opts,
		cron:  cron.New(cron.WithParser(parser)),
	}
}

// ValidateSchedule reports whether expr is a valid five field cron expression.
func ValidateSchedule(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", expr, err)
	}
	return nil
}

// NextRun returns the next activation of expr after from.
func NextRun(expr string, from time.Time) (time.Time, error) {
	schedule, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}

// Start registers the configured jobs and starts the cron loop. The loop stops
// when ctx is cancelled.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := 0
	if s.opts.ExportEnabled {
		if err := ValidateSchedule(s.opts.ExportSchedule); err != nil {
			return err
		}
		id, err := s.cron.AddFunc(s.opts.ExportSchedule, func() {
			s.enqueue(tasks.ExportCatalogTask{Trigger: "schedule"})
		})
		if err != nil {
			return fmt.Errorf("failed to schedule export job: %w", err)
		}
		s.exportID = id
		jobs++
	}

	if s.opts.AuditRetentionDays > 0 {
		retention := s.opts.AuditRetentionDays
		if _, err := s.cron.AddFunc(auditCleanupSchedule, func() {
			s.enqueue(tasks.CleanupAuditEventsTask{RetentionDays: retention})
		}); err != nil {
			return fmt.Errorf("failed to schedule audit cleanup: %w", err)
		}
		jobs++
	}

	if jobs == 0 {
		log.Printf("Scheduler: no jobs enabled")
		return nil
	}

	s.cron.Start()
	s.isRunning = true

	if s.opts.ExportEnabled {
		next, _ := NextRun(s.opts.ExportSchedule, time.Now())
		log.Printf("Scheduler: export scheduled with '%s'. Next run: %v", s.opts.ExportSchedule, next)
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and stops the cron loop.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false

	log.Printf("Scheduler: stopped")
}

// RunNow enqueues an export immediately and returns the task id.
func (s *ExportScheduler) RunNow(ctx context.Context) (string, error) {
	ids, err := s.queue.Enqueue(ctx, tasks.ExportCatalogTask{Trigger: "manual"})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next scheduled export will be enqueued,
// or nil when the export job is not active.
func (s *ExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || s.exportID == 0 {
		return nil
	}

	entry := s.cron.Entry(s.exportID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	return &next
}

func (s *ExportScheduler) enqueue(task backlite.Task) {
	if _, err := s.queue.Enqueue(context.Background(), task); err != nil {
		log.Printf("Scheduler: failed to enqueue task: %v", err)
	}
}
