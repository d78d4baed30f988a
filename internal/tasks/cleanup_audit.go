package tasks

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const cleanupAuditQueue = "cleanup_audit_events"

// AuditEventCleaner deletes audit events older than a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask prunes the audit log. A zero RetentionDays falls
// back to the queue default.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        cleanupAuditQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

var errNoCleaner = errors.New("audit event cleaner not configured")

// CleanupAuditEventsProcessor deletes events older than the task's
// retention, or defaultDays when the task carries none.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, defaultDays int) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return errNoCleaner
		}

		days := task.RetentionDays
		if days <= 0 {
			days = defaultDays
		}
		if days <= 0 {
			days = 30
		}

		deleted, err := cleaner.DeleteOldEvents(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return err
		}

		if deleted > 0 {
			log.Printf("[TASK] Removed %d audit events older than %d days", deleted, days)
		}
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, defaultDays int) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, defaultDays))
}
