package audit

import (
	"encoding/json"
	"html"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event passed to LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogChange records a successful create, update or delete of a catalog record.
func (s *Service) LogChange(eventType entities.AuditEventType, entityType, entityID, name string) {
	verb := map[entities.AuditEventType]string{
		entities.AuditEventCreate: "Created",
		entities.AuditEventUpdate: "Updated",
		entities.AuditEventDelete: "Deleted",
	}[eventType]
	if verb == "" {
		verb = string(eventType)
	}

	s.LogAsync(&entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(verb+" "+entityType+": "+html.UnescapeString(name), 500),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogBlocked records a delete that was refused because of dependent records
// or, for book instances, because the copy is not available.
func (s *Service) LogBlocked(entityType, entityID, name, reason string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventBlocked,
		Action:      entityType + "_delete",
		Description: truncate("Refused to delete "+entityType+": "+html.UnescapeString(name), 500),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusFailed,
		ErrorMsg:    truncate(reason, 500),
	}

	s.LogAsync(event)
}

// LogExport records a markdown export run.
func (s *Service) LogExport(description string, booksCount int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "markdown_export",
		Description: description,
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{"books_count": booksCount}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally for one entity kind.
func (s *Service) GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(entityType, limit, offset)
}

// GetEventsForEntity returns the change history of a single record.
func (s *Service) GetEventsForEntity(entityType, entityID string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
