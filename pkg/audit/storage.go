package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Storage persists audit events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// MemoryStorage keeps events in memory. Useful for tests and as a buffer
// in tooling; production deployments should store events durably.
type MemoryStorage struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store implements Storage.
func (s *MemoryStorage) Store(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of all stored events in insertion order.
func (s *MemoryStorage) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// SlogStorage writes events to a structured logger, one INFO record per
// event under a fixed message so log pipelines can route them.
type SlogStorage struct {
	log *slog.Logger
}

// NewSlogStorage creates a storage writing through the given logger.
func NewSlogStorage(log *slog.Logger) *SlogStorage {
	if log == nil {
		log = slog.Default()
	}
	return &SlogStorage{log: log}
}

// Store implements Storage.
func (s *SlogStorage) Store(ctx context.Context, event Event) error {
	attrs := []slog.Attr{
		slog.String("audit_id", event.ID),
		slog.String("action", event.Action),
		slog.String("result", string(event.Result)),
	}
	if event.TenantID != "" {
		attrs = append(attrs, slog.String("tenant_id", event.TenantID))
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource), slog.String("resource_id", event.ResourceID))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "audit event", attrs...)
	return nil
}
