package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
)

// Event is a single audit entry. Privileged operations, such as tenant
// provisioning, suspension, or anything performed with row-level security
// bypassed, record one.
type Event struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenant_id,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	Result     Result         `json:"result"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate rejects events that would be useless in an audit trail.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// EventOption decorates an Event before it is stored.
type EventOption func(*Event)

// WithResource names the resource the action touched.
func WithResource(resource, id string) EventOption {
	return func(e *Event) {
		e.Resource = resource
		e.ResourceID = id
	}
}

// WithMetadata attaches one metadata entry to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = map[string]any{}
		}
		e.Metadata[key] = value
	}
}

// binder pulls one actor or correlation field out of the request context
// and writes it into the event.
type binder struct {
	read  func(context.Context) (string, bool)
	write func(*Event, string)
}

// Logger records audit events to a storage backend. Actor and correlation
// fields are filled from the request context through configured binders, so
// call sites only name the action.
type Logger struct {
	storage Storage
	binders []binder
}

// Option configures a Logger.
type Option func(*Logger)

// WithTenantIDExtractor fills Event.TenantID from the context.
func WithTenantIDExtractor(fn func(context.Context) (string, bool)) Option {
	return bindField(fn, func(e *Event, v string) { e.TenantID = v })
}

// WithUserIDExtractor fills Event.UserID from the context.
func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return bindField(fn, func(e *Event, v string) { e.UserID = v })
}

// WithRequestIDExtractor fills Event.RequestID from the context.
func WithRequestIDExtractor(fn func(context.Context) (string, bool)) Option {
	return bindField(fn, func(e *Event, v string) { e.RequestID = v })
}

func bindField(read func(context.Context) (string, bool), write func(*Event, string)) Option {
	return func(l *Logger) {
		if read != nil {
			l.binders = append(l.binders, binder{read: read, write: write})
		}
	}
}

// NewLogger builds an audit logger writing to storage.
func NewLogger(storage Storage, opts ...Option) *Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &Logger{storage: storage}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a successful action.
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.record(ctx, l.draft(ctx, action, ResultSuccess), opts)
}

// LogError records a failed action together with the failure message.
func (l *Logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	e := l.draft(ctx, action, ResultError)
	e.Error = err.Error()
	return l.record(ctx, e, opts)
}

// draft stamps a new event and runs the context binders over it.
func (l *Logger) draft(ctx context.Context, action string, result Result) Event {
	e := Event{
		ID:        uuid.New().String(),
		Action:    action,
		Result:    result,
		CreatedAt: time.Now(),
	}
	for _, b := range l.binders {
		if v, ok := b.read(ctx); ok {
			b.write(&e, v)
		}
	}
	return e
}

func (l *Logger) record(ctx context.Context, e Event, opts []EventOption) error {
	for _, opt := range opts {
		opt(&e)
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return l.storage.Store(ctx, e)
}
