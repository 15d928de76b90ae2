package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pagination supports listing queries across admin panels.
type Pagination struct {
	Limit  int
	Offset int
}

// PersonEvent signals that a personnel record changed.
type PersonEvent struct {
	PersonID   uuid.UUID
	ActorID    uuid.UUID
	Action     string
	OccurredAt time.Time
	Person     Person
}

// AuditRecord describes sink inputs and is shared across sink and query layers.
type AuditRecord struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     string
	TableName  string
	RecordID   string
	NewData    map[string]any
	OccurredAt time.Time
}

// AuditSink is the minimal DI contract for emitting audit entries. Keep it
// stable and limited to Log so hosts can swap sinks without breaking changes.
type AuditSink interface {
	Log(context.Context, AuditRecord) error
}

// AuditRepository exposes read-side access to the audit trail.
type AuditRepository interface {
	ListAudit(ctx context.Context, filter AuditFilter) (AuditPage, error)
}

// AuditFilter narrows audit trail queries.
type AuditFilter struct {
	Actor      ActorRef
	ActorID    uuid.UUID
	Actions    []string
	TableName  string
	RecordID   string
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (AuditFilter) Type() string {
	return "query.audit.trail"
}

// Validate implements gocommand.Message.
func (filter AuditFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// AuditPage represents a paginated audit trail response.
type AuditPage struct {
	Records    []AuditRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterOnboard    func(context.Context, PersonEvent)
	AfterSignupLink func(context.Context, PersonEvent)
	AfterQrRotation func(context.Context, PersonEvent)
	AfterAudit      func(context.Context, AuditRecord)
}

// ActorRef identifies who is initiating an operation.
type ActorRef struct {
	ID   uuid.UUID
	Type string
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("go-trainops: actor reference required")
	// ErrPersonIDRequired indicates a person identifier was omitted.
	ErrPersonIDRequired = errors.New("go-trainops: person id required")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-trainops: service not ready")
	// ErrMissingPersonRepository occurs when no personnel repository was supplied.
	ErrMissingPersonRepository = errors.New("go-trainops: missing person repository")
	// ErrMissingIdentityProvider occurs when no identity provider was supplied.
	ErrMissingIdentityProvider = errors.New("go-trainops: missing identity provider")
	// ErrMissingAuditSink occurs when no audit sink was supplied.
	ErrMissingAuditSink = errors.New("go-trainops: missing audit sink")
	// ErrMissingAirportRepository occurs when airport commands lack storage.
	ErrMissingAirportRepository = errors.New("go-trainops: missing airport repository")
	// ErrMissingAssignmentRepository occurs when assignment writes lack storage.
	ErrMissingAssignmentRepository = errors.New("go-trainops: missing assignment repository")
	// ErrMissingProgramRepository occurs when program commands lack storage.
	ErrMissingProgramRepository = errors.New("go-trainops: missing program repository")
	// ErrMissingTrainingRepository occurs when training commands lack storage.
	ErrMissingTrainingRepository = errors.New("go-trainops: missing training repository")
	// ErrMissingExaminationRepository occurs when exam commands lack storage.
	ErrMissingExaminationRepository = errors.New("go-trainops: missing examination repository")
	// ErrMissingCertificateRepository occurs when certificate commands lack storage.
	ErrMissingCertificateRepository = errors.New("go-trainops: missing certificate repository")
	// ErrMissingCategoryRepository occurs when category commands lack storage.
	ErrMissingCategoryRepository = errors.New("go-trainops: missing job category repository")
	// ErrMissingLinkBuilder occurs when onboarding lacks a link builder.
	ErrMissingLinkBuilder = errors.New("go-trainops: missing link builder")
)
