package audit

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed audit repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
	Masker     *SanitizerConfig
}

// Repository persists audit entries and exposes the read side. The write side
// is the AuditSink contract; reads go through ListAudit and are masked.
type Repository struct {
	store     repository.Repository[*LogEntry]
	clock     types.Clock
	idGen     types.IDGenerator
	sanitizer SanitizerConfig
}

// NewRepository constructs a repository that implements both AuditSink and
// AuditRepository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("audit: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	sanitizer := SanitizerConfig{}
	if cfg.Masker != nil {
		sanitizer = *cfg.Masker
	}

	return &Repository{
		store:     repo,
		clock:     clock,
		idGen:     idGen,
		sanitizer: sanitizer,
	}, nil
}

var (
	_ types.AuditSink       = (*Repository)(nil)
	_ types.AuditRepository = (*Repository)(nil)
)

// Log appends an audit record. Failures are returned to the caller so
// workflows can decide whether the write was best-effort.
func (r *Repository) Log(ctx context.Context, record types.AuditRecord) error {
	entry := toLogEntry(record)
	if entry.ID == uuid.Nil {
		entry.ID = r.idGen.UUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	_, err := r.store.Create(ctx, entry)
	return err
}

// ListAudit returns a paginated, sanitized slice of the audit trail.
func (r *Repository) ListAudit(ctx context.Context, filter types.AuditFilter) (types.AuditPage, error) {
	pagination := normalizePagination(filter.Pagination, 50, 200)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("created_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			return applyAuditFilter(q, filter)
		},
	}

	rows, total, err := r.store.List(ctx, criteria...)
	if err != nil {
		return types.AuditPage{}, err
	}
	records := make([]types.AuditRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, SanitizeRecord(r.sanitizer.Masker, toAuditRecord(row)))
	}
	return types.AuditPage{
		Records:    records,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func applyAuditFilter(q *bun.SelectQuery, filter types.AuditFilter) *bun.SelectQuery {
	if filter.ActorID != uuid.Nil {
		q = q.Where("user_id = ?", filter.ActorID)
	}
	if len(filter.Actions) > 0 {
		q = q.Where("action IN (?)", bun.In(filter.Actions))
	}
	if strings.TrimSpace(filter.TableName) != "" {
		q = q.Where("table_name = ?", strings.TrimSpace(filter.TableName))
	}
	if strings.TrimSpace(filter.RecordID) != "" {
		q = q.Where("record_id = ?", strings.TrimSpace(filter.RecordID))
	}
	if filter.Since != nil && !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if filter.Until != nil && !filter.Until.IsZero() {
		q = q.Where("created_at <= ?", filter.Until)
	}
	return q
}

func toLogEntry(record types.AuditRecord) *LogEntry {
	return &LogEntry{
		ID:        record.ID,
		ActorID:   record.ActorID,
		Action:    record.Action,
		TableName: record.TableName,
		RecordID:  record.RecordID,
		NewData:   cloneMap(record.NewData),
		CreatedAt: record.OccurredAt,
	}
}

func toAuditRecord(entry *LogEntry) types.AuditRecord {
	if entry == nil {
		return types.AuditRecord{}
	}
	return types.AuditRecord{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TableName:  entry.TableName,
		RecordID:   entry.RecordID,
		NewData:    cloneMap(entry.NewData),
		OccurredAt: entry.CreatedAt,
	}
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
