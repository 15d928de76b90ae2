package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry is the Bun model behind the audit_logs table. Rows are append-only;
// the repository intentionally exposes no update or delete path.
type LogEntry struct {
	bun.BaseModel `bun:"table:audit_logs,alias:audit_logs"`

	ID        uuid.UUID      `bun:"id,pk,type:uuid"`
	ActorID   uuid.UUID      `bun:"user_id,type:uuid,nullzero"`
	Action    string         `bun:"action,notnull"`
	TableName string         `bun:"table_name,notnull"`
	RecordID  string         `bun:"record_id,nullzero"`
	NewData   map[string]any `bun:"new_data,type:jsonb"`
	CreatedAt time.Time      `bun:"created_at,notnull"`
}
