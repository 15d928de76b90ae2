package examination

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the examinations row. Score stays NULL until grading.
type Record struct {
	bun.BaseModel `bun:"table:examinations"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	TrainingID uuid.UUID `bun:"training_id,notnull,type:uuid"`
	ExamType   string    `bun:"exam_type,notnull"`
	ExamDate   time.Time `bun:"exam_date"`
	Status     string    `bun:"status,notnull"`
	Score      *float64  `bun:"score,nullzero"`
	Notes      string    `bun:"notes"`
	CreatedAt  time.Time `bun:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at"`
}

func fromDomain(e types.Examination) *Record {
	return &Record{
		ID:         e.ID,
		TrainingID: e.TrainingID,
		ExamType:   string(e.ExamType),
		ExamDate:   e.ExamDate,
		Status:     string(e.Status),
		Score:      e.Score,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Examination {
	if rec == nil {
		return nil
	}
	return &types.Examination{
		ID:         rec.ID,
		TrainingID: rec.TrainingID,
		ExamType:   types.ExamType(rec.ExamType),
		ExamDate:   rec.ExamDate,
		Status:     types.ExamStatus(rec.Status),
		Score:      rec.Score,
		Notes:      rec.Notes,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
