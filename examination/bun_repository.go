package examination

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed examination repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.ExaminationRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default examination repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("examination: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Repository{store: repo, clock: clock}, nil
}

var _ types.ExaminationRepository = (*Repository)(nil)

// GetByID loads an examination, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Examination, error) {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create inserts an examination row. Scores are stripped so grading is the
// only path that sets them.
func (r *Repository) Create(ctx context.Context, e *types.Examination) (*types.Examination, error) {
	if e == nil {
		return nil, errors.New("examination: payload required")
	}
	rec := fromDomain(*e)
	rec.Score = nil
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = string(types.ExamStatusScheduled)
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// Update rewrites an examination row.
func (r *Repository) Update(ctx context.Context, e *types.Examination) (*types.Examination, error) {
	if e == nil || e.ID == uuid.Nil {
		return nil, errors.New("examination: id required")
	}
	rec := fromDomain(*e)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// ListByTraining returns every examination tied to the training.
func (r *Repository) ListByTraining(ctx context.Context, trainingID uuid.UUID) ([]types.Examination, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("training_id = ?", trainingID).OrderExpr("exam_date ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Examination, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}
