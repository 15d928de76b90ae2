package training

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed training repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.TrainingRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default training repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("training: db or repository required")
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

var _ types.TrainingRepository = (*Repository)(nil)

// GetByID loads a training, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Training, error) {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create inserts a training row.
func (r *Repository) Create(ctx context.Context, t *types.Training) (*types.Training, error) {
	if t == nil {
		return nil, errors.New("training: payload required")
	}
	rec := fromDomain(*t)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = string(types.TrainingStatusScheduled)
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

// Update rewrites a training row.
func (r *Repository) Update(ctx context.Context, t *types.Training) (*types.Training, error) {
	if t == nil || t.ID == uuid.Nil {
		return nil, errors.New("training: id required")
	}
	rec := fromDomain(*t)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// Delete removes a training row. Deletion guards run in the command layer.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil
		}
		return err
	}
	return r.store.Delete(ctx, rec)
}

// ListByTrainee returns every enrollment held by the trainee.
func (r *Repository) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]types.Training, error) {
	return r.list(ctx, "trainee_id", traineeID)
}

// ListByProgram returns every enrollment for the program.
func (r *Repository) ListByProgram(ctx context.Context, programID uuid.UUID) ([]types.Training, error) {
	return r.list(ctx, "training_program_id", programID)
}

// ExistsForAirport is the bounded probe used by the airport deletion guard.
func (r *Repository) ExistsForAirport(ctx context.Context, airportID uuid.UUID) (bool, error) {
	return r.exists(ctx, "airport_id", airportID)
}

// ExistsForProgram is the bounded probe used by the program deletion guard.
func (r *Repository) ExistsForProgram(ctx context.Context, programID uuid.UUID) (bool, error) {
	return r.exists(ctx, "training_program_id", programID)
}

func (r *Repository) exists(ctx context.Context, column string, id uuid.UUID) (bool, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(column+" = ?", id).Limit(1)
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *Repository) list(ctx context.Context, column string, id uuid.UUID) ([]types.Training, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(column+" = ?", id).OrderExpr("start_date DESC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Training, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}
