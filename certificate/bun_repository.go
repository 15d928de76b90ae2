package certificate

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed certificate repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.CertificateRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default certificate repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("certificate: db or repository required")
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

var _ types.CertificateRepository = (*Repository)(nil)

// GetByID loads a certificate, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Certificate, error) {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetByNumber resolves a certificate by its user-supplied number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*types.Certificate, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, nil
	}
	rec, err := r.store.Get(ctx, repository.SelectBy("certificate_number", "=", number))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create inserts a certificate row.
func (r *Repository) Create(ctx context.Context, c *types.Certificate) (*types.Certificate, error) {
	if c == nil {
		return nil, errors.New("certificate: payload required")
	}
	rec := fromDomain(*c)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = string(types.CertificateStatusValid)
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

// Update rewrites a certificate row.
func (r *Repository) Update(ctx context.Context, c *types.Certificate) (*types.Certificate, error) {
	if c == nil || c.ID == uuid.Nil {
		return nil, errors.New("certificate: id required")
	}
	rec := fromDomain(*c)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// ListByTrainee returns every certificate held by the trainee.
func (r *Repository) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]types.Certificate, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("trainee_id = ?", traineeID).OrderExpr("issue_date DESC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Certificate, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}

// ExistsForAirport is the bounded probe used by the airport deletion guard.
func (r *Repository) ExistsForAirport(ctx context.Context, airportID uuid.UUID) (bool, error) {
	return r.exists(ctx, "airport_id", airportID)
}

// ExistsForTraining is the bounded probe used by the training deletion guard.
func (r *Repository) ExistsForTraining(ctx context.Context, trainingID uuid.UUID) (bool, error) {
	return r.exists(ctx, "training_id", trainingID)
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
