package category

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed job category repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.CategoryRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default category repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("category: db or repository required")
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

var _ types.CategoryRepository = (*Repository)(nil)

// GetByID loads a category, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.JobCategory, error) {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetByCode resolves a category by its display key.
func (r *Repository) GetByCode(ctx context.Context, code string) (*types.JobCategory, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	rec, err := r.store.Get(ctx, repository.SelectBy("code", "=", code))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create inserts a category row.
func (r *Repository) Create(ctx context.Context, c *types.JobCategory) (*types.JobCategory, error) {
	if c == nil {
		return nil, errors.New("category: payload required")
	}
	rec := fromDomain(*c)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
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

// Update rewrites a category row.
func (r *Repository) Update(ctx context.Context, c *types.JobCategory) (*types.JobCategory, error) {
	if c == nil || c.ID == uuid.Nil {
		return nil, errors.New("category: id required")
	}
	rec := fromDomain(*c)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// Delete removes a category row. Deletion guards run in the command layer.
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

// List returns every category ordered by code.
func (r *Repository) List(ctx context.Context) ([]types.JobCategory, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("code ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.JobCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}
