package airport

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// RepositoryConfig wires the Bun-backed airport repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type airportStore interface {
	repository.Repository[*Record]
}

// Repository implements types.AirportRepository using Bun.
type Repository struct {
	airportStore
	clock types.Clock
}

// NewRepository constructs the default airport repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("airport: db or repository required")
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
	return &Repository{airportStore: repo, clock: clock}, nil
}

var _ types.AirportRepository = (*Repository)(nil)

// GetByID loads a facility, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Airport, error) {
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create inserts a facility row.
func (r *Repository) Create(ctx context.Context, a *types.Airport) (*types.Airport, error) {
	if a == nil {
		return nil, errors.New("airport: payload required")
	}
	rec := fromDomain(*a)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	created, err := r.airportStore.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// Update rewrites a facility row.
func (r *Repository) Update(ctx context.Context, a *types.Airport) (*types.Airport, error) {
	if a == nil || a.ID == uuid.Nil {
		return nil, errors.New("airport: id required")
	}
	rec := fromDomain(*a)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.airportStore.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// Delete removes a facility row by id. Callers run the dependency guard
// first; the store's foreign keys remain the backstop.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil
		}
		return err
	}
	return r.airportStore.Delete(ctx, rec)
}

// List returns a filtered facility page.
func (r *Repository) List(ctx context.Context, filter types.AirportFilter) (types.AirportPage, error) {
	limit := filter.Pagination.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Pagination.Offset
	if offset < 0 {
		offset = 0
	}

	rows, total, err := r.airportStore.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
			pattern := "%" + strings.ToLower(keyword) + "%"
			q = q.Where("lower(name) LIKE ? OR lower(code) LIKE ?", pattern, pattern)
		}
		if filter.Country != "" {
			q = q.Where("country = ?", filter.Country)
		}
		if filter.OnlyActive {
			q = q.Where("is_active = ?", true)
		}
		return q.OrderExpr("name ASC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return types.AirportPage{}, err
	}

	airports := make([]types.Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, *toDomain(row))
	}
	next := offset + len(airports)
	return types.AirportPage{
		Airports:   airports,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}, nil
}
