package assignment

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed assignment repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.AssignmentRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default assignment repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("assignment: db or repository required")
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

var _ types.AssignmentRepository = (*Repository)(nil)

// Create inserts an employee/airport assignment. The airport foreign key is
// enforced by the store; violation errors bubble up mapped so callers can
// treat the write as best-effort.
func (r *Repository) Create(ctx context.Context, a types.Assignment) (*types.Assignment, error) {
	if a.EmployeeID == uuid.Nil || a.AirportID == uuid.Nil {
		return nil, errors.New("assignment: employee and airport required")
	}
	rec := fromDomain(a)
	rec.ID = uuid.New()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.clock.Now()
	}
	if rec.StartDate.IsZero() {
		rec.StartDate = r.clock.Now()
	}
	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// ListByEmployee returns every assignment held by the employee.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]types.Assignment, error) {
	return r.list(ctx, "employee_id", employeeID)
}

// ListByAirport returns every assignment referencing the airport.
func (r *Repository) ListByAirport(ctx context.Context, airportID uuid.UUID) ([]types.Assignment, error) {
	return r.list(ctx, "airport_id", airportID)
}

// ExistsForAirport is the bounded probe used by the airport deletion guard.
func (r *Repository) ExistsForAirport(ctx context.Context, airportID uuid.UUID) (bool, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("airport_id = ?", airportID).Limit(1)
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Delete removes the assignment joining the employee and airport.
func (r *Repository) Delete(ctx context.Context, employeeID, airportID uuid.UUID) error {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("employee_id = ?", employeeID).
			Where("airport_id = ?", airportID).
			Limit(1)
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.store.Delete(ctx, rows[0])
}

func (r *Repository) list(ctx context.Context, column string, id uuid.UUID) ([]types.Assignment, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(column+" = ?", id).OrderExpr("created_at ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}
