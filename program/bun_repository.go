package program

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

// RepositoryConfig wires the Bun-backed program repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.ProgramRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
}

// NewRepository constructs the default program repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("program: db or repository required")
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

var _ types.ProgramRepository = (*Repository)(nil)

// total_hours is generated by the store, so writes must never mention it.
func skipGeneratedOnInsert(q *bun.InsertQuery) *bun.InsertQuery {
	return q.ExcludeColumn("total_hours")
}

func skipGeneratedOnUpdate(q *bun.UpdateQuery) *bun.UpdateQuery {
	return q.ExcludeColumn("total_hours")
}

// GetByID loads a program, nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.TrainingProgram, error) {
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetByCode resolves a program by its uppercased code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*types.TrainingProgram, error) {
	code = NormalizeCode(code)
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

// Create inserts a program row. Codes are uppercased on write; total hours
// are computed by the store.
func (r *Repository) Create(ctx context.Context, p *types.TrainingProgram) (*types.TrainingProgram, error) {
	if p == nil {
		return nil, errors.New("program: payload required")
	}
	rec := fromDomain(*p)
	rec.Code = NormalizeCode(rec.Code)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	created, err := r.store.Create(ctx, rec, skipGeneratedOnInsert)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, created.ID)
}

// Update rewrites a program row.
func (r *Repository) Update(ctx context.Context, p *types.TrainingProgram) (*types.TrainingProgram, error) {
	if p == nil || p.ID == uuid.Nil {
		return nil, errors.New("program: id required")
	}
	rec := fromDomain(*p)
	rec.Code = NormalizeCode(rec.Code)
	rec.UpdatedAt = r.clock.Now()
	if _, err := r.store.Update(ctx, rec, skipGeneratedOnUpdate); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

// Delete removes a program row. Deletion guards run in the command layer.
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

// List returns a filtered program page.
func (r *Repository) List(ctx context.Context, filter types.ProgramFilter) (types.ProgramPage, error) {
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

	rows, total, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
			pattern := "%" + strings.ToLower(keyword) + "%"
			q = q.Where("lower(title) LIKE ? OR lower(code) LIKE ?", pattern, pattern)
		}
		if filter.JobCategoryID != uuid.Nil {
			q = q.Where("job_category_id = ?", filter.JobCategoryID)
		}
		if filter.OnlyActive {
			q = q.Where("is_active = ?", true)
		}
		return q.OrderExpr("code ASC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return types.ProgramPage{}, err
	}

	programs := make([]types.TrainingProgram, 0, len(rows))
	for _, row := range rows {
		programs = append(programs, *toDomain(row))
	}
	next := offset + len(programs)
	return types.ProgramPage{
		Programs:   programs,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}, nil
}

// ExistsForCategory is the bounded probe used by the category deletion guard.
func (r *Repository) ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("job_category_id = ?", categoryID).Limit(1)
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// NormalizeCode uppercases and trims a program code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
