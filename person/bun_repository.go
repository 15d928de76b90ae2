package person

import (
	"context"
	"errors"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// RepositoryConfig wires the Bun-backed personnel repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type personStore interface {
	repository.Repository[*Record]
}

// Repository implements types.PersonRepository using Bun.
type Repository struct {
	personStore
	clock types.Clock
	db    *bun.DB
	// cacheSvc is set when this constructor wrapped the store itself; the raw
	// UPDATE paths flush it so cached reads never outlive a bypassing write.
	cacheSvc cache.CacheService
}

// NewRepository constructs the default personnel repository. The listing
// cache option wraps the store so reads are served from cache and every write
// through the repository invalidates stale listings.
func NewRepository(cfg RepositoryConfig, options ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("person: db or repository required")
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

	opts := applyRepositoryOptions(options)
	var cacheSvc cache.CacheService
	if opts.CacheEnabled {
		if _, already := repo.(*repositorycache.CachedRepository[*Record]); !already {
			cacheCfg := cache.DefaultConfig()
			if opts.CacheConfig != nil {
				cacheCfg = *opts.CacheConfig
			}
			svc, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, svc, cache.NewDefaultKeySerializer())
			cacheSvc = svc
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	db := cfg.DB
	if db == nil {
		if withDB, ok := repo.(interface{ DB() *bun.DB }); ok {
			db = withDB.DB()
		}
	}

	return &Repository{
		personStore: repo,
		clock:       clock,
		db:          db,
		cacheSvc:    cacheSvc,
	}, nil
}

// invalidateCache drops every cached entry after a statement that writes
// around the cached store. The service instance is private to this repository,
// so a full flush only evicts personnel reads.
func (r *Repository) invalidateCache(ctx context.Context) {
	if r.cacheSvc == nil {
		return
	}
	_ = r.cacheSvc.DeleteByPrefix(ctx, "")
}

var _ types.PersonRepository = (*Repository)(nil)

// GetByID loads a personnel record, returning nil when none matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Person, error) {
	if id == uuid.Nil {
		return nil, types.ErrPersonIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetByEmail resolves a record by normalized email, nil when unknown.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*types.Person, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}
	rec, err := r.Get(ctx, repository.SelectBy("email", "=", normalized))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetPendingByEmail returns the pending-invitation record for the email.
func (r *Repository) GetPendingByEmail(ctx context.Context, email string) (*types.Person, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("email = ?", normalized).
			Where("needs_auth_setup = ?", true).
			Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomain(rows[0]), nil
}

// GetByQrToken resolves the person owning the current QR token.
func (r *Repository) GetByQrToken(ctx context.Context, token string) (*types.Person, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("qr_code_token = ?", token).Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomain(rows[0]), nil
}

// Create inserts a personnel record. Email uniqueness violations surface as
// mapped conflict errors from the driver.
func (r *Repository) Create(ctx context.Context, p *types.Person) (*types.Person, error) {
	if p == nil {
		return nil, errors.New("person: payload required")
	}
	rec := fromDomain(*p)
	rec.Email = NormalizeEmail(rec.Email)
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	created, err := r.personStore.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// Update rewrites a personnel record in place.
func (r *Repository) Update(ctx context.Context, p *types.Person) (*types.Person, error) {
	if p == nil || p.ID == uuid.Nil {
		return nil, types.ErrPersonIDRequired
	}
	rec := fromDomain(*p)
	rec.Email = NormalizeEmail(rec.Email)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.personStore.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// LinkAccount rewrites the pending row so its id becomes the identity account
// id, it turns active, and the invitation token is cleared. The update is
// conditional on the row still being pending, which makes re-runs a no-op.
func (r *Repository) LinkAccount(ctx context.Context, pendingID uuid.UUID, link types.AccountLink) (*types.Person, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("person: db required for account linking")
	}
	if pendingID == uuid.Nil || link.AccountID == uuid.Nil {
		return nil, types.ErrPersonIDRequired
	}
	linkedAt := link.LinkedAt
	if linkedAt.IsZero() {
		linkedAt = r.clock.Now()
	}
	res, err := r.db.NewUpdate().Model((*Record)(nil)).
		Set("id = ?", link.AccountID).
		Set("is_active = ?", true).
		Set("needs_auth_setup = ?", false).
		Set("invitation_token = NULL").
		Set("auth_user_linked_at = ?", linkedAt).
		Set("updated_at = ?", r.clock.Now()).
		Where("id = ?", pendingID).
		Where("needs_auth_setup = ?", true).
		Exec(ctx)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return nil, nil
	}
	r.invalidateCache(ctx)
	return r.GetByID(ctx, link.AccountID)
}

// RotateQrToken overwrites the QR token and resets last-accessed in a single
// update so the previous token stops resolving immediately.
func (r *Repository) RotateQrToken(ctx context.Context, personID uuid.UUID, token string, rotatedAt time.Time) (*types.Person, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("person: db required for qr rotation")
	}
	if personID == uuid.Nil {
		return nil, types.ErrPersonIDRequired
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("person: qr token required")
	}
	if rotatedAt.IsZero() {
		rotatedAt = r.clock.Now()
	}
	res, err := r.db.NewUpdate().Model((*Record)(nil)).
		Set("qr_code_token = ?", token).
		Set("qr_code_last_accessed = NULL").
		Set("updated_at = ?", rotatedAt).
		Where("id = ?", personID).
		Exec(ctx)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, nil
	}
	r.invalidateCache(ctx)
	return r.GetByID(ctx, personID)
}

// TouchQrAccess stamps the last public read through the QR token.
func (r *Repository) TouchQrAccess(ctx context.Context, personID uuid.UUID, accessedAt time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("person: db required for qr access stamping")
	}
	if personID == uuid.Nil {
		return types.ErrPersonIDRequired
	}
	if accessedAt.IsZero() {
		accessedAt = r.clock.Now()
	}
	_, err := r.db.NewUpdate().Model((*Record)(nil)).
		Set("qr_code_last_accessed = ?", accessedAt).
		Where("id = ?", personID).
		Exec(ctx)
	if err != nil {
		return repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	r.invalidateCache(ctx)
	return nil
}

// Delete removes a personnel record by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return types.ErrPersonIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil
		}
		return err
	}
	return r.personStore.Delete(ctx, rec)
}

// ListPersonnel returns a filtered page of personnel records.
func (r *Repository) ListPersonnel(ctx context.Context, filter types.PersonnelFilter) (types.PersonnelPage, error) {
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

	rows, total, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
			pattern := "%" + strings.ToLower(keyword) + "%"
			q = q.Where("lower(full_name) LIKE ? OR lower(email) LIKE ?", pattern, pattern)
		}
		if filter.Role != "" {
			q = q.Where("role = ?", string(filter.Role))
		}
		if filter.JobCategoryID != uuid.Nil {
			q = q.Where("job_category_id = ?", filter.JobCategoryID)
		}
		if filter.OnlyActive {
			q = q.Where("is_active = ?", true)
		}
		if filter.OnlyPending {
			q = q.Where("needs_auth_setup = ?", true)
		}
		return q.OrderExpr("full_name ASC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return types.PersonnelPage{}, err
	}

	people := make([]types.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, *toDomain(row))
	}
	next := offset + len(people)
	return types.PersonnelPage{
		People:     people,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}, nil
}

// CountByCategory runs the personnel-by-category aggregate.
func (r *Repository) CountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("person: db required for aggregates")
	}
	var rows []struct {
		JobCategoryID   uuid.UUID `bun:"job_category_id"`
		JobCategoryCode string    `bun:"code"`
		Count           int       `bun:"total"`
	}
	err := r.db.NewSelect().
		TableExpr("profiles AS p").
		ColumnExpr("p.job_category_id").
		ColumnExpr("c.code").
		ColumnExpr("count(*) AS total").
		Join("JOIN job_categories AS c ON c.id = p.job_category_id").
		Where("p.job_category_id IS NOT NULL").
		GroupExpr("p.job_category_id, c.code").
		OrderExpr("total DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	out := make([]types.CategoryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.CategoryCount{
			JobCategoryID:   row.JobCategoryID,
			JobCategoryCode: row.JobCategoryCode,
			Count:           row.Count,
		})
	}
	return out, nil
}

// ExistsForCategory is the bounded probe used by the job category deletion
// guard.
func (r *Repository) ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("job_category_id = ?", categoryID).Limit(1)
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// NormalizeEmail lowercases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
