package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// CategoryStatsFilter requests the personnel-by-category aggregate.
type CategoryStatsFilter struct {
	Actor types.ActorRef
}

// Type implements gocommand.Message.
func (CategoryStatsFilter) Type() string {
	return "query.personnel.category_stats"
}

// Validate implements gocommand.Message.
func (filter CategoryStatsFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return types.ErrActorRequired
	}
	return nil
}

// CategoryStatsQuery exposes the stored personnel-by-job-category aggregate.
type CategoryStatsQuery struct {
	repo   types.PersonRepository
	logger types.Logger
	guard  guard.Guard
}

// NewCategoryStatsQuery constructs the aggregate query helper.
func NewCategoryStatsQuery(repo types.PersonRepository, logger types.Logger, g guard.Guard) *CategoryStatsQuery {
	return &CategoryStatsQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeGuard(g),
	}
}

var _ gocommand.Querier[CategoryStatsFilter, []types.CategoryCount] = (*CategoryStatsQuery)(nil)

// Query runs the aggregate for authenticated actors.
func (q *CategoryStatsQuery) Query(ctx context.Context, filter CategoryStatsFilter) ([]types.CategoryCount, error) {
	if q.repo == nil {
		return nil, types.ErrMissingPersonRepository
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if _, err := q.guard.RequireAuthenticated(ctx, filter.Actor); err != nil {
		return nil, err
	}
	return q.repo.CountByCategory(ctx)
}
