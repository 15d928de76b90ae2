package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
)

const (
	defaultInventoryLimit = 50
	maxInventoryLimit     = 200
)

// PersonnelInventoryQuery wraps the personnel listing and normalizes filters
// for admin dashboards.
type PersonnelInventoryQuery struct {
	repo   types.PersonRepository
	logger types.Logger
	guard  guard.Guard
}

// NewPersonnelInventoryQuery constructs the query helper.
func NewPersonnelInventoryQuery(repo types.PersonRepository, logger types.Logger, g guard.Guard) *PersonnelInventoryQuery {
	return &PersonnelInventoryQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeGuard(g),
	}
}

var _ gocommand.Querier[types.PersonnelFilter, types.PersonnelPage] = (*PersonnelInventoryQuery)(nil)

// Query delegates to the configured repository after normalizing filters.
func (q *PersonnelInventoryQuery) Query(ctx context.Context, filter types.PersonnelFilter) (types.PersonnelPage, error) {
	if q.repo == nil {
		return types.PersonnelPage{}, types.ErrMissingPersonRepository
	}
	if err := filter.Validate(); err != nil {
		return types.PersonnelPage{}, err
	}
	if _, err := q.guard.RequireAuthenticated(ctx, filter.Actor); err != nil {
		return types.PersonnelPage{}, err
	}
	normalized := normalizeInventoryFilter(filter)
	return q.repo.ListPersonnel(ctx, normalized)
}

func normalizeInventoryFilter(filter types.PersonnelFilter) types.PersonnelFilter {
	out := filter
	if out.Pagination.Limit <= 0 {
		out.Pagination.Limit = defaultInventoryLimit
	}
	if out.Pagination.Limit > maxInventoryLimit {
		out.Pagination.Limit = maxInventoryLimit
	}
	if out.Pagination.Offset < 0 {
		out.Pagination.Offset = 0
	}
	return out
}
