package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
)

// AuditTrailQuery exposes the audit feed to administrators.
type AuditTrailQuery struct {
	repo   types.AuditRepository
	logger types.Logger
	guard  guard.Guard
}

// NewAuditTrailQuery constructs the audit feed helper.
func NewAuditTrailQuery(repo types.AuditRepository, logger types.Logger, g guard.Guard) *AuditTrailQuery {
	return &AuditTrailQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeGuard(g),
	}
}

var _ gocommand.Querier[types.AuditFilter, types.AuditPage] = (*AuditTrailQuery)(nil)

// Query returns the filtered audit page. Only administrators may read the
// trail since entries reference token rotations.
func (q *AuditTrailQuery) Query(ctx context.Context, filter types.AuditFilter) (types.AuditPage, error) {
	if q.repo == nil {
		return types.AuditPage{}, types.ErrMissingAuditSink
	}
	if err := filter.Validate(); err != nil {
		return types.AuditPage{}, err
	}
	if _, err := q.guard.RequireAdmin(ctx, filter.Actor); err != nil {
		return types.AuditPage{}, err
	}
	return q.repo.ListAudit(ctx, filter)
}
