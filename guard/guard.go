package guard

import (
	"context"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// Guard enforces actor authorization for commands and queries. It is
// intentionally small so callers can swap custom guards in tests if needed.
type Guard interface {
	// RequireAdmin loads the actor's own personnel record and verifies the
	// admin role.
	RequireAdmin(ctx context.Context, actor types.ActorRef) (*types.Person, error)
	// RequireAuthenticated only verifies the actor resolves to a known,
	// active personnel record.
	RequireAuthenticated(ctx context.Context, actor types.ActorRef) (*types.Person, error)
}

type guard struct {
	people types.PersonRepository
}

// NewGuard builds a Guard from the personnel repository. A nil repository
// yields a guard that never blocks, which tests rely on.
func NewGuard(people types.PersonRepository) Guard {
	return guard{people: people}
}

// Ensure returns a non-nil guard so command/query constructors can accept nil
// guards when tests instantiate them directly.
func Ensure(g Guard) Guard {
	if g == nil {
		return guard{}
	}
	return g
}

// NopGuard returns a guard that never blocks.
func NopGuard() Guard {
	return guard{}
}

func (g guard) RequireAdmin(ctx context.Context, actor types.ActorRef) (*types.Person, error) {
	person, err := g.resolve(ctx, actor)
	if err != nil || person == nil {
		return person, err
	}
	if person.Role != types.PersonRoleAdmin {
		return nil, types.Forbidden("go-trainops: administrator role required")
	}
	return person, nil
}

func (g guard) RequireAuthenticated(ctx context.Context, actor types.ActorRef) (*types.Person, error) {
	return g.resolve(ctx, actor)
}

func (g guard) resolve(ctx context.Context, actor types.ActorRef) (*types.Person, error) {
	if g.people == nil {
		return nil, nil
	}
	if actor.ID == uuid.Nil {
		return nil, types.NotAuthenticated()
	}
	person, err := g.people.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, types.DependencyFailure(err, "personnel store")
	}
	if person == nil || !person.IsActive {
		return nil, types.NotAuthenticated()
	}
	return person, nil
}
