package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// AuditActionPersonDeactivated tags deactivation audit entries.
const AuditActionPersonDeactivated = "PERSON_DEACTIVATED"

// PersonDeactivateInput identifies the person to deactivate.
type PersonDeactivateInput struct {
	PersonID uuid.UUID
	Actor    types.ActorRef
}

// Type implements gocommand.Message.
func (PersonDeactivateInput) Type() string {
	return "command.person.deactivate"
}

// Validate implements gocommand.Message.
func (input PersonDeactivateInput) Validate() error {
	switch {
	case input.PersonID == uuid.Nil:
		return ErrPersonIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// PersonDeactivateCommand flips an active person to inactive. Pending records
// are left alone; deactivating an invitation means deleting it instead.
type PersonDeactivateCommand struct {
	people types.PersonRepository
	clock  types.Clock
	sink   types.AuditSink
	hooks  types.Hooks
	logger types.Logger
	guard  guard.Guard
}

// PersonDeactivateCommandConfig holds dependencies for deactivation.
type PersonDeactivateCommandConfig struct {
	People types.PersonRepository
	Clock  types.Clock
	Audit  types.AuditSink
	Hooks  types.Hooks
	Logger types.Logger
	Guard  guard.Guard
}

// NewPersonDeactivateCommand constructs the deactivation handler.
func NewPersonDeactivateCommand(cfg PersonDeactivateCommandConfig) *PersonDeactivateCommand {
	return &PersonDeactivateCommand{
		people: cfg.People,
		clock:  safeClock(cfg.Clock),
		sink:   safeAuditSink(cfg.Audit),
		hooks:  safeHooks(cfg.Hooks),
		logger: safeLogger(cfg.Logger),
		guard:  safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[PersonDeactivateInput] = (*PersonDeactivateCommand)(nil)

// Execute marks the person inactive and appends the audit entry.
func (c *PersonDeactivateCommand) Execute(ctx context.Context, input PersonDeactivateInput) error {
	if c.people == nil {
		return types.ErrMissingPersonRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	person, err := c.people.GetByID(ctx, input.PersonID)
	if err != nil {
		return types.DependencyFailure(err, "personnel store")
	}
	if person == nil {
		return ErrPersonNotFound
	}
	if person.Pending() {
		return types.InvalidInput("person_id", "pending invitations are deleted, not deactivated")
	}
	if !person.IsActive {
		return nil
	}

	person.IsActive = false
	updated, err := c.people.Update(ctx, person)
	if err != nil {
		return types.DependencyFailure(err, "personnel store")
	}

	occurredAt := now(c.clock)
	record := types.AuditRecord{
		ActorID:    input.Actor.ID,
		Action:     AuditActionPersonDeactivated,
		TableName:  "profiles",
		RecordID:   updated.ID.String(),
		NewData:    map[string]any{"is_active": false},
		OccurredAt: occurredAt,
	}
	logAudit(ctx, c.sink, record)
	emitAuditHook(ctx, c.hooks, record)

	return nil
}
