package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/goliatone/go-trainops/refguard"
	"github.com/google/uuid"
)

// TextCodeProgramHasTrainings marks a program deletion blocked by enrollments.
const TextCodeProgramHasTrainings = "PROGRAM_HAS_TRAININGS"

// ProgramDeleteInput identifies the curriculum to remove.
type ProgramDeleteInput struct {
	ProgramID uuid.UUID
	Actor     types.ActorRef
}

// Type implements gocommand.Message.
func (ProgramDeleteInput) Type() string {
	return "command.program.delete"
}

// Validate implements gocommand.Message.
func (input ProgramDeleteInput) Validate() error {
	switch {
	case input.ProgramID == uuid.Nil:
		return ErrProgramIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// ProgramDeleteCommand removes curriculum definitions that no enrollment
// references.
type ProgramDeleteCommand struct {
	programs types.ProgramRepository
	refs     refguard.Guard
	logger   types.Logger
	guard    guard.Guard
}

// ProgramDeleteCommandConfig holds dependencies for guarded program deletion.
type ProgramDeleteCommandConfig struct {
	Programs     types.ProgramRepository
	HasTrainings ExistenceProbe
	Logger       types.Logger
	Guard        guard.Guard
}

// NewProgramDeleteCommand constructs the guarded deletion handler.
func NewProgramDeleteCommand(cfg ProgramDeleteCommandConfig) *ProgramDeleteCommand {
	probes := make([]refguard.Probe, 0, 1)
	if cfg.HasTrainings != nil {
		probes = append(probes, refguard.Probe{
			Label:    "training records",
			TextCode: TextCodeProgramHasTrainings,
			Exists:   cfg.HasTrainings,
		})
	}
	return &ProgramDeleteCommand{
		programs: cfg.Programs,
		refs:     refguard.New("training program", probes...),
		logger:   safeLogger(cfg.Logger),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ProgramDeleteInput] = (*ProgramDeleteCommand)(nil)

// Execute deletes the program once no enrollments reference it.
func (c *ProgramDeleteCommand) Execute(ctx context.Context, input ProgramDeleteInput) error {
	if c.programs == nil {
		return types.ErrMissingProgramRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	if err := c.refs.Check(ctx, input.ProgramID); err != nil {
		return err
	}

	if err := c.programs.Delete(ctx, input.ProgramID); err != nil {
		return types.DependencyFailure(err, "program store")
	}
	c.logger.Info("training program deleted", "program_id", input.ProgramID.String())
	return nil
}
