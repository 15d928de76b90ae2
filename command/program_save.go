package command

import (
	"context"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

const (
	defaultProgramVersion        = "1.0"
	defaultProgramValidityMonths = 24
)

// ProgramSaveInput carries a curriculum create or update. A zero ID means
// create.
type ProgramSaveInput struct {
	Program types.TrainingProgram
	Actor   types.ActorRef
	Result  *ProgramSaveResult
}

// Type implements gocommand.Message.
func (ProgramSaveInput) Type() string {
	return "command.program.save"
}

// Validate implements gocommand.Message.
func (input ProgramSaveInput) Validate() error {
	switch {
	case strings.TrimSpace(input.Program.Title) == "":
		return ErrProgramTitleRequired
	case strings.TrimSpace(input.Program.Code) == "":
		return ErrProgramCodeRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// ProgramSaveResult exposes the stored program, including the store-computed
// total hours.
type ProgramSaveResult struct {
	Program *types.TrainingProgram
}

// ProgramSaveCommand writes curriculum definitions. Codes are uppercased on
// write and duplicates surface as a distinct conflict.
type ProgramSaveCommand struct {
	programs types.ProgramRepository
	logger   types.Logger
	guard    guard.Guard
}

// ProgramSaveCommandConfig holds dependencies for program writes.
type ProgramSaveCommandConfig struct {
	Programs types.ProgramRepository
	Logger   types.Logger
	Guard    guard.Guard
}

// NewProgramSaveCommand constructs the program write handler.
func NewProgramSaveCommand(cfg ProgramSaveCommandConfig) *ProgramSaveCommand {
	return &ProgramSaveCommand{
		programs: cfg.Programs,
		logger:   safeLogger(cfg.Logger),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ProgramSaveInput] = (*ProgramSaveCommand)(nil)

// Execute normalizes the payload and writes it. TotalHours is never written;
// the store derives it from the three hour fields.
func (c *ProgramSaveCommand) Execute(ctx context.Context, input ProgramSaveInput) error {
	if c.programs == nil {
		return types.ErrMissingProgramRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	program := input.Program
	program.Title = strings.TrimSpace(program.Title)
	program.Code = strings.ToUpper(strings.TrimSpace(program.Code))
	if program.Version == "" {
		program.Version = defaultProgramVersion
	}
	if program.ValidityMonths <= 0 {
		program.ValidityMonths = defaultProgramValidityMonths
	}

	if existing, err := c.programs.GetByCode(ctx, program.Code); err != nil {
		return types.DependencyFailure(err, "program store")
	} else if existing != nil && existing.ID != program.ID {
		return programCodeConflict(program.Code)
	}

	var (
		saved *types.TrainingProgram
		err   error
	)
	if program.ID == uuid.Nil {
		saved, err = c.programs.Create(ctx, &program)
	} else {
		saved, err = c.programs.Update(ctx, &program)
	}
	if err != nil {
		if types.IsConflict(err) {
			return programCodeConflict(program.Code)
		}
		return types.DependencyFailure(err, "program store")
	}

	if input.Result != nil {
		*input.Result = ProgramSaveResult{Program: saved}
	}
	return nil
}

func programCodeConflict(code string) error {
	return types.Conflict(
		fmt.Sprintf("go-trainops: program code %s is already used", code),
		types.TextCodeProgramCodeTaken,
	)
}
