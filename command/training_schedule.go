package command

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// TrainingScheduleInput carries a new enrollment for a training program.
type TrainingScheduleInput struct {
	TrainingProgramID uuid.UUID
	TraineeID         uuid.UUID
	InstructorID      uuid.UUID
	AirportID         uuid.UUID
	StartDate         time.Time
	Actor             types.ActorRef
	Result            *TrainingScheduleResult
}

// Type implements gocommand.Message.
func (TrainingScheduleInput) Type() string {
	return "command.training.schedule"
}

// Validate implements gocommand.Message.
func (input TrainingScheduleInput) Validate() error {
	switch {
	case input.TrainingProgramID == uuid.Nil:
		return ErrTrainingProgramIDRequired
	case input.TraineeID == uuid.Nil:
		return ErrTraineeIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// TrainingScheduleResult exposes the created enrollment.
type TrainingScheduleResult struct {
	Training *types.Training
}

// TrainingScheduleCommand enrolls a trainee into a program session.
type TrainingScheduleCommand struct {
	trainings types.TrainingRepository
	programs  types.ProgramRepository
	people    types.PersonRepository
	clock     types.Clock
	logger    types.Logger
	guard     guard.Guard
}

// TrainingScheduleCommandConfig holds dependencies for scheduling.
type TrainingScheduleCommandConfig struct {
	Trainings types.TrainingRepository
	Programs  types.ProgramRepository
	People    types.PersonRepository
	Clock     types.Clock
	Logger    types.Logger
	Guard     guard.Guard
}

// NewTrainingScheduleCommand constructs the scheduling handler.
func NewTrainingScheduleCommand(cfg TrainingScheduleCommandConfig) *TrainingScheduleCommand {
	return &TrainingScheduleCommand{
		trainings: cfg.Trainings,
		programs:  cfg.Programs,
		people:    cfg.People,
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
		guard:     safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[TrainingScheduleInput] = (*TrainingScheduleCommand)(nil)

// Execute verifies the program and trainee exist, then records the session in
// scheduled state.
func (c *TrainingScheduleCommand) Execute(ctx context.Context, input TrainingScheduleInput) error {
	if c.trainings == nil {
		return types.ErrMissingTrainingRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	if c.programs != nil {
		program, err := c.programs.GetByID(ctx, input.TrainingProgramID)
		if err != nil {
			return types.DependencyFailure(err, "program store")
		}
		if program == nil {
			return ErrProgramNotFound
		}
	}
	if c.people != nil {
		trainee, err := c.people.GetByID(ctx, input.TraineeID)
		if err != nil {
			return types.DependencyFailure(err, "personnel store")
		}
		if trainee == nil {
			return ErrPersonNotFound
		}
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now(c.clock)
	}
	training := &types.Training{
		TrainingProgramID: input.TrainingProgramID,
		TraineeID:         input.TraineeID,
		StartDate:         startDate,
		Status:            types.TrainingStatusScheduled,
	}
	if input.InstructorID != uuid.Nil {
		id := input.InstructorID
		training.InstructorID = &id
	}
	if input.AirportID != uuid.Nil {
		id := input.AirportID
		training.AirportID = &id
	}

	created, err := c.trainings.Create(ctx, training)
	if err != nil {
		return types.DependencyFailure(err, "training store")
	}

	if input.Result != nil {
		*input.Result = TrainingScheduleResult{Training: created}
	}
	return nil
}
