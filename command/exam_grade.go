package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// ExamGradeInput carries a grading decision for a scheduled examination.
type ExamGradeInput struct {
	ExamID uuid.UUID
	Status types.ExamStatus
	Score  *float64
	Notes  string
	Actor  types.ActorRef
	Result *ExamGradeResult
}

// Type implements gocommand.Message.
func (ExamGradeInput) Type() string {
	return "command.examination.grade"
}

// Validate implements gocommand.Message.
func (input ExamGradeInput) Validate() error {
	switch {
	case input.ExamID == uuid.Nil:
		return ErrExamIDRequired
	case input.Status != types.ExamStatusPassed && input.Status != types.ExamStatusFailed:
		return ErrExamOutcomeRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// ExamGradeResult exposes the graded examination.
type ExamGradeResult struct {
	Examination *types.Examination
}

// ExamGradeCommand sets the outcome of an examination. Grading is the only
// path that writes a score.
type ExamGradeCommand struct {
	exams  types.ExaminationRepository
	logger types.Logger
	guard  guard.Guard
}

// ExamGradeCommandConfig holds dependencies for exam grading.
type ExamGradeCommandConfig struct {
	Examinations types.ExaminationRepository
	Logger       types.Logger
	Guard        guard.Guard
}

// NewExamGradeCommand constructs the grading handler.
func NewExamGradeCommand(cfg ExamGradeCommandConfig) *ExamGradeCommand {
	return &ExamGradeCommand{
		exams:  cfg.Examinations,
		logger: safeLogger(cfg.Logger),
		guard:  safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ExamGradeInput] = (*ExamGradeCommand)(nil)

// Execute records the pass/fail outcome and the score on the examination.
func (c *ExamGradeCommand) Execute(ctx context.Context, input ExamGradeInput) error {
	if c.exams == nil {
		return types.ErrMissingExaminationRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAuthenticated(ctx, input.Actor); err != nil {
		return err
	}

	exam, err := c.exams.GetByID(ctx, input.ExamID)
	if err != nil {
		return types.DependencyFailure(err, "examination store")
	}
	if exam == nil {
		return ErrExamNotFound
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		return types.InvalidInput("score", "must be between 0 and 100")
	}

	exam.Status = input.Status
	exam.Score = input.Score
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		exam.Notes = notes
	}

	updated, err := c.exams.Update(ctx, exam)
	if err != nil {
		return types.DependencyFailure(err, "examination store")
	}

	if input.Result != nil {
		*input.Result = ExamGradeResult{Examination: updated}
	}
	return nil
}
