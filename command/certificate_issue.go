package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// CertificateIssueInput carries a certificate issuance for a completed
// training. ExpiryDate falls back to IssueDate plus the program's validity
// window when omitted.
type CertificateIssueInput struct {
	TrainingID        uuid.UUID
	CertificateNumber string
	IssueDate         time.Time
	ExpiryDate        time.Time
	Actor             types.ActorRef
	Result            *CertificateIssueResult
}

// Type implements gocommand.Message.
func (CertificateIssueInput) Type() string {
	return "command.certificate.issue"
}

// Validate implements gocommand.Message.
func (input CertificateIssueInput) Validate() error {
	switch {
	case input.TrainingID == uuid.Nil:
		return ErrTrainingIDRequired
	case strings.TrimSpace(input.CertificateNumber) == "":
		return ErrCertificateNumberRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// CertificateIssueResult exposes the issued certificate.
type CertificateIssueResult struct {
	Certificate *types.Certificate
}

// CertificateIssueCommand issues certificates against completed trainings.
// The certificate number is user-supplied and unique; duplicates surface as a
// distinct conflict.
type CertificateIssueCommand struct {
	certificates types.CertificateRepository
	trainings    types.TrainingRepository
	programs     types.ProgramRepository
	clock        types.Clock
	logger       types.Logger
	guard        guard.Guard
}

// CertificateIssueCommandConfig holds dependencies for issuance.
type CertificateIssueCommandConfig struct {
	Certificates types.CertificateRepository
	Trainings    types.TrainingRepository
	Programs     types.ProgramRepository
	Clock        types.Clock
	Logger       types.Logger
	Guard        guard.Guard
}

// NewCertificateIssueCommand constructs the issuance handler.
func NewCertificateIssueCommand(cfg CertificateIssueCommandConfig) *CertificateIssueCommand {
	return &CertificateIssueCommand{
		certificates: cfg.Certificates,
		trainings:    cfg.Trainings,
		programs:     cfg.Programs,
		clock:        safeClock(cfg.Clock),
		logger:       safeLogger(cfg.Logger),
		guard:        safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[CertificateIssueInput] = (*CertificateIssueCommand)(nil)

// Execute resolves the training, derives dates from the program validity
// window, and writes the certificate.
func (c *CertificateIssueCommand) Execute(ctx context.Context, input CertificateIssueInput) error {
	if c.certificates == nil {
		return types.ErrMissingCertificateRepository
	}
	if c.trainings == nil {
		return types.ErrMissingTrainingRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	training, err := c.trainings.GetByID(ctx, input.TrainingID)
	if err != nil {
		return types.DependencyFailure(err, "training store")
	}
	if training == nil {
		return ErrTrainingNotFound
	}

	number := strings.TrimSpace(input.CertificateNumber)
	if existing, err := c.certificates.GetByNumber(ctx, number); err != nil {
		return types.DependencyFailure(err, "certificate store")
	} else if existing != nil {
		return certificateNumberConflict(number)
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = now(c.clock)
	}
	expiryDate := input.ExpiryDate
	if expiryDate.IsZero() {
		months := defaultProgramValidityMonths
		if c.programs != nil {
			program, err := c.programs.GetByID(ctx, training.TrainingProgramID)
			if err != nil {
				return types.DependencyFailure(err, "program store")
			}
			if program != nil && program.ValidityMonths > 0 {
				months = program.ValidityMonths
			}
		}
		expiryDate = issueDate.AddDate(0, months, 0)
	}

	cert := &types.Certificate{
		TrainingID:        training.ID,
		TraineeID:         training.TraineeID,
		AirportID:         training.AirportID,
		CertificateNumber: number,
		IssueDate:         issueDate,
		ExpiryDate:        expiryDate,
		Status:            types.CertificateStatusValid,
	}
	created, err := c.certificates.Create(ctx, cert)
	if err != nil {
		if types.IsConflict(err) {
			return certificateNumberConflict(number)
		}
		return types.DependencyFailure(err, "certificate store")
	}

	if input.Result != nil {
		*input.Result = CertificateIssueResult{Certificate: created}
	}
	return nil
}

func certificateNumberConflict(number string) error {
	return types.Conflict(
		fmt.Sprintf("go-trainops: certificate number %s is already used", number),
		types.TextCodeCertNumberTaken,
	)
}
