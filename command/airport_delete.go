package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/goliatone/go-trainops/refguard"
	"github.com/google/uuid"
)

// Text codes for the airport deletion guard, one per dependency class.
const (
	TextCodeAirportHasEmployees    = "AIRPORT_HAS_EMPLOYEES"
	TextCodeAirportHasTrainings    = "AIRPORT_HAS_TRAININGS"
	TextCodeAirportHasCertificates = "AIRPORT_HAS_CERTIFICATES"
)

// ExistenceProbe is a bounded LIMIT-1 check for rows referencing a parent.
type ExistenceProbe func(ctx context.Context, parentID uuid.UUID) (bool, error)

// AirportDeleteInput identifies the facility to remove.
type AirportDeleteInput struct {
	AirportID uuid.UUID
	Actor     types.ActorRef
}

// Type implements gocommand.Message.
func (AirportDeleteInput) Type() string {
	return "command.airport.delete"
}

// Validate implements gocommand.Message.
func (input AirportDeleteInput) Validate() error {
	switch {
	case input.AirportID == uuid.Nil:
		return ErrAirportIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// AirportDeleteCommand removes a facility once no assignments, trainings, or
// certificates reference it. Checks run in that fixed order; the first
// blocking class wins.
type AirportDeleteCommand struct {
	airports types.AirportRepository
	refs     refguard.Guard
	logger   types.Logger
	guard    guard.Guard
}

// AirportDeleteCommandConfig holds dependencies for guarded facility deletion.
type AirportDeleteCommandConfig struct {
	Airports        types.AirportRepository
	HasAssignments  ExistenceProbe
	HasTrainings    ExistenceProbe
	HasCertificates ExistenceProbe
	Logger          types.Logger
	Guard           guard.Guard
}

// NewAirportDeleteCommand constructs the guarded deletion handler.
func NewAirportDeleteCommand(cfg AirportDeleteCommandConfig) *AirportDeleteCommand {
	probes := make([]refguard.Probe, 0, 3)
	if cfg.HasAssignments != nil {
		probes = append(probes, refguard.Probe{
			Label:    "employees assigned",
			TextCode: TextCodeAirportHasEmployees,
			Exists:   cfg.HasAssignments,
		})
	}
	if cfg.HasTrainings != nil {
		probes = append(probes, refguard.Probe{
			Label:    "training records",
			TextCode: TextCodeAirportHasTrainings,
			Exists:   cfg.HasTrainings,
		})
	}
	if cfg.HasCertificates != nil {
		probes = append(probes, refguard.Probe{
			Label:    "certificates",
			TextCode: TextCodeAirportHasCertificates,
			Exists:   cfg.HasCertificates,
		})
	}
	return &AirportDeleteCommand{
		airports: cfg.Airports,
		refs:     refguard.New("airport", probes...),
		logger:   safeLogger(cfg.Logger),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[AirportDeleteInput] = (*AirportDeleteCommand)(nil)

// Execute runs the reference probes and deletes the facility when all are
// clear.
func (c *AirportDeleteCommand) Execute(ctx context.Context, input AirportDeleteInput) error {
	if c.airports == nil {
		return types.ErrMissingAirportRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	if err := c.refs.Check(ctx, input.AirportID); err != nil {
		return err
	}

	if err := c.airports.Delete(ctx, input.AirportID); err != nil {
		return types.DependencyFailure(err, "airport store")
	}
	c.logger.Info("airport deleted", "airport_id", input.AirportID.String())
	return nil
}
