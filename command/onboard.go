package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// Sentinel "no selection" values submitted by forms. They are normalized into
// absent options at this boundary so the workflow never sees them.
const (
	SentinelNoCategory = "no-category"
	SentinelNoAirport  = "no-airport"
)

// AuditActionPersonInvited tags the onboarding audit entry.
const AuditActionPersonInvited = "PERSON_INVITED"

// PersonOnboardInput carries the data required to pre-provision a person.
type PersonOnboardInput struct {
	Email         string
	FullName      string
	Role          string
	JobCategoryID string
	AirportID     string
	Actor         types.ActorRef
	Result        *PersonOnboardResult
}

// Type implements gocommand.Message.
func (PersonOnboardInput) Type() string {
	return "command.person.onboard"
}

// Validate implements gocommand.Message.
func (input PersonOnboardInput) Validate() error {
	switch {
	case strings.TrimSpace(input.Email) == "":
		return ErrOnboardEmailRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// PersonOnboardResult exposes the created record and the shareable signup
// material. AssignmentError carries the swallowed secondary-effect failure so
// the best-effort contract stays observable.
type PersonOnboardResult struct {
	PersonID        uuid.UUID
	Email           string
	FullName        string
	Role            types.PersonRole
	InvitationToken string
	SignupLink      string
	AssignmentError error
}

// PersonOnboardCommand pre-provisions personnel records ahead of the identity
// account and mints the invitation material.
type PersonOnboardCommand struct {
	people      types.PersonRepository
	assignments types.AssignmentRepository
	linker      *links.Builder
	secureLinks types.SecureLinkManager
	clock       types.Clock
	idGen       types.IDGenerator
	sink        types.AuditSink
	hooks       types.Hooks
	logger      types.Logger
	guard       guard.Guard
	featureGate featuregate.FeatureGate
}

// OnboardCommandConfig holds dependencies for the onboarding flow.
type OnboardCommandConfig struct {
	People      types.PersonRepository
	Assignments types.AssignmentRepository
	Links       *links.Builder
	// SecureLinks optionally signs invitation links so hosts can verify them
	// without a database round trip.
	SecureLinks types.SecureLinkManager
	Clock       types.Clock
	IDGen       types.IDGenerator
	Audit       types.AuditSink
	Hooks       types.Hooks
	Logger      types.Logger
	Guard       guard.Guard
	FeatureGate featuregate.FeatureGate
}

// NewPersonOnboardCommand constructs the onboarding handler.
func NewPersonOnboardCommand(cfg OnboardCommandConfig) *PersonOnboardCommand {
	return &PersonOnboardCommand{
		people:      cfg.People,
		assignments: cfg.Assignments,
		linker:      cfg.Links,
		secureLinks: cfg.SecureLinks,
		clock:       safeClock(cfg.Clock),
		idGen:       safeIDGen(cfg.IDGen),
		sink:        safeAuditSink(cfg.Audit),
		hooks:       safeHooks(cfg.Hooks),
		logger:      safeLogger(cfg.Logger),
		guard:       safeGuard(cfg.Guard),
		featureGate: cfg.FeatureGate,
	}
}

var _ gocommand.Commander[PersonOnboardInput] = (*PersonOnboardCommand)(nil)

// Execute creates the pending person and mints the invitation material. The
// person insert is the authoritative effect; the airport assignment is
// best-effort and its failure never propagates.
func (c *PersonOnboardCommand) Execute(ctx context.Context, input PersonOnboardInput) error {
	if c.people == nil {
		return types.ErrMissingPersonRepository
	}
	if c.linker == nil {
		return types.ErrMissingLinkBuilder
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}
	if enabled, err := featureEnabled(ctx, c.featureGate, featurePersonnelInvite, input.Actor.ID); err != nil {
		return err
	} else if !enabled {
		return ErrInviteDisabled
	}

	email := strings.TrimSpace(input.Email)
	if !strings.Contains(email, "@") {
		return types.InvalidInput("email", "must contain @")
	}
	fullName := strings.TrimSpace(input.FullName)
	if len(fullName) < 2 {
		return types.InvalidInput("full_name", "must be at least 2 characters")
	}
	role := types.NormalizePersonRole(input.Role)
	if role == "" {
		role = types.PersonRoleEmployee
	}
	if !role.Valid() {
		return types.InvalidInput("role", "unknown personnel role")
	}
	categoryID := normalizeSentinelID(input.JobCategoryID, SentinelNoCategory)
	airportID := normalizeSentinelID(input.AirportID, SentinelNoAirport)

	if existing, err := c.people.GetByEmail(ctx, email); err != nil {
		return types.DependencyFailure(err, "personnel store")
	} else if existing != nil {
		return types.Conflict(
			fmt.Sprintf("go-trainops: email %s is already registered", email),
			types.TextCodeEmailTaken,
		)
	}

	placeholderID := c.idGen.UUID()
	token := c.idGen.UUID().String()
	issuedAt := now(c.clock)

	person := &types.Person{
		ID:              placeholderID,
		Email:           email,
		FullName:        fullName,
		Role:            role,
		JobCategoryID:   categoryID,
		IsActive:        false,
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	created, err := c.people.Create(ctx, person)
	if err != nil {
		// Two concurrent onboard calls can both pass the lookup above; the
		// store's unique email constraint is the real enforcement point.
		if types.IsConflict(err) {
			return types.Conflict(
				fmt.Sprintf("go-trainops: email %s is already registered", email),
				types.TextCodeEmailTaken,
			)
		}
		return types.DependencyFailure(err, "personnel store")
	}

	var assignmentErr error
	if airportID != nil {
		assignmentErr = c.assignAirport(ctx, created.ID, *airportID, issuedAt)
		if assignmentErr != nil {
			c.logger.Error("onboarding airport assignment failed", assignmentErr,
				"person_id", created.ID.String(),
				"airport_id", airportID.String(),
			)
		}
	}

	signupLink := c.signupLink(created.Email, token)

	record := types.AuditRecord{
		ActorID:   input.Actor.ID,
		Action:    AuditActionPersonInvited,
		TableName: "profiles",
		RecordID:  created.ID.String(),
		NewData: map[string]any{
			"email":     created.Email,
			"full_name": created.FullName,
			"role":      string(created.Role),
		},
		OccurredAt: issuedAt,
	}
	logAudit(ctx, c.sink, record)
	emitAuditHook(ctx, c.hooks, record)
	emitOnboardHook(ctx, c.hooks, types.PersonEvent{
		ActorID:    input.Actor.ID,
		Action:     AuditActionPersonInvited,
		OccurredAt: issuedAt,
		Person:     *created,
	})

	if input.Result != nil {
		*input.Result = PersonOnboardResult{
			PersonID:        created.ID,
			Email:           created.Email,
			FullName:        created.FullName,
			Role:            created.Role,
			InvitationToken: token,
			SignupLink:      signupLink,
			AssignmentError: assignmentErr,
		}
	}

	return nil
}

// secureSignupRoute names the securelink route used for signed invitations.
const secureSignupRoute = "invited-signup"

// signupLink prefers a signed invitation link when a securelink manager is
// configured, falling back to the plain query-string format.
func (c *PersonOnboardCommand) signupLink(email, token string) string {
	plain := c.linker.SignupLink(email, token)
	if c.secureLinks == nil {
		return plain
	}
	signed, err := c.secureLinks.Generate(secureSignupRoute, types.SecureLinkPayload{
		"email": email,
		"token": token,
	})
	if err != nil {
		c.logger.Error("signed invitation link generation failed", err, "email", email)
		return plain
	}
	if signed == "" {
		return plain
	}
	return signed
}

func (c *PersonOnboardCommand) assignAirport(ctx context.Context, employeeID, airportID uuid.UUID, startDate time.Time) error {
	if c.assignments == nil {
		return types.ErrMissingAssignmentRepository
	}
	_, err := c.assignments.Create(ctx, types.Assignment{
		EmployeeID: employeeID,
		AirportID:  airportID,
		IsPrimary:  true,
		StartDate:  startDate,
	})
	return err
}

func normalizeSentinelID(raw, sentinel string) *uuid.UUID {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, sentinel) {
		return nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}
