package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// AuditActionPersonLinked tags the signup reconciliation audit entry.
const AuditActionPersonLinked = "PERSON_LINKED"

// SignupCompleteInput carries the invitee's signup submission. The token is
// optional; it arrives via the invited-signup link.
type SignupCompleteInput struct {
	Email          string
	Password       string
	PresentedToken string
	Result         *SignupCompleteResult
}

// Type implements gocommand.Message.
func (SignupCompleteInput) Type() string {
	return "command.person.signup"
}

// Validate implements gocommand.Message.
func (input SignupCompleteInput) Validate() error {
	switch {
	case strings.TrimSpace(input.Email) == "":
		return ErrSignupEmailRequired
	case input.Password == "":
		return ErrSignupPasswordRequired
	default:
		return nil
	}
}

// SignupCompleteResult reports the created account and whether the pending
// personnel record was reconciled. Linking is a best-effort enhancement, so
// Linked=false still means overall success.
type SignupCompleteResult struct {
	AccountID     uuid.UUID
	Linked        bool
	TokenMismatch bool
	Person        *types.Person
}

// SignupCompleteCommand creates the identity account and reconciles the
// pending personnel record in a single conditional update.
type SignupCompleteCommand struct {
	people   types.PersonRepository
	identity types.IdentityProvider
	clock    types.Clock
	sink     types.AuditSink
	hooks    types.Hooks
	logger   types.Logger
	// requireTokenMatch refuses the link step on token mismatch instead of
	// only logging it. The account is still created either way.
	requireTokenMatch bool
}

// SignupCommandConfig holds dependencies for the signup flow.
type SignupCommandConfig struct {
	People            types.PersonRepository
	Identity          types.IdentityProvider
	Clock             types.Clock
	Audit             types.AuditSink
	Hooks             types.Hooks
	Logger            types.Logger
	RequireTokenMatch bool
}

// NewSignupCompleteCommand constructs the signup handler.
func NewSignupCompleteCommand(cfg SignupCommandConfig) *SignupCompleteCommand {
	return &SignupCompleteCommand{
		people:            cfg.People,
		identity:          cfg.Identity,
		clock:             safeClock(cfg.Clock),
		sink:              safeAuditSink(cfg.Audit),
		hooks:             safeHooks(cfg.Hooks),
		logger:            safeLogger(cfg.Logger),
		requireTokenMatch: cfg.RequireTokenMatch,
	}
}

var _ gocommand.Commander[SignupCompleteInput] = (*SignupCompleteCommand)(nil)

// Execute creates the identity account first; any provider rejection aborts
// before personnel state changes. The link step afterwards is best-effort.
func (c *SignupCompleteCommand) Execute(ctx context.Context, input SignupCompleteInput) error {
	if c.identity == nil {
		return types.ErrMissingIdentityProvider
	}
	if c.people == nil {
		return types.ErrMissingPersonRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	email := strings.TrimSpace(input.Email)
	accountID, err := c.identity.CreateAccount(ctx, email, input.Password)
	if err != nil {
		return types.AuthFailure(err)
	}

	result := SignupCompleteResult{AccountID: accountID}
	defer func() {
		if input.Result != nil {
			*input.Result = result
		}
	}()

	pending, err := c.people.GetPendingByEmail(ctx, email)
	if err != nil {
		c.logger.Error("pending person lookup failed, skipping link", err, "email", email)
		return nil
	}
	if pending == nil {
		c.logger.Info("no pending person for signup, skipping link", "email", email)
		return nil
	}

	if token := strings.TrimSpace(input.PresentedToken); token != "" {
		stored := ""
		if pending.InvitationToken != nil {
			stored = *pending.InvitationToken
		}
		if token != stored {
			result.TokenMismatch = true
			c.logger.Info("invitation token mismatch",
				"email", email,
				"person_id", pending.ID.String(),
			)
			if c.requireTokenMatch {
				return nil
			}
		}
	}

	linkedAt := now(c.clock)
	linked, err := c.people.LinkAccount(ctx, pending.ID, types.AccountLink{
		AccountID: accountID,
		LinkedAt:  linkedAt,
	})
	if err != nil {
		c.logger.Error("pending person link failed", err,
			"email", email,
			"person_id", pending.ID.String(),
		)
		return nil
	}
	if linked == nil {
		// Another signup already consumed the pending row.
		c.logger.Info("pending person already linked", "email", email)
		return nil
	}

	result.Linked = true
	result.Person = linked

	record := types.AuditRecord{
		ActorID:   accountID,
		Action:    AuditActionPersonLinked,
		TableName: "profiles",
		RecordID:  linked.ID.String(),
		NewData: map[string]any{
			"email":      linked.Email,
			"pending_id": pending.ID.String(),
		},
		OccurredAt: linkedAt,
	}
	logAudit(ctx, c.sink, record)
	emitAuditHook(ctx, c.hooks, record)
	emitSignupLinkHook(ctx, c.hooks, types.PersonEvent{
		ActorID:    accountID,
		Action:     AuditActionPersonLinked,
		OccurredAt: linkedAt,
		Person:     *linked,
	})

	return nil
}
