package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// AuditActionQrGenerated tags QR token rotation audit entries.
const AuditActionQrGenerated = "QR_CODE_GENERATED"

// QrTokenRotateInput identifies the person whose QR token rotates.
type QrTokenRotateInput struct {
	PersonID uuid.UUID
	Actor    types.ActorRef
	Result   *QrTokenRotateResult
}

// Type implements gocommand.Message.
func (QrTokenRotateInput) Type() string {
	return "command.person.qr_rotate"
}

// Validate implements gocommand.Message.
func (input QrTokenRotateInput) Validate() error {
	switch {
	case input.PersonID == uuid.Nil:
		return ErrPersonIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// QrTokenRotateResult carries the fresh token and its public URL.
type QrTokenRotateResult struct {
	Token     string
	PublicURL string
	Person    *types.Person
}

// QrTokenRotateCommand mints a fresh QR token, invalidating the previous one.
// Any authenticated actor may rotate; the admin role is not required.
type QrTokenRotateCommand struct {
	people      types.PersonRepository
	linker      *links.Builder
	clock       types.Clock
	idGen       types.IDGenerator
	sink        types.AuditSink
	hooks       types.Hooks
	logger      types.Logger
	guard       guard.Guard
	featureGate featuregate.FeatureGate
}

// QrRotateCommandConfig holds dependencies for QR rotation.
type QrRotateCommandConfig struct {
	People      types.PersonRepository
	Links       *links.Builder
	Clock       types.Clock
	IDGen       types.IDGenerator
	Audit       types.AuditSink
	Hooks       types.Hooks
	Logger      types.Logger
	Guard       guard.Guard
	FeatureGate featuregate.FeatureGate
}

// NewQrTokenRotateCommand constructs the rotation handler.
func NewQrTokenRotateCommand(cfg QrRotateCommandConfig) *QrTokenRotateCommand {
	return &QrTokenRotateCommand{
		people:      cfg.People,
		linker:      cfg.Links,
		clock:       safeClock(cfg.Clock),
		idGen:       safeIDGen(cfg.IDGen),
		sink:        safeAuditSink(cfg.Audit),
		hooks:       safeHooks(cfg.Hooks),
		logger:      safeLogger(cfg.Logger),
		guard:       safeGuard(cfg.Guard),
		featureGate: cfg.FeatureGate,
	}
}

var _ gocommand.Commander[QrTokenRotateInput] = (*QrTokenRotateCommand)(nil)

// Execute rotates the target person's QR token in a single update and appends
// the audit entry carrying the new token value.
func (c *QrTokenRotateCommand) Execute(ctx context.Context, input QrTokenRotateInput) error {
	if c.people == nil {
		return types.ErrMissingPersonRepository
	}
	if c.linker == nil {
		return types.ErrMissingLinkBuilder
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAuthenticated(ctx, input.Actor); err != nil {
		return err
	}
	if enabled, err := featureEnabled(ctx, c.featureGate, featurePersonnelQr, input.Actor.ID); err != nil {
		return err
	} else if !enabled {
		return ErrQrDisabled
	}

	token := c.idGen.UUID().String()
	rotatedAt := now(c.clock)

	person, err := c.people.RotateQrToken(ctx, input.PersonID, token, rotatedAt)
	if err != nil {
		return types.DependencyFailure(err, "personnel store")
	}
	if person == nil {
		return ErrPersonNotFound
	}

	record := types.AuditRecord{
		ActorID:   input.Actor.ID,
		Action:    AuditActionQrGenerated,
		TableName: "profiles",
		RecordID:  person.ID.String(),
		NewData: map[string]any{
			"qr_code_token": token,
		},
		OccurredAt: rotatedAt,
	}
	logAudit(ctx, c.sink, record)
	emitAuditHook(ctx, c.hooks, record)
	emitQrRotationHook(ctx, c.hooks, types.PersonEvent{
		ActorID:    input.Actor.ID,
		Action:     AuditActionQrGenerated,
		OccurredAt: rotatedAt,
		Person:     *person,
	})

	if input.Result != nil {
		*input.Result = QrTokenRotateResult{
			Token:     token,
			PublicURL: c.linker.QrProfileLink(token),
			Person:    person,
		}
	}

	return nil
}
