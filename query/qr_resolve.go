package query

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// ErrQrTokenNotFound indicates the presented QR token resolves to nobody.
var ErrQrTokenNotFound = errors.New("go-trainops: qr token not found")

// QrTokenResolveInput requests the current QR token for a person.
type QrTokenResolveInput struct {
	PersonID uuid.UUID
	Actor    types.ActorRef
}

// Type implements gocommand.Message.
func (QrTokenResolveInput) Type() string {
	return "query.person.qr_resolve"
}

// Validate implements gocommand.Message.
func (input QrTokenResolveInput) Validate() error {
	switch {
	case input.PersonID == uuid.Nil:
		return types.ErrPersonIDRequired
	case input.Actor.ID == uuid.Nil:
		return types.ErrActorRequired
	default:
		return nil
	}
}

// QrTokenResolveResult carries the current token and its public URL. Issued
// reports whether this call minted the token.
type QrTokenResolveResult struct {
	Token     string
	PublicURL string
	Issued    bool
}

// QrTokenResolveQuery reads the person's current QR token; when none exists
// yet it transparently issues one through the rotation command so callers
// never see "no token". Two concurrent first resolutions can each rotate, in
// which case the later rotation wins.
type QrTokenResolveQuery struct {
	people types.PersonRepository
	rotate *command.QrTokenRotateCommand
	linker *links.Builder
	logger types.Logger
	guard  guard.Guard
}

// QrResolveConfig holds dependencies for token resolution.
type QrResolveConfig struct {
	People types.PersonRepository
	Rotate *command.QrTokenRotateCommand
	Links  *links.Builder
	Logger types.Logger
	Guard  guard.Guard
}

// NewQrTokenResolveQuery constructs the resolve-or-issue helper.
func NewQrTokenResolveQuery(cfg QrResolveConfig) *QrTokenResolveQuery {
	return &QrTokenResolveQuery{
		people: cfg.People,
		rotate: cfg.Rotate,
		linker: cfg.Links,
		logger: safeLogger(cfg.Logger),
		guard:  safeGuard(cfg.Guard),
	}
}

var _ gocommand.Querier[QrTokenResolveInput, QrTokenResolveResult] = (*QrTokenResolveQuery)(nil)

// Query returns the current token, falling back to issuance when absent.
func (q *QrTokenResolveQuery) Query(ctx context.Context, input QrTokenResolveInput) (QrTokenResolveResult, error) {
	if q.people == nil {
		return QrTokenResolveResult{}, types.ErrMissingPersonRepository
	}
	if q.linker == nil {
		return QrTokenResolveResult{}, types.ErrMissingLinkBuilder
	}
	if err := input.Validate(); err != nil {
		return QrTokenResolveResult{}, err
	}
	if _, err := q.guard.RequireAuthenticated(ctx, input.Actor); err != nil {
		return QrTokenResolveResult{}, err
	}

	person, err := q.people.GetByID(ctx, input.PersonID)
	if err != nil {
		return QrTokenResolveResult{}, types.DependencyFailure(err, "personnel store")
	}
	if person == nil {
		return QrTokenResolveResult{}, command.ErrPersonNotFound
	}

	if person.QrCodeToken != nil && strings.TrimSpace(*person.QrCodeToken) != "" {
		token := *person.QrCodeToken
		return QrTokenResolveResult{
			Token:     token,
			PublicURL: q.linker.QrProfileLink(token),
		}, nil
	}

	if q.rotate == nil {
		return QrTokenResolveResult{}, types.ErrMissingPersonRepository
	}
	var rotated command.QrTokenRotateResult
	if err := q.rotate.Execute(ctx, command.QrTokenRotateInput{
		PersonID: input.PersonID,
		Actor:    input.Actor,
		Result:   &rotated,
	}); err != nil {
		return QrTokenResolveResult{}, err
	}
	return QrTokenResolveResult{
		Token:     rotated.Token,
		PublicURL: rotated.PublicURL,
		Issued:    true,
	}, nil
}

// PublicProfileLookup resolves an unauthenticated QR profile request.
type PublicProfileLookup struct {
	Token string
}

// Type implements gocommand.Message.
func (PublicProfileLookup) Type() string {
	return "query.person.public_profile"
}

// Validate implements gocommand.Message.
func (input PublicProfileLookup) Validate() error {
	if strings.TrimSpace(input.Token) == "" {
		return ErrQrTokenNotFound
	}
	return nil
}

// PublicProfile is the reduced personnel view exposed to unauthenticated QR
// readers. Contact and lifecycle fields stay private.
type PublicProfile struct {
	PersonID uuid.UUID
	FullName string
	Role     types.PersonRole
	IsActive bool
}

// PublicProfileQuery resolves QR tokens into public profiles. Only the
// current token resolves; rotated-away tokens report not found.
type PublicProfileQuery struct {
	people types.PersonRepository
	clock  types.Clock
	logger types.Logger
}

// NewPublicProfileQuery constructs the public lookup helper.
func NewPublicProfileQuery(people types.PersonRepository, clock types.Clock, logger types.Logger) *PublicProfileQuery {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &PublicProfileQuery{
		people: people,
		clock:  clock,
		logger: safeLogger(logger),
	}
}

var _ gocommand.Querier[PublicProfileLookup, PublicProfile] = (*PublicProfileQuery)(nil)

// Query resolves the token and stamps the access time for staleness tracking.
func (q *PublicProfileQuery) Query(ctx context.Context, input PublicProfileLookup) (PublicProfile, error) {
	if q.people == nil {
		return PublicProfile{}, types.ErrMissingPersonRepository
	}
	if err := input.Validate(); err != nil {
		return PublicProfile{}, err
	}

	person, err := q.people.GetByQrToken(ctx, strings.TrimSpace(input.Token))
	if err != nil {
		return PublicProfile{}, types.DependencyFailure(err, "personnel store")
	}
	if person == nil {
		return PublicProfile{}, ErrQrTokenNotFound
	}

	if err := q.people.TouchQrAccess(ctx, person.ID, q.clock.Now()); err != nil {
		q.logger.Error("qr access stamp failed", err, "person_id", person.ID.String())
	}

	return PublicProfile{
		PersonID: person.ID,
		FullName: person.FullName,
		Role:     person.Role,
		IsActive: person.IsActive,
	}, nil
}
