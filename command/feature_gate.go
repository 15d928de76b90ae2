package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

const (
	featurePersonnelInvite = "personnel.invite"
	featurePersonnelQr     = "personnel.qr"
)

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, actorID uuid.UUID) (bool, error) {
	if gate == nil {
		return true, nil
	}
	if actorID == uuid.Nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeSet(featuregate.ScopeSet{
		System: true,
		UserID: actorID.String(),
	}))
}
