package types

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// IdentityProvider abstracts the upstream authentication provider. The core
// workflows treat it as a black box: account creation during invited signup
// and current-actor resolution at transport boundaries.
type IdentityProvider interface {
	// CreateAccount provisions an account for the credentials and returns the
	// new account id. Provider errors are returned verbatim so callers can
	// surface them as auth failures.
	CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error)
	// AccountExists reports whether an account already claims the identifier.
	AccountExists(ctx context.Context, identifier string) (bool, error)
}

var (
	// ErrMissingSecureLinkManager occurs when securelink generation is not configured.
	ErrMissingSecureLinkManager = errors.New("go-trainops: missing securelink manager")
)
