package goauth

import (
	"context"
	"errors"
	"strings"

	auth "github.com/goliatone/go-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// Provider wraps a go-auth Users repository so it satisfies the trainops
// IdentityProvider interface. Personnel profiles stay in this module; the
// credential record lives with go-auth.
type Provider struct {
	repo  auth.Users
	role  auth.UserRole
	idGen types.IDGenerator
}

// ProviderOption customizes adapter construction.
type ProviderOption func(*Provider)

// WithRole overrides the role assigned to accounts created through signup.
func WithRole(role auth.UserRole) ProviderOption {
	return func(p *Provider) {
		if role != "" {
			p.role = role
		}
	}
}

// WithIDGenerator overrides the UUID source for created accounts.
func WithIDGenerator(idGen types.IDGenerator) ProviderOption {
	return func(p *Provider) {
		if idGen != nil {
			p.idGen = idGen
		}
	}
}

// NewProvider builds a Provider around the given go-auth repository.
func NewProvider(repo auth.Users, opts ...ProviderOption) *Provider {
	provider := &Provider{
		repo:  repo,
		role:  auth.UserRole("user"),
		idGen: types.UUIDGenerator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	return provider
}

var _ types.IdentityProvider = (*Provider)(nil)

// CreateAccount hashes the password and persists a new credential record,
// returning the account id the profile will adopt.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error) {
	if p.repo == nil {
		return uuid.Nil, errors.New("goauth: users repository required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return uuid.Nil, errors.New("goauth: email required")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}

	user := &auth.User{
		ID:           p.idGen.UUID(),
		Role:         p.role,
		Status:       auth.UserStatusActive,
		Username:     email,
		Email:        email,
		PasswordHash: passwordHash,
	}

	created, err := p.repo.Create(ctx, user)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// AccountExists reports whether a credential record already exists for the
// identifier (email, username, or UUID).
func (p *Provider) AccountExists(ctx context.Context, identifier string) (bool, error) {
	if p.repo == nil {
		return false, errors.New("goauth: users repository required")
	}
	record, err := p.repo.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return record != nil, nil
}
