package types

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PersonRole enumerates the roles a personnel record can carry.
type PersonRole string

const (
	PersonRoleAdmin      PersonRole = "admin"
	PersonRoleInstructor PersonRole = "instructor"
	PersonRoleEmployee   PersonRole = "employee"
	PersonRoleInspector  PersonRole = "inspector"
)

// NormalizePersonRole lowercases and trims role input for comparisons.
func NormalizePersonRole(role string) PersonRole {
	return PersonRole(strings.ToLower(strings.TrimSpace(role)))
}

// Valid reports whether the role is one of the known personnel roles.
func (r PersonRole) Valid() bool {
	switch r {
	case PersonRoleAdmin, PersonRoleInstructor, PersonRoleEmployee, PersonRoleInspector:
		return true
	}
	return false
}

// Person is the storage-agnostic personnel record. The ID equals the Identity
// Store account id once linked; until then it holds a locally generated
// placeholder.
type Person struct {
	ID                 uuid.UUID
	Email              string
	FullName           string
	Role               PersonRole
	JobCategoryID      *uuid.UUID
	IsActive           bool
	NeedsAuthSetup     bool
	InvitationToken    *string
	QrCodeToken        *string
	QrCodeLastAccessed *time.Time
	AuthUserLinkedAt   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Pending reports whether the record is in the pending-invitation state.
func (p Person) Pending() bool {
	return !p.IsActive && p.NeedsAuthSetup
}

// StateConsistent reports whether the record honors the onboarding state
// invariant: fully active, or pending with an invitation token, never a mix.
func (p Person) StateConsistent() bool {
	if p.IsActive && !p.NeedsAuthSetup {
		return true
	}
	if !p.IsActive && p.NeedsAuthSetup {
		return p.InvitationToken != nil && *p.InvitationToken != ""
	}
	return false
}

// AccountLink carries the atomic rewrite applied when a pending person is
// reconciled with a freshly created Identity Store account.
type AccountLink struct {
	AccountID uuid.UUID
	LinkedAt  time.Time
}

// PersonRepository persists and retrieves personnel records.
type PersonRepository interface {
	// GetByID returns nil without error when no record matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	// GetByEmail returns nil without error when no record matches.
	GetByEmail(ctx context.Context, email string) (*Person, error)
	// GetPendingByEmail returns the pending record for the email, nil when the
	// email is unknown or already linked.
	GetPendingByEmail(ctx context.Context, email string) (*Person, error)
	// GetByQrToken resolves the person owning the supplied QR token; nil when
	// the token is not current.
	GetByQrToken(ctx context.Context, token string) (*Person, error)
	Create(ctx context.Context, person *Person) (*Person, error)
	Update(ctx context.Context, person *Person) (*Person, error)
	// LinkAccount rewrites a pending record in a single conditional update:
	// id becomes the account id, the record turns active, and the invitation
	// token is cleared. Returns nil when no pending record remains.
	LinkAccount(ctx context.Context, pendingID uuid.UUID, link AccountLink) (*Person, error)
	// RotateQrToken overwrites the QR token and resets the last-accessed
	// timestamp in one update.
	RotateQrToken(ctx context.Context, personID uuid.UUID, token string, rotatedAt time.Time) (*Person, error)
	// TouchQrAccess stamps the last public read through the QR token.
	TouchQrAccess(ctx context.Context, personID uuid.UUID, accessedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPersonnel(ctx context.Context, filter PersonnelFilter) (PersonnelPage, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

// PersonnelFilter collects filters accepted by the personnel listing.
type PersonnelFilter struct {
	Actor         ActorRef
	Keyword       string
	Role          PersonRole
	JobCategoryID uuid.UUID
	OnlyActive    bool
	OnlyPending   bool
	Pagination    Pagination
}

// Type implements gocommand.Message for query inputs.
func (PersonnelFilter) Type() string {
	return "query.personnel.inventory"
}

// Validate implements gocommand.Message.
func (filter PersonnelFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// PersonnelPage represents a paginated personnel listing.
type PersonnelPage struct {
	People     []Person
	Total      int
	NextOffset int
	HasMore    bool
}

// CategoryCount is one row of the personnel-by-category aggregate.
type CategoryCount struct {
	JobCategoryID   uuid.UUID
	JobCategoryCode string
	Count           int
}
