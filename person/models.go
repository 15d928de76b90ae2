package person

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the profiles row.
type Record struct {
	bun.BaseModel `bun:"table:profiles"`

	ID                 uuid.UUID  `bun:"id,pk,type:uuid"`
	Email              string     `bun:"email,notnull,unique"`
	FullName           string     `bun:"full_name"`
	Role               string     `bun:"role,notnull"`
	JobCategoryID      *uuid.UUID `bun:"job_category_id,type:uuid,nullzero"`
	IsActive           bool       `bun:"is_active"`
	NeedsAuthSetup     bool       `bun:"needs_auth_setup"`
	InvitationToken    *string    `bun:"invitation_token,nullzero"`
	QrCodeToken        *string    `bun:"qr_code_token,nullzero"`
	QrCodeLastAccessed *time.Time `bun:"qr_code_last_accessed,nullzero"`
	AuthUserLinkedAt   *time.Time `bun:"auth_user_linked_at,nullzero"`
	CreatedAt          time.Time  `bun:"created_at"`
	UpdatedAt          time.Time  `bun:"updated_at"`
}

func fromDomain(p types.Person) *Record {
	return &Record{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Role:               string(p.Role),
		JobCategoryID:      p.JobCategoryID,
		IsActive:           p.IsActive,
		NeedsAuthSetup:     p.NeedsAuthSetup,
		InvitationToken:    p.InvitationToken,
		QrCodeToken:        p.QrCodeToken,
		QrCodeLastAccessed: p.QrCodeLastAccessed,
		AuthUserLinkedAt:   p.AuthUserLinkedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Person {
	if rec == nil {
		return nil
	}
	return &types.Person{
		ID:                 rec.ID,
		Email:              rec.Email,
		FullName:           rec.FullName,
		Role:               types.PersonRole(rec.Role),
		JobCategoryID:      rec.JobCategoryID,
		IsActive:           rec.IsActive,
		NeedsAuthSetup:     rec.NeedsAuthSetup,
		InvitationToken:    rec.InvitationToken,
		QrCodeToken:        rec.QrCodeToken,
		QrCodeLastAccessed: rec.QrCodeLastAccessed,
		AuthUserLinkedAt:   rec.AuthUserLinkedAt,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}
