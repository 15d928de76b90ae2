package category

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the job_categories row.
type Record struct {
	bun.BaseModel `bun:"table:job_categories"`

	ID                  uuid.UUID `bun:"id,pk,type:uuid"`
	Code                string    `bun:"code,notnull,unique"`
	NameEN              string    `bun:"name_en,notnull"`
	NameME              string    `bun:"name_me"`
	Description         string    `bun:"description"`
	RequiresCertificate bool      `bun:"requires_certificate"`
	CreatedAt           time.Time `bun:"created_at"`
	UpdatedAt           time.Time `bun:"updated_at"`
}

func fromDomain(c types.JobCategory) *Record {
	return &Record{
		ID:                  c.ID,
		Code:                c.Code,
		NameEN:              c.NameEN,
		NameME:              c.NameME,
		Description:         c.Description,
		RequiresCertificate: c.RequiresCertificate,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.JobCategory {
	if rec == nil {
		return nil
	}
	out := &types.JobCategory{
		ID:                  rec.ID,
		Code:                rec.Code,
		NameEN:              rec.NameEN,
		NameME:              rec.NameME,
		Description:         rec.Description,
		RequiresCertificate: rec.RequiresCertificate,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
	if out.NameME == "" {
		out.NameME = out.NameEN
	}
	return out
}
