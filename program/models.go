package program

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the training_programs row. TotalHours is a generated column:
// it is read back like any other column but every INSERT and UPDATE excludes
// it so the store stays the single writer.
type Record struct {
	bun.BaseModel `bun:"table:training_programs"`

	ID                  uuid.UUID  `bun:"id,pk,type:uuid"`
	Title               string     `bun:"title,notnull"`
	Code                string     `bun:"code,notnull,unique"`
	JobCategoryID       *uuid.UUID `bun:"job_category_id,type:uuid,nullzero"`
	PrimaryInstructorID *uuid.UUID `bun:"primary_instructor_id,type:uuid,nullzero"`
	Description         string     `bun:"description"`
	TheoreticalHours    int        `bun:"theoretical_hours"`
	PracticalHours      int        `bun:"practical_hours"`
	OjtHours            int        `bun:"ojt_hours"`
	TotalHours          int        `bun:"total_hours"`
	ApprovalNumber      string     `bun:"approval_number"`
	ApprovalDate        *time.Time `bun:"approval_date,nullzero"`
	ApprovedBy          string     `bun:"approved_by"`
	Version             string     `bun:"version"`
	ValidityMonths      int        `bun:"validity_months"`
	IsActive            bool       `bun:"is_active"`
	CreatedAt           time.Time  `bun:"created_at"`
	UpdatedAt           time.Time  `bun:"updated_at"`
}

func fromDomain(p types.TrainingProgram) *Record {
	return &Record{
		ID:                  p.ID,
		Title:               p.Title,
		Code:                p.Code,
		JobCategoryID:       p.JobCategoryID,
		PrimaryInstructorID: p.PrimaryInstructorID,
		Description:         p.Description,
		TheoreticalHours:    p.TheoreticalHours,
		PracticalHours:      p.PracticalHours,
		OjtHours:            p.OjtHours,
		ApprovalNumber:      p.ApprovalNumber,
		ApprovalDate:        p.ApprovalDate,
		ApprovedBy:          p.ApprovedBy,
		Version:             p.Version,
		ValidityMonths:      p.ValidityMonths,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.TrainingProgram {
	if rec == nil {
		return nil
	}
	return &types.TrainingProgram{
		ID:                  rec.ID,
		Title:               rec.Title,
		Code:                rec.Code,
		JobCategoryID:       rec.JobCategoryID,
		PrimaryInstructorID: rec.PrimaryInstructorID,
		Description:         rec.Description,
		TheoreticalHours:    rec.TheoreticalHours,
		PracticalHours:      rec.PracticalHours,
		OjtHours:            rec.OjtHours,
		TotalHours:          rec.TotalHours,
		ApprovalNumber:      rec.ApprovalNumber,
		ApprovalDate:        rec.ApprovalDate,
		ApprovedBy:          rec.ApprovedBy,
		Version:             rec.Version,
		ValidityMonths:      rec.ValidityMonths,
		IsActive:            rec.IsActive,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}
