package certificate

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the certificates row.
type Record struct {
	bun.BaseModel `bun:"table:certificates"`

	ID                uuid.UUID  `bun:"id,pk,type:uuid"`
	TrainingID        uuid.UUID  `bun:"training_id,notnull,type:uuid"`
	TraineeID         uuid.UUID  `bun:"trainee_id,notnull,type:uuid"`
	AirportID         *uuid.UUID `bun:"airport_id,type:uuid,nullzero"`
	CertificateNumber string     `bun:"certificate_number,notnull,unique"`
	IssueDate         time.Time  `bun:"issue_date"`
	ExpiryDate        time.Time  `bun:"expiry_date"`
	Status            string     `bun:"status,notnull"`
	CreatedAt         time.Time  `bun:"created_at"`
	UpdatedAt         time.Time  `bun:"updated_at"`
}

func fromDomain(c types.Certificate) *Record {
	return &Record{
		ID:                c.ID,
		TrainingID:        c.TrainingID,
		TraineeID:         c.TraineeID,
		AirportID:         c.AirportID,
		CertificateNumber: c.CertificateNumber,
		IssueDate:         c.IssueDate,
		ExpiryDate:        c.ExpiryDate,
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Certificate {
	if rec == nil {
		return nil
	}
	return &types.Certificate{
		ID:                rec.ID,
		TrainingID:        rec.TrainingID,
		TraineeID:         rec.TraineeID,
		AirportID:         rec.AirportID,
		CertificateNumber: rec.CertificateNumber,
		IssueDate:         rec.IssueDate,
		ExpiryDate:        rec.ExpiryDate,
		Status:            types.CertificateStatus(rec.Status),
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}
