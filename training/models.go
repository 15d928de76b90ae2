package training

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the trainings row.
type Record struct {
	bun.BaseModel `bun:"table:trainings"`

	ID                uuid.UUID  `bun:"id,pk,type:uuid"`
	TrainingProgramID uuid.UUID  `bun:"training_program_id,notnull,type:uuid"`
	TraineeID         uuid.UUID  `bun:"trainee_id,notnull,type:uuid"`
	InstructorID      *uuid.UUID `bun:"instructor_id,type:uuid,nullzero"`
	AirportID         *uuid.UUID `bun:"airport_id,type:uuid,nullzero"`
	StartDate         time.Time  `bun:"start_date"`
	EndDate           *time.Time `bun:"end_date,nullzero"`
	Status            string     `bun:"status,notnull"`
	CreatedAt         time.Time  `bun:"created_at"`
	UpdatedAt         time.Time  `bun:"updated_at"`
}

func fromDomain(t types.Training) *Record {
	return &Record{
		ID:                t.ID,
		TrainingProgramID: t.TrainingProgramID,
		TraineeID:         t.TraineeID,
		InstructorID:      t.InstructorID,
		AirportID:         t.AirportID,
		StartDate:         t.StartDate,
		EndDate:           t.EndDate,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Training {
	if rec == nil {
		return nil
	}
	return &types.Training{
		ID:                rec.ID,
		TrainingProgramID: rec.TrainingProgramID,
		TraineeID:         rec.TraineeID,
		InstructorID:      rec.InstructorID,
		AirportID:         rec.AirportID,
		StartDate:         rec.StartDate,
		EndDate:           rec.EndDate,
		Status:            types.TrainingStatus(rec.Status),
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}
