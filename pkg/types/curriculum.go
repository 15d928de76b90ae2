package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TrainingStatus enumerates training session states.
type TrainingStatus string

const (
	TrainingStatusScheduled  TrainingStatus = "scheduled"
	TrainingStatusInProgress TrainingStatus = "in_progress"
	TrainingStatusCompleted  TrainingStatus = "completed"
	TrainingStatusCancelled  TrainingStatus = "cancelled"
)

// ExamType enumerates examination formats.
type ExamType string

const (
	ExamTypeWritten    ExamType = "written"
	ExamTypePractical  ExamType = "practical"
	ExamTypeOral       ExamType = "oral"
	ExamTypeSimulation ExamType = "simulation"
)

// ExamStatus enumerates examination states.
type ExamStatus string

const (
	ExamStatusScheduled ExamStatus = "scheduled"
	ExamStatusPassed    ExamStatus = "passed"
	ExamStatusFailed    ExamStatus = "failed"
	ExamStatusCancelled ExamStatus = "cancelled"
)

// CertificateStatus enumerates certificate states.
type CertificateStatus string

const (
	CertificateStatusValid     CertificateStatus = "valid"
	CertificateStatusExpired   CertificateStatus = "expired"
	CertificateStatusSuspended CertificateStatus = "suspended"
	CertificateStatusRevoked   CertificateStatus = "revoked"
)

// TrainingProgram is a curriculum definition. TotalHours is computed by the
// store from the three hour fields and is never written by workflows.
type TrainingProgram struct {
	ID                  uuid.UUID
	Title               string
	Code                string
	JobCategoryID       *uuid.UUID
	PrimaryInstructorID *uuid.UUID
	Description         string
	TheoreticalHours    int
	PracticalHours      int
	OjtHours            int
	TotalHours          int
	ApprovalNumber      string
	ApprovalDate        *time.Time
	ApprovedBy          string
	Version             string
	ValidityMonths      int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProgramRepository persists training programs.
type ProgramRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TrainingProgram, error)
	GetByCode(ctx context.Context, code string) (*TrainingProgram, error)
	Create(ctx context.Context, program *TrainingProgram) (*TrainingProgram, error)
	Update(ctx context.Context, program *TrainingProgram) (*TrainingProgram, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ProgramFilter) (ProgramPage, error)
}

// ProgramFilter narrows program listings.
type ProgramFilter struct {
	Keyword       string
	JobCategoryID uuid.UUID
	OnlyActive    bool
	Pagination    Pagination
}

// ProgramPage represents a paginated curriculum listing.
type ProgramPage struct {
	Programs   []TrainingProgram
	Total      int
	NextOffset int
	HasMore    bool
}

// Training is one trainee's enrollment for a program.
type Training struct {
	ID                uuid.UUID
	TrainingProgramID uuid.UUID
	TraineeID         uuid.UUID
	InstructorID      *uuid.UUID
	AirportID         *uuid.UUID
	StartDate         time.Time
	EndDate           *time.Time
	Status            TrainingStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TrainingRepository persists training enrollments.
type TrainingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Training, error)
	Create(ctx context.Context, training *Training) (*Training, error)
	Update(ctx context.Context, training *Training) (*Training, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]Training, error)
	ListByProgram(ctx context.Context, programID uuid.UUID) ([]Training, error)
}

// Examination is an assessment tied to a training. Score stays nil until
// grading happens.
type Examination struct {
	ID         uuid.UUID
	TrainingID uuid.UUID
	ExamType   ExamType
	ExamDate   time.Time
	Status     ExamStatus
	Score      *float64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExaminationRepository persists examinations.
type ExaminationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Examination, error)
	Create(ctx context.Context, exam *Examination) (*Examination, error)
	Update(ctx context.Context, exam *Examination) (*Examination, error)
	ListByTraining(ctx context.Context, trainingID uuid.UUID) ([]Examination, error)
}

// Certificate is proof of completion tied to a training.
type Certificate struct {
	ID                uuid.UUID
	TrainingID        uuid.UUID
	TraineeID         uuid.UUID
	AirportID         *uuid.UUID
	CertificateNumber string
	IssueDate         time.Time
	ExpiryDate        time.Time
	Status            CertificateStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CertificateRepository persists certificates.
type CertificateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error)
	GetByNumber(ctx context.Context, number string) (*Certificate, error)
	Create(ctx context.Context, cert *Certificate) (*Certificate, error)
	Update(ctx context.Context, cert *Certificate) (*Certificate, error)
	ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]Certificate, error)
}
