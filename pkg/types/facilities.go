package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Airport models a physical site: airport, heliodrome, or training facility.
type Airport struct {
	ID          uuid.UUID
	Name        string
	Code        string
	IcaoCode    string
	IataCode    string
	AirportType string
	City        string
	Country     string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AirportRepository persists airport facilities.
type AirportRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Airport, error)
	Create(ctx context.Context, airport *Airport) (*Airport, error)
	Update(ctx context.Context, airport *Airport) (*Airport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter AirportFilter) (AirportPage, error)
}

// AirportFilter narrows airport listings.
type AirportFilter struct {
	Keyword    string
	Country    string
	OnlyActive bool
	Pagination Pagination
}

// AirportPage represents a paginated facility listing.
type AirportPage struct {
	Airports   []Airport
	Total      int
	NextOffset int
	HasMore    bool
}

// Assignment joins a person to an airport with assignment metadata.
type Assignment struct {
	EmployeeID uuid.UUID
	AirportID  uuid.UUID
	IsPrimary  bool
	StartDate  time.Time
	CreatedAt  time.Time
}

// AssignmentRepository persists employee/airport assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (*Assignment, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Assignment, error)
	ListByAirport(ctx context.Context, airportID uuid.UUID) ([]Assignment, error)
	Delete(ctx context.Context, employeeID, airportID uuid.UUID) error
}

// JobCategory is a role classification for personnel and programs.
type JobCategory struct {
	ID                  uuid.UUID
	Code                string
	NameEN              string
	NameME              string
	Description         string
	RequiresCertificate bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LocalizedName returns the Montenegrin name, falling back to English when
// the locale name is blank.
func (c JobCategory) LocalizedName() string {
	if c.NameME != "" {
		return c.NameME
	}
	return c.NameEN
}

// CategoryRepository persists job categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*JobCategory, error)
	GetByCode(ctx context.Context, code string) (*JobCategory, error)
	Create(ctx context.Context, category *JobCategory) (*JobCategory, error)
	Update(ctx context.Context, category *JobCategory) (*JobCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]JobCategory, error)
}
