package assignment

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the employee_airports join row.
type Record struct {
	bun.BaseModel `bun:"table:employee_airports"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	EmployeeID uuid.UUID `bun:"employee_id,notnull,type:uuid"`
	AirportID  uuid.UUID `bun:"airport_id,notnull,type:uuid"`
	IsPrimary  bool      `bun:"is_primary"`
	StartDate  time.Time `bun:"start_date"`
	CreatedAt  time.Time `bun:"created_at"`
}

func fromDomain(a types.Assignment) *Record {
	return &Record{
		EmployeeID: a.EmployeeID,
		AirportID:  a.AirportID,
		IsPrimary:  a.IsPrimary,
		StartDate:  a.StartDate,
		CreatedAt:  a.CreatedAt,
	}
}

func toDomain(rec *Record) *types.Assignment {
	if rec == nil {
		return nil
	}
	return &types.Assignment{
		EmployeeID: rec.EmployeeID,
		AirportID:  rec.AirportID,
		IsPrimary:  rec.IsPrimary,
		StartDate:  rec.StartDate,
		CreatedAt:  rec.CreatedAt,
	}
}
