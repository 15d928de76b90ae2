package airport

import (
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the airports row.
type Record struct {
	bun.BaseModel `bun:"table:airports"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Name        string    `bun:"name,notnull"`
	Code        string    `bun:"code,notnull"`
	IcaoCode    string    `bun:"icao_code"`
	IataCode    string    `bun:"iata_code"`
	AirportType string    `bun:"airport_type"`
	City        string    `bun:"city"`
	Country     string    `bun:"country"`
	Description string    `bun:"description"`
	IsActive    bool      `bun:"is_active"`
	CreatedAt   time.Time `bun:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at"`
}

func fromDomain(a types.Airport) *Record {
	return &Record{
		ID:          a.ID,
		Name:        a.Name,
		Code:        a.Code,
		IcaoCode:    a.IcaoCode,
		IataCode:    a.IataCode,
		AirportType: a.AirportType,
		City:        a.City,
		Country:     a.Country,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Airport {
	if rec == nil {
		return nil
	}
	return &types.Airport{
		ID:          rec.ID,
		Name:        rec.Name,
		Code:        rec.Code,
		IcaoCode:    rec.IcaoCode,
		IataCode:    rec.IataCode,
		AirportType: rec.AirportType,
		City:        rec.City,
		Country:     rec.Country,
		Description: rec.Description,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
