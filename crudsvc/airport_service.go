package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-trainops/command"
	"github.com/goliatone/go-trainops/crudguard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

// AirportServiceConfig wires dependencies for the facility controller.
type AirportServiceConfig struct {
	Guard    GuardAdapter
	Airports types.AirportRepository
	Delete   gocommand.Commander[command.AirportDeleteInput]
}

// AirportService exposes facility CRUD through go-crud. Deletion routes
// through the dependency-guarded command so referenced facilities cannot be
// removed from admin panels either.
type AirportService struct {
	guard    GuardAdapter
	airports types.AirportRepository
	delete   gocommand.Commander[command.AirportDeleteInput]
	emitter  AuditEmitter
	logger   types.Logger
}

// NewAirportService constructs the adapter.
func NewAirportService(cfg AirportServiceConfig, opts ...ServiceOption) *AirportService {
	options := applyOptions(opts)
	return &AirportService{
		guard:    cfg.Guard,
		airports: cfg.Airports,
		delete:   cfg.Delete,
		emitter:  options.emitter,
		logger:   options.logger,
	}
}

var _ crud.Service[*types.Airport] = (*AirportService)(nil)

// Create stores a new facility.
func (s *AirportService) Create(ctx crud.Context, airport *types.Airport) (*types.Airport, error) {
	if s.airports == nil {
		return nil, missingDependency("airport repository")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpCreate}); err != nil {
		return nil, err
	}
	return s.airports.Create(ctx.UserContext(), airport)
}

// CreateBatch is disabled for facilities.
func (s *AirportService) CreateBatch(crud.Context, []*types.Airport) ([]*types.Airport, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

// Update rewrites a facility.
func (s *AirportService) Update(ctx crud.Context, airport *types.Airport) (*types.Airport, error) {
	if s.airports == nil {
		return nil, missingDependency("airport repository")
	}
	if airport == nil || airport.ID == uuid.Nil {
		return nil, invalidID("airport")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpUpdate, TargetID: airport.ID}); err != nil {
		return nil, err
	}
	return s.airports.Update(ctx.UserContext(), airport)
}

// UpdateBatch is disabled for facilities.
func (s *AirportService) UpdateBatch(crud.Context, []*types.Airport) ([]*types.Airport, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

// Delete routes through the dependency-guarded deletion command.
func (s *AirportService) Delete(ctx crud.Context, airport *types.Airport) error {
	if s.delete == nil {
		return missingDependency("airport delete command")
	}
	if airport == nil || airport.ID == uuid.Nil {
		return invalidID("airport")
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpDelete, TargetID: airport.ID})
	if err != nil {
		return err
	}
	return s.delete.Execute(ctx.UserContext(), command.AirportDeleteInput{
		AirportID: airport.ID,
		Actor:     res.Actor,
	})
}

// DeleteBatch is disabled for facilities.
func (s *AirportService) DeleteBatch(crud.Context, []*types.Airport) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists facilities with keyword/country/active filters.
func (s *AirportService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*types.Airport, int, error) {
	if s.airports == nil {
		return nil, 0, missingDependency("airport repository")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpList}); err != nil {
		return nil, 0, err
	}
	filter := types.AirportFilter{
		Keyword: ctx.Query("q"),
		Country: ctx.Query("country"),
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 50),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	if active, ok := queryBool(ctx, "active"); ok {
		filter.OnlyActive = active
	}
	page, err := s.airports.List(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, err
	}
	records := make([]*types.Airport, 0, len(page.Airports))
	for i := range page.Airports {
		airport := page.Airports[i]
		records = append(records, &airport)
	}
	return records, page.Total, nil
}

// Show resolves one facility by id.
func (s *AirportService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*types.Airport, error) {
	if s.airports == nil {
		return nil, missingDependency("airport repository")
	}
	airportID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID("airport")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpRead, TargetID: airportID}); err != nil {
		return nil, err
	}
	airport, err := s.airports.GetByID(ctx.UserContext(), airportID)
	if err != nil {
		return nil, err
	}
	if airport == nil {
		return nil, goerrors.New("go-trainops: airport not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return airport, nil
}

func missingDependency(name string) error {
	return goerrors.New("go-trainops: "+name+" missing", goerrors.CategoryInternal).
		WithCode(goerrors.CodeInternal)
}

func invalidID(entity string) error {
	return goerrors.New("go-trainops: invalid "+entity+" id", goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}
