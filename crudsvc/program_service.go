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

// ProgramServiceConfig wires dependencies for the curriculum controller.
type ProgramServiceConfig struct {
	Guard    GuardAdapter
	Programs types.ProgramRepository
	Save     gocommand.Commander[command.ProgramSaveInput]
	Delete   gocommand.Commander[command.ProgramDeleteInput]
}

// ProgramService exposes curriculum CRUD through go-crud. Writes route
// through the save command so code normalization and conflict mapping apply
// to admin panels as well.
type ProgramService struct {
	guard    GuardAdapter
	programs types.ProgramRepository
	save     gocommand.Commander[command.ProgramSaveInput]
	delete   gocommand.Commander[command.ProgramDeleteInput]
	logger   types.Logger
}

// NewProgramService constructs the adapter.
func NewProgramService(cfg ProgramServiceConfig, opts ...ServiceOption) *ProgramService {
	options := applyOptions(opts)
	return &ProgramService{
		guard:    cfg.Guard,
		programs: cfg.Programs,
		save:     cfg.Save,
		delete:   cfg.Delete,
		logger:   options.logger,
	}
}

var _ crud.Service[*types.TrainingProgram] = (*ProgramService)(nil)

// Create stores a new curriculum via the save command.
func (s *ProgramService) Create(ctx crud.Context, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	return s.saveProgram(ctx, crud.OpCreate, program)
}

// CreateBatch is disabled for curricula.
func (s *ProgramService) CreateBatch(crud.Context, []*types.TrainingProgram) ([]*types.TrainingProgram, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

// Update rewrites a curriculum via the save command.
func (s *ProgramService) Update(ctx crud.Context, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	if program == nil || program.ID == uuid.Nil {
		return nil, invalidID("program")
	}
	return s.saveProgram(ctx, crud.OpUpdate, program)
}

// UpdateBatch is disabled for curricula.
func (s *ProgramService) UpdateBatch(crud.Context, []*types.TrainingProgram) ([]*types.TrainingProgram, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

// Delete routes through the dependency-guarded deletion command.
func (s *ProgramService) Delete(ctx crud.Context, program *types.TrainingProgram) error {
	if s.delete == nil {
		return missingDependency("program delete command")
	}
	if program == nil || program.ID == uuid.Nil {
		return invalidID("program")
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpDelete, TargetID: program.ID})
	if err != nil {
		return err
	}
	return s.delete.Execute(ctx.UserContext(), command.ProgramDeleteInput{
		ProgramID: program.ID,
		Actor:     res.Actor,
	})
}

// DeleteBatch is disabled for curricula.
func (s *ProgramService) DeleteBatch(crud.Context, []*types.TrainingProgram) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists curricula with keyword/category/active filters.
func (s *ProgramService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*types.TrainingProgram, int, error) {
	if s.programs == nil {
		return nil, 0, missingDependency("program repository")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpList}); err != nil {
		return nil, 0, err
	}
	filter := types.ProgramFilter{
		Keyword:       ctx.Query("q"),
		JobCategoryID: queryUUID(ctx, "job_category_id"),
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 50),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	if active, ok := queryBool(ctx, "active"); ok {
		filter.OnlyActive = active
	}
	page, err := s.programs.List(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, err
	}
	records := make([]*types.TrainingProgram, 0, len(page.Programs))
	for i := range page.Programs {
		program := page.Programs[i]
		records = append(records, &program)
	}
	return records, page.Total, nil
}

// Show resolves one curriculum by id.
func (s *ProgramService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*types.TrainingProgram, error) {
	if s.programs == nil {
		return nil, missingDependency("program repository")
	}
	programID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID("program")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpRead, TargetID: programID}); err != nil {
		return nil, err
	}
	program, err := s.programs.GetByID(ctx.UserContext(), programID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, goerrors.New("go-trainops: program not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return program, nil
}

func (s *ProgramService) saveProgram(ctx crud.Context, op crud.CrudOperation, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	if s.save == nil {
		return nil, missingDependency("program save command")
	}
	if program == nil {
		return nil, invalidID("program")
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: op, TargetID: program.ID})
	if err != nil {
		return nil, err
	}
	var result command.ProgramSaveResult
	if err := s.save.Execute(ctx.UserContext(), command.ProgramSaveInput{
		Program: *program,
		Actor:   res.Actor,
		Result:  &result,
	}); err != nil {
		return nil, err
	}
	return result.Program, nil
}
