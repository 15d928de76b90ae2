package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-trainops/command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/goliatone/go-trainops/query"
	"github.com/google/uuid"
)

// Service is the entry point for go-trainops. It wires repositories, the
// identity provider, hooks, and command/query facades supplied by the host
// application.
type Service struct {
	cfg       Config
	commands  Commands
	queries   Queries
	auditRepo types.AuditRepository
	linker    *links.Builder
	guard     guard.Guard
}

// Commands exposes the service command handlers.
type Commands struct {
	PersonOnboard    *command.PersonOnboardCommand
	SignupComplete   *command.SignupCompleteCommand
	PersonDeactivate *command.PersonDeactivateCommand
	QrTokenRotate    *command.QrTokenRotateCommand
	AirportDelete    *command.AirportDeleteCommand
	ProgramSave      *command.ProgramSaveCommand
	ProgramDelete    *command.ProgramDeleteCommand
	CategoryDelete   *command.CategoryDeleteCommand
	TrainingSchedule *command.TrainingScheduleCommand
	ExamGrade        *command.ExamGradeCommand
	CertificateIssue *command.CertificateIssueCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	PersonnelInventory *query.PersonnelInventoryQuery
	CategoryStats      *query.CategoryStatsQuery
	QrTokenResolve     *query.QrTokenResolveQuery
	PublicProfile      *query.PublicProfileQuery
	AuditTrail         *query.AuditTrailQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB-backed repositories, cached wrappers, hooks, etc.).
type Config struct {
	People       types.PersonRepository
	Airports     types.AirportRepository
	Assignments  types.AssignmentRepository
	Categories   types.CategoryRepository
	Programs     types.ProgramRepository
	Trainings    types.TrainingRepository
	Examinations types.ExaminationRepository
	Certificates types.CertificateRepository
	Identity     types.IdentityProvider
	AuditSink    types.AuditSink
	AuditRepo    types.AuditRepository
	Hooks        types.Hooks
	Clock        types.Clock
	IDGenerator  types.IDGenerator
	Logger       types.Logger
	FeatureGate  featuregate.FeatureGate
	Links        links.Config
	// SecureLinks optionally signs invitation links; plain query-string links
	// are used when absent.
	SecureLinks types.SecureLinkManager
	// RequireTokenMatch makes signup refuse the profile link step when the
	// presented invitation token does not match the stored one.
	RequireTokenMatch bool
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)

	auditRepo := norm.AuditRepo
	if auditRepo == nil {
		if sinkRepo, ok := norm.AuditSink.(types.AuditRepository); ok {
			auditRepo = sinkRepo
		}
	}

	s := &Service{
		cfg:       norm,
		auditRepo: auditRepo,
		linker:    links.NewBuilder(norm.Links),
		guard:     guard.NewGuard(norm.People),
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Guard exposes the guard instance used internally so transports can reuse
// the same role checks for HTTP adapters.
func (s *Service) Guard() guard.Guard {
	if s == nil {
		return guard.NopGuard()
	}
	return guard.Ensure(s.guard)
}

// AuditSink returns the configured sink so transports can emit audit records
// for auxiliary workflows (e.g. CRUD controllers).
func (s *Service) AuditSink() types.AuditSink {
	if s == nil {
		return nil
	}
	return s.cfg.AuditSink
}

// Links returns the builder used for signup and QR profile URLs.
func (s *Service) Links() *links.Builder {
	if s == nil {
		return nil
	}
	return s.linker
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.People != nil &&
		s.cfg.Airports != nil &&
		s.cfg.Identity != nil &&
		s.cfg.AuditSink != nil &&
		s.auditRepo != nil
}

// HealthCheck surfaces missing configuration before upstream transports
// start routing traffic into the service.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	if s.cfg.People == nil {
		return types.ErrMissingPersonRepository
	}
	if s.cfg.Airports == nil {
		return types.ErrMissingAirportRepository
	}
	if s.cfg.Identity == nil {
		return types.ErrMissingIdentityProvider
	}
	if s.cfg.AuditSink == nil {
		return types.ErrMissingAuditSink
	}
	return nil
}

func (s *Service) buildCommands() Commands {
	qrRotate := command.NewQrTokenRotateCommand(command.QrRotateCommandConfig{
		People:      s.cfg.People,
		Links:       s.linker,
		Clock:       s.cfg.Clock,
		IDGen:       s.cfg.IDGenerator,
		Audit:       s.cfg.AuditSink,
		Hooks:       s.cfg.Hooks,
		Logger:      s.cfg.Logger,
		Guard:       s.guard,
		FeatureGate: s.cfg.FeatureGate,
	})
	programSave := command.NewProgramSaveCommand(command.ProgramSaveCommandConfig{
		Programs: s.cfg.Programs,
		Logger:   s.cfg.Logger,
		Guard:    s.guard,
	})
	programDelete := command.NewProgramDeleteCommand(command.ProgramDeleteCommandConfig{
		Programs:     s.cfg.Programs,
		HasTrainings: probeForProgramTrainings(s.cfg.Trainings),
		Logger:       s.cfg.Logger,
		Guard:        s.guard,
	})

	return Commands{
		PersonOnboard: command.NewPersonOnboardCommand(command.OnboardCommandConfig{
			People:      s.cfg.People,
			Assignments: s.cfg.Assignments,
			Links:       s.linker,
			SecureLinks: s.cfg.SecureLinks,
			Clock:       s.cfg.Clock,
			IDGen:       s.cfg.IDGenerator,
			Audit:       s.cfg.AuditSink,
			Hooks:       s.cfg.Hooks,
			Logger:      s.cfg.Logger,
			Guard:       s.guard,
			FeatureGate: s.cfg.FeatureGate,
		}),
		SignupComplete: command.NewSignupCompleteCommand(command.SignupCommandConfig{
			People:            s.cfg.People,
			Identity:          s.cfg.Identity,
			Clock:             s.cfg.Clock,
			Audit:             s.cfg.AuditSink,
			Hooks:             s.cfg.Hooks,
			Logger:            s.cfg.Logger,
			RequireTokenMatch: s.cfg.RequireTokenMatch,
		}),
		PersonDeactivate: command.NewPersonDeactivateCommand(command.PersonDeactivateCommandConfig{
			People: s.cfg.People,
			Clock:  s.cfg.Clock,
			Audit:  s.cfg.AuditSink,
			Hooks:  s.cfg.Hooks,
			Logger: s.cfg.Logger,
			Guard:  s.guard,
		}),
		QrTokenRotate: qrRotate,
		AirportDelete: command.NewAirportDeleteCommand(command.AirportDeleteCommandConfig{
			Airports:        s.cfg.Airports,
			HasAssignments:  probeForAirportAssignments(s.cfg.Assignments),
			HasTrainings:    probeForAirportTrainings(s.cfg.Trainings),
			HasCertificates: probeForAirportCertificates(s.cfg.Certificates),
			Logger:          s.cfg.Logger,
			Guard:           s.guard,
		}),
		ProgramSave:   programSave,
		ProgramDelete: programDelete,
		CategoryDelete: command.NewCategoryDeleteCommand(command.CategoryDeleteCommandConfig{
			Categories:   s.cfg.Categories,
			HasPersonnel: probeForCategoryPersonnel(s.cfg.People),
			HasPrograms:  probeForCategoryPrograms(s.cfg.Programs),
			Logger:       s.cfg.Logger,
			Guard:        s.guard,
		}),
		TrainingSchedule: command.NewTrainingScheduleCommand(command.TrainingScheduleCommandConfig{
			Trainings: s.cfg.Trainings,
			Programs:  s.cfg.Programs,
			People:    s.cfg.People,
			Clock:     s.cfg.Clock,
			Logger:    s.cfg.Logger,
			Guard:     s.guard,
		}),
		ExamGrade: command.NewExamGradeCommand(command.ExamGradeCommandConfig{
			Examinations: s.cfg.Examinations,
			Logger:       s.cfg.Logger,
			Guard:        s.guard,
		}),
		CertificateIssue: command.NewCertificateIssueCommand(command.CertificateIssueCommandConfig{
			Certificates: s.cfg.Certificates,
			Trainings:    s.cfg.Trainings,
			Programs:     s.cfg.Programs,
			Clock:        s.cfg.Clock,
			Logger:       s.cfg.Logger,
			Guard:        s.guard,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		PersonnelInventory: query.NewPersonnelInventoryQuery(s.cfg.People, s.cfg.Logger, s.guard),
		CategoryStats:      query.NewCategoryStatsQuery(s.cfg.People, s.cfg.Logger, s.guard),
		QrTokenResolve: query.NewQrTokenResolveQuery(query.QrResolveConfig{
			People: s.cfg.People,
			Rotate: s.commands.QrTokenRotate,
			Links:  s.linker,
			Logger: s.cfg.Logger,
			Guard:  s.guard,
		}),
		PublicProfile: query.NewPublicProfileQuery(s.cfg.People, s.cfg.Clock, s.cfg.Logger),
		AuditTrail:    query.NewAuditTrailQuery(s.auditRepo, s.cfg.Logger, s.guard),
	}
}

// Existence probes are optional capabilities on the concrete repositories;
// wiring degrades gracefully when a backing store does not expose them.

type airportProber interface {
	ExistsForAirport(ctx context.Context, airportID uuid.UUID) (bool, error)
}

type programProber interface {
	ExistsForProgram(ctx context.Context, programID uuid.UUID) (bool, error)
}

type trainingProber interface {
	ExistsForTraining(ctx context.Context, trainingID uuid.UUID) (bool, error)
}

type categoryProber interface {
	ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

func probeForAirportAssignments(repo types.AssignmentRepository) command.ExistenceProbe {
	if prober, ok := repo.(airportProber); ok {
		return prober.ExistsForAirport
	}
	return nil
}

func probeForAirportTrainings(repo types.TrainingRepository) command.ExistenceProbe {
	if prober, ok := repo.(airportProber); ok {
		return prober.ExistsForAirport
	}
	return nil
}

func probeForAirportCertificates(repo types.CertificateRepository) command.ExistenceProbe {
	if prober, ok := repo.(airportProber); ok {
		return prober.ExistsForAirport
	}
	return nil
}

func probeForProgramTrainings(repo types.TrainingRepository) command.ExistenceProbe {
	if prober, ok := repo.(programProber); ok {
		return prober.ExistsForProgram
	}
	return nil
}

func probeForCategoryPersonnel(repo types.PersonRepository) command.ExistenceProbe {
	if prober, ok := repo.(categoryProber); ok {
		return prober.ExistsForCategory
	}
	return nil
}

func probeForCategoryPrograms(repo types.ProgramRepository) command.ExistenceProbe {
	if prober, ok := repo.(categoryProber); ok {
		return prober.ExistsForCategory
	}
	return nil
}
