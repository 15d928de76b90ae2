// Package crudguard turns go-crud operations into trainops guard checks so
// CRUD controllers cannot bypass the admin gate.
package crudguard

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/authctx"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
)

const (
	textCodeMissingPolicy  = "GUARD_POLICY_MISSING"
	textCodeMissingContext = "CONTEXT_MISSING"
)

// Requirement names the guard check an operation needs.
type Requirement string

const (
	// RequireAdmin demands the actor's personnel record carry the admin role.
	RequireAdmin Requirement = "admin"
	// RequireAuthenticated only demands a known, active personnel record.
	RequireAuthenticated Requirement = "authenticated"
)

// Config drives Adapter construction.
type Config struct {
	Guard     guard.Guard
	Logger    types.Logger
	PolicyMap map[crud.CrudOperation]Requirement
	Fallback  Requirement
}

// Adapter maps go-crud operations onto guard requirements.
type Adapter struct {
	guard     guard.Guard
	logger    types.Logger
	policyMap map[crud.CrudOperation]Requirement
	fallback  Requirement
}

// GuardInput captures per-request parameters supplied by transports.
type GuardInput struct {
	Context   crud.Context
	Operation crud.CrudOperation
	TargetID  uuid.UUID
}

// GuardResult reports the resolved actor and their personnel record.
type GuardResult struct {
	Actor     types.ActorRef
	Person    *types.Person
	Operation crud.CrudOperation
}

// DefaultPolicyMap maps the standard CRUD verbs: reads need authentication,
// writes need the admin role.
func DefaultPolicyMap() map[crud.CrudOperation]Requirement {
	return map[crud.CrudOperation]Requirement{
		crud.OpRead:        RequireAuthenticated,
		crud.OpList:        RequireAuthenticated,
		crud.OpCreate:      RequireAdmin,
		crud.OpCreateBatch: RequireAdmin,
		crud.OpUpdate:      RequireAdmin,
		crud.OpUpdateBatch: RequireAdmin,
		crud.OpDelete:      RequireAdmin,
		crud.OpDeleteBatch: RequireAdmin,
	}
}

// NewAdapter constructs a guard adapter and validates the supplied config.
func NewAdapter(cfg Config) (*Adapter, error) {
	if len(cfg.PolicyMap) == 0 && cfg.Fallback == "" {
		return nil, goerrors.New("go-trainops: policy map or fallback requirement must be provided", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeMissingPolicy)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}

	return &Adapter{
		guard:     guard.Ensure(cfg.Guard),
		logger:    logger,
		policyMap: clonePolicyMap(cfg.PolicyMap),
		fallback:  cfg.Fallback,
	}, nil
}

// Enforce resolves the actor from the crud context and runs the guard check
// mapped to the operation.
func (a *Adapter) Enforce(in GuardInput) (GuardResult, error) {
	if in.Context == nil {
		return GuardResult{}, goerrors.New("go-trainops: crudguard requires a context", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeMissingContext)
	}

	ctx := in.Context.UserContext()
	actorRef, err := authctx.ResolveActor(ctx)
	if err != nil {
		return GuardResult{}, err
	}

	requirement, err := a.requirementForOperation(in.Operation)
	if err != nil {
		return GuardResult{}, err
	}

	var person *types.Person
	switch requirement {
	case RequireAdmin:
		person, err = a.guard.RequireAdmin(ctx, actorRef)
	default:
		person, err = a.guard.RequireAuthenticated(ctx, actorRef)
	}
	if err != nil {
		return GuardResult{}, err
	}

	return GuardResult{
		Actor:     actorRef,
		Person:    person,
		Operation: in.Operation,
	}, nil
}

func (a *Adapter) requirementForOperation(op crud.CrudOperation) (Requirement, error) {
	if req, ok := a.policyMap[op]; ok && req != "" {
		return req, nil
	}
	if a.fallback != "" {
		return a.fallback, nil
	}
	return "", goerrors.New(fmt.Sprintf("go-trainops: no guard requirement configured for %s", op), goerrors.CategoryInternal).
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeMissingPolicy)
}

func clonePolicyMap(in map[crud.CrudOperation]Requirement) map[crud.CrudOperation]Requirement {
	if len(in) == 0 {
		return nil
	}
	cp := make(map[crud.CrudOperation]Requirement, len(in))
	maps.Copy(cp, in)
	return cp
}
