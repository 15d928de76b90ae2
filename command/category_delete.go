package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/goliatone/go-trainops/refguard"
	"github.com/google/uuid"
)

// Text codes for the job category deletion guard.
const (
	TextCodeCategoryHasPersonnel = "CATEGORY_HAS_PERSONNEL"
	TextCodeCategoryHasPrograms  = "CATEGORY_HAS_PROGRAMS"
)

// CategoryDeleteInput identifies the job category to remove.
type CategoryDeleteInput struct {
	CategoryID uuid.UUID
	Actor      types.ActorRef
}

// Type implements gocommand.Message.
func (CategoryDeleteInput) Type() string {
	return "command.category.delete"
}

// Validate implements gocommand.Message.
func (input CategoryDeleteInput) Validate() error {
	switch {
	case input.CategoryID == uuid.Nil:
		return ErrCategoryIDRequired
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	default:
		return nil
	}
}

// CategoryDeleteCommand removes job categories that no person or program
// references.
type CategoryDeleteCommand struct {
	categories types.CategoryRepository
	refs       refguard.Guard
	logger     types.Logger
	guard      guard.Guard
}

// CategoryDeleteCommandConfig holds dependencies for guarded category
// deletion.
type CategoryDeleteCommandConfig struct {
	Categories   types.CategoryRepository
	HasPersonnel ExistenceProbe
	HasPrograms  ExistenceProbe
	Logger       types.Logger
	Guard        guard.Guard
}

// NewCategoryDeleteCommand constructs the guarded deletion handler.
func NewCategoryDeleteCommand(cfg CategoryDeleteCommandConfig) *CategoryDeleteCommand {
	probes := make([]refguard.Probe, 0, 2)
	if cfg.HasPersonnel != nil {
		probes = append(probes, refguard.Probe{
			Label:    "personnel assigned",
			TextCode: TextCodeCategoryHasPersonnel,
			Exists:   cfg.HasPersonnel,
		})
	}
	if cfg.HasPrograms != nil {
		probes = append(probes, refguard.Probe{
			Label:    "training programs",
			TextCode: TextCodeCategoryHasPrograms,
			Exists:   cfg.HasPrograms,
		})
	}
	return &CategoryDeleteCommand{
		categories: cfg.Categories,
		refs:       refguard.New("job category", probes...),
		logger:     safeLogger(cfg.Logger),
		guard:      safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[CategoryDeleteInput] = (*CategoryDeleteCommand)(nil)

// Execute deletes the category once nothing references it.
func (c *CategoryDeleteCommand) Execute(ctx context.Context, input CategoryDeleteInput) error {
	if c.categories == nil {
		return types.ErrMissingCategoryRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.RequireAdmin(ctx, input.Actor); err != nil {
		return err
	}

	if err := c.refs.Check(ctx, input.CategoryID); err != nil {
		return err
	}

	if err := c.categories.Delete(ctx, input.CategoryID); err != nil {
		return types.DependencyFailure(err, "job category store")
	}
	c.logger.Info("job category deleted", "category_id", input.CategoryID.String())
	return nil
}
